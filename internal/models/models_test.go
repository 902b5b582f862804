package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_JSONKeepsFlatMediaFields(t *testing.T) {
	post := Post{
		ID:        "p1",
		Author:    User{ID: "admin-user", Name: "Admin"},
		Timestamp: 42,
		Content:   "hello",
		MediaType: MediaImage,
		Media:     &Media{Kind: MediaDurable, URL: "data:image/png;base64,AAAA", MimeType: "image/png"},
	}

	data, err := json.Marshal(post)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "data:image/png;base64,AAAA", raw["mediaUrl"])
	assert.Equal(t, "image/png", raw["mediaMimeType"])
	assert.NotContains(t, raw, "Media")
	assert.Equal(t, map[string]any{}, raw["reactions"])
	assert.Equal(t, []any{}, raw["comments"])
	assert.Equal(t, []any{}, raw["tags"])

	var decoded Post
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Media)
	assert.Equal(t, MediaDurable, decoded.Media.Kind)
	assert.Equal(t, post.Media.URL, decoded.Media.URL)
}

func TestPost_UnmarshalOriginalRecord(t *testing.T) {
	raw := `{
		"id": "1700000000000",
		"author": {"id": "admin-user", "name": "Administrador", "avatar": "https://ui-avatars.com/api/?name=Admin"},
		"timestamp": 1700000000000,
		"title": "Momentos",
		"content": "Preparando algo especial",
		"mediaType": "video",
		"mediaUrl": "blob:http://localhost:5173/7f1c",
		"mediaMimeType": "video/mp4",
		"reactions": {"wow": 4, "like": 10},
		"userReaction": "like",
		"comments": [{"id": "c1", "author": {"id": "admin-user", "name": "A", "avatar": ""}, "text": "hola", "timestamp": 1}],
		"tags": ["Ensayo"]
	}`

	var p Post
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "1700000000000", p.ID)
	assert.Equal(t, MediaVideo, p.MediaType)
	require.NotNil(t, p.Media)
	assert.Equal(t, MediaEphemeral, p.Media.Kind)
	assert.False(t, p.Media.Persistable())
	assert.Equal(t, 10, p.Reactions[ReactionLike])
	assert.Equal(t, ReactionLike, p.UserReaction)
	assert.Len(t, p.Comments, 1)
	assert.NoError(t, p.Validate())
}

func TestPost_UnmarshalIntoReusedValue(t *testing.T) {
	var p Post
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "1", "title": "Primero",
		"mediaType": "image", "mediaUrl": "data:image/png;base64,AA==",
		"reactions": {"like": 3, "wow": 1},
		"comments": [{"id": "c1", "text": "hola", "timestamp": 1}],
		"tags": ["Ensayo"]
	}`), &p))
	require.NotNil(t, p.Media)

	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "2", "title": "Segundo",
		"reactions": {"love": 2}
	}`), &p))

	assert.Equal(t, "2", p.ID)
	assert.Equal(t, map[ReactionType]int{ReactionLove: 2}, p.Reactions)
	assert.Empty(t, p.Comments)
	assert.Empty(t, p.Tags)
	assert.Nil(t, p.Media)
	assert.Empty(t, p.MediaType)
}

func TestClassifyMediaURL(t *testing.T) {
	assert.Equal(t, MediaEphemeral, ClassifyMediaURL("ephemeral:abc"))
	assert.Equal(t, MediaEphemeral, ClassifyMediaURL("blob:http://localhost/x"))
	assert.Equal(t, MediaDurable, ClassifyMediaURL("data:image/png;base64,AA"))
	assert.Equal(t, MediaRemote, ClassifyMediaURL("https://images.unsplash.com/photo"))

	m := &Media{Kind: MediaEphemeral, URL: "ephemeral:abc"}
	handle, ok := m.EphemeralHandle()
	assert.True(t, ok)
	assert.Equal(t, "abc", handle)

	_, ok = (&Media{Kind: MediaRemote, URL: "https://x"}).EphemeralHandle()
	assert.False(t, ok)
}

func TestPost_ValidateAndNormalize(t *testing.T) {
	tests := []struct {
		name string
		post Post
	}{
		{
			name: "Negative count",
			post: Post{ID: "p", MediaType: MediaNone, Reactions: map[ReactionType]int{ReactionLike: -2}},
		},
		{
			name: "Uncounted user reaction",
			post: Post{ID: "p", MediaType: MediaNone, Reactions: map[ReactionType]int{}, UserReaction: ReactionLove},
		},
		{
			name: "Media on a post without media type",
			post: Post{ID: "p", MediaType: MediaNone, Media: &Media{Kind: MediaRemote, URL: "https://x"}},
		},
		{
			name: "Unknown reaction key",
			post: Post{ID: "p", MediaType: MediaNone, Reactions: map[ReactionType]int{"meh": 1}},
		},
		{
			name: "Unknown media type",
			post: Post{ID: "p", MediaType: "gif"},
		},
		{
			name: "Empty comment",
			post: Post{ID: "p", MediaType: MediaNone, Comments: []Comment{{ID: "c"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.post
			assert.ErrorIs(t, p.Validate(), ErrInvalidPost)

			p.Normalize()
			assert.NoError(t, p.Validate())
			assert.NotNil(t, p.Reactions)
			assert.NotNil(t, p.Comments)
			assert.NotNil(t, p.Tags)
		})
	}

	assert.ErrorIs(t, Post{MediaType: MediaNone}.Validate(), ErrInvalidPost)
}

func TestPost_Clone(t *testing.T) {
	p := Post{
		ID:        "p",
		Media:     &Media{Kind: MediaRemote, URL: "https://x"},
		Reactions: map[ReactionType]int{ReactionLike: 1},
		Comments:  []Comment{{ID: "c", Text: "t"}},
		Tags:      []string{"a"},
	}

	c := p.Clone()
	c.Reactions[ReactionLike] = 5
	c.Media.URL = "https://y"
	c.Tags[0] = "b"
	c.Comments[0].Text = "u"

	assert.Equal(t, 1, p.Reactions[ReactionLike])
	assert.Equal(t, "https://x", p.Media.URL)
	assert.Equal(t, "a", p.Tags[0])
	assert.Equal(t, "t", p.Comments[0].Text)
}

func TestLanguage(t *testing.T) {
	assert.True(t, LanguageEN.Valid())
	assert.False(t, Language("fr").Valid())
	assert.Equal(t, LanguageES, LanguageEN.Other())
	assert.Equal(t, LanguageEN, LanguageES.Other())
}
