package feed

import (
	"testing"

	"elenco/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	withMedia := basePost("media")
	withMedia.MediaType = models.MediaImage
	withMedia.Media = &models.Media{Kind: models.MediaRemote, URL: "https://example.com/i.jpg"}

	foreign := basePost("foreign")
	foreign.Author = models.User{ID: "someone-else"}

	posts := []models.Post{basePost("text"), withMedia, foreign}

	ids := func(ps []models.Post) []string {
		out := []string{}
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []string{"text", "media", "foreign"}, ids(Filter(posts, TabFeed, admin)))
	assert.Equal(t, []string{"media"}, ids(Filter(posts, TabGrid, admin)))
	assert.Equal(t, []string{"text", "media"}, ids(Filter(posts, TabMyPosts, admin)))
}

func TestParseTab(t *testing.T) {
	assert.Equal(t, TabGrid, ParseTab("grid"))
	assert.Equal(t, TabMyPosts, ParseTab("my_posts"))
	assert.Equal(t, TabFeed, ParseTab(""))
	assert.Equal(t, TabFeed, ParseTab("unknown"))
}

func TestFindAndTotals(t *testing.T) {
	p := basePost("x")
	p.Reactions = map[models.ReactionType]int{models.ReactionLove: 12, models.ReactionLike: 5}

	found, ok := Find([]models.Post{p}, "x")
	assert.True(t, ok)
	assert.Equal(t, 17, TotalReactions(found))

	_, ok = Find([]models.Post{p}, "y")
	assert.False(t, ok)
}
