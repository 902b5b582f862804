package models

import (
	"encoding/json"
	"strings"
)

type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionHaha  ReactionType = "haha"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

// ReactionTypes lists the reactions in display order.
var ReactionTypes = []ReactionType{
	ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad, ReactionAngry,
}

func (r ReactionType) Valid() bool {
	for _, t := range ReactionTypes {
		if r == t {
			return true
		}
	}
	return false
}

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaNone  MediaType = "none"
)

func (m MediaType) Valid() bool {
	return m == MediaImage || m == MediaVideo || m == MediaNone
}

type Language string

const (
	LanguageEN Language = "en"
	LanguageES Language = "es"

	DefaultLanguage = LanguageES
)

func (l Language) Valid() bool {
	return l == LanguageEN || l == LanguageES
}

// Other returns the language the toggle switches to.
func (l Language) Other() Language {
	if l == LanguageEN {
		return LanguageES
	}
	return LanguageEN
}

type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	CoverPhoto string `json:"coverPhoto,omitempty"`
}

type Comment struct {
	ID        string `json:"id"`
	Author    User   `json:"author"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

type AppSettings struct {
	BackgroundImage string `json:"backgroundImage,omitempty"`
	PublicURL       string `json:"publicUrl,omitempty"`
}

type Post struct {
	ID           string               `json:"id"`
	Author       User                 `json:"author"`
	Timestamp    int64                `json:"timestamp"`
	Title        string               `json:"title,omitempty"`
	Content      string               `json:"content"`
	MediaType    MediaType            `json:"mediaType"`
	Media        *Media               `json:"-"`
	Reactions    map[ReactionType]int `json:"reactions"`
	UserReaction ReactionType         `json:"userReaction,omitempty"`
	Comments     []Comment            `json:"comments"`
	Tags         []string             `json:"tags"`
}

type postAlias Post

type postJSON struct {
	*postAlias
	MediaURL      string `json:"mediaUrl,omitempty"`
	MediaMimeType string `json:"mediaMimeType,omitempty"`
}

// MarshalJSON keeps the flat mediaUrl/mediaMimeType layout of the stored records.
func (p Post) MarshalJSON() ([]byte, error) {
	out := postJSON{postAlias: (*postAlias)(&p)}
	if p.Media != nil {
		out.MediaURL = p.Media.URL
		out.MediaMimeType = p.Media.MimeType
	}
	if out.Reactions == nil {
		out.Reactions = map[ReactionType]int{}
	}
	if out.Comments == nil {
		out.Comments = []Comment{}
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return json.Marshal(out)
}

func (p *Post) UnmarshalJSON(data []byte) error {
	// Decoding into a reused value must not merge maps or slices.
	*p = Post{}
	in := postJSON{postAlias: (*postAlias)(p)}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.MediaURL != "" {
		p.Media = &Media{
			Kind:     ClassifyMediaURL(in.MediaURL),
			URL:      in.MediaURL,
			MimeType: in.MediaMimeType,
		}
	}
	return nil
}

// Clone returns a deep copy so engine transforms never share maps or slices
// with the list they were given.
func (p Post) Clone() Post {
	out := p
	if p.Media != nil {
		m := *p.Media
		out.Media = &m
	}
	out.Reactions = make(map[ReactionType]int, len(p.Reactions))
	for k, v := range p.Reactions {
		out.Reactions[k] = v
	}
	out.Comments = append([]Comment(nil), p.Comments...)
	out.Tags = append([]string(nil), p.Tags...)
	return out
}

// HasImage reports whether the post carries an image that can be referenced.
func (p Post) HasImage() bool {
	return p.MediaType == MediaImage && p.Media != nil && strings.TrimSpace(p.Media.URL) != ""
}
