// Package feed holds the post, reaction and comment transitions. Every
// operation takes the current list and returns a new one; the input list and
// the posts in it are left untouched.
package feed

import (
	"strings"
	"time"

	"elenco/internal/models"

	"github.com/google/uuid"
)

type Draft struct {
	Title     string
	Content   string
	MediaType models.MediaType
	// Media is nil when the draft carries no newly attached file.
	Media *models.Media
}

type Engine struct {
	Now   func() time.Time
	NewID func() string
}

func NewEngine() *Engine {
	return &Engine{
		Now:   time.Now,
		NewID: func() string { return uuid.New().String() },
	}
}

func (e *Engine) millis() int64 {
	return e.Now().UnixMilli()
}

// CreatePost prepends a new post. Nothing is created when the draft has
// neither content nor media.
func (e *Engine) CreatePost(posts []models.Post, author models.User, draft Draft) ([]models.Post, *models.Post) {
	media, mediaType := attachment(draft)
	if draft.Content == "" && media == nil {
		return posts, nil
	}

	post := models.Post{
		ID:        e.NewID(),
		Author:    author,
		Timestamp: e.millis(),
		Title:     draft.Title,
		Content:   draft.Content,
		MediaType: mediaType,
		Media:     media,
		Reactions: map[models.ReactionType]int{},
		Comments:  []models.Comment{},
		Tags:      []string{},
	}

	out := make([]models.Post, 0, len(posts)+1)
	out = append(out, post)
	out = append(out, posts...)
	return out, &out[0]
}

// UpdatePost edits title, content and media type in place. Media is replaced
// only when the draft brings a new file and cleared when the media type
// becomes none; otherwise the previous attachment is kept.
func (e *Engine) UpdatePost(posts []models.Post, id string, draft Draft) ([]models.Post, *models.Post) {
	return e.mapPost(posts, id, func(p *models.Post) bool {
		p.Title = draft.Title
		p.Content = draft.Content
		if draft.MediaType.Valid() {
			p.MediaType = draft.MediaType
		}

		switch {
		case p.MediaType == models.MediaNone:
			p.Media = nil
		case draft.Media != nil:
			m := *draft.Media
			if m.MimeType == "" && p.Media != nil {
				m.MimeType = p.Media.MimeType
			}
			p.Media = &m
		}
		return true
	})
}

// attachment keeps draft media only when it is typed as image or video.
func attachment(draft Draft) (*models.Media, models.MediaType) {
	if draft.Media == nil || (draft.MediaType != models.MediaImage && draft.MediaType != models.MediaVideo) {
		return nil, models.MediaNone
	}
	m := *draft.Media
	return &m, draft.MediaType
}

func (e *Engine) DeletePost(posts []models.Post, id string) ([]models.Post, bool) {
	idx := indexOf(posts, id)
	if idx < 0 {
		return posts, false
	}

	out := make([]models.Post, 0, len(posts)-1)
	out = append(out, posts[:idx]...)
	out = append(out, posts[idx+1:]...)
	return out, true
}

// React applies toggle-with-replace: the same reaction again withdraws it,
// a different one moves the viewer's vote. Counts never drop below zero.
func (e *Engine) React(posts []models.Post, id string, reaction models.ReactionType) ([]models.Post, *models.Post) {
	if !reaction.Valid() {
		return posts, nil
	}

	return e.mapPost(posts, id, func(p *models.Post) bool {
		previous := p.UserReaction

		if previous == reaction {
			decrement(p.Reactions, previous)
			p.UserReaction = ""
			return true
		}

		if previous != "" {
			decrement(p.Reactions, previous)
		}
		p.Reactions[reaction]++
		p.UserReaction = reaction
		return true
	})
}

func decrement(reactions map[models.ReactionType]int, r models.ReactionType) {
	if n, ok := reactions[r]; ok && n != 0 {
		reactions[r] = max(0, n-1)
	}
}

// AddComment appends a comment authored by a snapshot of the given user.
// Blank text is ignored.
func (e *Engine) AddComment(posts []models.Post, id string, author models.User, text string) ([]models.Post, *models.Comment) {
	if strings.TrimSpace(text) == "" {
		return posts, nil
	}

	var added *models.Comment
	out, _ := e.mapPost(posts, id, func(p *models.Post) bool {
		p.Comments = append(p.Comments, models.Comment{
			ID:        e.NewID(),
			Author:    author,
			Text:      text,
			Timestamp: e.millis(),
		})
		added = &p.Comments[len(p.Comments)-1]
		return true
	})
	return out, added
}

// SetAuthor rewrites the author of every post owned by user.ID. Comments
// keep the author snapshot taken when they were written.
func (e *Engine) SetAuthor(posts []models.Post, user models.User) ([]models.Post, bool) {
	changed := false
	out := make([]models.Post, len(posts))
	for i, p := range posts {
		if p.Author.ID == user.ID {
			p = p.Clone()
			p.Author = user
			changed = true
		}
		out[i] = p
	}
	if !changed {
		return posts, false
	}
	return out, true
}

func (e *Engine) mapPost(posts []models.Post, id string, fn func(p *models.Post) bool) ([]models.Post, *models.Post) {
	idx := indexOf(posts, id)
	if idx < 0 {
		return posts, nil
	}

	edited := posts[idx].Clone()
	if !fn(&edited) {
		return posts, nil
	}

	out := append([]models.Post(nil), posts...)
	out[idx] = edited
	return out, &out[idx]
}

func indexOf(posts []models.Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}
