package models

import (
	"errors"
	"fmt"
)

var ErrInvalidPost = errors.New("invalid post")

// Validate reports the first invariant the post violates.
func (p Post) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidPost)
	}
	if !p.MediaType.Valid() {
		return fmt.Errorf("%w: unknown media type %q", ErrInvalidPost, p.MediaType)
	}
	if p.MediaType == MediaNone && p.Media != nil {
		return fmt.Errorf("%w: media attached to a post without media type", ErrInvalidPost)
	}
	for k, v := range p.Reactions {
		if !k.Valid() {
			return fmt.Errorf("%w: unknown reaction %q", ErrInvalidPost, k)
		}
		if v < 0 {
			return fmt.Errorf("%w: negative count for %s", ErrInvalidPost, k)
		}
	}
	if p.UserReaction != "" {
		if !p.UserReaction.Valid() {
			return fmt.Errorf("%w: unknown user reaction %q", ErrInvalidPost, p.UserReaction)
		}
		if p.Reactions[p.UserReaction] < 1 {
			return fmt.Errorf("%w: user reaction %s not counted", ErrInvalidPost, p.UserReaction)
		}
	}
	for _, c := range p.Comments {
		if c.Text == "" {
			return fmt.Errorf("%w: empty comment %s", ErrInvalidPost, c.ID)
		}
	}
	return nil
}

// Normalize repairs a post read from storage so that Validate holds, except
// for a missing id which cannot be recovered.
func (p *Post) Normalize() {
	if !p.MediaType.Valid() {
		if p.Media != nil {
			p.MediaType = MediaImage
		} else {
			p.MediaType = MediaNone
		}
	}
	if p.MediaType == MediaNone {
		p.Media = nil
	}

	reactions := make(map[ReactionType]int, len(p.Reactions))
	for k, v := range p.Reactions {
		if !k.Valid() {
			continue
		}
		reactions[k] = max(v, 0)
	}
	p.Reactions = reactions

	if p.UserReaction != "" {
		if !p.UserReaction.Valid() {
			p.UserReaction = ""
		} else if p.Reactions[p.UserReaction] < 1 {
			p.Reactions[p.UserReaction] = 1
		}
	}

	comments := make([]Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		if c.Text != "" {
			comments = append(comments, c)
		}
	}
	p.Comments = comments

	if p.Tags == nil {
		p.Tags = []string{}
	}
}
