package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"elenco/internal/feed"
	"elenco/internal/media"
	"elenco/internal/models"
	"elenco/internal/store"
)

// Persister is the durable mirror the session writes through to.
type Persister interface {
	Load(ctx context.Context) store.Snapshot
	SavePosts(ctx context.Context, posts []models.Post) error
	SaveUser(ctx context.Context, user models.User) error
	SaveSettings(ctx context.Context, settings models.AppSettings) error
	SaveLanguage(ctx context.Context, lang models.Language) error
	Ping(ctx context.Context) error
}

// State is the authoritative copy of everything the blog shows.
type State struct {
	Posts    []models.Post      `json:"posts"`
	User     models.User        `json:"user"`
	Settings models.AppSettings `json:"settings"`
	Language models.Language    `json:"language"`
}

type record uint8

const (
	recordPosts record = 1 << iota
	recordUser
	recordSettings
	recordLanguage
)

// Session owns the state. Mutations run one at a time; after each one the
// records it touched are written back whole. Nothing is written before Load
// has completed.
type Session struct {
	mu         sync.Mutex
	state      State
	loaded     bool
	persistErr error

	store  Persister
	media  MediaService
	engine *feed.Engine
	log    *zap.Logger
}

func NewSession(p Persister, m MediaService, engine *feed.Engine, log *zap.Logger) *Session {
	return &Session{
		state: State{
			Posts:    []models.Post{},
			User:     store.DefaultUser(),
			Language: models.DefaultLanguage,
		},
		store:  p,
		media:  m,
		engine: engine,
		log:    log,
	}
}

// Load copies the stored records into memory and opens the write gate. It is
// only effective once.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	snap := s.store.Load(ctx)
	s.state = State{
		Posts:    snap.Posts,
		User:     snap.User,
		Settings: snap.Settings,
		Language: snap.Language,
	}
	s.loaded = true

	s.log.Info("session loaded",
		zap.Int("posts", len(snap.Posts)),
		zap.Bool("seeded", snap.Seeded),
		zap.String("language", string(snap.Language)),
	)
	return nil
}

func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Posts:    clonePosts(s.state.Posts),
		User:     s.state.User,
		Settings: s.state.Settings,
		Language: s.state.Language,
	}
}

func (s *Session) Posts(tab feed.Tab) []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePosts(feed.Filter(s.state.Posts, tab, s.state.User))
}

func (s *Session) Post(id string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := feed.Find(s.state.Posts, id)
	if !ok {
		return models.Post{}, ErrPostNotFound
	}
	return p.Clone(), nil
}

func (s *Session) CreatePost(ctx context.Context, in PostInput) (models.Post, error) {
	if !s.Loaded() {
		return models.Post{}, ErrNotLoaded
	}

	draft, err := s.draft(ctx, in)
	if err != nil {
		return models.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, created := s.engine.CreatePost(s.state.Posts, s.state.User, draft)
	if created == nil {
		s.media.Discard(ctx, draft.Media)
		return models.Post{}, ErrEmptyPost
	}
	s.state.Posts = posts
	s.flush(ctx, recordPosts)

	return created.Clone(), nil
}

func (s *Session) UpdatePost(ctx context.Context, id string, in PostInput) (models.Post, error) {
	if !s.Loaded() {
		return models.Post{}, ErrNotLoaded
	}

	draft, err := s.draft(ctx, in)
	if err != nil {
		return models.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before, _ := feed.Find(s.state.Posts, id)
	posts, updated := s.engine.UpdatePost(s.state.Posts, id, draft)
	if updated == nil {
		s.media.Discard(ctx, draft.Media)
		return models.Post{}, ErrPostNotFound
	}
	s.state.Posts = posts
	s.flush(ctx, recordPosts)

	if before.Media != nil && (updated.Media == nil || updated.Media.URL != before.Media.URL) {
		s.release(ctx, before.Media)
	}

	return updated.Clone(), nil
}

// draft ingests the attached file, if any, before the state is touched.
func (s *Session) draft(ctx context.Context, in PostInput) (feed.Draft, error) {
	d := feed.Draft{
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		MediaType: in.MediaType,
	}
	if in.File == nil {
		return d, nil
	}

	m, mediaType, err := s.media.Attach(ctx, *in.File)
	if err != nil {
		return feed.Draft{}, err
	}
	d.Media = m
	d.MediaType = mediaType
	return d, nil
}

func (s *Session) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotLoaded
	}

	removed, _ := feed.Find(s.state.Posts, id)
	posts, ok := s.engine.DeletePost(s.state.Posts, id)
	if !ok {
		return ErrPostNotFound
	}
	s.state.Posts = posts
	s.flush(ctx, recordPosts)
	s.release(ctx, removed.Media)

	return nil
}

func (s *Session) React(ctx context.Context, id string, reaction models.ReactionType) (models.Post, error) {
	if !reaction.Valid() {
		return models.Post{}, fmt.Errorf("%w: %q", ErrInvalidReaction, reaction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return models.Post{}, ErrNotLoaded
	}

	posts, updated := s.engine.React(s.state.Posts, id, reaction)
	if updated == nil {
		return models.Post{}, ErrPostNotFound
	}
	s.state.Posts = posts
	s.flush(ctx, recordPosts)

	return updated.Clone(), nil
}

func (s *Session) AddComment(ctx context.Context, id, text string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return models.Comment{}, ErrNotLoaded
	}
	if _, ok := feed.Find(s.state.Posts, id); !ok {
		return models.Comment{}, ErrPostNotFound
	}

	posts, comment := s.engine.AddComment(s.state.Posts, id, s.state.User, text)
	if comment == nil {
		return models.Comment{}, ErrEmptyComment
	}
	s.state.Posts = posts
	s.flush(ctx, recordPosts)

	return *comment, nil
}

// SaveProfile replaces the user and settings and rewrites the author of the
// user's posts. Comments keep the author they were written with.
func (s *Session) SaveProfile(ctx context.Context, user models.User, settings models.AppSettings) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return State{}, ErrNotLoaded
	}

	user.ID = s.state.User.ID
	s.state.User = user
	s.state.Settings = settings

	dirty := recordUser | recordSettings
	if posts, changed := s.engine.SetAuthor(s.state.Posts, user); changed {
		s.state.Posts = posts
		dirty |= recordPosts
	}
	s.flush(ctx, dirty)

	return State{
		Posts:    clonePosts(s.state.Posts),
		User:     s.state.User,
		Settings: s.state.Settings,
		Language: s.state.Language,
	}, nil
}

// SetCover updates the cover photo and writes the user record straight away,
// ahead of the regular flush.
func (s *Session) SetCover(ctx context.Context, url string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return models.User{}, ErrNotLoaded
	}
	return s.setCover(ctx, url), nil
}

func (s *Session) SetCoverFromPost(ctx context.Context, postID string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return models.User{}, ErrNotLoaded
	}

	p, ok := feed.Find(s.state.Posts, postID)
	if !ok {
		return models.User{}, ErrPostNotFound
	}
	if !p.HasImage() {
		return models.User{}, ErrNoImage
	}
	return s.setCover(ctx, s.coverURL(p.Media)), nil
}

// coverURL inlines an ephemeral image so the cover outlives the process.
// Oversized blobs keep their handle and are dropped from the stored record.
func (s *Session) coverURL(m *models.Media) string {
	handle, ok := m.EphemeralHandle()
	if !ok {
		return m.URL
	}
	blob, found := s.media.Registry().Get(handle)
	if !found {
		return m.URL
	}

	uri, err := media.EncodeDataURI(bytes.NewReader(blob.Data), blob.MimeType, media.DefaultEncodeLimit)
	if err != nil {
		s.log.Warn("cover kept for this session only", zap.String("handle", handle), zap.Error(err))
		return m.URL
	}
	return uri
}

// release discards media a post no longer uses unless the profile still
// shows it.
func (s *Session) release(ctx context.Context, m *models.Media) {
	if m == nil {
		return
	}
	switch m.URL {
	case s.state.User.CoverPhoto, s.state.User.Avatar, s.state.Settings.BackgroundImage:
		return
	}
	s.media.Discard(ctx, m)
}

func (s *Session) setCover(ctx context.Context, url string) models.User {
	s.state.User.CoverPhoto = url

	if err := s.store.SaveUser(context.WithoutCancel(ctx), s.state.User); err != nil {
		s.recordFailure("cover", err)
	}
	s.flush(ctx, recordUser)

	return s.state.User
}

func (s *Session) SetLanguage(ctx context.Context, lang models.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotLoaded
	}
	s.state.Language = lang
	s.flush(ctx, recordLanguage)
	return nil
}

func (s *Session) ToggleLanguage(ctx context.Context) (models.Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return "", ErrNotLoaded
	}
	s.state.Language = s.state.Language.Other()
	s.flush(ctx, recordLanguage)
	return s.state.Language, nil
}

// PersistError returns the last write failure, or nil once a later flush
// succeeded.
func (s *Session) PersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

func (s *Session) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// flush writes the dirty records. Failures never undo the in-memory change.
// Caller holds s.mu.
func (s *Session) flush(ctx context.Context, dirty record) {
	if !s.loaded {
		return
	}

	ctx = context.WithoutCancel(ctx)
	var errs []error

	if dirty&recordPosts != 0 {
		errs = append(errs, s.store.SavePosts(ctx, s.state.Posts))
	}
	if dirty&recordUser != 0 {
		errs = append(errs, s.store.SaveUser(ctx, s.state.User))
	}
	if dirty&recordSettings != 0 {
		errs = append(errs, s.store.SaveSettings(ctx, s.state.Settings))
	}
	if dirty&recordLanguage != 0 {
		errs = append(errs, s.store.SaveLanguage(ctx, s.state.Language))
	}

	if err := errors.Join(errs...); err != nil {
		s.recordFailure("flush", err)
		return
	}
	s.persistErr = nil
}

func (s *Session) recordFailure(op string, err error) {
	s.persistErr = err
	s.log.Error("failed to persist session state", zap.String("op", op), zap.Error(err))
}

func clonePosts(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}
