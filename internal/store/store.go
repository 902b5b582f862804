package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"elenco/internal/models"
	"elenco/internal/repository"
)

const (
	KeyPosts    = "elenco_posts_v2"
	KeyUser     = "elenco_user_v1"
	KeySettings = "elenco_settings_v1"
	KeyLanguage = "elenco_lang_v1"
)

// Keys lists the records the store owns.
var Keys = []string{KeyPosts, KeyUser, KeySettings, KeyLanguage}

// Snapshot is everything the session needs after a load.
type Snapshot struct {
	Posts    []models.Post      `json:"posts"`
	User     models.User        `json:"user"`
	Settings models.AppSettings `json:"settings"`
	Language models.Language    `json:"language"`
	// Seeded is set when the posts record was missing or unreadable.
	Seeded bool `json:"-"`
}

// Store mirrors the session into four independent records.
type Store struct {
	repo repository.KVRepository
	log  *zap.Logger
	now  func() time.Time
}

func New(repo repository.KVRepository, log *zap.Logger) *Store {
	return &Store{repo: repo, log: log, now: time.Now}
}

// Load reads every record once. It never fails: each record falls back to its
// default independently and problems are logged.
func (s *Store) Load(ctx context.Context) Snapshot {
	snap := Snapshot{
		User:     DefaultUser(),
		Language: models.DefaultLanguage,
	}

	snap.Posts, snap.Seeded = s.loadPosts(ctx)

	if raw, ok := s.read(ctx, KeyUser); ok {
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
			s.log.Warn("discarding unreadable user record", zap.Error(err))
		} else {
			snap.User = withoutEphemeral(user)
		}
	}

	if raw, ok := s.read(ctx, KeySettings); ok {
		var settings models.AppSettings
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			s.log.Warn("discarding unreadable settings record", zap.Error(err))
		} else {
			snap.Settings = settings
		}
	}

	if raw, ok := s.read(ctx, KeyLanguage); ok {
		if lang, ok := ParseLanguage(raw); ok {
			snap.Language = lang
		} else {
			s.log.Warn("discarding unknown language", zap.String("value", raw))
		}
	}

	return snap
}

func (s *Store) loadPosts(ctx context.Context) ([]models.Post, bool) {
	raw, ok := s.read(ctx, KeyPosts)
	if !ok {
		return Seed(s.now()), true
	}

	var posts []models.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		s.log.Warn("posts record is corrupt, resetting to seed data", zap.Error(err))
		return Seed(s.now()), true
	}
	if posts == nil {
		s.log.Warn("posts record is null, resetting to seed data")
		return Seed(s.now()), true
	}

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.ID == "" {
			s.log.Warn("dropping stored post without id")
			continue
		}
		p.Normalize()
		out = append(out, p)
	}
	return out, false
}

// read returns false for a missing or unreadable record.
func (s *Store) read(ctx context.Context, key string) (string, bool) {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("failed to read record", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return raw, true
}

// ParseLanguage accepts the raw code and, leniently, a JSON string.
func ParseLanguage(raw string) (models.Language, bool) {
	value := strings.TrimSpace(raw)
	var quoted string
	if err := json.Unmarshal([]byte(value), &quoted); err == nil {
		value = quoted
	}
	lang := models.Language(value)
	return lang, lang.Valid()
}

// SavePosts replaces the posts record. Ephemeral media cannot survive a
// restart so its reference is dropped; the media type is kept.
func (s *Store) SavePosts(ctx context.Context, posts []models.Post) error {
	out := make([]models.Post, len(posts))
	for i, p := range posts {
		if p.Media != nil && !p.Media.Persistable() {
			p.Media = nil
		}
		out[i] = p
	}
	return s.write(ctx, KeyPosts, out)
}

// SaveUser writes the profile. Ephemeral images are dropped like post media.
func (s *Store) SaveUser(ctx context.Context, user models.User) error {
	return s.write(ctx, KeyUser, withoutEphemeral(user))
}

func withoutEphemeral(user models.User) models.User {
	if models.ClassifyMediaURL(user.CoverPhoto) == models.MediaEphemeral {
		user.CoverPhoto = ""
	}
	if models.ClassifyMediaURL(user.Avatar) == models.MediaEphemeral {
		user.Avatar = ""
	}
	return user
}

func (s *Store) SaveSettings(ctx context.Context, settings models.AppSettings) error {
	return s.write(ctx, KeySettings, settings)
}

// SaveLanguage writes the bare code, not a JSON string.
func (s *Store) SaveLanguage(ctx context.Context, lang models.Language) error {
	if err := s.repo.Put(ctx, KeyLanguage, string(lang)); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.repo.Put(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Reset overwrites every record with the first-run defaults.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.SavePosts(ctx, Seed(s.now())); err != nil {
		return err
	}
	if err := s.SaveUser(ctx, DefaultUser()); err != nil {
		return err
	}
	if err := s.SaveSettings(ctx, models.AppSettings{}); err != nil {
		return err
	}
	return s.SaveLanguage(ctx, models.DefaultLanguage)
}

// Dump returns the raw stored value of every record that exists.
func (s *Store) Dump(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(Keys))
	for _, key := range Keys {
		raw, err := s.repo.Get(ctx, key)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[key] = raw
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
