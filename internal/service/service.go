package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"elenco/internal/assist"
	"elenco/internal/config"
	"elenco/internal/feed"
	"elenco/internal/media"
	"elenco/internal/models"
	"elenco/internal/store"
)

var (
	ErrNotLoaded       = errors.New("session is still loading")
	ErrPostNotFound    = errors.New("post not found")
	ErrEmptyPost       = errors.New("a post needs content or media")
	ErrEmptyComment    = errors.New("comment text is empty")
	ErrInvalidReaction = errors.New("unknown reaction")
	ErrNoImage         = errors.New("post has no image")
	ErrInvalidLanguage = errors.New("unsupported language")
)

// PostInput is a create or edit request. File is nil when no new media was
// attached.
type PostInput struct {
	Title     string
	Content   string
	MediaType models.MediaType
	File      *media.Upload
}

type FeedService interface {
	Load(ctx context.Context) error
	Loaded() bool
	Snapshot() State
	Posts(tab feed.Tab) []models.Post
	Post(id string) (models.Post, error)
	CreatePost(ctx context.Context, in PostInput) (models.Post, error)
	UpdatePost(ctx context.Context, id string, in PostInput) (models.Post, error)
	DeletePost(ctx context.Context, id string) error
	React(ctx context.Context, id string, reaction models.ReactionType) (models.Post, error)
	AddComment(ctx context.Context, id, text string) (models.Comment, error)
	SaveProfile(ctx context.Context, user models.User, settings models.AppSettings) (State, error)
	SetCover(ctx context.Context, url string) (models.User, error)
	SetCoverFromPost(ctx context.Context, postID string) (models.User, error)
	SetLanguage(ctx context.Context, lang models.Language) error
	ToggleLanguage(ctx context.Context) (models.Language, error)
	PersistError() error
	Ping(ctx context.Context) error
}

type AuthService interface {
	Login(ctx context.Context, password string) (string, time.Time, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	Enabled() bool
}

type MediaService interface {
	Attach(ctx context.Context, file media.Upload) (*models.Media, models.MediaType, error)
	Discard(ctx context.Context, m *models.Media)
	Registry() *media.Registry
	Durable() bool
}

type AssistService interface {
	Available() bool
	Enhance(ctx context.Context, scope, text string, tone assist.Tone, lang models.Language) (string, error)
	Translate(ctx context.Context, scope, text string, target models.Language) (string, error)
	Caption(ctx context.Context, scope string, image []byte, mimeType string, lang models.Language) (string, error)
	CancelScope(scope string) int
}

type Service struct {
	Feed   FeedService
	Auth   AuthService
	Media  MediaService
	Assist AssistService
}

func NewService(st *store.Store, ingestor MediaService, assistClient *assist.Client, cfg *config.Config, log *zap.Logger) (*Service, error) {
	auth, err := NewAuthService(cfg)
	if err != nil {
		return nil, err
	}

	return &Service{
		Feed:   NewSession(st, ingestor, feed.NewEngine(), log),
		Auth:   auth,
		Media:  ingestor,
		Assist: NewAssistService(assistClient, assist.NewTracker()),
	}, nil
}
