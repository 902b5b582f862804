package test

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"elenco/internal/assist"
	"elenco/internal/config"
	"elenco/internal/feed"
	handlers "elenco/internal/handler"
	"elenco/internal/media"
	"elenco/internal/models"
	"elenco/internal/service"
)

var testExpiry = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) Load(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockFeedService) Loaded() bool {
	return m.Called().Bool(0)
}

func (m *MockFeedService) Snapshot() service.State {
	return m.Called().Get(0).(service.State)
}

func (m *MockFeedService) Posts(tab feed.Tab) []models.Post {
	return m.Called(tab).Get(0).([]models.Post)
}

func (m *MockFeedService) Post(id string) (models.Post, error) {
	args := m.Called(id)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *MockFeedService) CreatePost(ctx context.Context, in service.PostInput) (models.Post, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *MockFeedService) UpdatePost(ctx context.Context, id string, in service.PostInput) (models.Post, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *MockFeedService) DeletePost(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFeedService) React(ctx context.Context, id string, reaction models.ReactionType) (models.Post, error) {
	args := m.Called(ctx, id, reaction)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *MockFeedService) AddComment(ctx context.Context, id, text string) (models.Comment, error) {
	args := m.Called(ctx, id, text)
	return args.Get(0).(models.Comment), args.Error(1)
}

func (m *MockFeedService) SaveProfile(ctx context.Context, user models.User, settings models.AppSettings) (service.State, error) {
	args := m.Called(ctx, user, settings)
	return args.Get(0).(service.State), args.Error(1)
}

func (m *MockFeedService) SetCover(ctx context.Context, url string) (models.User, error) {
	args := m.Called(ctx, url)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockFeedService) SetCoverFromPost(ctx context.Context, postID string) (models.User, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockFeedService) SetLanguage(ctx context.Context, lang models.Language) error {
	return m.Called(ctx, lang).Error(0)
}

func (m *MockFeedService) ToggleLanguage(ctx context.Context) (models.Language, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Language), args.Error(1)
}

func (m *MockFeedService) PersistError() error {
	return m.Called().Error(0)
}

func (m *MockFeedService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, password string) (string, time.Time, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) Enabled() bool {
	return m.Called().Bool(0)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Attach(ctx context.Context, file media.Upload) (*models.Media, models.MediaType, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Get(1).(models.MediaType), args.Error(2)
	}
	return args.Get(0).(*models.Media), args.Get(1).(models.MediaType), args.Error(2)
}

func (m *MockMediaService) Discard(ctx context.Context, md *models.Media) {
	m.Called(ctx, md)
}

func (m *MockMediaService) Registry() *media.Registry {
	return m.Called().Get(0).(*media.Registry)
}

func (m *MockMediaService) Durable() bool {
	return m.Called().Bool(0)
}

type MockAssistService struct {
	mock.Mock
}

func (m *MockAssistService) Available() bool {
	return m.Called().Bool(0)
}

func (m *MockAssistService) Enhance(ctx context.Context, scope, text string, tone assist.Tone, lang models.Language) (string, error) {
	args := m.Called(ctx, scope, text, tone, lang)
	return args.String(0), args.Error(1)
}

func (m *MockAssistService) Translate(ctx context.Context, scope, text string, target models.Language) (string, error) {
	args := m.Called(ctx, scope, text, target)
	return args.String(0), args.Error(1)
}

func (m *MockAssistService) Caption(ctx context.Context, scope string, image []byte, mimeType string, lang models.Language) (string, error) {
	args := m.Called(ctx, scope, image, mimeType, lang)
	return args.String(0), args.Error(1)
}

func (m *MockAssistService) CancelScope(scope string) int {
	return m.Called(scope).Int(0)
}

type mocks struct {
	feed   *MockFeedService
	auth   *MockAuthService
	media  *MockMediaService
	assist *MockAssistService
}

func (m mocks) assertExpectations(t mock.TestingT) {
	m.feed.AssertExpectations(t)
	m.auth.AssertExpectations(t)
	m.media.AssertExpectations(t)
	m.assist.AssertExpectations(t)
}

func newTestHandlers() (*handlers.Handlers, mocks) {
	m := mocks{
		feed:   new(MockFeedService),
		auth:   new(MockAuthService),
		media:  new(MockMediaService),
		assist: new(MockAssistService),
	}

	h := &handlers.Handlers{
		FeedService:   m.feed,
		AuthService:   m.auth,
		MediaService:  m.media,
		AssistService: m.assist,
		Cfg: &config.Config{
			AppURL:        "https://elenco.example.org/",
			MaxUploadSize: 1024 * 1024,
			MaxEncodeSize: 64,
		},
		Validate: validator.New(),
		Log:      zap.NewNop(),
	}
	return h, m
}

func testState(lang models.Language) service.State {
	return service.State{
		User:     models.User{ID: "admin-user", Name: "Administrador"},
		Language: lang,
	}
}
