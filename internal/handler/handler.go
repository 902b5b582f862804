package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"elenco/internal/config"
	"elenco/internal/i18n"
	"elenco/internal/models"
	"elenco/internal/service"
)

type Handlers struct {
	FeedService   service.FeedService
	AuthService   service.AuthService
	MediaService  service.MediaService
	AssistService service.AssistService
	Cfg           *config.Config
	Validate      *validator.Validate
	Log           *zap.Logger
}

func NewHandlers(services *service.Service, cfg *config.Config, log *zap.Logger) *Handlers {
	return &Handlers{
		FeedService:   services.Feed,
		AuthService:   services.Auth,
		MediaService:  services.Media,
		AssistService: services.Assist,
		Cfg:           cfg,
		Validate:      validator.New(),
		Log:           log,
	}
}

// NewRouter registers every route. Authentication is applied around the
// router by the caller.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/state", h.GetState).Methods(http.MethodGet)

	r.HandleFunc("/api/posts", h.GetPosts).Methods(http.MethodGet)
	r.HandleFunc("/api/posts", h.CreatePost).Methods(http.MethodPost)
	r.HandleFunc("/api/posts/{id}", h.GetPost).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{id}", h.UpdatePost).Methods(http.MethodPut)
	r.HandleFunc("/api/posts/{id}", h.DeletePost).Methods(http.MethodDelete)
	r.HandleFunc("/api/posts/{id}/reactions", h.React).Methods(http.MethodPost)
	r.HandleFunc("/api/posts/{id}/comments", h.AddComment).Methods(http.MethodPost)
	r.HandleFunc("/api/posts/{id}/cover", h.SetCoverFromPost).Methods(http.MethodPost)
	r.HandleFunc("/api/posts/{id}/share", h.SharePost).Methods(http.MethodGet)
	r.HandleFunc("/api/share", h.ShareApp).Methods(http.MethodGet)

	r.HandleFunc("/api/profile", h.SaveProfile).Methods(http.MethodPut)
	r.HandleFunc("/api/profile/cover", h.SetCover).Methods(http.MethodPut)
	r.HandleFunc("/api/profile/images", h.EncodeProfileImage).Methods(http.MethodPost)
	r.HandleFunc("/api/language", h.SetLanguage).Methods(http.MethodPut)
	r.HandleFunc("/api/language/toggle", h.ToggleLanguage).Methods(http.MethodPost)

	r.HandleFunc("/api/assist/enhance", h.Enhance).Methods(http.MethodPost)
	r.HandleFunc("/api/assist/translate", h.Translate).Methods(http.MethodPost)
	r.HandleFunc("/api/assist/caption", h.Caption).Methods(http.MethodPost)
	r.HandleFunc("/api/assist/scopes/{scope}", h.CancelScope).Methods(http.MethodDelete)

	r.HandleFunc("/media/ephemeral/{handle}", h.ServeEphemeral).Methods(http.MethodGet, http.MethodHead)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}

// requestLanguage picks ?lang=, then Accept-Language, then the session
// language.
func (h *Handlers) requestLanguage(r *http.Request) models.Language {
	if lang := models.Language(strings.ToLower(r.URL.Query().Get("lang"))); lang.Valid() {
		return lang
	}
	return i18n.Negotiate(r.Header.Get("Accept-Language"), h.FeedService.Snapshot().Language)
}

// presentPost rewrites ephemeral references to the URL they are served at.
func presentPost(p models.Post) models.Post {
	if handle, ok := p.Media.EphemeralHandle(); ok {
		m := *p.Media
		m.URL = "/media/ephemeral/" + handle
		p.Media = &m
	}
	return p
}

func presentPosts(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	for i, p := range posts {
		out[i] = presentPost(p)
	}
	return out
}

func presentUser(u models.User) models.User {
	u.CoverPhoto = presentURL(u.CoverPhoto)
	u.Avatar = presentURL(u.Avatar)
	return u
}

func presentURL(url string) string {
	m := &models.Media{Kind: models.ClassifyMediaURL(url), URL: url}
	if handle, ok := m.EphemeralHandle(); ok {
		return "/media/ephemeral/" + handle
	}
	return url
}
