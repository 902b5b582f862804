package test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"elenco/internal/assist"
	handlers "elenco/internal/handler"
	"elenco/internal/models"
)

func TestEnhance(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockFeedService, *MockAssistService)
		expectedStatus int
		expectedText   string
	}{
		{
			name: "explicit language",
			body: `{"scope":"editor-1","text":"hola","tone":"fun","lang":"en"}`,
			mockSetup: func(_ *MockFeedService, a *MockAssistService) {
				a.On("Enhance", mock.Anything, "editor-1", "hola", assist.ToneFun, models.LanguageEN).Return("¡Hola! 🎉", nil)
			},
			expectedStatus: http.StatusOK,
			expectedText:   "¡Hola! 🎉",
		},
		{
			name: "session language when none is given",
			body: `{"scope":"editor-1","text":"hola","tone":"concise"}`,
			mockSetup: func(f *MockFeedService, a *MockAssistService) {
				f.On("Snapshot").Return(testState(models.LanguageES))
				a.On("Enhance", mock.Anything, "editor-1", "hola", assist.ToneConcise, models.LanguageES).Return("Hola.", nil)
			},
			expectedStatus: http.StatusOK,
			expectedText:   "Hola.",
		},
		{
			name:           "unknown tone",
			body:           `{"scope":"editor-1","text":"hola","tone":"angry"}`,
			mockSetup:      func(*MockFeedService, *MockAssistService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing scope",
			body:           `{"text":"hola","tone":"fun"}`,
			mockSetup:      func(*MockFeedService, *MockAssistService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "no credential",
			body: `{"scope":"editor-1","text":"hola","tone":"fun","lang":"es"}`,
			mockSetup: func(_ *MockFeedService, a *MockAssistService) {
				a.On("Enhance", mock.Anything, "editor-1", "hola", assist.ToneFun, models.LanguageES).Return("", assist.ErrUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "editor closed before the answer arrived",
			body: `{"scope":"editor-1","text":"hola","tone":"fun","lang":"es"}`,
			mockSetup: func(_ *MockFeedService, a *MockAssistService) {
				a.On("Enhance", mock.Anything, "editor-1", "hola", assist.ToneFun, models.LanguageES).Return("", assist.ErrCancelled)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "upstream failure",
			body: `{"scope":"editor-1","text":"hola","tone":"fun","lang":"es"}`,
			mockSetup: func(_ *MockFeedService, a *MockAssistService) {
				a.On("Enhance", mock.Anything, "editor-1", "hola", assist.ToneFun, models.LanguageES).Return("", errors.New("quota exceeded"))
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandlers()
			tt.mockSetup(m.feed, m.assist)

			rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/assist/enhance", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp handlers.AssistResponse
				decode(t, rr, &resp)
				assert.Equal(t, tt.expectedText, resp.Text)
			}
			m.assertExpectations(t)
		})
	}
}

func TestTranslate(t *testing.T) {
	h, m := newTestHandlers()
	m.assist.On("Translate", mock.Anything, "editor-2", "Hola a todos", models.LanguageEN).Return("Hello everyone", nil)

	rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/assist/translate",
		strings.NewReader(`{"scope":"editor-2","text":"Hola a todos","target":"en"}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	var resp handlers.AssistResponse
	decode(t, rr, &resp)
	assert.Equal(t, "Hello everyone", resp.Text)

	rr = serve(h, httptest.NewRequest(http.MethodPost, "/api/assist/translate",
		strings.NewReader(`{"scope":"editor-2","text":"Hola","target":"pt"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	m.assertExpectations(t)
}

func TestCaption(t *testing.T) {
	t.Run("image", func(t *testing.T) {
		h, m := newTestHandlers()
		m.assist.On("Caption", mock.Anything, "editor-3", pngHeader, "image/png", models.LanguageEN).
			Return("The cast on stage", nil)

		req := multipartRequest(t, http.MethodPost, "/api/assist/caption",
			map[string]string{"scope": "editor-3", "lang": "en"},
			&formFile{name: "foto.png", mimeType: "image/png", data: pngHeader})
		rr := serve(h, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp handlers.AssistResponse
		decode(t, rr, &resp)
		assert.Equal(t, "The cast on stage", resp.Text)
		m.assertExpectations(t)
	})

	t.Run("not an image", func(t *testing.T) {
		h, m := newTestHandlers()

		req := multipartRequest(t, http.MethodPost, "/api/assist/caption",
			map[string]string{"scope": "editor-3", "lang": "en"},
			&formFile{name: "notes.txt", mimeType: "text/plain", data: []byte("hola")})
		rr := serve(h, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		m.assertExpectations(t)
	})

	t.Run("missing scope", func(t *testing.T) {
		h, m := newTestHandlers()

		req := multipartRequest(t, http.MethodPost, "/api/assist/caption", nil,
			&formFile{name: "foto.png", mimeType: "image/png", data: pngHeader})
		rr := serve(h, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		m.assertExpectations(t)
	})
}

func TestCancelScope(t *testing.T) {
	h, m := newTestHandlers()
	m.assist.On("CancelScope", "editor-1").Return(2)

	rr := serve(h, httptest.NewRequest(http.MethodDelete, "/api/assist/scopes/editor-1", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp handlers.CancelResponse
	decode(t, rr, &resp)
	assert.Equal(t, 2, resp.Cancelled)
	m.assertExpectations(t)
}
