package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

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

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		header         string
		mockSetup      func(m *MockAuthService)
		expectedStatus int
	}{
		{name: "Reads are public", method: http.MethodGet, path: "/api/posts", expectedStatus: http.StatusNoContent},
		{name: "Login is public", method: http.MethodPost, path: "/api/auth/login", expectedStatus: http.StatusNoContent},
		{name: "Missing token", method: http.MethodPost, path: "/api/posts", expectedStatus: http.StatusUnauthorized},
		{name: "Malformed header", method: http.MethodDelete, path: "/api/posts/1", header: "Token abc", expectedStatus: http.StatusUnauthorized},
		{
			name: "Rejected token", method: http.MethodPut, path: "/api/profile", header: "Bearer bad",
			mockSetup: func(m *MockAuthService) {
				m.On("ValidateToken", "bad").Return(nil, errors.New("expired"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Valid token", method: http.MethodPost, path: "/api/posts", header: "Bearer good",
			mockSetup: func(m *MockAuthService) {
				m.On("ValidateToken", "good").Return(&jwt.Token{Valid: true}, nil)
			},
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(MockAuthService)
			if tt.mockSetup != nil {
				tt.mockSetup(auth)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			AuthMiddleware(auth)(ok).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			auth.AssertExpectations(t)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	rr := httptest.NewRecorder()
	CORSMiddleware(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/api/posts", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := Chain(ok, LoggingMiddleware(zap.New(core)))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "/api/state", fields["path"])
		assert.EqualValues(t, http.StatusNoContent, fields["status"])
	}
}
