package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/newsdesk/internal/handler"
	"github.com/msomdec/newsdesk/internal/service"
)

func registerUser(t *testing.T, auth *service.AuthService, login string) string {
	t.Helper()
	ctx := context.Background()
	_, err := auth.Register(ctx, service.Registration{
		FirstName: "Valid",
		LastName:  "User",
		BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		GenderID:  1,
		Email:     login + "@example.com",
		Login:     login,
		Password:  "password123",
	})
	require.NoError(t, err)
	token, err := auth.Login(ctx, login, "password123")
	require.NoError(t, err)
	return token
}

func TestRequireAuth_ValidJWT(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app.auth, "valid")

	var gotLogin string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := handler.UserFromContext(r.Context()); user != nil {
			gotLogin = user.Login
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.RequireAuth(app.auth, inner).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "valid", gotLogin)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	app := newTestApp(t)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler.RequireAuth(app.auth, inner).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	}
}

func TestRequireAuth_TamperedToken(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app.auth, "tamper")

	// Flip a character in the signature segment.
	last := token[len(token)-2]
	swap := byte('A')
	if last == 'A' {
		swap = 'B'
	}
	tampered := token[:len(token)-2] + string(swap) + token[len(token)-1:]

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tampered)
	w := httptest.NewRecorder()
	handler.RequireAuth(app.auth, inner).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ForeignKey(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app.auth, "foreign")

	other := service.NewTokenIssuer(strings.Repeat("x", 40), "newsdesk-test")
	token, err := other.Issue(1, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.RequireAuth(app.auth, http.NotFoundHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.SecurityHeaders(http.NotFoundHandler()).ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestRequestLogger_RequestID(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handler.RequestIDFromContext(r.Context())
	})

	t.Run("keeps a valid incoming id", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", id)
		w := httptest.NewRecorder()
		handler.RequestLogger(inner).ServeHTTP(w, req)

		assert.Equal(t, id, w.Header().Get("X-Request-ID"))
		assert.Equal(t, id, seen)
	})

	t.Run("replaces a malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "not-a-uuid\r\n")
		w := httptest.NewRecorder()
		handler.RequestLogger(inner).ServeHTTP(w, req)

		got := w.Header().Get("X-Request-ID")
		_, err := uuid.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, got, seen)
	})
}

func TestRateLimit(t *testing.T) {
	limiter := service.NewRateLimiter(0.001, 2)
	h := handler.RateLimit(limiter, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes[i] = w.Code
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "60", w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	// Another client has its own budget.
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "198.51.100.1:5555"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
