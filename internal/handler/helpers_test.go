package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/newsdesk/internal/handler"
	"github.com/msomdec/newsdesk/internal/render"
	"github.com/msomdec/newsdesk/internal/repository/sqlstore"
	"github.com/msomdec/newsdesk/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type testApp struct {
	db   *sqlstore.DB
	auth *service.AuthService
	deps handler.Deps
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlstore.New(sqlstore.SQLite, dbPath, sqlstore.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	users := sqlstore.NewUserRepository(db)
	tags := sqlstore.NewTagRepository(db)
	statuses := sqlstore.NewStatusRepository(db)
	genders := sqlstore.NewGenderRepository(db)
	hasher := service.NewPasswordHasher(4)
	tokens := service.NewTokenIssuer(testJWTSecret, "newsdesk-test")

	seeder := service.NewSeeder(genders, statuses, tags, users, hasher)
	require.NoError(t, seeder.Seed(context.Background(), service.SeedOptions{}))

	auth := service.NewAuthService(users, hasher, tokens, time.Hour)
	return &testApp{
		db:   db,
		auth: auth,
		deps: handler.Deps{
			DB:           db,
			Auth:         auth,
			Users:        service.NewUserService(users),
			Articles:     service.NewArticleService(sqlstore.NewArticleRepository(db), users, tags, statuses),
			References:   service.NewReferenceService(statuses, genders, tags),
			Renderer:     render.NewPDF(""),
			Metrics:      handler.NewMetrics(prometheus.NewRegistry()),
			MaxBodyBytes: 1 << 20,
		},
	}
}

func (a *testApp) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler.NewHandler(a.deps))
	t.Cleanup(srv.Close)
	return srv
}

// do sends body as JSON and returns the response with its body read.
func do(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func registerBody(login string) map[string]any {
	return map[string]any{
		"first_name": "Ivan",
		"last_name":  "Petrov",
		"birth_date": "1990-05-01",
		"gender_id":  1,
		"email":      login + "@example.com",
		"login":      login,
		"password":   "password123",
	}
}

// signUp registers login and returns a bearer token for it.
func signUp(t *testing.T, baseURL, login string) string {
	t.Helper()
	resp, body := do(t, http.MethodPost, baseURL+"/auth/register", "", registerBody(login))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = do(t, http.MethodPost, baseURL+"/auth/login", "", map[string]string{
		"login":    login,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	return decode[map[string]string](t, body)["access_token"]
}
