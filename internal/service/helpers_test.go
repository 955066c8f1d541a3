package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/msomdec/newsdesk/internal/domain"
	"github.com/msomdec/newsdesk/internal/repository/sqlstore"
	"github.com/msomdec/newsdesk/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

// env wires every service over one freshly migrated and seeded database.
type env struct {
	db       *sqlstore.DB
	auth     *service.AuthService
	users    *service.UserService
	articles *service.ArticleService
	refs     *service.ReferenceService
	seeder   *service.Seeder
	hasher   *service.PasswordHasher
	tokens   *service.TokenIssuer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlstore.New(sqlstore.SQLite, dbPath, sqlstore.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	userRepo := sqlstore.NewUserRepository(db)
	tagRepo := sqlstore.NewTagRepository(db)
	statusRepo := sqlstore.NewStatusRepository(db)
	genderRepo := sqlstore.NewGenderRepository(db)

	// Cost 4 keeps the tests fast.
	hasher := service.NewPasswordHasher(4)
	tokens := service.NewTokenIssuer(testJWTSecret, "newsdesk-test")

	e := &env{
		db:       db,
		auth:     service.NewAuthService(userRepo, hasher, tokens, time.Hour),
		users:    service.NewUserService(userRepo),
		articles: service.NewArticleService(sqlstore.NewArticleRepository(db), userRepo, tagRepo, statusRepo),
		refs:     service.NewReferenceService(statusRepo, genderRepo, tagRepo),
		seeder:   service.NewSeeder(genderRepo, statusRepo, tagRepo, userRepo, hasher),
		hasher:   hasher,
		tokens:   tokens,
	}
	require.NoError(t, e.seeder.Seed(context.Background(), service.SeedOptions{}))
	return e
}

func (e *env) statusID(t *testing.T, name string) int64 {
	t.Helper()
	statuses, err := e.refs.ListStatuses(context.Background())
	require.NoError(t, err)
	for _, s := range statuses {
		if s.Name == name {
			return s.ID
		}
	}
	t.Fatalf("status %q not seeded", name)
	return 0
}

func (e *env) tagID(t *testing.T, name string) int64 {
	t.Helper()
	tags, err := e.refs.ListTags(context.Background())
	require.NoError(t, err)
	for _, tag := range tags {
		if tag.Name == name {
			return tag.ID
		}
	}
	t.Fatalf("tag %q not seeded", name)
	return 0
}

func registration(login string) service.Registration {
	return service.Registration{
		FirstName: "Ivan",
		LastName:  "Petrov",
		BirthDate: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		GenderID:  1,
		Email:     login + "@example.com",
		Login:     login,
		Password:  "password123",
	}
}

func (e *env) register(t *testing.T, login string) *domain.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), registration(login))
	require.NoError(t, err)
	return u
}

// pngBytes returns a valid 1x1 PNG.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
