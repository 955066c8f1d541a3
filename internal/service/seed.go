package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/msomdec/newsdesk/internal/domain"
)

var (
	seedGenders  = []string{"Male", "Female"}
	seedStatuses = []string{domain.StatusDraft, domain.StatusPublished}
	seedTags     = []string{"ESP32", "STM32", "Raspberry Pi"}
)

const demoLogin = "ivan"

// SeedOptions controls the optional parts of seeding.
type SeedOptions struct {
	// DemoPassword creates the demo account when non-empty.
	DemoPassword string
}

// Seeder fills empty reference tables with their initial rows.
type Seeder struct {
	genders  domain.GenderRepository
	statuses domain.ArticleStatusRepository
	tags     domain.TagRepository
	users    domain.UserRepository
	hasher   *PasswordHasher
}

// NewSeeder creates a new Seeder.
func NewSeeder(genders domain.GenderRepository, statuses domain.ArticleStatusRepository, tags domain.TagRepository, users domain.UserRepository, hasher *PasswordHasher) *Seeder {
	return &Seeder{genders: genders, statuses: statuses, tags: tags, users: users, hasher: hasher}
}

// Seed inserts reference data into tables that are still empty. Running
// it again is a no-op.
func (s *Seeder) Seed(ctx context.Context, opts SeedOptions) error {
	if err := seedTable(ctx, "genders", s.genders.Count, seedGenders, func(name string) error {
		return s.genders.Create(ctx, &domain.Gender{Name: name})
	}); err != nil {
		return err
	}

	if err := seedTable(ctx, "article_statuses", s.statuses.Count, seedStatuses, func(name string) error {
		return s.statuses.Create(ctx, &domain.ArticleStatus{Name: name})
	}); err != nil {
		return err
	}

	if err := seedTable(ctx, "tags", s.tags.Count, seedTags, func(name string) error {
		return s.tags.Create(ctx, &domain.Tag{Name: name})
	}); err != nil {
		return err
	}

	if opts.DemoPassword != "" {
		return s.seedDemoUser(ctx, opts.DemoPassword)
	}
	return nil
}

func (s *Seeder) seedDemoUser(ctx context.Context, password string) error {
	if _, err := s.users.GetByLogin(ctx, demoLogin); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("look up demo user: %w", err)
	}

	genders, err := s.genders.List(ctx)
	if err != nil {
		return fmt.Errorf("list genders: %w", err)
	}
	if len(genders) == 0 {
		return fmt.Errorf("seed demo user: no genders")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	user := &domain.User{
		FirstName:    "Ivan",
		LastName:     "Ivanov",
		BirthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		GenderID:     genders[0].ID,
		Email:        "ivan@example.com",
		Login:        demoLogin,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}
	slog.Info("seeded demo user", "login", demoLogin)
	return nil
}

func seedTable(ctx context.Context, table string, count func(context.Context) (int, error), names []string, create func(name string) error) error {
	n, err := count(ctx)
	if err != nil {
		return fmt.Errorf("count %s: %w", table, err)
	}
	if n > 0 {
		return nil
	}

	for _, name := range names {
		if err := create(name); err != nil {
			return fmt.Errorf("seed %s %q: %w", table, name, err)
		}
	}
	slog.Info("seeded reference data", "table", table, "rows", len(names))
	return nil
}
