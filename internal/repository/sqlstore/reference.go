package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/newsdesk/internal/domain"
)

// StatusRepository implements domain.ArticleStatusRepository.
type StatusRepository struct {
	db *sql.DB
	d  dialect
}

// NewStatusRepository creates a StatusRepository bound to db.
func NewStatusRepository(db *DB) *StatusRepository {
	return &StatusRepository{db: db.SqlDB, d: db.dialect}
}

func (r *StatusRepository) List(ctx context.Context) ([]domain.ArticleStatus, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM article_statuses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	statuses := []domain.ArticleStatus{}
	for rows.Next() {
		var s domain.ArticleStatus
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

func (r *StatusRepository) GetByName(ctx context.Context, name string) (*domain.ArticleStatus, error) {
	s := &domain.ArticleStatus{}
	err := r.db.QueryRowContext(ctx, r.d.rebind(
		`SELECT id, name FROM article_statuses WHERE name = ?`), name).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query status by name: %w", err)
	}
	return s, nil
}

func (r *StatusRepository) Create(ctx context.Context, status *domain.ArticleStatus) error {
	return insertNamed(ctx, r.db, r.d, "article_statuses", status.Name, &status.ID)
}

func (r *StatusRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "article_statuses")
}

// GenderRepository implements domain.GenderRepository.
type GenderRepository struct {
	db *sql.DB
	d  dialect
}

// NewGenderRepository creates a GenderRepository bound to db.
func NewGenderRepository(db *DB) *GenderRepository {
	return &GenderRepository{db: db.SqlDB, d: db.dialect}
}

func (r *GenderRepository) List(ctx context.Context) ([]domain.Gender, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM genders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list genders: %w", err)
	}
	defer rows.Close()

	genders := []domain.Gender{}
	for rows.Next() {
		var g domain.Gender
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan gender: %w", err)
		}
		genders = append(genders, g)
	}
	return genders, rows.Err()
}

func (r *GenderRepository) Create(ctx context.Context, gender *domain.Gender) error {
	return insertNamed(ctx, r.db, r.d, "genders", gender.Name, &gender.ID)
}

func (r *GenderRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "genders")
}

// insertNamed inserts a single-column reference row and stores its id.
func insertNamed(ctx context.Context, db *sql.DB, d dialect, table, name string, id *int64) error {
	err := db.QueryRowContext(ctx, d.rebind(
		`INSERT INTO `+table+` (name) VALUES (?) RETURNING id`), name).Scan(id)
	if err != nil {
		if derr := d.translate(err); derr != nil {
			return derr
		}
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}
