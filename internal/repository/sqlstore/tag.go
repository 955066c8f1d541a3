package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/newsdesk/internal/domain"
)

// TagRepository implements domain.TagRepository.
type TagRepository struct {
	db *sql.DB
	d  dialect
}

// NewTagRepository creates a TagRepository bound to db.
func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db.SqlDB, d: db.dialect}
}

func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	return insertNamed(ctx, r.db, r.d, "tags", tag.Name, &tag.ID)
}

func (r *TagRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "tags")
}

func (r *TagRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := int64Args(ids)
	if len(args) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, r.d.rebind(
		`SELECT id FROM tags WHERE id IN (`+placeholders(len(args))+`) ORDER BY id`), args...)
	if err != nil {
		return nil, fmt.Errorf("query tag ids: %w", err)
	}
	defer rows.Close()

	var existing []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tag id: %w", err)
		}
		existing = append(existing, id)
	}
	return existing, rows.Err()
}

func (r *TagRepository) ListByArticles(ctx context.Context, articleIDs []int64) (map[int64][]domain.Tag, error) {
	byArticle := make(map[int64][]domain.Tag, len(articleIDs))
	args := int64Args(articleIDs)
	if len(args) == 0 {
		return byArticle, nil
	}

	rows, err := r.db.QueryContext(ctx, r.d.rebind(
		`SELECT atg.article_id, t.id, t.name
		 FROM article_tags atg JOIN tags t ON t.id = atg.tag_id
		 WHERE atg.article_id IN (`+placeholders(len(args))+`)
		 ORDER BY t.name, t.id`), args...)
	if err != nil {
		return nil, fmt.Errorf("query article tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID int64
		var t domain.Tag
		if err := rows.Scan(&articleID, &t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan article tag: %w", err)
		}
		byArticle[articleID] = append(byArticle[articleID], t)
	}
	return byArticle, rows.Err()
}
