package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/newsdesk/internal/domain"
)

const articleSelect = `SELECT a.id, a.author_id, a.title, a.body, a.image, a.status_id, s.name,
	a.created_at, a.updated_at
	FROM articles a JOIN article_statuses s ON s.id = a.status_id`

// ArticleRepository implements domain.ArticleRepository. Each loaded
// article carries its status; author and tags are left to the caller.
type ArticleRepository struct {
	db *sql.DB
	d  dialect
}

// NewArticleRepository creates an ArticleRepository bound to db.
func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{db: db.SqlDB, d: db.dialect}
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	ts := now()
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, r.d.rebind(
			`INSERT INTO articles (author_id, title, body, image, status_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
			article.AuthorID, article.Title, article.Body, nullBytes(article.Image),
			article.StatusID, ts, ts,
		).Scan(&article.ID)
		if err != nil {
			if derr := r.d.translate(err); derr != nil {
				return derr
			}
			return fmt.Errorf("insert article: %w", err)
		}
		return r.attachTags(ctx, tx, article.ID, article.TagIDs)
	})
	if err != nil {
		article.ID = 0
		return err
	}

	article.CreatedAt = ts
	article.UpdatedAt = ts
	return nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	a, err := scanArticle(r.db.QueryRowContext(ctx, r.d.rebind(articleSelect+` WHERE a.id = ?`), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query article: %w", err)
	}
	return a, nil
}

// List returns the page of matching articles, newest first. Ties on
// creation time fall back to id so pages never overlap.
func (r *ArticleRepository) List(ctx context.Context, filter domain.ArticleFilter, page domain.Page) ([]domain.Article, error) {
	var where []string
	var args []any

	if filter.StatusID != nil {
		where = append(where, "a.status_id = ?")
		args = append(args, *filter.StatusID)
	}
	if filter.Title != "" {
		where = append(where, r.d.fold+`(a.title) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(r.d.foldNeedle(filter.Title))+"%")
	}
	if tagArgs := int64Args(filter.TagIDs); len(tagArgs) > 0 {
		where = append(where, `EXISTS (SELECT 1 FROM article_tags atg
			WHERE atg.article_id = a.id AND atg.tag_id IN (`+placeholders(len(tagArgs))+`))`)
		args = append(args, tagArgs...)
	}

	query := articleSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.created_at DESC, a.id DESC LIMIT ? OFFSET ?"
	args = append(args, page.Limit, page.Skip)

	rows, err := r.db.QueryContext(ctx, r.d.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// Update applies the set fields of upd in one transaction. A set TagIDs
// replaces the article's tag associations entirely.
func (r *ArticleRepository) Update(ctx context.Context, id int64, upd domain.ArticleUpdate) (*domain.Article, error) {
	var sets []string
	var args []any
	set := func(column string, v any) {
		sets = append(sets, column+" = ?")
		args = append(args, v)
	}

	if upd.Title.Set {
		set("title", upd.Title.Value)
	}
	if upd.Body.Set {
		set("body", upd.Body.Value)
	}
	if upd.StatusID.Set {
		set("status_id", upd.StatusID.Value)
	}
	if upd.Image.Set {
		set("image", nullBytes(upd.Image.Value))
	}
	set("updated_at", now())
	args = append(args, id)

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, r.d.rebind(
			`UPDATE articles SET `+strings.Join(sets, ", ")+` WHERE id = ?`), args...)
		if err != nil {
			if derr := r.d.translate(err); derr != nil {
				return derr
			}
			return fmt.Errorf("update article: %w", err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return domain.ErrNotFound
		}

		if !upd.TagIDs.Set {
			return nil
		}
		if _, err := tx.ExecContext(ctx, r.d.rebind(
			`DELETE FROM article_tags WHERE article_id = ?`), id); err != nil {
			return fmt.Errorf("clear article tags: %w", err)
		}
		return r.attachTags(ctx, tx, id, upd.TagIDs.Value)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.d.rebind(`DELETE FROM articles WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// attachTags links the article to those of tagIDs that exist.
func (r *ArticleRepository) attachTags(ctx context.Context, tx *sql.Tx, articleID int64, tagIDs []int64) error {
	tagArgs := int64Args(tagIDs)
	if len(tagArgs) == 0 {
		return nil
	}

	args := append([]any{articleID}, tagArgs...)
	_, err := tx.ExecContext(ctx, r.d.rebind(
		`INSERT INTO article_tags (article_id, tag_id)
		 SELECT CAST(? AS BIGINT), id FROM tags WHERE id IN (`+placeholders(len(tagArgs))+`)`), args...)
	if err != nil {
		return fmt.Errorf("insert article tags: %w", err)
	}
	return nil
}

func scanArticle(s scanner) (*domain.Article, error) {
	var a domain.Article
	var status domain.ArticleStatus
	var image []byte
	if err := s.Scan(&a.ID, &a.AuthorID, &a.Title, &a.Body, &image, &a.StatusID, &status.Name,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if len(image) > 0 {
		a.Image = image
	}
	status.ID = a.StatusID
	a.Status = &status
	return &a, nil
}
