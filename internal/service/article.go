package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/msomdec/newsdesk/internal/domain"
)

const maxTitleLength = 100

// NewArticle is the input for creating an article.
type NewArticle struct {
	Title    string
	Body     string
	Image    []byte
	StatusID int64
	TagIDs   []int64
}

// ArticleService orchestrates article CRUD and loads each article's
// author and tags alongside it.
type ArticleService struct {
	articles domain.ArticleRepository
	users    domain.UserRepository
	tags     domain.TagRepository
	statuses domain.ArticleStatusRepository
}

// NewArticleService creates a new ArticleService.
func NewArticleService(articles domain.ArticleRepository, users domain.UserRepository, tags domain.TagRepository, statuses domain.ArticleStatusRepository) *ArticleService {
	return &ArticleService{articles: articles, users: users, tags: tags, statuses: statuses}
}

// List returns a filtered page of articles, newest first. Unknown tag ids
// in the filter are dropped; when none remain the tag criterion is ignored.
func (s *ArticleService) List(ctx context.Context, filter domain.ArticleFilter, page domain.Page) ([]domain.Article, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	if len(filter.TagIDs) > 0 {
		known, err := s.tags.ExistingIDs(ctx, filter.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve tag filter: %w", err)
		}
		filter.TagIDs = known
	}

	articles, err := s.articles.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	if err := s.hydrate(ctx, articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// ListPublished is List restricted to the Published status.
func (s *ArticleService) ListPublished(ctx context.Context, filter domain.ArticleFilter, page domain.Page) ([]domain.Article, error) {
	published, err := s.statuses.GetByName(ctx, domain.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("resolve published status: %w", err)
	}
	filter.StatusID = &published.ID
	return s.List(ctx, filter, page)
}

func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	one := []domain.Article{*article}
	if err := s.hydrate(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// Create stores a new article written by authorID and returns it fully loaded.
func (s *ArticleService) Create(ctx context.Context, authorID int64, in NewArticle) (*domain.Article, error) {
	if err := checkTitle(in.Title); err != nil {
		return nil, err
	}
	if in.Body == "" {
		return nil, fmt.Errorf("%w: body is required", domain.ErrInvalidInput)
	}
	if err := CheckImage(in.Image); err != nil {
		return nil, err
	}

	article := &domain.Article{
		AuthorID: authorID,
		Title:    in.Title,
		Body:     in.Body,
		Image:    in.Image,
		StatusID: in.StatusID,
		TagIDs:   in.TagIDs,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	return s.Get(ctx, article.ID)
}

// Update applies a partial update. A present tag list replaces the
// article's tags; unknown ids in it are skipped.
func (s *ArticleService) Update(ctx context.Context, id int64, upd domain.ArticleUpdate) (*domain.Article, error) {
	if upd.Title.Set {
		if err := checkTitle(upd.Title.Value); err != nil {
			return nil, err
		}
	}
	if upd.Body.Set && upd.Body.Value == "" {
		return nil, fmt.Errorf("%w: body cannot be empty", domain.ErrInvalidInput)
	}
	if upd.Image.Set {
		if err := CheckImage(upd.Image.Value); err != nil {
			return nil, err
		}
	}

	article, err := s.articles.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	one := []domain.Article{*article}
	if err := s.hydrate(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// hydrate fills Author, Tags and TagIDs with one batched lookup per
// relation, run concurrently.
func (s *ArticleService) hydrate(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	authorIDs := make([]int64, 0, len(articles))
	articleIDs := make([]int64, 0, len(articles))
	for _, a := range articles {
		authorIDs = append(authorIDs, a.AuthorID)
		articleIDs = append(articleIDs, a.ID)
	}

	var authors map[int64]*domain.User
	var tags map[int64][]domain.Tag

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authors, err = s.users.GetByIDs(gctx, authorIDs)
		if err != nil {
			return fmt.Errorf("load authors: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tags, err = s.tags.ListByArticles(gctx, articleIDs)
		if err != nil {
			return fmt.Errorf("load tags: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range articles {
		a := &articles[i]
		a.Author = authors[a.AuthorID]
		a.Tags = tags[a.ID]
		if a.Tags == nil {
			a.Tags = []domain.Tag{}
		}
		a.TagIDs = make([]int64, len(a.Tags))
		for j, t := range a.Tags {
			a.TagIDs[j] = t.ID
		}
	}
	return nil
}

func checkTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", domain.ErrInvalidInput, maxTitleLength)
	}
	return nil
}
