package domain

import "context"

const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
)

// ArticleStatus is a publication state an article can be in.
type ArticleStatus struct {
	ID   int64
	Name string
}

// Gender is referenced by a user profile.
type Gender struct {
	ID   int64
	Name string
}

// Tag is a label shared between articles.
type Tag struct {
	ID   int64
	Name string
}

type ArticleStatusRepository interface {
	List(ctx context.Context) ([]ArticleStatus, error)
	GetByName(ctx context.Context, name string) (*ArticleStatus, error)
	Create(ctx context.Context, status *ArticleStatus) error
	Count(ctx context.Context) (int, error)
}

type GenderRepository interface {
	List(ctx context.Context) ([]Gender, error)
	Create(ctx context.Context, gender *Gender) error
	Count(ctx context.Context) (int, error)
}

type TagRepository interface {
	List(ctx context.Context) ([]Tag, error)
	Create(ctx context.Context, tag *Tag) error
	Count(ctx context.Context) (int, error)
	// ExistingIDs returns the subset of ids that name stored tags.
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
	// ListByArticles returns the tags of each given article, keyed by article id.
	ListByArticles(ctx context.Context, articleIDs []int64) (map[int64][]Tag, error)
}
