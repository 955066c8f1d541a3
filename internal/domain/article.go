package domain

import (
	"context"
	"time"
)

// Article is a piece of content written by one author. AuthorID, StatusID
// and TagIDs are the stored references; Author, Status and Tags are filled
// in by explicit lookups when the article is loaded for output.
type Article struct {
	ID        int64
	AuthorID  int64
	Title     string
	Body      string
	Image     []byte
	StatusID  int64
	TagIDs    []int64
	CreatedAt time.Time
	UpdatedAt time.Time

	Author *User
	Status *ArticleStatus
	Tags   []Tag
}

// ArticleUpdate is a partial article update. A set TagIDs replaces the
// whole tag set; a set Image with a nil value clears the image.
type ArticleUpdate struct {
	Title    Field[string]
	Body     Field[string]
	StatusID Field[int64]
	Image    Field[[]byte]
	TagIDs   Field[[]int64]
}

// ArticleFilter narrows an article listing. All present criteria must hold.
type ArticleFilter struct {
	StatusID *int64
	// Title is matched as a case-insensitive substring.
	Title  string
	TagIDs []int64
}

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	// Create inserts the article and associates the tags among
	// article.TagIDs that exist. Unknown tag ids are skipped.
	Create(ctx context.Context, article *Article) error
	GetByID(ctx context.Context, id int64) (*Article, error)
	List(ctx context.Context, filter ArticleFilter, page Page) ([]Article, error)
	Update(ctx context.Context, id int64, upd ArticleUpdate) (*Article, error)
	Delete(ctx context.Context, id int64) error
}
