package handler

import (
	"encoding/json"
	"time"

	"github.com/msomdec/newsdesk/internal/domain"
)

const dateLayout = "2006-01-02"

// optional distinguishes a JSON field that was omitted from one that was
// sent, including an explicit null.
type optional[T any] struct {
	Set   bool
	Value T
}

func (o *optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o optional[T]) field() domain.Field[T] {
	return domain.Field[T]{Set: o.Set, Value: o.Value}
}

func fieldOf[T any](p *T) domain.Field[T] {
	if p == nil {
		return domain.Field[T]{}
	}
	return domain.Set(*p)
}

// Requests.

type registerRequest struct {
	FirstName  string  `json:"first_name" validate:"required,max=50"`
	LastName   string  `json:"last_name" validate:"required,max=50"`
	MiddleName *string `json:"middle_name" validate:"omitempty,max=50"`
	BirthDate  string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
	GenderID   int64   `json:"gender_id" validate:"required,gt=0"`
	Email      string  `json:"email" validate:"required,email,max=100"`
	Login      string  `json:"login" validate:"required,min=3,max=50,login"`
	Password   string  `json:"password" validate:"required,min=8,max=72"`
	Photo      []byte  `json:"photo"`
}

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	FirstName  *string           `json:"first_name" validate:"omitnil,min=1,max=50"`
	LastName   *string           `json:"last_name" validate:"omitnil,min=1,max=50"`
	MiddleName optional[*string] `json:"middle_name" validate:"max=50"`
	BirthDate  *string           `json:"birth_date" validate:"omitnil,datetime=2006-01-02"`
	GenderID   *int64            `json:"gender_id" validate:"omitnil,gt=0"`
	Email      *string           `json:"email" validate:"omitnil,email,max=100"`
	Login      *string           `json:"login" validate:"omitnil,min=3,max=50,login"`
	Photo      optional[[]byte]  `json:"photo"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type createArticleRequest struct {
	Title    string  `json:"title" validate:"required,max=100"`
	Body     string  `json:"body" validate:"required"`
	StatusID int64   `json:"status_id" validate:"required,gt=0"`
	Image    []byte  `json:"image"`
	TagIDs   []int64 `json:"tag_ids" validate:"omitempty,dive,gt=0"`
}

type updateArticleRequest struct {
	Title    *string          `json:"title" validate:"omitnil,min=1,max=100"`
	Body     *string          `json:"body" validate:"omitnil,min=1"`
	StatusID *int64           `json:"status_id" validate:"omitnil,gt=0"`
	Image    optional[[]byte] `json:"image"`
	TagIDs   *[]int64         `json:"tag_ids" validate:"omitnil,dive,gt=0"`
}

type createTagRequest struct {
	Name string `json:"name" validate:"required,max=40"`
}

// Responses.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// userResponse is the outward view of a user. The password hash never
// leaves the server.
type userResponse struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	MiddleName *string `json:"middle_name"`
	BirthDate  string  `json:"birth_date"`
	GenderID   int64   `json:"gender_id"`
	Email      string  `json:"email"`
	Login      string  `json:"login"`
	Photo      []byte  `json:"photo"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		MiddleName: u.MiddleName,
		BirthDate:  u.BirthDate.Format(dateLayout),
		GenderID:   u.GenderID,
		Email:      u.Email,
		Login:      u.Login,
		Photo:      u.Photo,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339),
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	return out
}

type namedResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toTagResponses(tags []domain.Tag) []namedResponse {
	out := make([]namedResponse, len(tags))
	for i, t := range tags {
		out[i] = namedResponse{ID: t.ID, Name: t.Name}
	}
	return out
}

func toStatusResponses(statuses []domain.ArticleStatus) []namedResponse {
	out := make([]namedResponse, len(statuses))
	for i, s := range statuses {
		out[i] = namedResponse{ID: s.ID, Name: s.Name}
	}
	return out
}

func toGenderResponses(genders []domain.Gender) []namedResponse {
	out := make([]namedResponse, len(genders))
	for i, g := range genders {
		out[i] = namedResponse{ID: g.ID, Name: g.Name}
	}
	return out
}

type articleResponse struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	Image     []byte          `json:"image"`
	AuthorID  int64           `json:"author_id"`
	Author    *userResponse   `json:"author"`
	StatusID  int64           `json:"status_id"`
	Status    *namedResponse  `json:"status"`
	Tags      []namedResponse `json:"tags"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

func toArticleResponse(a *domain.Article) articleResponse {
	resp := articleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		Image:     a.Image,
		AuthorID:  a.AuthorID,
		StatusID:  a.StatusID,
		Tags:      toTagResponses(a.Tags),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
	if a.Author != nil {
		author := toUserResponse(a.Author)
		resp.Author = &author
	}
	if a.Status != nil {
		resp.Status = &namedResponse{ID: a.Status.ID, Name: a.Status.Name}
	}
	return resp
}

func toArticleResponses(articles []domain.Article) []articleResponse {
	out := make([]articleResponse, len(articles))
	for i := range articles {
		out[i] = toArticleResponse(&articles[i])
	}
	return out
}
