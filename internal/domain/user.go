package domain

import (
	"context"
	"time"
)

// User represents a registered author.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	MiddleName   *string
	BirthDate    time.Time
	GenderID     int64
	Email        string
	Login        string
	PasswordHash string
	Photo        []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins the name parts that are present.
func (u *User) FullName() string {
	name := u.FirstName
	if u.MiddleName != nil && *u.MiddleName != "" {
		name += " " + *u.MiddleName
	}
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}

// UserUpdate is a partial profile update. The password is changed through
// a dedicated operation and is deliberately absent here.
type UserUpdate struct {
	FirstName  Field[string]
	LastName   Field[string]
	MiddleName Field[*string]
	BirthDate  Field[time.Time]
	GenderID   Field[int64]
	Email      Field[string]
	Login      Field[string]
	Photo      Field[[]byte]
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	// GetByLogin matches the login case-insensitively.
	GetByLogin(ctx context.Context, login string) (*User, error)
	// GetByIDs returns the users that exist among ids, keyed by id.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*User, error)
	List(ctx context.Context, page Page) ([]User, error)
	Update(ctx context.Context, id int64, upd UserUpdate) (*User, error)
	SetPasswordHash(ctx context.Context, id int64, hash string) error
	Count(ctx context.Context) (int, error)
}
