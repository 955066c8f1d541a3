package service

import (
	"context"
	"fmt"

	"github.com/msomdec/newsdesk/internal/domain"
)

// UserService handles reading and editing user profiles.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns a page of users ordered by id.
func (s *UserService) List(ctx context.Context, page domain.Page) ([]domain.User, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies a partial profile update. Present fields must be
// valid; absent fields are left untouched.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	if (upd.FirstName.Set && upd.FirstName.Value == "") ||
		(upd.LastName.Set && upd.LastName.Value == "") ||
		(upd.Email.Set && upd.Email.Value == "") ||
		(upd.Login.Set && upd.Login.Value == "") {
		return nil, fmt.Errorf("%w: name, email and login cannot be empty", domain.ErrInvalidInput)
	}
	if upd.Photo.Set {
		if err := CheckImage(upd.Photo.Value); err != nil {
			return nil, err
		}
	}

	user, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
