package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/newsdesk/internal/domain"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
)

// Registration is the input for creating an account.
type Registration struct {
	FirstName  string
	LastName   string
	MiddleName *string
	BirthDate  time.Time
	GenderID   int64
	Email      string
	Login      string
	Password   string
	Photo      []byte
}

// AuthService handles registration, login and session token operations.
type AuthService struct {
	users    domain.UserRepository
	hasher   *PasswordHasher
	tokens   *TokenIssuer
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, hasher *PasswordHasher, tokens *TokenIssuer, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// Register creates a new user account after validating inputs.
func (s *AuthService) Register(ctx context.Context, reg Registration) (*domain.User, error) {
	if reg.Login == "" || reg.Email == "" || reg.FirstName == "" || reg.LastName == "" {
		return nil, fmt.Errorf("%w: login, email, first and last name are required", domain.ErrInvalidInput)
	}
	if err := checkPassword(reg.Password); err != nil {
		return nil, err
	}
	if err := CheckImage(reg.Photo); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		MiddleName:   reg.MiddleName,
		BirthDate:    reg.BirthDate,
		GenderID:     reg.GenderID,
		Email:        reg.Email,
		Login:        reg.Login,
		PasswordHash: hash,
		Photo:        reg.Photo,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrUnauthorized
	}

	token, err := s.tokens.Issue(user.ID, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// Authenticate resolves a session token to its user. Tokens for users
// that no longer exist are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return fmt.Errorf("%w: incorrect password", domain.ErrInvalidInput)
	}
	if err := checkPassword(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.SetPasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	return nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordLength)
	}
	return nil
}
