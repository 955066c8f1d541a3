package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/newsdesk/internal/domain"
)

const maxTagLength = 40

// ReferenceService exposes the lookup tables articles and users point at.
type ReferenceService struct {
	statuses domain.ArticleStatusRepository
	genders  domain.GenderRepository
	tags     domain.TagRepository
}

// NewReferenceService creates a new ReferenceService.
func NewReferenceService(statuses domain.ArticleStatusRepository, genders domain.GenderRepository, tags domain.TagRepository) *ReferenceService {
	return &ReferenceService{statuses: statuses, genders: genders, tags: tags}
}

func (s *ReferenceService) ListStatuses(ctx context.Context) ([]domain.ArticleStatus, error) {
	return s.statuses.List(ctx)
}

func (s *ReferenceService) ListGenders(ctx context.Context) ([]domain.Gender, error) {
	return s.genders.List(ctx)
}

func (s *ReferenceService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

// CreateTag adds a tag. Names are trimmed and unique regardless of case.
func (s *ReferenceService) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: tag name is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > maxTagLength {
		return nil, fmt.Errorf("%w: tag name must be at most %d characters", domain.ErrInvalidInput, maxTagLength)
	}

	tag := &domain.Tag{Name: name}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}
