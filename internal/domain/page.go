package domain

import "fmt"

const (
	MaxPageLimit = 100
)

// Page selects a window of a deterministically ordered result set.
type Page struct {
	Skip  int
	Limit int
}

// Validate checks the bounds every paginated query relies on.
func (p Page) Validate() error {
	if p.Skip < 0 {
		return fmt.Errorf("%w: skip must be zero or greater", ErrInvalidInput)
	}
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxPageLimit)
	}
	return nil
}
