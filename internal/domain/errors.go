package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")

	ErrDuplicateLogin   = fmt.Errorf("%w: login already exists", ErrConflict)
	ErrDuplicateEmail   = fmt.Errorf("%w: email already exists", ErrConflict)
	ErrDuplicateTag     = fmt.Errorf("%w: tag already exists", ErrConflict)
	ErrInvalidReference = fmt.Errorf("%w: referenced record does not exist", ErrInvalidInput)
)
