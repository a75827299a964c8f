package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a unique-constrained resource already exists.
	ErrConflict = errors.New("already exists")
	// ErrForbidden means the caller lacks ownership of the resource.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries every violation found in a submission so a
// client can fix all of them in one round trip.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// validationErrors accumulates problems and converts to a single
// *ValidationError once collection is done.
type validationErrors []string

func (v *validationErrors) add(problem string) {
	*v = append(*v, problem)
}

func (v validationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Problems: v}
}

// translateDBError maps storage errors onto the domain taxonomy.
func translateDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
