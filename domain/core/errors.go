package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrDatasetNotFound  = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrVariableNotFound = fmt.Errorf("%w: variable", ErrNotFound)

	// Analysis errors. These are data-shape problems: recoverable, never retried.
	ErrInsufficientCategories  = errors.New("insufficient categories")
	ErrInsufficientSampleSize  = errors.New("insufficient sample size")
	ErrDegenerateInput         = errors.New("degenerate input")
	ErrUnavailableSignificance = errors.New("significance unavailable")
)

// InsufficientCategoriesError reports a variable that has fewer usable
// categories (or groups) than the selected test requires.
type InsufficientCategoriesError struct {
	Variable string
	Found    int
	Required int
}

func (e *InsufficientCategoriesError) Error() string {
	return fmt.Sprintf("%s for %q: found %d, need at least %d", ErrInsufficientCategories, e.Variable, e.Found, e.Required)
}

func (e *InsufficientCategoriesError) Unwrap() error { return ErrInsufficientCategories }

// InsufficientSampleSizeError reports too few paired or grouped observations.
type InsufficientSampleSizeError struct {
	Test     string
	Observed int
	Required int
}

func (e *InsufficientSampleSizeError) Error() string {
	return fmt.Sprintf("%s for %s: got %d observations, need at least %d", ErrInsufficientSampleSize, e.Test, e.Observed, e.Required)
}

func (e *InsufficientSampleSizeError) Unwrap() error { return ErrInsufficientSampleSize }

// DegenerateInputError reports input that would divide by zero or produce NaN.
type DegenerateInputError struct {
	Test   string
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("%s for %s: %s", ErrDegenerateInput, e.Test, e.Reason)
}

func (e *DegenerateInputError) Unwrap() error { return ErrDegenerateInput }

// UnavailableSignificanceError reports a computed statistic that has no p-value.
type UnavailableSignificanceError struct {
	Test   string
	Reason string
}

func (e *UnavailableSignificanceError) Error() string {
	return fmt.Sprintf("%s for %s: %s", ErrUnavailableSignificance, e.Test, e.Reason)
}

func (e *UnavailableSignificanceError) Unwrap() error { return ErrUnavailableSignificance }

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewVariableNotFoundError(name string) error {
	return fmt.Errorf("%w %q", ErrVariableNotFound, name)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAnalysisError reports whether err belongs to the analysis failure taxonomy.
func IsAnalysisError(err error) bool {
	return errors.Is(err, ErrInsufficientCategories) ||
		errors.Is(err, ErrInsufficientSampleSize) ||
		errors.Is(err, ErrDegenerateInput) ||
		errors.Is(err, ErrUnavailableSignificance)
}
