package simplelicense

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrInvalidContainer indicates the bytes are not a valid instance of the declared format
	ErrInvalidContainer = errors.New("invalid container")

	// ErrUnsupportedFormat indicates an embedder has no handler for the format or codec
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidFileName indicates a file input without a usable name
	ErrInvalidFileName = errors.New("invalid file name")

	// ErrNoEmbedder indicates a strategy without a registered embedder
	ErrNoEmbedder = errors.New("no embedder registered")

	// ErrSinkNotFound indicates a delivery sink lookup failed
	ErrSinkNotFound = errors.New("sink not found")
)

// EmbedError represents a failed metadata embedding.
// The packager recovers from it by shipping the original bytes.
type EmbedError struct {
	Strategy EmbedStrategy
	MimeType string
	Op       string
	Err      error
}

func (e *EmbedError) Error() string {
	return fmt.Sprintf("embed operation %s failed for %s (%s): %v", e.Op, e.MimeType, e.Strategy, e.Err)
}

func (e *EmbedError) Unwrap() error {
	return e.Err
}

// PackagingError represents a failure that leaves no usable archive
type PackagingError struct {
	FileName string
	Op       string
	Err      error
}

func (e *PackagingError) Error() string {
	return fmt.Sprintf("packaging operation %s failed for file %q: %v", e.Op, e.FileName, e.Err)
}

func (e *PackagingError) Unwrap() error {
	return e.Err
}

// NewEmbedError is a helper for embedders wrapping format failures.
func NewEmbedError(strategy EmbedStrategy, mimeType, op string, err error) *EmbedError {
	return &EmbedError{Strategy: strategy, MimeType: mimeType, Op: op, Err: err}
}
