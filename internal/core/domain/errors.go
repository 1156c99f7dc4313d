package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstream marks a failure of one of the external AI collaborators
	// (script generation, speech synthesis, transcription, vision).
	ErrUpstream = errors.New("upstream service error")
	// ErrTemporary marks failures worth retrying, including open circuits.
	ErrTemporary = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
