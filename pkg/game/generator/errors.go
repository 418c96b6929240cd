package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariant marks a state an earlier step guaranteed could not
	// happen. It points at a generator bug or an inconsistent Constraints
	// implementation and is never retried.
	ErrInvariant = errors.New("dungeon generator invariant violated")

	// ErrGenerationFailed is wrapped by GenerationError
	ErrGenerationFailed = errors.New("dungeon generator failed")

	// ErrInvalidConstraints is returned before the first attempt when the
	// constraints ask for something impossible
	ErrInvalidConstraints = errors.New("invalid dungeon constraints")

	// errRetry ends the current attempt; only Generate consumes it
	errRetry = errors.New("retry dungeon generation")
)

// GenerationError reports that every attempt was rejected
type GenerationError struct {
	Attempts int
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%v after %d attempts", ErrGenerationFailed, e.Attempts)
}

func (e *GenerationError) Unwrap() error {
	return ErrGenerationFailed
}

// invariantf builds an ErrInvariant error for the named phase
func invariantf(phase, format string, a ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvariant, phase, fmt.Sprintf(format, a...))
}

// invariantErr wraps an underlying error as an invariant violation,
// keeping both in the chain.
func invariantErr(phase string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvariant, phase, err)
}
