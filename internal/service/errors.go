package service

import (
	"errors"
	"fmt"
)

// ErrInvalid marks request validation failures. Handlers map anything
// wrapping it to a 400 response.
var ErrInvalid = errors.New("invalid request")

// ErrVerificationFailed is returned when a client-computed invoice total
// disagrees with the server's figures.
var ErrVerificationFailed = fmt.Errorf("%w: verification failed", ErrInvalid)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}
