package identity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable marks a strategy that cannot run: missing credentials,
	// missing tool, or a deliberately skipped lookup.
	ErrUnavailable = errors.New("strategy unavailable")

	// ErrTransient marks connection-level failures and 503 responses that
	// are retried before being reported.
	ErrTransient = errors.New("transient failure")

	// ErrPermanent marks any other HTTP error status. Never retried.
	ErrPermanent = errors.New("permanent service error")

	// ErrLowConfidence marks an expected "insufficient evidence" outcome:
	// generic title, track-count mismatch, duration divergence, or a
	// below-threshold fingerprint score.
	ErrLowConfidence = errors.New("low confidence")

	// ErrParse marks a malformed or unexpected response shape.
	ErrParse = errors.New("parse error")

	// ErrExhausted is returned once a rate-limited client has used up its
	// retry budget against a transient failure.
	ErrExhausted = errors.New("retries exhausted")
)

// Wrap tags an error with one of the sentinel outcomes above while adding
// component and operation context. The marker defaults to ErrTransient.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Retryable reports whether err represents a transient failure worth another
// attempt. Exhausted retries are no longer transient.
func Retryable(err error) bool {
	if errors.Is(err, ErrExhausted) {
		return false
	}
	return errors.Is(err, ErrTransient)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "identification failure"
	}
	return strings.Join(parts, ": ")
}
