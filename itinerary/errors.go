/*
errors.go - Centralized error types for the itinerary engine

PURPOSE:
  All sentinel errors in one place. The propagation policy is asymmetric
  and deliberate: failures in the secondary cache are always absorbed
  locally (logged, degraded to authoritative-only), while failures in the
  authoritative store always propagate to the caller.

ERROR CATEGORIES:
  1. Deferred-work signals  - anchor dates or template missing; not fatal
  2. Cache errors           - absorbed, never block a read or write
  3. Authoritative errors   - fatal for the triggering operation

USAGE:
  if errors.Is(err, itinerary.ErrMissingAnchorDates) {
      // expansion deferred until dates are entered; render empty schedule
  }
*/
package itinerary

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingAnchorDates is returned when neither the roster nor the
	// booking record carries usable dates. Expansion is deferred, not
	// failed: the caller renders an empty schedule.
	ErrMissingAnchorDates = errors.New("no usable anchor dates")

	// ErrTemplateNotFound is returned when a tour type has no master
	// template for the requested kind. Callers fall back to an
	// empty-row generation path.
	ErrTemplateNotFound = errors.New("master template not found")

	// ErrCacheUnavailable is returned by the override cache when it
	// cannot be reached. Always absorbed: the engine logs and continues
	// on authoritative data alone.
	ErrCacheUnavailable = errors.New("override cache unavailable")

	// ErrAuthoritativeWriteFailed wraps any write failure against the
	// authoritative store. The whole operation fails and is surfaced;
	// a successful cache write is never treated as sufficient.
	ErrAuthoritativeWriteFailed = errors.New("authoritative write failed")

	// ErrBookingNotFound is returned when the referenced booking does
	// not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrRowNotFound is returned when the referenced schedule row does
	// not exist under the given booking.
	ErrRowNotFound = errors.New("schedule row not found")

	// ErrInvalidKind is returned when a caller passes a row kind other
	// than transport or hotel.
	ErrInvalidKind = errors.New("invalid row kind")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// WriteError carries the operation and booking that hit an authoritative
// write failure. Unwraps to ErrAuthoritativeWriteFailed.
type WriteError struct {
	Op        string
	BookingID string
	Err       error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: booking %s: %v", e.Op, e.BookingID, e.Err)
}

func (e *WriteError) Unwrap() error { return ErrAuthoritativeWriteFailed }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrRowNotFound) ||
		errors.Is(err, ErrTemplateNotFound)
}

// IsDeferred reports whether the error means "nothing wrong, nothing to do
// yet" — the operation should surface as an empty result, not a failure.
func IsDeferred(err error) bool {
	return errors.Is(err, ErrMissingAnchorDates) ||
		errors.Is(err, ErrTemplateNotFound)
}

// IsClientError reports whether the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidKind)
}
