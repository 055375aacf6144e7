/*
errors.go - Centralized error types for the pricing engine

PURPOSE:
  All error kinds in one place for consistency and discoverability.
  Callers classify with errors.Is against the sentinels; the structured
  types carry the unit/day/offer context for diagnostics.

ERROR CATEGORIES:
  1. Availability errors - Validity rejects the check-in day (fatal)
  2. Price data errors   - A required unit/day has no price (fatal)
  3. Rule errors         - Empty or fully-failing rule set (fatal)
  4. Quota errors        - Flash-sale reservation failed (recoverable)

USAGE:
  price, err := offer.MinPrice(checkIn, source)
  if errors.Is(err, pricing.ErrPriceUnavailable) { ... }

SEE ALSO:
  - rule.go: raises ErrPriceUnavailable / ErrNoApplicableRule
  - marketing.go: raises ErrQuotaExhausted
*/
package pricing

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrCheckInNotAvailable is returned when validity rules reject the
	// requested check-in day. Fatal to the pricing call.
	ErrCheckInNotAvailable = errors.New("check-in day is not available")

	// ErrPriceUnavailable is returned when a required unit has no price
	// for a day in the occupancy range. Fatal to the pricing call.
	ErrPriceUnavailable = errors.New("price is not available")

	// ErrNoApplicableRule is returned when an offer has no price rules,
	// or every rule evaluation failed.
	ErrNoApplicableRule = errors.New("no applicable price rule")

	// ErrInvalidStayLength is returned for a non-positive minimum-nights
	// configuration.
	ErrInvalidStayLength = errors.New("invalid stay length")

	// ErrQuotaExhausted is returned when a flash-sale quota reservation
	// cannot be satisfied. Recoverable: the caller falls back to the
	// non-promotional price.
	ErrQuotaExhausted = errors.New("flash sale quota exhausted")

	// ErrOfferNotFound is returned by stores for unknown offer numbers.
	ErrOfferNotFound = errors.New("offer not found")

	// ErrStrategyNotFound is returned by stores for unknown strategy ids.
	ErrStrategyNotFound = errors.New("strategy not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// PriceLookupError reports which unit and day lacked price data.
type PriceLookupError struct {
	UnitID UnitID
	Day    Day
}

func (e *PriceLookupError) Error() string {
	return fmt.Sprintf("no price for unit %s on %s", e.UnitID, e.Day)
}

func (e *PriceLookupError) Unwrap() error { return ErrPriceUnavailable }

// AvailabilityError reports which validity clause rejected the check-in.
type AvailabilityError struct {
	CheckIn Day
	Clause  string // e.g. "blackout", "sales_window", "advance_booking"
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("check-in %s not available: %s", e.CheckIn, e.Clause)
}

func (e *AvailabilityError) Unwrap() error { return ErrCheckInNotAvailable }

// StayLengthError reports a non-positive minimum-nights configuration.
type StayLengthError struct {
	Nights int
}

func (e *StayLengthError) Error() string {
	return fmt.Sprintf("minimum nights must be at least 1, got %d", e.Nights)
}

func (e *StayLengthError) Unwrap() error { return ErrInvalidStayLength }

// QuotaError reports a failed flash-sale reservation.
type QuotaError struct {
	ActivityID string
	Requested  int
	Remaining  int64
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("flash sale %s: requested %d, remaining %d",
		e.ActivityID, e.Requested, e.Remaining)
}

func (e *QuotaError) Unwrap() error { return ErrQuotaExhausted }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRecoverable returns true if the pricing call can proceed without the
// failed layer. Only quota exhaustion qualifies: the promotion is skipped
// and the pre-promotion price stands.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrQuotaExhausted)
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrCheckInNotAvailable) ||
		errors.Is(err, ErrInvalidStayLength)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOfferNotFound) ||
		errors.Is(err, ErrStrategyNotFound) ||
		errors.Is(err, ErrPriceUnavailable)
}
