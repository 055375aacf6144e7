package catalog

import "github.com/warp/pricing-engine/pricing"

// =============================================================================
// VALIDITY
// =============================================================================

// Validity gates whether an offer may be booked for a given check-in day.
// Zero-valued fields are treated as unrestricted so a blank Validity
// accepts every check-in.
type Validity struct {
	// VisitingPeriod bounds the check-in day itself.
	VisitingPeriod *pricing.DateRange

	// SalesPeriod bounds the day the booking is made.
	SalesPeriod *pricing.DateRange

	// PublishTime / UnpublishTime bound the booking instant. The window is
	// half-open: bookable at PublishTime, no longer bookable at
	// UnpublishTime.
	PublishTime   pricing.Timestamp
	UnpublishTime pricing.Timestamp

	// AdvanceBookingDays is the minimum number of days between the booking
	// day and the check-in day. Zero means same-day booking is allowed.
	AdvanceBookingDays int

	// BlackoutDates are check-in days excluded even inside the visiting
	// period.
	BlackoutDates []pricing.Day
}

// Clause names for AvailabilityError.
const (
	ClauseVisitingPeriod = "visiting_period"
	ClauseSalesPeriod    = "sales_period"
	ClausePublishWindow  = "publish_window"
	ClauseAdvanceBooking = "advance_booking"
	ClauseBlackout       = "blackout"
)

// CheckInAvailable reports whether a check-in on day is bookable at
// bookedAt. Clauses are evaluated in declaration order and the first
// failing clause is reported.
func (v Validity) CheckInAvailable(day pricing.Day, bookedAt pricing.Timestamp) error {
	if v.VisitingPeriod != nil && !v.VisitingPeriod.Contains(day) {
		return &pricing.AvailabilityError{CheckIn: day, Clause: ClauseVisitingPeriod}
	}
	if !bookedAt.IsZero() {
		bookingDay := bookedAt.Day()
		if v.SalesPeriod != nil && !v.SalesPeriod.Contains(bookingDay) {
			return &pricing.AvailabilityError{CheckIn: day, Clause: ClauseSalesPeriod}
		}
		if !v.PublishTime.IsZero() && bookedAt.Before(v.PublishTime) {
			return &pricing.AvailabilityError{CheckIn: day, Clause: ClausePublishWindow}
		}
		if !v.UnpublishTime.IsZero() && !bookedAt.Before(v.UnpublishTime) {
			return &pricing.AvailabilityError{CheckIn: day, Clause: ClausePublishWindow}
		}
		if v.AdvanceBookingDays > 0 && pricing.DaysBetween(bookingDay, day) < v.AdvanceBookingDays {
			return &pricing.AvailabilityError{CheckIn: day, Clause: ClauseAdvanceBooking}
		}
	}
	for _, blackout := range v.BlackoutDates {
		if blackout.Equal(day) {
			return &pricing.AvailabilityError{CheckIn: day, Clause: ClauseBlackout}
		}
	}
	return nil
}
