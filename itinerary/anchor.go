/*
anchor.go - Effective anchor date resolution

PURPOSE:
  Computes the dates template offsets are measured from. The booking's
  nominal departure/end dates are NOT the ground truth for multi-leg
  tours: members can enter via different countries days before the group
  converges, so individual roster dates override the nominal dates
  whenever any member carries a full date pair.

ALGORITHM:
  1. If any roster member has both a check-in and a check-out date:
     anchorStart = min over all set check-ins,
     anchorEnd   = max over all set check-outs.
     Partially dated members still contribute the date they have;
     undated members are ignored for anchoring (they still count
     toward headcount-based pricing elsewhere).
  2. Otherwise fall back to the booking's nominal dates.
  3. Neither usable => zero Anchor, meaning "cannot expand yet".
     The engine never infers a default anchor: a guessed anchor
     risks generating incorrect invoices downstream.
*/
package itinerary

import "time"

// ResolveAnchor computes the effective anchor dates for a booking.
// Pure function: callers fetch the roster and booking record themselves.
func ResolveAnchor(roster []Tourist, booking Booking) Anchor {
	var (
		minIn    time.Time
		maxOut   time.Time
		fullPair bool
	)

	for _, m := range roster {
		if m.CheckIn != nil && m.CheckOut != nil {
			fullPair = true
		}
		if m.CheckIn != nil {
			d := Day(*m.CheckIn)
			if minIn.IsZero() || d.Before(minIn) {
				minIn = d
			}
		}
		if m.CheckOut != nil {
			d := Day(*m.CheckOut)
			if maxOut.IsZero() || d.After(maxOut) {
				maxOut = d
			}
		}
	}

	if fullPair && !minIn.IsZero() && !maxOut.IsZero() {
		return Anchor{Start: minIn, End: maxOut}
	}

	if !booking.DepartureDate.IsZero() && !booking.EndDate.IsZero() {
		return Anchor{Start: Day(booking.DepartureDate), End: Day(booking.EndDate)}
	}

	return Anchor{}
}
