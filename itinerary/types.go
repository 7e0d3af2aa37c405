/*
Package itinerary is the core of the Orient Insight scheduling engine.

PURPOSE:
  This package turns a reusable tour-type master plan (transport legs and
  hotel stays expressed as day offsets) into a concrete, date-stamped
  schedule for one group booking, and keeps that schedule consistent when
  operators customize it.

KEY CONCEPTS IN THIS FILE (types.go):
  - MasterTemplate: A tour-type-level plan of offsets and default content
  - ScheduleRow: One concrete, dated leg or stay owned by a booking
  - Anchor: The date pair all template offsets are measured from
  - CachedPatch: A free-text override held in the secondary cache

DESIGN PRINCIPLES:
  1. Dates are day-granular and normalized to UTC midnight
  2. Structural fields (date, kind, identity) live only in the
     authoritative store; the cache holds free text and nothing else
  3. Regeneration is idempotent: it refuses to act on a non-empty row set

SEE ALSO:
  - anchor.go:    Effective anchor date resolution from the roster
  - expand.go:    Template expansion into concrete rows
  - reconcile.go: Dual-store merge rules
  - ordering.go:  Canonical display order
  - service.go:   The Engine exposing the public operations
*/
package itinerary

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// TourTypeCode identifies a packaged tour program (e.g. "UZ-CLASSIC-8").
// Each tour type owns one master template per row kind and its own
// pricing tables.
type TourTypeCode string

// RowKind distinguishes the two schedules a booking carries.
type RowKind string

const (
	KindTransport RowKind = "transport"
	KindHotel     RowKind = "hotel"
)

// Valid reports whether k is one of the two known kinds.
func (k RowKind) Valid() bool { return k == KindTransport || k == KindHotel }

// =============================================================================
// MASTER TEMPLATE - The reusable tour-type plan
// =============================================================================

// TemplateEntry is one line of a master plan: an offset from the anchor
// date plus the default content for the generated row.
type TemplateEntry struct {
	OffsetDays int
	DayNumber  int
	Name       string
	Notes      string
}

// MasterTemplate is the ordered plan for one (tour type, kind) pair.
//
// FirstSegmentOffsetDays applies to hotel templates only: a group may
// cross one or more countries before entering the destination, so the
// hotel segment is anchored FirstSegmentOffsetDays after trip start.
// It is stored per tour type, never hard-coded per booking.
type MasterTemplate struct {
	TourType               TourTypeCode
	Kind                   RowKind
	FirstSegmentOffsetDays int
	Entries                []TemplateEntry
}

// =============================================================================
// SCHEDULE ROW - One concrete leg or stay
// =============================================================================

// ScheduleRow is a dated transport leg or hotel stay owned by exactly one
// booking. DayNumber values within a booking are not required to be unique
// or contiguous; two legs can legitimately share a day.
type ScheduleRow struct {
	ID        uuid.UUID
	BookingID string
	Kind      RowKind
	DayNumber int
	Date      time.Time
	Name      string
	Notes     string

	// PartyCount overrides the booking headcount for this row only
	// (e.g. a side excursion a subset of the group takes). Nil means
	// the full group.
	PartyCount *int
}

// =============================================================================
// BOOKING & ROSTER - External records the engine reads
// =============================================================================

// Booking is the slice of a booking record the engine needs. Zero dates
// mean the operator has not entered them yet.
type Booking struct {
	ID            string
	TourType      TourTypeCode
	DepartureDate time.Time
	EndDate       time.Time
}

// Tourist is one roster member. CheckIn/CheckOut are the member's own
// travel dates and may differ from the booking's nominal dates (members
// can arrive via different countries before converging).
type Tourist struct {
	ID             string
	CheckIn        *time.Time
	CheckOut       *time.Time
	RoomPreference string
}

// =============================================================================
// ANCHOR - The pair of dates template offsets are measured from
// =============================================================================

// Anchor holds the effective start and end of the trip on the ground.
// A zero Anchor signals "cannot expand the template yet".
type Anchor struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether no usable anchor could be resolved.
func (a Anchor) IsZero() bool { return a.Start.IsZero() || a.End.IsZero() }

// Span returns the number of days between Start and End inclusive.
// A same-day anchor spans one day.
func (a Anchor) Span() int {
	if a.IsZero() {
		return 0
	}
	return DaysBetween(a.Start, a.End) + 1
}

// =============================================================================
// CACHED PATCH - Secondary-cache override of a row's free text
// =============================================================================

// CachedPatch is the only thing the secondary cache holds: the free-text
// field a user is allowed to customize, plus a last-write timestamp.
// It is addressable two ways: by the row it patched (RowID) and by a
// content key that survives the row being regenerated under a new id.
type CachedPatch struct {
	BookingID  string
	RowID      uuid.UUID
	ContentKey string
	Text       string
	SavedAt    time.Time
}

// ContentKey builds the regeneration-stable key for a patch: it names the
// tour type, the kind, and the row's template name rather than the row id,
// so a per-tour-type customization survives being applied to a brand-new
// booking whose rows do not exist yet.
func ContentKey(tt TourTypeCode, kind RowKind, name string) string {
	return fmt.Sprintf("%s/%s/%s", tt, kind, strings.ToLower(strings.TrimSpace(name)))
}

// =============================================================================
// DATE HELPERS
// =============================================================================

// Day normalizes t to UTC midnight. All schedule dates are day-granular.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from a to b (negative when b < a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
