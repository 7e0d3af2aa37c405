package itinerary_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/itinerary"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

// =============================================================================
// ROSTER OVERRIDE TESTS
// =============================================================================

func TestResolveAnchor_RosterOverridesNominalDates(t *testing.T) {
	// GIVEN: Booking nominally 2025-09-23..25, but one member enters the
	//        country a day earlier and another leaves a day later
	// WHEN: Resolving the anchor
	// THEN: min check-in / max check-out win over the nominal dates

	booking := itinerary.Booking{
		ID:            "bk-1",
		TourType:      "UZ-CLASSIC-8",
		DepartureDate: date(2025, time.September, 23),
		EndDate:       date(2025, time.September, 25),
	}
	roster := []itinerary.Tourist{
		{ID: "t-1", CheckIn: datePtr(2025, time.September, 22), CheckOut: datePtr(2025, time.September, 25)},
		{ID: "t-2", CheckIn: datePtr(2025, time.September, 23), CheckOut: datePtr(2025, time.September, 26)},
	}

	anchor := itinerary.ResolveAnchor(roster, booking)

	assert.Equal(t, date(2025, time.September, 22), anchor.Start)
	assert.Equal(t, date(2025, time.September, 26), anchor.End)
	assert.Equal(t, 5, anchor.Span())
}

func TestResolveAnchor_PartialMemberStillContributes(t *testing.T) {
	// GIVEN: One member with a full date pair, another with only an
	//        earlier check-in entered so far
	// WHEN: Resolving the anchor
	// THEN: The partial member's check-in still widens the window

	booking := itinerary.Booking{ID: "bk-1"}
	roster := []itinerary.Tourist{
		{ID: "t-1", CheckIn: datePtr(2025, time.May, 10), CheckOut: datePtr(2025, time.May, 17)},
		{ID: "t-2", CheckIn: datePtr(2025, time.May, 8)},
	}

	anchor := itinerary.ResolveAnchor(roster, booking)

	assert.Equal(t, date(2025, time.May, 8), anchor.Start)
	assert.Equal(t, date(2025, time.May, 17), anchor.End)
}

func TestResolveAnchor_UndatedMembersIgnored(t *testing.T) {
	// GIVEN: A roster where one member has a full pair and two have no
	//        dates at all
	// WHEN: Resolving the anchor
	// THEN: The undated members neither block nor skew the window

	booking := itinerary.Booking{ID: "bk-1"}
	roster := []itinerary.Tourist{
		{ID: "t-1"},
		{ID: "t-2", CheckIn: datePtr(2025, time.May, 10), CheckOut: datePtr(2025, time.May, 14)},
		{ID: "t-3"},
	}

	anchor := itinerary.ResolveAnchor(roster, booking)

	assert.Equal(t, date(2025, time.May, 10), anchor.Start)
	assert.Equal(t, date(2025, time.May, 14), anchor.End)
}

// =============================================================================
// FALLBACK AND ZERO-ANCHOR TESTS
// =============================================================================

func TestResolveAnchor_FallsBackToNominalDates(t *testing.T) {
	// GIVEN: No roster member carries a full check-in/check-out pair
	// WHEN: Resolving the anchor
	// THEN: The booking's nominal dates apply, even though one member has
	//       a lone check-in on file

	booking := itinerary.Booking{
		ID:            "bk-1",
		DepartureDate: date(2025, time.June, 1),
		EndDate:       date(2025, time.June, 8),
	}
	roster := []itinerary.Tourist{
		{ID: "t-1", CheckIn: datePtr(2025, time.May, 30)},
		{ID: "t-2"},
	}

	anchor := itinerary.ResolveAnchor(roster, booking)

	assert.Equal(t, date(2025, time.June, 1), anchor.Start)
	assert.Equal(t, date(2025, time.June, 8), anchor.End)
}

func TestResolveAnchor_NoUsableDates_ZeroAnchor(t *testing.T) {
	// GIVEN: No roster dates and no nominal booking dates
	// WHEN: Resolving the anchor
	// THEN: Zero anchor — the engine defers rather than guessing

	anchor := itinerary.ResolveAnchor([]itinerary.Tourist{{ID: "t-1"}}, itinerary.Booking{ID: "bk-1"})

	assert.True(t, anchor.IsZero())
	assert.Equal(t, 0, anchor.Span())
}

func TestResolveAnchor_EmptyRoster_UsesNominalDates(t *testing.T) {
	booking := itinerary.Booking{
		ID:            "bk-1",
		DepartureDate: date(2025, time.July, 3),
		EndDate:       date(2025, time.July, 3),
	}

	anchor := itinerary.ResolveAnchor(nil, booking)

	assert.False(t, anchor.IsZero())
	assert.Equal(t, 1, anchor.Span(), "same-day anchor spans one day")
}

func TestResolveAnchor_NormalizesToUTCMidnight(t *testing.T) {
	// GIVEN: Roster dates carrying time-of-day and a non-UTC zone
	// WHEN: Resolving the anchor
	// THEN: The anchor is day-granular UTC

	tashkent := time.FixedZone("UZT", 5*3600)
	in := time.Date(2025, time.September, 22, 14, 30, 0, 0, tashkent)
	out := time.Date(2025, time.September, 26, 9, 0, 0, 0, tashkent)
	roster := []itinerary.Tourist{{ID: "t-1", CheckIn: &in, CheckOut: &out}}

	anchor := itinerary.ResolveAnchor(roster, itinerary.Booking{ID: "bk-1"})

	assert.Equal(t, date(2025, time.September, 22), anchor.Start)
	assert.Equal(t, date(2025, time.September, 26), anchor.End)
}
