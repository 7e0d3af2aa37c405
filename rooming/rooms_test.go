package rooming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/rooming"
)

// =============================================================================
// CLASSIFICATION TESTS
// =============================================================================

func TestClassify_SynonymsAndCase(t *testing.T) {
	cases := []struct {
		label string
		want  rooming.Preference
	}{
		{"double", rooming.PrefDouble},
		{"DBL", rooming.PrefDouble},
		{"dwl room", rooming.PrefDouble},
		{"twin", rooming.PrefTwin},
		{"TWN", rooming.PrefTwin},
		{"single", rooming.PrefSingle},
		{"", rooming.PrefSingle},
		{"  sgl  ", rooming.PrefSingle},
		{"no preference", rooming.PrefSingle},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, rooming.Classify(tc.label), "label %q", tc.label)
	}
}

// =============================================================================
// BREAKDOWN TESTS
// =============================================================================

func TestBreakdown_MixedGroup(t *testing.T) {
	// GIVEN: 3 double, 2 twin, 1 single preferences
	// WHEN: Computing the breakdown
	// THEN: 1 double room (pair), 1 twin room, 2 singles — the odd
	//       double-preference guest gets a single

	counts := rooming.Breakdown([]string{"double", "double", "double", "twin", "twin", "single"})

	assert.Equal(t, rooming.RoomCounts{Double: 1, Twin: 1, Single: 2}, counts)
}

func TestBreakdown_OddTwinGetsHalfEmptyTwin(t *testing.T) {
	// A lone twin-preference guest still books a twin room; twins round
	// up where doubles round down.

	counts := rooming.Breakdown([]string{"twin", "twin", "twin"})

	assert.Equal(t, rooming.RoomCounts{Double: 0, Twin: 2, Single: 0}, counts)
}

func TestBreakdown_OddDoubleBecomesSingle(t *testing.T) {
	counts := rooming.Breakdown([]string{"double"})
	assert.Equal(t, rooming.RoomCounts{Double: 0, Twin: 0, Single: 1}, counts)
}

func TestBreakdown_UnrecognizedPreferencesFallToSingle(t *testing.T) {
	// An unplaceable guest gets their own room rather than a guessed
	// roommate.

	counts := rooming.Breakdown([]string{"", "suite please", "double"})

	assert.Equal(t, rooming.RoomCounts{Double: 0, Twin: 0, Single: 3}, counts)
}

func TestBreakdown_EmptyRoster(t *testing.T) {
	assert.Equal(t, rooming.RoomCounts{}, rooming.Breakdown(nil))
}
