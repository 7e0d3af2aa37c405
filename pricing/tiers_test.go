package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/pricing"
)

// =============================================================================
// BAND RESOLUTION TESTS
// =============================================================================

func TestResolveTier_DefaultBands(t *testing.T) {
	// Inclusive boundaries on both ends of every band, first match wins.
	cases := []struct {
		headcount int
		wantID    string
		wantSize  int
	}{
		{1, "4", 4},
		{4, "4", 4},
		{5, "5", 5},
		{6, "6-7", 6},
		{7, "6-7", 6},
		{8, "8-9", 8},
		{9, "8-9", 8},
		{10, "10-11", 10},
		{11, "10-11", 10},
		{12, "12-13", 12},
		{13, "12-13", 12},
		{14, "14-15", 14},
		{15, "14-15", 14},
		{16, "16", 16},
		{40, "16", 16},
	}

	tiers := pricing.DefaultTiers()
	for _, tc := range cases {
		tier := pricing.ResolveTier(tiers, tc.headcount)
		assert.Equal(t, tc.wantID, tier.ID, "headcount %d", tc.headcount)
		assert.Equal(t, tc.wantSize, tier.Size, "headcount %d", tc.headcount)
	}
}

func TestResolveTier_LowerBoundIsRepresentativeSize(t *testing.T) {
	// A 7-person group divides group costs by 6, not 7. Historical
	// invoices were produced under this rule.
	tier := pricing.ResolveTier(pricing.DefaultTiers(), 7)
	assert.Equal(t, 6, tier.Size)
}

func TestResolveTier_GapInCustomTable_FallsToLastBand(t *testing.T) {
	tiers := []pricing.Tier{
		{ID: "small", Min: 1, Max: 4, Size: 4},
		{ID: "large", Min: 10, Max: 0, Size: 10},
	}

	tier := pricing.ResolveTier(tiers, 7)

	assert.Equal(t, "large", tier.ID)
}
