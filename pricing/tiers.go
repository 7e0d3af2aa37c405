/*
tiers.go - PAX tier resolution

PURPOSE:
  Group pricing is quoted per headcount band, not per exact headcount.
  A tier's representative Size is what group-quoted costs are divided by.

BUSINESS APPROXIMATION (deliberate, preserved):
  A band's representative size is its LOWER bound — tier "6-7" divides by
  6 even for a 7-person group. Historical invoices were produced under
  this rule; changing it would change their totals.
*/
package pricing

// Tier is one headcount band. Max == 0 means the band is open-ended.
type Tier struct {
	ID   string
	Min  int
	Max  int
	Size int
}

// contains reports whether headcount falls inside the band.
func (t Tier) contains(headcount int) bool {
	if headcount < t.Min {
		return false
	}
	return t.Max == 0 || headcount <= t.Max
}

// DefaultTiers returns the standard band table in evaluation order.
func DefaultTiers() []Tier {
	return []Tier{
		{ID: "4", Min: 0, Max: 4, Size: 4},
		{ID: "5", Min: 5, Max: 5, Size: 5},
		{ID: "6-7", Min: 6, Max: 7, Size: 6},
		{ID: "8-9", Min: 8, Max: 9, Size: 8},
		{ID: "10-11", Min: 10, Max: 11, Size: 10},
		{ID: "12-13", Min: 12, Max: 13, Size: 12},
		{ID: "14-15", Min: 14, Max: 15, Size: 14},
		{ID: "16", Min: 16, Max: 0, Size: 16},
	}
}

// ResolveTier maps a headcount to its band by an ordered set of inclusive
// range checks, first match wins.
func ResolveTier(tiers []Tier, headcount int) Tier {
	for _, t := range tiers {
		if t.contains(headcount) {
			return t
		}
	}
	// The default table is total over non-negative headcounts; a custom
	// table with gaps falls through to its last band.
	return tiers[len(tiers)-1]
}
