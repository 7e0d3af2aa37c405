/*
Package pricing resolves a per-booking total price.

PURPOSE:
  Maps a headcount to a PAX tier, then walks a fallback chain of price
  sources: a precomputed total-price table, a cached snapshot of it, and
  finally on-the-fly aggregation of itemized per-category costs with
  differing per-unit semantics. When every source is empty the resolver
  returns a zero price rather than failing — invoicing must still render,
  showing amounts an operator can fill in manually.

KEY CONCEPTS IN THIS FILE (types.go):
  - Category:      The eight cost categories of a group tour
  - UnitSemantics: How a category's raw sum becomes a per-person figure
  - CostLineItem:  One quoted cost line (unit count x unit price)
  - ResolvedPrice: The authoritative output consumed by invoicing

DESIGN PRINCIPLES:
  1. decimal.Decimal everywhere — the division/rounding rules must match
     exactly across tiers or the business loses money
  2. The fallback chain is a declarative list of PriceSource values,
     not nested conditionals (see sources.go)

SEE ALSO:
  - tiers.go:     Headcount band resolution
  - aggregate.go: Bottom-level itemized aggregation
  - sources.go:   The first-non-nil-wins chain
*/
package pricing

import "github.com/shopspring/decimal"

// =============================================================================
// COST CATEGORIES
// =============================================================================

// Category names one of the itemized cost groups of a tour.
type Category string

const (
	CategoryLodging     Category = "lodging"
	CategoryTransport   Category = "ground_transport"
	CategoryRail        Category = "rail"
	CategoryDomesticAir Category = "domestic_air"
	CategoryMeals       Category = "meals"
	CategorySightseeing Category = "sightseeing"
	CategoryGuide       Category = "guide_fee"
	CategoryTickets     Category = "show_tickets"
)

// Categories returns all cost categories in aggregation order.
func Categories() []Category {
	return []Category{
		CategoryLodging,
		CategoryTransport,
		CategoryRail,
		CategoryDomesticAir,
		CategoryMeals,
		CategorySightseeing,
		CategoryGuide,
		CategoryTickets,
	}
}

// UnitSemantics states how a category's raw sum converts to a per-person
// amount.
type UnitSemantics int

const (
	// SharedPair: rooms are priced per pair of occupants; the
	// per-person cost is the pair rate halved.
	SharedPair UnitSemantics = iota
	// PerGroup: the cost was quoted for the whole group; divide by the
	// tier's representative size.
	PerGroup
	// PerPerson: the quote is already per head; no division.
	PerPerson
)

// categorySemantics is data, not control flow: lodging is quoted per
// room pair; transport, sightseeing and the guide are quoted for the
// whole group; tickets, meals, rail and domestic air are quoted per seat.
var categorySemantics = map[Category]UnitSemantics{
	CategoryLodging:     SharedPair,
	CategoryTransport:   PerGroup,
	CategoryRail:        PerPerson,
	CategoryDomesticAir: PerPerson,
	CategoryMeals:       PerPerson,
	CategorySightseeing: PerGroup,
	CategoryGuide:       PerGroup,
	CategoryTickets:     PerPerson,
}

// SemanticsFor returns the per-unit semantics of a category.
// Unknown categories default to PerPerson (no division).
func SemanticsFor(c Category) UnitSemantics {
	if s, ok := categorySemantics[c]; ok {
		return s
	}
	return PerPerson
}

// =============================================================================
// LINE ITEMS & RESOLVED PRICE
// =============================================================================

// CostLineItem is one quoted cost line for a (tour type, tier, category).
// UnitCount is typically a day or night count; UnitPrice the quoted rate.
// SoloPrice is set on lodging items only: the single-occupancy rate used
// for the single-room surcharge.
type CostLineItem struct {
	Category  Category
	Label     string
	UnitCount int
	UnitPrice decimal.Decimal
	SoloPrice decimal.Decimal
}

// TablePrice is one precomputed entry of the total-price table.
type TablePrice struct {
	Total               decimal.Decimal
	SingleRoomSurcharge decimal.Decimal
}

// ResolvedPrice is the authoritative pricing output. Origin (table,
// cache, or aggregation) is not persisted — only the result.
// Flagged is true when no source had data and the amounts are zero
// placeholders awaiting operator attention.
type ResolvedPrice struct {
	TierID              string
	Total               decimal.Decimal
	SingleRoomSurcharge decimal.Decimal
	Flagged             bool
}

// Zero returns the zero-valued price for a tier, flagged for attention.
func Zero(tierID string) ResolvedPrice {
	return ResolvedPrice{
		TierID:              tierID,
		Total:               decimal.Zero,
		SingleRoomSurcharge: decimal.Zero,
		Flagged:             true,
	}
}
