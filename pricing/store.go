package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceTableStore is the contract to the pricing tables kept by the
// back office. Empty maps/slices mean "no data for this tour type" and
// move the resolver down the fallback chain; they are not errors.
type PriceTableStore interface {
	// TotalPriceTable returns the precomputed prices keyed by tier id.
	TotalPriceTable(ctx context.Context, tourType string) (map[string]TablePrice, error)

	// CachedPriceTable returns the secondary snapshot of the total
	// price table, keyed by tier id.
	CachedPriceTable(ctx context.Context, tourType string) (map[string]TablePrice, error)

	// LineItems returns the itemized cost lines for one category.
	LineItems(ctx context.Context, tourType, tierID string, category Category) ([]CostLineItem, error)

	// CommissionTable returns the commission percentage per tier id.
	// All tier rates live under one record per tour type.
	CommissionTable(ctx context.Context, tourType string) (map[string]decimal.Decimal, error)
}
