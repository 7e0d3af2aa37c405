/*
aggregate.go - Bottom-level itemized aggregation

PURPOSE:
  The last resort of the fallback chain: compute a per-person price from
  raw cost line items. The arithmetic here must match the precomputed
  tables exactly — same divisions, same rounding — or the tiers drift
  apart and the business loses money.

ALGORITHM:
  For each of the eight categories:
    raw = sum(unitCount x unitPrice)
    per-person = raw / 2            (SharedPair: pair rate halved)
               | raw / tier.Size    (PerGroup: group quote split)
               | raw                (PerPerson: already per head)
  base       = sum over categories
  commission = round(base x rate / 100)
  total      = round(base + commission)

  Single-room surcharge, from the lodging items alone:
    round(sum(unitCount x soloPrice) - sum(unitCount x unitPrice) / 2)

ROUNDING:
  decimal.Round(0) — half away from zero, to whole currency units.
  Intermediate per-category values stay unrounded.
*/
package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)
var hundred = decimal.NewFromInt(100)

// Aggregate computes a ResolvedPrice from itemized cost lines. Returns
// nil when no category has any line items, signalling "source empty" to
// the chain.
func Aggregate(ctx context.Context, store PriceTableStore, tourType string, tier Tier) (*ResolvedPrice, error) {
	var (
		base     = decimal.Zero
		soloSum  = decimal.Zero
		pairHalf = decimal.Zero
		found    bool
	)

	tierSize := decimal.NewFromInt(int64(tier.Size))

	for _, category := range Categories() {
		items, err := store.LineItems(ctx, tourType, tier.ID, category)
		if err != nil {
			return nil, fmt.Errorf("pricing.Aggregate: %s: %w", category, err)
		}
		if len(items) == 0 {
			continue
		}
		found = true

		raw := decimal.Zero
		for _, item := range items {
			raw = raw.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.UnitCount))))
		}

		switch SemanticsFor(category) {
		case SharedPair:
			base = base.Add(raw.Div(two))
		case PerGroup:
			base = base.Add(raw.Div(tierSize))
		default:
			base = base.Add(raw)
		}

		if category == CategoryLodging {
			for _, item := range items {
				count := decimal.NewFromInt(int64(item.UnitCount))
				soloSum = soloSum.Add(item.SoloPrice.Mul(count))
				pairHalf = pairHalf.Add(item.UnitPrice.Mul(count).Div(two))
			}
		}
	}

	if !found {
		return nil, nil
	}

	rates, err := store.CommissionTable(ctx, tourType)
	if err != nil {
		return nil, fmt.Errorf("pricing.Aggregate: commission: %w", err)
	}
	commission := base.Mul(rates[tier.ID]).Div(hundred).Round(0)

	return &ResolvedPrice{
		TierID:              tier.ID,
		Total:               base.Add(commission).Round(0),
		SingleRoomSurcharge: soloSum.Sub(pairHalf).Round(0),
	}, nil
}
