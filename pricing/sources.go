/*
sources.go - The price-source fallback chain

PURPOSE:
  The three ways a total price can originate, modeled as an ordered list
  of PriceSource implementations composed by a generic first-non-nil-wins
  combinator. The chain's order is a single declarative list, not nested
  conditionals:

    1. TableSource      precomputed total-price table
    2. CacheSource      cached snapshot of that table
    3. AggregateSource  itemized per-category aggregation

  A table hit is returned VERBATIM even when line items would aggregate
  to a different number — the table is the operator's word.

  All three empty => zero ResolvedPrice, flagged, no error. Invoicing
  still renders, showing zeros an operator fills in manually.
*/
package pricing

import (
	"context"
	"fmt"
	"log/slog"
)

// PriceSource is one origin of a resolved price. TryResolve returns
// (nil, nil) when the source has no data for this tour type and tier.
type PriceSource interface {
	Name() string
	TryResolve(ctx context.Context, tourType string, tier Tier) (*ResolvedPrice, error)
}

// =============================================================================
// SOURCES
// =============================================================================

// TableSource reads the precomputed total-price table.
type TableSource struct {
	Store PriceTableStore
}

func (s *TableSource) Name() string { return "total_price_table" }

func (s *TableSource) TryResolve(ctx context.Context, tourType string, tier Tier) (*ResolvedPrice, error) {
	table, err := s.Store.TotalPriceTable(ctx, tourType)
	if err != nil {
		return nil, fmt.Errorf("pricing.TableSource: %w", err)
	}
	return fromTable(table, tier), nil
}

// CacheSource reads the secondary snapshot of the total-price table.
type CacheSource struct {
	Store PriceTableStore
}

func (s *CacheSource) Name() string { return "cached_price_table" }

func (s *CacheSource) TryResolve(ctx context.Context, tourType string, tier Tier) (*ResolvedPrice, error) {
	table, err := s.Store.CachedPriceTable(ctx, tourType)
	if err != nil {
		return nil, fmt.Errorf("pricing.CacheSource: %w", err)
	}
	return fromTable(table, tier), nil
}

func fromTable(table map[string]TablePrice, tier Tier) *ResolvedPrice {
	entry, ok := table[tier.ID]
	if !ok {
		return nil
	}
	return &ResolvedPrice{
		TierID:              tier.ID,
		Total:               entry.Total,
		SingleRoomSurcharge: entry.SingleRoomSurcharge,
	}
}

// AggregateSource computes the price from itemized cost lines.
type AggregateSource struct {
	Store PriceTableStore
}

func (s *AggregateSource) Name() string { return "itemized_aggregation" }

func (s *AggregateSource) TryResolve(ctx context.Context, tourType string, tier Tier) (*ResolvedPrice, error) {
	return Aggregate(ctx, s.Store, tourType, tier)
}

// =============================================================================
// RESOLVER - Tier mapping + the chain
// =============================================================================

// Resolver walks the source chain for a headcount. Construct with
// NewResolver; the default chain is table -> cache -> aggregation.
type Resolver struct {
	Tiers   []Tier
	Sources []PriceSource
	log     *slog.Logger
}

// NewResolver builds a Resolver over the default tier table and chain.
func NewResolver(store PriceTableStore, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		Tiers: DefaultTiers(),
		Sources: []PriceSource{
			&TableSource{Store: store},
			&CacheSource{Store: store},
			&AggregateSource{Store: store},
		},
		log: log,
	}
}

// Resolve maps headcount to a tier and returns the first source's answer.
// Sources that error are logged and skipped — a broken table must not
// take invoicing down when aggregation can still answer. If every source
// is empty or failing, the zero price is returned with Flagged set.
func (r *Resolver) Resolve(ctx context.Context, tourType string, headcount int) (ResolvedPrice, error) {
	tier := ResolveTier(r.Tiers, headcount)

	for _, source := range r.Sources {
		price, err := source.TryResolve(ctx, tourType, tier)
		if err != nil {
			r.log.Warn("price source failed, falling through",
				"source", source.Name(), "tour_type", tourType, "tier", tier.ID, "error", err)
			continue
		}
		if price != nil {
			return *price, nil
		}
	}

	r.log.Warn("no pricing data available, returning zero price",
		"tour_type", tourType, "tier", tier.ID)
	return Zero(tier.ID), nil
}
