/*
Package factory provides JSON to Go rule-table conversion.

PURPOSE:
  Converts JSON rule definitions into itinerary classifier rule tables
  and pricing tier bands. This keeps the matching rules and band limits
  as data, not code — an operator deployment can reconfigure the home
  base markers or the headcount bands without a release, and the rules
  can be unit-tested independently of the sort and the price math.

JSON SCHEMA:
  {
    "home_base": "Tashkent",
    "classifier_rules": [
      {"contains": ["airport", "tashkent"], "category": "last"},
      {"contains": ["city tour"],           "category": "first"}
    ],
    "tiers": [
      {"id": "4",   "min": 0, "max": 4, "size": 4},
      {"id": "6-7", "min": 6, "max": 7, "size": 6}
    ]
  }

DEFAULTS:
  An absent classifier_rules block yields the standard Tashkent table;
  an absent tiers block yields pricing.DefaultTiers(). A config file is
  therefore optional end to end.

SEE ALSO:
  - itinerary/classify.go: Rule and RuleClassifier types
  - pricing/tiers.go:      Tier type and default bands
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/itinerary"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/pricing"
)

// DefaultHomeBase is where Orient Insight groups fly in and out.
const DefaultHomeBase = "Tashkent"

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RulesJSON is the JSON representation of a rules configuration.
type RulesJSON struct {
	HomeBase        string     `json:"home_base,omitempty"`
	ClassifierRules []RuleJSON `json:"classifier_rules,omitempty"`
	Tiers           []TierJSON `json:"tiers,omitempty"`
}

// RuleJSON is one classifier rule: all substrings must match.
type RuleJSON struct {
	Contains []string `json:"contains"`
	Category string   `json:"category"` // "first" | "middle" | "last"
}

// TierJSON is one headcount band. Max 0 means open-ended.
type TierJSON struct {
	ID   string `json:"id"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
	Size int    `json:"size"`
}

// =============================================================================
// FACTORY
// =============================================================================

// RuleFactory parses rule configurations.
type RuleFactory struct{}

// NewRuleFactory creates a rule factory.
func NewRuleFactory() *RuleFactory { return &RuleFactory{} }

// Parse converts a JSON rules document into a classifier and tier table.
// Absent blocks fall back to defaults.
func (f *RuleFactory) Parse(data []byte) (*itinerary.RuleClassifier, []pricing.Tier, error) {
	var doc RulesJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("factory.Parse: %w", err)
	}

	homeBase := doc.HomeBase
	if homeBase == "" {
		homeBase = DefaultHomeBase
	}

	classifier := DefaultClassifier(homeBase)
	if len(doc.ClassifierRules) > 0 {
		rules := make([]itinerary.Rule, 0, len(doc.ClassifierRules))
		for i, r := range doc.ClassifierRules {
			cat, err := parseCategory(r.Category)
			if err != nil {
				return nil, nil, fmt.Errorf("factory.Parse: rule %d: %w", i, err)
			}
			if len(r.Contains) == 0 {
				return nil, nil, fmt.Errorf("factory.Parse: rule %d: empty contains list", i)
			}
			rules = append(rules, itinerary.Rule{Contains: r.Contains, Category: cat})
		}
		classifier = &itinerary.RuleClassifier{Rules: rules}
	}

	tiers := pricing.DefaultTiers()
	if len(doc.Tiers) > 0 {
		tiers = make([]pricing.Tier, 0, len(doc.Tiers))
		for i, t := range doc.Tiers {
			if t.ID == "" || t.Size <= 0 {
				return nil, nil, fmt.Errorf("factory.Parse: tier %d: id and positive size required", i)
			}
			tiers = append(tiers, pricing.Tier{ID: t.ID, Min: t.Min, Max: t.Max, Size: t.Size})
		}
	}

	return classifier, tiers, nil
}

func parseCategory(s string) (itinerary.Category, error) {
	switch s {
	case "first":
		return itinerary.CategoryFirst, nil
	case "middle":
		return itinerary.CategoryMiddle, nil
	case "last":
		return itinerary.CategoryLast, nil
	default:
		return 0, fmt.Errorf("unknown category %q", s)
	}
}

// =============================================================================
// DEFAULT RULE TABLE
// =============================================================================

// DefaultClassifier builds the standard rule table for a home base.
// Order matters: the airport leg names the home base too, so the "last"
// rule is checked before the home-base "first" markers.
func DefaultClassifier(homeBase string) *itinerary.RuleClassifier {
	return &itinerary.RuleClassifier{
		Rules: []itinerary.Rule{
			{Contains: []string{"airport", homeBase}, Category: itinerary.CategoryLast},
			{Contains: []string{"aeroport", homeBase}, Category: itinerary.CategoryLast},
			{Contains: []string{"city tour"}, Category: itinerary.CategoryFirst},
			{Contains: []string{"vokzal"}, Category: itinerary.CategoryFirst},
			{Contains: []string{"railway station", homeBase}, Category: itinerary.CategoryFirst},
			{Contains: []string{"meeting", homeBase}, Category: itinerary.CategoryFirst},
		},
	}
}
