/*
classify.go - Leg category classification

PURPOSE:
  Display order for transport legs depends on a category derived from the
  row's NAME TEXT, never from a separately stored city/category field —
  the stored field has proven unreliable in operator-entered data.

DATA, NOT CONTROL FLOW:
  Matching rules are an ordered table of (substrings, category) pairs
  evaluated top to bottom, first match wins. The table is injectable so
  rules can be configured per home base and unit-tested independently of
  the sort. factory.DefaultClassifier builds the standard Tashkent table.
*/
package itinerary

import "strings"

// Category is the coarse position class of a transport leg.
type Category int

const (
	// CategoryFirst marks recognized early-in-trip legs local to the
	// home base (city tour, railway-station hotels, ...).
	CategoryFirst Category = iota + 1
	// CategoryMiddle is everything else, including all legs not
	// referencing the home base at all.
	CategoryMiddle
	// CategoryLast marks the airport drop-off/pickup leg at the home base.
	CategoryLast
)

// Rank returns the sort weight: first=1, middle=2, last=3.
func (c Category) Rank() int { return int(c) }

// Classifier assigns a display category to a row name.
type Classifier interface {
	Classify(name string) Category
}

// Rule matches when every substring in Contains appears in the name,
// case-insensitively.
type Rule struct {
	Contains []string
	Category Category
}

// RuleClassifier evaluates an ordered rule table, first match wins.
// Names matching no rule classify as CategoryMiddle.
type RuleClassifier struct {
	Rules []Rule
}

// Classify implements Classifier.
func (c *RuleClassifier) Classify(name string) Category {
	lower := strings.ToLower(name)
	for _, r := range c.Rules {
		if matchesAll(lower, r.Contains) {
			return r.Category
		}
	}
	return CategoryMiddle
}

func matchesAll(lower string, subs []string) bool {
	if len(subs) == 0 {
		return false
	}
	for _, s := range subs {
		if !strings.Contains(lower, strings.ToLower(s)) {
			return false
		}
	}
	return true
}
