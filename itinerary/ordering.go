/*
ordering.go - Canonical display order

PURPOSE:
  Produces one deterministic, human-meaningful order over a booking's
  rows regardless of how or when the rows were created. The order is
  computed at read time and never stored.

SORT KEY:
  (category rank, date ascending, row id ascending)

  The id tie-break matters: two legs can legitimately share a date
  (a transfer and a city tour on arrival day), and without it the order
  of same-date rows would depend on store iteration order.
*/
package itinerary

import (
	"bytes"
	"sort"
)

// OrderRows sorts rows into canonical display order. When classifier is
// nil (hotel stays), every row ranks equally and the order reduces to
// (date, id). The input slice is sorted in place and returned.
func OrderRows(rows []ScheduleRow, classifier Classifier) []ScheduleRow {
	rank := func(r ScheduleRow) int {
		if classifier == nil {
			return 0
		}
		return classifier.Classify(r.Name).Rank()
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rank(rows[i]), rank(rows[j])
		if ri != rj {
			return ri < rj
		}
		di, dj := Day(rows[i].Date), Day(rows[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return bytes.Compare(rows[i].ID[:], rows[j].ID[:]) < 0
	})
	return rows
}
