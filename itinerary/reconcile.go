/*
reconcile.go - Dual-store merge rules

PURPOSE:
  The authoritative store and the override cache can disagree after a
  partial failure (historically: one side being cleared wholesale). The
  merge rule that repairs this is small and must be exact, so it lives
  here as a pure function applied on every schedule read.

THE RULE:
  A cached patch fills an EMPTY authoritative free-text field. It never
  overrides non-empty authoritative data — once the authoritative store
  holds content, it is trusted unconditionally. The merge is a
  read-through patch: nothing is written back during a read.
*/
package itinerary

import "strings"

// ApplyPatch merges an optional cached patch into an authoritative row.
// The patch applies only when the authoritative notes are empty; the
// result is what is returned to the caller, the stored row is untouched.
func ApplyPatch(row ScheduleRow, patch *CachedPatch) ScheduleRow {
	if patch == nil {
		return row
	}
	if strings.TrimSpace(row.Notes) != "" {
		return row
	}
	row.Notes = patch.Text
	return row
}
