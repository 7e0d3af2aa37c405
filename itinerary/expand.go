/*
expand.go - Master template expansion

PURPOSE:
  Turns a MasterTemplate into concrete, dated ScheduleRows for one
  booking. Expansion is the write-heavy half of the engine, so the core
  is a pure function; the Engine in service.go handles store traffic.

IDEMPOTENT REGENERATION:
  Expansion runs only when the booking currently has ZERO rows of the
  relevant kind. A non-empty, possibly-incomplete row set is never
  silently replaced — it may already carry operator customizations.
  The explicit reload action is the only way to force re-expansion, and
  it deletes the existing rows first. Under a race between regeneration
  and a manual edit this rule makes regeneration a natural no-op.

ANCHOR RE-BASING:
  Transport templates are anchored at trip start. Hotel templates are
  anchored at trip start + FirstSegmentOffsetDays, because the group may
  only enter the destination country days after the trip begins.

CUSTOMIZATION SEEDING:
  A cached patch addressed by content key (not row id — the row does not
  exist yet) replaces the template's default notes for the matching entry,
  so a per-tour-type customization survives onto brand-new bookings.
*/
package itinerary

// ExpandTemplate produces the concrete rows for a booking from its master
// template. Rows come back without IDs; the caller assigns identities when
// persisting.
//
// overrides maps content keys to cached free text; pass nil when the
// cache is unavailable.
//
// Expansion stops once the number of produced rows would exceed the
// anchor's inclusive day span: a template may legitimately have more
// entries than this booking has days (it can span multiple legs of a
// multi-country tour, of which only one segment applies here).
func ExpandTemplate(tpl MasterTemplate, bookingID string, anchor Anchor, overrides map[string]string) []ScheduleRow {
	if anchor.IsZero() {
		return nil
	}

	base := anchor.Start
	if tpl.Kind == KindHotel {
		base = base.AddDate(0, 0, tpl.FirstSegmentOffsetDays)
	}

	span := anchor.Span()
	rows := make([]ScheduleRow, 0, len(tpl.Entries))
	for _, e := range tpl.Entries {
		if len(rows)+1 > span {
			break
		}
		notes := e.Notes
		if text, ok := overrides[ContentKey(tpl.TourType, tpl.Kind, e.Name)]; ok {
			notes = text
		}
		rows = append(rows, ScheduleRow{
			BookingID: bookingID,
			Kind:      tpl.Kind,
			DayNumber: e.DayNumber,
			Date:      base.AddDate(0, 0, e.OffsetDays),
			Name:      e.Name,
			Notes:     notes,
		})
	}
	return rows
}

// DeriveTemplate builds a master template from a booking's current rows
// (the "save current schedule as template" action). Offsets are measured
// from the anchor start; for hotel rows the earliest stay becomes the
// segment anchor and FirstSegmentOffsetDays records its distance from
// trip start.
//
// rows must be pre-sorted by date ascending and all of one kind.
func DeriveTemplate(tt TourTypeCode, kind RowKind, anchor Anchor, rows []ScheduleRow) MasterTemplate {
	tpl := MasterTemplate{TourType: tt, Kind: kind}
	if len(rows) == 0 || anchor.IsZero() {
		return tpl
	}

	base := anchor.Start
	if kind == KindHotel {
		tpl.FirstSegmentOffsetDays = DaysBetween(anchor.Start, rows[0].Date)
		base = Day(rows[0].Date)
	}

	for _, r := range rows {
		tpl.Entries = append(tpl.Entries, TemplateEntry{
			OffsetDays: DaysBetween(base, r.Date),
			DayNumber:  r.DayNumber,
			Name:       r.Name,
			Notes:      r.Notes,
		})
	}
	return tpl
}
