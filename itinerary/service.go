/*
service.go - The Engine: public operations of the itinerary subsystem

PURPOSE:
  Orchestrates the stores and the pure functions in this package into the
  four operations the back office consumes:

    ResolveSchedule         read, patch gaps from cache, order
    RegenerateFromTemplate  anchor -> expand -> persist (idempotent)
    SaveRowOverride         dual write, cache best-effort
    DeleteRow               authoritative delete + cache cleanup

  plus SaveAsTemplate (derive a master template from a live booking).

FAILURE SEMANTICS:
  Cache unavailable    => slog Warn, continue on authoritative data only.
  Authoritative failed => the whole operation fails, surfaced to caller.
  Missing anchor dates => expansion deferred (ErrMissingAnchorDates),
                          never guessed.

CONCURRENCY:
  All operations are short-lived request/response actions. No locks span
  the two stores: last-write-wins per row is acceptable because rows are
  edited independently, and the "expand only into an empty set" rule makes
  regeneration idempotent under race with manual edits.
*/
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Engine exposes the itinerary operations. Construct with NewEngine.
type Engine struct {
	bookings   BookingStore
	roster     RosterStore
	templates  TemplateStore
	overrides  OverrideStore
	classifier Classifier
	log        *slog.Logger
	now        func() time.Time
}

// NewEngine wires an Engine. classifier orders transport legs; pass the
// factory default unless a deployment configures its own rule table.
// A nil logger falls back to slog.Default().
func NewEngine(bookings BookingStore, roster RosterStore, templates TemplateStore, overrides OverrideStore, classifier Classifier, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		bookings:   bookings,
		roster:     roster,
		templates:  templates,
		overrides:  overrides,
		classifier: classifier,
		log:        log,
		now:        time.Now,
	}
}

// =============================================================================
// RESOLVE SCHEDULE - Read, repair gaps, order
// =============================================================================

// ResolveSchedule returns a booking's rows of one kind in canonical
// display order, with empty free-text fields repaired from the override
// cache. Cache failures degrade to authoritative-only.
func (e *Engine) ResolveSchedule(ctx context.Context, bookingID string, kind RowKind) ([]ScheduleRow, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	rows, err := e.bookings.ListRows(ctx, bookingID, kind)
	if err != nil {
		return nil, fmt.Errorf("itinerary.ResolveSchedule: %w", err)
	}

	cacheDown := false
	for i, row := range rows {
		if cacheDown {
			break
		}
		patch, ok, err := e.overrides.GetByRow(ctx, bookingID, row.ID)
		if err != nil {
			// Cache is best-effort recovery, not a dependency.
			e.log.Warn("override cache unavailable, serving authoritative data only",
				"booking_id", bookingID, "error", err)
			cacheDown = true
			break
		}
		if ok {
			rows[i] = ApplyPatch(row, &patch)
		}
	}

	classifier := e.classifier
	if kind == KindHotel {
		classifier = nil // hotel stays order by date alone
	}
	return OrderRows(rows, classifier), nil
}

// =============================================================================
// REGENERATE - Idempotent template expansion
// =============================================================================

// RegenerateFromTemplate expands the booking's master template into
// concrete rows. Returns the number of rows created.
//
// With reload=false this is idempotent: if any row of the kind already
// exists the call is a no-op returning 0. With reload=true the existing
// rows are deleted first — the only sanctioned way to re-expand over a
// non-empty set.
func (e *Engine) RegenerateFromTemplate(ctx context.Context, bookingID string, kind RowKind, reload bool) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	booking, err := e.bookings.Booking(ctx, bookingID)
	if err != nil {
		return 0, fmt.Errorf("itinerary.RegenerateFromTemplate: %w", err)
	}

	existing, err := e.bookings.ListRows(ctx, bookingID, kind)
	if err != nil {
		return 0, fmt.Errorf("itinerary.RegenerateFromTemplate: %w", err)
	}
	if len(existing) > 0 {
		if !reload {
			return 0, nil
		}
		for _, row := range existing {
			if err := e.deleteRow(ctx, bookingID, row.ID); err != nil {
				return 0, err
			}
		}
	}

	roster, err := e.roster.Roster(ctx, bookingID)
	if err != nil {
		return 0, fmt.Errorf("itinerary.RegenerateFromTemplate: %w", err)
	}
	anchor := ResolveAnchor(roster, booking)
	if anchor.IsZero() {
		return 0, fmt.Errorf("itinerary.RegenerateFromTemplate: booking %s: %w", bookingID, ErrMissingAnchorDates)
	}

	// ErrTemplateNotFound propagates as-is: callers render the
	// empty-schedule path rather than an error page.
	tpl, err := e.templates.Template(ctx, booking.TourType, kind)
	if err != nil {
		return 0, fmt.Errorf("itinerary.RegenerateFromTemplate: %w", err)
	}

	overrides := e.contentOverrides(ctx, tpl)

	created := 0
	for _, row := range ExpandTemplate(tpl, bookingID, anchor, overrides) {
		row.ID = uuid.New()
		if _, err := e.bookings.CreateRow(ctx, row); err != nil {
			return created, &WriteError{Op: "itinerary.RegenerateFromTemplate", BookingID: bookingID, Err: err}
		}
		created++
	}
	return created, nil
}

// contentOverrides collects cached free-text by content key for every
// template entry. Returns nil when the cache is down — expansion then
// uses template defaults, which the read-time merge can repair later.
func (e *Engine) contentOverrides(ctx context.Context, tpl MasterTemplate) map[string]string {
	out := make(map[string]string, len(tpl.Entries))
	for _, entry := range tpl.Entries {
		key := ContentKey(tpl.TourType, tpl.Kind, entry.Name)
		patch, ok, err := e.overrides.GetByContentKey(ctx, key)
		if err != nil {
			e.log.Warn("override cache unavailable during expansion, using template defaults",
				"tour_type", tpl.TourType, "error", err)
			return nil
		}
		if ok {
			out[key] = patch.Text
		}
	}
	return out
}

// =============================================================================
// SAVE OVERRIDE - Dual write
// =============================================================================

// SaveRowOverride persists a user edit of a row's free text to both
// stores. The authoritative write must succeed; the cache write is
// best-effort and its failure is absorbed.
func (e *Engine) SaveRowOverride(ctx context.Context, bookingID string, rowID uuid.UUID, text string) error {
	booking, err := e.bookings.Booking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("itinerary.SaveRowOverride: %w", err)
	}
	row, err := e.bookings.GetRow(ctx, bookingID, rowID)
	if err != nil {
		return fmt.Errorf("itinerary.SaveRowOverride: %w", err)
	}

	row.Notes = text
	if _, err := e.bookings.UpdateRow(ctx, row); err != nil {
		return &WriteError{Op: "itinerary.SaveRowOverride", BookingID: bookingID, Err: err}
	}

	patch := CachedPatch{
		BookingID:  bookingID,
		RowID:      rowID,
		ContentKey: ContentKey(booking.TourType, row.Kind, row.Name),
		Text:       text,
		SavedAt:    e.now().UTC(),
	}
	if err := e.overrides.Put(ctx, patch); err != nil {
		e.log.Warn("override cache write failed, authoritative save succeeded",
			"booking_id", bookingID, "row_id", rowID, "error", err)
	}
	return nil
}

// =============================================================================
// DELETE ROW - Authoritative delete, cache cleanup
// =============================================================================

// DeleteRow removes a row and cleans up its cache entry. Cache absence
// or failure is not an error.
func (e *Engine) DeleteRow(ctx context.Context, bookingID string, rowID uuid.UUID) error {
	return e.deleteRow(ctx, bookingID, rowID)
}

func (e *Engine) deleteRow(ctx context.Context, bookingID string, rowID uuid.UUID) error {
	if err := e.bookings.DeleteRow(ctx, bookingID, rowID); err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return fmt.Errorf("itinerary.DeleteRow: %w", err)
		}
		return &WriteError{Op: "itinerary.DeleteRow", BookingID: bookingID, Err: err}
	}
	if err := e.overrides.Delete(ctx, bookingID, rowID); err != nil {
		e.log.Warn("override cache cleanup failed", "booking_id", bookingID, "row_id", rowID, "error", err)
	}
	return nil
}

// =============================================================================
// SAVE AS TEMPLATE - Derive a master plan from a live booking
// =============================================================================

// SaveAsTemplate captures the booking's current rows of one kind as the
// tour type's master template, replacing the previous one. This is how
// operators promote a hand-tuned schedule into the reusable plan.
func (e *Engine) SaveAsTemplate(ctx context.Context, bookingID string, kind RowKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	booking, err := e.bookings.Booking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("itinerary.SaveAsTemplate: %w", err)
	}
	rows, err := e.bookings.ListRows(ctx, bookingID, kind)
	if err != nil {
		return fmt.Errorf("itinerary.SaveAsTemplate: %w", err)
	}
	roster, err := e.roster.Roster(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("itinerary.SaveAsTemplate: %w", err)
	}
	anchor := ResolveAnchor(roster, booking)
	if anchor.IsZero() {
		return fmt.Errorf("itinerary.SaveAsTemplate: booking %s: %w", bookingID, ErrMissingAnchorDates)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	tpl := DeriveTemplate(booking.TourType, kind, anchor, rows)
	if err := e.templates.SaveTemplate(ctx, tpl); err != nil {
		return &WriteError{Op: "itinerary.SaveAsTemplate", BookingID: bookingID, Err: err}
	}
	return nil
}
