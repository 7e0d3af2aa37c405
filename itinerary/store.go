/*
store.go - Persistence contracts for the itinerary engine

PURPOSE:
  Defines the interfaces between the engine and its collaborators. The
  engine never talks to a database directly; it orchestrates these
  contracts. Two implementations exist: store/memory (tests, dev) and
  store/sqlite (production).

THE TWO-STORE MODEL:
  BookingStore/TemplateStore/RosterStore are authoritative. OverrideStore
  is the secondary cache: it holds only user-entered free text and exists
  purely as a repair source when a prior save-path failure dropped content.
  The cache is best-effort — no read or write may require it to succeed.

SEE ALSO:
  - store/memory/memory.go: In-memory implementation
  - store/sqlite/sqlite.go: Production implementation
  - reconcile.go:           How authoritative and cached data are merged
*/
package itinerary

import (
	"context"

	"github.com/google/uuid"
)

// =============================================================================
// AUTHORITATIVE STORES
// =============================================================================

// BookingStore is the authoritative source for bookings and their rows.
type BookingStore interface {
	// Booking returns the booking record.
	// Returns ErrBookingNotFound if it does not exist.
	Booking(ctx context.Context, id string) (Booking, error)

	// ListRows returns all rows of one kind for a booking, in no
	// particular order. Display order is assigned at read time.
	ListRows(ctx context.Context, bookingID string, kind RowKind) ([]ScheduleRow, error)

	// GetRow returns a single row scoped to its booking.
	// Returns ErrRowNotFound if it does not exist under that booking.
	GetRow(ctx context.Context, bookingID string, rowID uuid.UUID) (ScheduleRow, error)

	// CreateRow inserts a row and returns the persisted record.
	CreateRow(ctx context.Context, row ScheduleRow) (ScheduleRow, error)

	// UpdateRow overwrites the mutable fields of a row.
	// Returns ErrRowNotFound if it does not exist under that booking.
	UpdateRow(ctx context.Context, row ScheduleRow) (ScheduleRow, error)

	// DeleteRow removes a row scoped to its booking.
	// Returns ErrRowNotFound if it does not exist under that booking.
	DeleteRow(ctx context.Context, bookingID string, rowID uuid.UUID) error
}

// RosterStore is the authoritative source for a booking's tourists.
type RosterStore interface {
	// Roster returns all roster members for a booking. A member's
	// check-in/check-out may be nil when not yet known.
	Roster(ctx context.Context, bookingID string) ([]Tourist, error)
}

// TemplateStore is the authoritative source for master templates.
type TemplateStore interface {
	// Template returns the master template for one (tour type, kind).
	// Returns ErrTemplateNotFound when the tour type has none.
	Template(ctx context.Context, tt TourTypeCode, kind RowKind) (MasterTemplate, error)

	// SaveTemplate replaces the template for (tpl.TourType, tpl.Kind).
	SaveTemplate(ctx context.Context, tpl MasterTemplate) error
}

// =============================================================================
// OVERRIDE STORE - The secondary cache (best-effort only)
// =============================================================================

// OverrideStore holds free-text patches keyed both by row identity and by
// a regeneration-stable content key. Implementations may fail at any time;
// callers absorb every error from this interface.
type OverrideStore interface {
	// GetByRow returns the patch for (bookingID, rowID), if any.
	GetByRow(ctx context.Context, bookingID string, rowID uuid.UUID) (CachedPatch, bool, error)

	// GetByContentKey returns the most recently saved patch for a
	// content key, if any. Used during expansion, when the row the
	// patch belongs to does not exist yet.
	GetByContentKey(ctx context.Context, key string) (CachedPatch, bool, error)

	// Put upserts a patch under both of its keys.
	Put(ctx context.Context, patch CachedPatch) error

	// Delete removes the patch for (bookingID, rowID).
	// Absence is not an error.
	Delete(ctx context.Context, bookingID string, rowID uuid.UUID) error
}
