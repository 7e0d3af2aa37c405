/*
Package memory provides in-memory implementations of every store
interface, for tests and dev mode.

PURPOSE:
  Mirrors the SQLite store's behavior without a database: same not-found
  sentinels, same copy-on-read semantics. The override store additionally
  supports failure injection (SetOverridesDown) so the engine's
  cache-degradation paths can be exercised deterministically.
*/
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/itinerary"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/pricing"
)

// Store implements all persistence interfaces in memory.
type Store struct {
	mu sync.RWMutex

	bookings  map[string]itinerary.Booking
	rosters   map[string][]itinerary.Tourist
	rows      map[string]map[uuid.UUID]itinerary.ScheduleRow // bookingID -> rowID -> row
	templates map[templateKey]itinerary.MasterTemplate

	overridesByRow map[rowKey]itinerary.CachedPatch
	overridesByKey map[string]itinerary.CachedPatch
	overridesDown  bool

	priceTables  map[string]map[string]pricing.TablePrice
	priceCaches  map[string]map[string]pricing.TablePrice
	lineItems    map[lineKey][]pricing.CostLineItem
	commissions  map[string]map[string]decimal.Decimal
}

type templateKey struct {
	TourType itinerary.TourTypeCode
	Kind     itinerary.RowKind
}

type rowKey struct {
	BookingID string
	RowID     uuid.UUID
}

type lineKey struct {
	TourType string
	TierID   string
	Category pricing.Category
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		bookings:       make(map[string]itinerary.Booking),
		rosters:        make(map[string][]itinerary.Tourist),
		rows:           make(map[string]map[uuid.UUID]itinerary.ScheduleRow),
		templates:      make(map[templateKey]itinerary.MasterTemplate),
		overridesByRow: make(map[rowKey]itinerary.CachedPatch),
		overridesByKey: make(map[string]itinerary.CachedPatch),
		priceTables:    make(map[string]map[string]pricing.TablePrice),
		priceCaches:    make(map[string]map[string]pricing.TablePrice),
		lineItems:      make(map[lineKey][]pricing.CostLineItem),
		commissions:    make(map[string]map[string]decimal.Decimal),
	}
}

// =============================================================================
// SEEDING - Test/dev fixtures
// =============================================================================

func (s *Store) SeedBooking(b itinerary.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b
}

func (s *Store) SeedRoster(bookingID string, roster []itinerary.Tourist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosters[bookingID] = append([]itinerary.Tourist(nil), roster...)
}

func (s *Store) SeedPriceTable(tourType string, table map[string]pricing.TablePrice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceTables[tourType] = table
}

func (s *Store) SeedCachedPriceTable(tourType string, table map[string]pricing.TablePrice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceCaches[tourType] = table
}

func (s *Store) SeedLineItems(tourType, tierID string, category pricing.Category, items []pricing.CostLineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lineItems[lineKey{tourType, tierID, category}] = append([]pricing.CostLineItem(nil), items...)
}

func (s *Store) SeedCommissionTable(tourType string, rates map[string]decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commissions[tourType] = rates
}

// SetOverridesDown toggles failure injection: while down, every
// OverrideStore method returns itinerary.ErrCacheUnavailable.
func (s *Store) SetOverridesDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overridesDown = down
}

// =============================================================================
// BOOKING STORE
// =============================================================================

func (s *Store) Booking(_ context.Context, id string) (itinerary.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return itinerary.Booking{}, itinerary.ErrBookingNotFound
	}
	return b, nil
}

func (s *Store) ListRows(_ context.Context, bookingID string, kind itinerary.RowKind) ([]itinerary.ScheduleRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []itinerary.ScheduleRow
	for _, row := range s.rows[bookingID] {
		if row.Kind == kind {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *Store) GetRow(_ context.Context, bookingID string, rowID uuid.UUID) (itinerary.ScheduleRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[bookingID][rowID]
	if !ok {
		return itinerary.ScheduleRow{}, itinerary.ErrRowNotFound
	}
	return row, nil
}

func (s *Store) CreateRow(_ context.Context, row itinerary.ScheduleRow) (itinerary.ScheduleRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if s.rows[row.BookingID] == nil {
		s.rows[row.BookingID] = make(map[uuid.UUID]itinerary.ScheduleRow)
	}
	s.rows[row.BookingID][row.ID] = row
	return row, nil
}

func (s *Store) UpdateRow(_ context.Context, row itinerary.ScheduleRow) (itinerary.ScheduleRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[row.BookingID][row.ID]; !ok {
		return itinerary.ScheduleRow{}, itinerary.ErrRowNotFound
	}
	s.rows[row.BookingID][row.ID] = row
	return row, nil
}

func (s *Store) DeleteRow(_ context.Context, bookingID string, rowID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[bookingID][rowID]; !ok {
		return itinerary.ErrRowNotFound
	}
	delete(s.rows[bookingID], rowID)
	return nil
}

// =============================================================================
// ROSTER STORE
// =============================================================================

func (s *Store) Roster(_ context.Context, bookingID string) ([]itinerary.Tourist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]itinerary.Tourist(nil), s.rosters[bookingID]...), nil
}

// =============================================================================
// TEMPLATE STORE
// =============================================================================

func (s *Store) Template(_ context.Context, tt itinerary.TourTypeCode, kind itinerary.RowKind) (itinerary.MasterTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tpl, ok := s.templates[templateKey{tt, kind}]
	if !ok {
		return itinerary.MasterTemplate{}, itinerary.ErrTemplateNotFound
	}
	return tpl, nil
}

func (s *Store) SaveTemplate(_ context.Context, tpl itinerary.MasterTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[templateKey{tpl.TourType, tpl.Kind}] = tpl
	return nil
}

// =============================================================================
// OVERRIDE STORE - Supports failure injection
// =============================================================================

func (s *Store) GetByRow(_ context.Context, bookingID string, rowID uuid.UUID) (itinerary.CachedPatch, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.overridesDown {
		return itinerary.CachedPatch{}, false, itinerary.ErrCacheUnavailable
	}
	patch, ok := s.overridesByRow[rowKey{bookingID, rowID}]
	return patch, ok, nil
}

func (s *Store) GetByContentKey(_ context.Context, key string) (itinerary.CachedPatch, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.overridesDown {
		return itinerary.CachedPatch{}, false, itinerary.ErrCacheUnavailable
	}
	patch, ok := s.overridesByKey[key]
	return patch, ok, nil
}

func (s *Store) Put(_ context.Context, patch itinerary.CachedPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overridesDown {
		return itinerary.ErrCacheUnavailable
	}
	s.overridesByRow[rowKey{patch.BookingID, patch.RowID}] = patch
	if patch.ContentKey != "" {
		s.overridesByKey[patch.ContentKey] = patch
	}
	return nil
}

// Delete drops only the row-key addressability. The content-key entry
// survives, detached from the dead identity, so a reload can seed the
// customization into the regenerated rows.
func (s *Store) Delete(_ context.Context, bookingID string, rowID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overridesDown {
		return itinerary.ErrCacheUnavailable
	}
	key := rowKey{bookingID, rowID}
	if patch, ok := s.overridesByRow[key]; ok {
		if cur, ok := s.overridesByKey[patch.ContentKey]; ok && cur.BookingID == bookingID && cur.RowID == rowID {
			cur.RowID = uuid.Nil
			s.overridesByKey[patch.ContentKey] = cur
		}
	}
	delete(s.overridesByRow, key)
	return nil
}

// =============================================================================
// PRICE TABLE STORE
// =============================================================================

func (s *Store) TotalPriceTable(_ context.Context, tourType string) (map[string]pricing.TablePrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTable(s.priceTables[tourType]), nil
}

func (s *Store) CachedPriceTable(_ context.Context, tourType string) (map[string]pricing.TablePrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTable(s.priceCaches[tourType]), nil
}

func (s *Store) LineItems(_ context.Context, tourType, tierID string, category pricing.Category) ([]pricing.CostLineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]pricing.CostLineItem(nil), s.lineItems[lineKey{tourType, tierID, category}]...), nil
}

func (s *Store) CommissionTable(_ context.Context, tourType string) (map[string]decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(s.commissions[tourType]))
	for k, v := range s.commissions[tourType] {
		out[k] = v
	}
	return out, nil
}

func copyTable(in map[string]pricing.TablePrice) map[string]pricing.TablePrice {
	out := make(map[string]pricing.TablePrice, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
