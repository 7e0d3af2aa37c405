/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements the authoritative stores (bookings, rows, rosters, templates,
  pricing tables) and the secondary override cache using SQLite. In
  production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

INTERFACES IMPLEMENTED:
  itinerary.BookingStore    Bookings and schedule rows
  itinerary.RosterStore     Roster members
  itinerary.TemplateStore   Master templates
  itinerary.OverrideStore   The free-text override cache
  pricing.PriceTableStore   Total price tables, line items, commissions

KEY TABLES:
  bookings, tourists                       External records the engine reads
  schedule_rows                            Concrete dated legs and stays
  templates, template_entries              Master plans per tour type
  overrides                                Secondary cache of free text
  price_totals, price_totals_cache         Levels 1 and 2 of the fallback chain
  cost_line_items, commission_rates        Level 3 inputs

TWO STORES, ONE FILE:
  The override cache lives in its own table but behaves as an independent
  store: its reads and writes are absorbed by callers on failure, and
  clearing the table loses nothing authoritative.

WAL MODE:
  SQLite is opened with WAL for better concurrency: multiple readers
  don't block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/orient.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - itinerary/store.go: Interface definitions
  - store/memory/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/itinerary"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/pricing"
)

const dateLayout = "2006-01-02"

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		tour_type TEXT NOT NULL,
		departure_date TEXT,
		end_date TEXT
	);

	CREATE TABLE IF NOT EXISTS tourists (
		id TEXT PRIMARY KEY,
		booking_id TEXT NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		check_in TEXT,
		check_out TEXT,
		room_preference TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_tourists_booking ON tourists(booking_id);

	CREATE TABLE IF NOT EXISTS schedule_rows (
		id TEXT PRIMARY KEY,
		booking_id TEXT NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		day_number INTEGER NOT NULL,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		party_count INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_rows_booking_kind ON schedule_rows(booking_id, kind);

	CREATE TABLE IF NOT EXISTS templates (
		tour_type TEXT NOT NULL,
		kind TEXT NOT NULL,
		first_segment_offset INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (tour_type, kind)
	);

	CREATE TABLE IF NOT EXISTS template_entries (
		tour_type TEXT NOT NULL,
		kind TEXT NOT NULL,
		position INTEGER NOT NULL,
		offset_days INTEGER NOT NULL,
		day_number INTEGER NOT NULL,
		name TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (tour_type, kind, position)
	);

	-- Secondary cache of user-entered free text. Never the source of
	-- truth for structural fields; clearing it loses nothing authoritative.
	-- row_id goes NULL when the row is deleted: the record stays reachable
	-- by content key so a reload can seed it into the replacement rows.
	CREATE TABLE IF NOT EXISTS overrides (
		booking_id TEXT NOT NULL,
		row_id TEXT,
		content_key TEXT NOT NULL,
		text TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_overrides_row
		ON overrides(booking_id, row_id) WHERE row_id IS NOT NULL;
	CREATE INDEX IF NOT EXISTS idx_overrides_content_key ON overrides(content_key, saved_at);

	CREATE TABLE IF NOT EXISTS price_totals (
		tour_type TEXT NOT NULL,
		tier_id TEXT NOT NULL,
		total TEXT NOT NULL,
		single_room_surcharge TEXT NOT NULL DEFAULT '0',
		PRIMARY KEY (tour_type, tier_id)
	);

	CREATE TABLE IF NOT EXISTS price_totals_cache (
		tour_type TEXT NOT NULL,
		tier_id TEXT NOT NULL,
		total TEXT NOT NULL,
		single_room_surcharge TEXT NOT NULL DEFAULT '0',
		PRIMARY KEY (tour_type, tier_id)
	);

	CREATE TABLE IF NOT EXISTS cost_line_items (
		tour_type TEXT NOT NULL,
		tier_id TEXT NOT NULL,
		category TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		unit_count INTEGER NOT NULL,
		unit_price TEXT NOT NULL,
		solo_price TEXT NOT NULL DEFAULT '0'
	);
	CREATE INDEX IF NOT EXISTS idx_line_items_lookup
		ON cost_line_items(tour_type, tier_id, category);

	-- One record per tour type holds all tier rates.
	CREATE TABLE IF NOT EXISTS commission_rates (
		tour_type TEXT NOT NULL,
		tier_id TEXT NOT NULL,
		rate TEXT NOT NULL,
		PRIMARY KEY (tour_type, tier_id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// BOOKING STORE
// =============================================================================

// SaveBooking upserts a booking record (used by seeding and admin paths).
func (s *Store) SaveBooking(ctx context.Context, b itinerary.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (id, tour_type, departure_date, end_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tour_type = excluded.tour_type,
			departure_date = excluded.departure_date,
			end_date = excluded.end_date`,
		b.ID, string(b.TourType), dateOrNull(b.DepartureDate), dateOrNull(b.EndDate))
	return err
}

func (s *Store) Booking(ctx context.Context, id string) (itinerary.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		b        itinerary.Booking
		tourType string
		dep, end sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tour_type, departure_date, end_date FROM bookings WHERE id = ?`, id).
		Scan(&b.ID, &tourType, &dep, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return itinerary.Booking{}, itinerary.ErrBookingNotFound
	}
	if err != nil {
		return itinerary.Booking{}, err
	}
	b.TourType = itinerary.TourTypeCode(tourType)
	b.DepartureDate = parseDateOrZero(dep)
	b.EndDate = parseDateOrZero(end)
	return b, nil
}

func (s *Store) ListRows(ctx context.Context, bookingID string, kind itinerary.RowKind) ([]itinerary.ScheduleRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, booking_id, kind, day_number, date, name, notes, party_count
		FROM schedule_rows WHERE booking_id = ? AND kind = ?`, bookingID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []itinerary.ScheduleRow
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) GetRow(ctx context.Context, bookingID string, rowID uuid.UUID) (itinerary.ScheduleRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, booking_id, kind, day_number, date, name, notes, party_count
		FROM schedule_rows WHERE booking_id = ? AND id = ?`, bookingID, rowID.String())
	r, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return itinerary.ScheduleRow{}, itinerary.ErrRowNotFound
	}
	return r, err
}

func (s *Store) CreateRow(ctx context.Context, row itinerary.ScheduleRow) (itinerary.ScheduleRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedule_rows (id, booking_id, kind, day_number, date, name, notes, party_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID.String(), row.BookingID, string(row.Kind), row.DayNumber,
		row.Date.Format(dateLayout), row.Name, row.Notes, intOrNull(row.PartyCount))
	if err != nil {
		return itinerary.ScheduleRow{}, err
	}
	return row, nil
}

func (s *Store) UpdateRow(ctx context.Context, row itinerary.ScheduleRow) (itinerary.ScheduleRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE schedule_rows
		SET day_number = ?, date = ?, name = ?, notes = ?, party_count = ?
		WHERE booking_id = ? AND id = ?`,
		row.DayNumber, row.Date.Format(dateLayout), row.Name, row.Notes,
		intOrNull(row.PartyCount), row.BookingID, row.ID.String())
	if err != nil {
		return itinerary.ScheduleRow{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return itinerary.ScheduleRow{}, itinerary.ErrRowNotFound
	}
	return row, nil
}

func (s *Store) DeleteRow(ctx context.Context, bookingID string, rowID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM schedule_rows WHERE booking_id = ? AND id = ?`, bookingID, rowID.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return itinerary.ErrRowNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(sc scanner) (itinerary.ScheduleRow, error) {
	var (
		r          itinerary.ScheduleRow
		id, kind   string
		date       string
		partyCount sql.NullInt64
	)
	if err := sc.Scan(&id, &r.BookingID, &kind, &r.DayNumber, &date, &r.Name, &r.Notes, &partyCount); err != nil {
		return itinerary.ScheduleRow{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return itinerary.ScheduleRow{}, fmt.Errorf("malformed row id %q: %w", id, err)
	}
	r.ID = parsed
	r.Kind = itinerary.RowKind(kind)
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return itinerary.ScheduleRow{}, fmt.Errorf("malformed row date %q: %w", date, err)
	}
	r.Date = t
	if partyCount.Valid {
		n := int(partyCount.Int64)
		r.PartyCount = &n
	}
	return r, nil
}

// =============================================================================
// ROSTER STORE
// =============================================================================

// SaveTourist upserts a roster member.
func (s *Store) SaveTourist(ctx context.Context, bookingID string, t itinerary.Tourist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tourists (id, booking_id, check_in, check_out, room_preference)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			check_in = excluded.check_in,
			check_out = excluded.check_out,
			room_preference = excluded.room_preference`,
		t.ID, bookingID, datePtrOrNull(t.CheckIn), datePtrOrNull(t.CheckOut), t.RoomPreference)
	return err
}

func (s *Store) Roster(ctx context.Context, bookingID string) ([]itinerary.Tourist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, check_in, check_out, room_preference
		FROM tourists WHERE booking_id = ? ORDER BY id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []itinerary.Tourist
	for rows.Next() {
		var (
			t       itinerary.Tourist
			in, dep sql.NullString
		)
		if err := rows.Scan(&t.ID, &in, &dep, &t.RoomPreference); err != nil {
			return nil, err
		}
		t.CheckIn = parseDatePtr(in)
		t.CheckOut = parseDatePtr(dep)
		out = append(out, t)
	}
	return out, rows.Err()
}

// =============================================================================
// TEMPLATE STORE
// =============================================================================

func (s *Store) Template(ctx context.Context, tt itinerary.TourTypeCode, kind itinerary.RowKind) (itinerary.MasterTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl := itinerary.MasterTemplate{TourType: tt, Kind: kind}
	err := s.db.QueryRowContext(ctx,
		`SELECT first_segment_offset FROM templates WHERE tour_type = ? AND kind = ?`,
		string(tt), string(kind)).Scan(&tpl.FirstSegmentOffsetDays)
	if errors.Is(err, sql.ErrNoRows) {
		return itinerary.MasterTemplate{}, itinerary.ErrTemplateNotFound
	}
	if err != nil {
		return itinerary.MasterTemplate{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT offset_days, day_number, name, notes
		FROM template_entries WHERE tour_type = ? AND kind = ?
		ORDER BY position`, string(tt), string(kind))
	if err != nil {
		return itinerary.MasterTemplate{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var e itinerary.TemplateEntry
		if err := rows.Scan(&e.OffsetDays, &e.DayNumber, &e.Name, &e.Notes); err != nil {
			return itinerary.MasterTemplate{}, err
		}
		tpl.Entries = append(tpl.Entries, e)
	}
	return tpl, rows.Err()
}

func (s *Store) SaveTemplate(ctx context.Context, tpl itinerary.MasterTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO templates (tour_type, kind, first_segment_offset)
		VALUES (?, ?, ?)
		ON CONFLICT(tour_type, kind) DO UPDATE SET
			first_segment_offset = excluded.first_segment_offset`,
		string(tpl.TourType), string(tpl.Kind), tpl.FirstSegmentOffsetDays)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`DELETE FROM template_entries WHERE tour_type = ? AND kind = ?`,
		string(tpl.TourType), string(tpl.Kind))
	if err != nil {
		return err
	}
	for i, e := range tpl.Entries {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO template_entries (tour_type, kind, position, offset_days, day_number, name, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(tpl.TourType), string(tpl.Kind), i, e.OffsetDays, e.DayNumber, e.Name, e.Notes)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// =============================================================================
// OVERRIDE STORE
// =============================================================================

func (s *Store) GetByRow(ctx context.Context, bookingID string, rowID uuid.UUID) (itinerary.CachedPatch, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		p       itinerary.CachedPatch
		id      string
		savedAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT booking_id, row_id, content_key, text, saved_at
		FROM overrides WHERE booking_id = ? AND row_id = ?`,
		bookingID, rowID.String()).
		Scan(&p.BookingID, &id, &p.ContentKey, &p.Text, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return itinerary.CachedPatch{}, false, nil
	}
	if err != nil {
		return itinerary.CachedPatch{}, false, fmt.Errorf("%w: %v", itinerary.ErrCacheUnavailable, err)
	}
	p.RowID = rowID
	p.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
	return p, true, nil
}

func (s *Store) GetByContentKey(ctx context.Context, key string) (itinerary.CachedPatch, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		p       itinerary.CachedPatch
		id      sql.NullString
		savedAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT booking_id, row_id, content_key, text, saved_at
		FROM overrides WHERE content_key = ?
		ORDER BY saved_at DESC LIMIT 1`, key).
		Scan(&p.BookingID, &id, &p.ContentKey, &p.Text, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return itinerary.CachedPatch{}, false, nil
	}
	if err != nil {
		return itinerary.CachedPatch{}, false, fmt.Errorf("%w: %v", itinerary.ErrCacheUnavailable, err)
	}
	if id.Valid {
		p.RowID, _ = uuid.Parse(id.String)
	}
	p.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
	return p, true, nil
}

func (s *Store) Put(ctx context.Context, patch itinerary.CachedPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO overrides (booking_id, row_id, content_key, text, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(booking_id, row_id) WHERE row_id IS NOT NULL DO UPDATE SET
			content_key = excluded.content_key,
			text = excluded.text,
			saved_at = excluded.saved_at`,
		patch.BookingID, patch.RowID.String(), patch.ContentKey, patch.Text,
		patch.SavedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: %v", itinerary.ErrCacheUnavailable, err)
	}
	return nil
}

// Delete detaches the patch from the row rather than dropping it: the
// record stays reachable by content key, which is what lets a saved
// customization survive a reload that regenerates every row identity.
func (s *Store) Delete(ctx context.Context, bookingID string, rowID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		UPDATE overrides SET row_id = NULL
		WHERE booking_id = ? AND row_id = ? AND content_key != ''`,
		bookingID, rowID.String())
	if err == nil {
		// A patch with no content key has nothing left to address it.
		_, err = s.db.ExecContext(ctx,
			`DELETE FROM overrides WHERE booking_id = ? AND row_id = ? AND content_key = ''`,
			bookingID, rowID.String())
	}
	if err != nil {
		return fmt.Errorf("%w: %v", itinerary.ErrCacheUnavailable, err)
	}
	return nil
}

// =============================================================================
// PRICE TABLE STORE
// =============================================================================

// SaveTablePrice upserts one entry of the total-price table; snapshot
// selects the cache table instead of the primary.
func (s *Store) SaveTablePrice(ctx context.Context, tourType, tierID string, p pricing.TablePrice, snapshot bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := "price_totals"
	if snapshot {
		table = "price_totals_cache"
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO `+table+` (tour_type, tier_id, total, single_room_surcharge)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(tour_type, tier_id) DO UPDATE SET
			total = excluded.total,
			single_room_surcharge = excluded.single_room_surcharge`,
		tourType, tierID, p.Total.String(), p.SingleRoomSurcharge.String())
	return err
}

func (s *Store) TotalPriceTable(ctx context.Context, tourType string) (map[string]pricing.TablePrice, error) {
	return s.priceTable(ctx, "price_totals", tourType)
}

func (s *Store) CachedPriceTable(ctx context.Context, tourType string) (map[string]pricing.TablePrice, error) {
	return s.priceTable(ctx, "price_totals_cache", tourType)
}

func (s *Store) priceTable(ctx context.Context, table, tourType string) (map[string]pricing.TablePrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT tier_id, total, single_room_surcharge FROM `+table+` WHERE tour_type = ?`, tourType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]pricing.TablePrice)
	for rows.Next() {
		var tierID, total, surcharge string
		if err := rows.Scan(&tierID, &total, &surcharge); err != nil {
			return nil, err
		}
		entry, err := parseTablePrice(total, surcharge)
		if err != nil {
			return nil, err
		}
		out[tierID] = entry
	}
	return out, rows.Err()
}

// SaveLineItem appends one cost line.
func (s *Store) SaveLineItem(ctx context.Context, tourType, tierID string, item pricing.CostLineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cost_line_items (tour_type, tier_id, category, label, unit_count, unit_price, solo_price)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tourType, tierID, string(item.Category), item.Label,
		item.UnitCount, item.UnitPrice.String(), item.SoloPrice.String())
	return err
}

func (s *Store) LineItems(ctx context.Context, tourType, tierID string, category pricing.Category) ([]pricing.CostLineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, label, unit_count, unit_price, solo_price
		FROM cost_line_items
		WHERE tour_type = ? AND tier_id = ? AND category = ?
		ORDER BY rowid`, tourType, tierID, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pricing.CostLineItem
	for rows.Next() {
		var (
			item            pricing.CostLineItem
			cat, unit, solo string
		)
		if err := rows.Scan(&cat, &item.Label, &item.UnitCount, &unit, &solo); err != nil {
			return nil, err
		}
		item.Category = pricing.Category(cat)
		if item.UnitPrice, err = decimal.NewFromString(unit); err != nil {
			return nil, fmt.Errorf("malformed unit price %q: %w", unit, err)
		}
		if item.SoloPrice, err = decimal.NewFromString(solo); err != nil {
			return nil, fmt.Errorf("malformed solo price %q: %w", solo, err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// SaveCommissionRate upserts one tier's commission percentage.
func (s *Store) SaveCommissionRate(ctx context.Context, tourType, tierID string, rate decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO commission_rates (tour_type, tier_id, rate)
		VALUES (?, ?, ?)
		ON CONFLICT(tour_type, tier_id) DO UPDATE SET rate = excluded.rate`,
		tourType, tierID, rate.String())
	return err
}

func (s *Store) CommissionTable(ctx context.Context, tourType string) (map[string]decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT tier_id, rate FROM commission_rates WHERE tour_type = ?`, tourType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var tierID, rate string
		if err := rows.Scan(&tierID, &rate); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("malformed commission rate %q: %w", rate, err)
		}
		out[tierID] = d
	}
	return out, rows.Err()
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

func parseTablePrice(total, surcharge string) (pricing.TablePrice, error) {
	t, err := decimal.NewFromString(total)
	if err != nil {
		return pricing.TablePrice{}, fmt.Errorf("malformed total %q: %w", total, err)
	}
	sur, err := decimal.NewFromString(surcharge)
	if err != nil {
		return pricing.TablePrice{}, fmt.Errorf("malformed surcharge %q: %w", surcharge, err)
	}
	return pricing.TablePrice{Total: t, SingleRoomSurcharge: sur}, nil
}

func dateOrNull(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

func datePtrOrNull(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func intOrNull(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

func parseDateOrZero(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseDatePtr(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}
