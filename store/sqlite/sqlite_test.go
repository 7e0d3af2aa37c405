package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/itinerary"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/pricing"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// BOOKING AND ROW TESTS
// =============================================================================

func TestBooking_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := itinerary.Booking{
		ID:            "bk-1",
		TourType:      "UZ-CLASSIC-8",
		DepartureDate: day(2025, time.September, 22),
		EndDate:       day(2025, time.September, 26),
	}
	require.NoError(t, store.SaveBooking(ctx, in))

	out, err := store.Booking(ctx, "bk-1")

	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestBooking_UndatedDatesComeBackZero(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveBooking(ctx, itinerary.Booking{ID: "bk-1", TourType: "UZ-CLASSIC-8"}))

	out, err := store.Booking(ctx, "bk-1")

	require.NoError(t, err)
	assert.True(t, out.DepartureDate.IsZero())
	assert.True(t, out.EndDate.IsZero())
}

func TestBooking_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Booking(context.Background(), "missing")

	assert.ErrorIs(t, err, itinerary.ErrBookingNotFound)
}

func TestScheduleRows_CRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveBooking(ctx, itinerary.Booking{ID: "bk-1", TourType: "UZ-CLASSIC-8"}))

	party := 3
	created, err := store.CreateRow(ctx, itinerary.ScheduleRow{
		BookingID:  "bk-1",
		Kind:       itinerary.KindTransport,
		DayNumber:  1,
		Date:       day(2025, time.September, 22),
		Name:       "Tashkent city tour",
		Notes:      "start 09:00",
		PartyCount: &party,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID, "store assigns an identity")

	got, err := store.GetRow(ctx, "bk-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	got.Notes = "start moved to 10:00"
	_, err = store.UpdateRow(ctx, got)
	require.NoError(t, err)
	updated, err := store.GetRow(ctx, "bk-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "start moved to 10:00", updated.Notes)

	require.NoError(t, store.DeleteRow(ctx, "bk-1", created.ID))
	_, err = store.GetRow(ctx, "bk-1", created.ID)
	assert.ErrorIs(t, err, itinerary.ErrRowNotFound)
}

func TestListRows_FiltersByKind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveBooking(ctx, itinerary.Booking{ID: "bk-1", TourType: "UZ-CLASSIC-8"}))

	_, err := store.CreateRow(ctx, itinerary.ScheduleRow{
		BookingID: "bk-1", Kind: itinerary.KindTransport,
		Date: day(2025, time.September, 22), Name: "Transfer",
	})
	require.NoError(t, err)
	_, err = store.CreateRow(ctx, itinerary.ScheduleRow{
		BookingID: "bk-1", Kind: itinerary.KindHotel,
		Date: day(2025, time.September, 22), Name: "Hotel Uzbekistan",
	})
	require.NoError(t, err)

	hotels, err := store.ListRows(ctx, "bk-1", itinerary.KindHotel)

	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, "Hotel Uzbekistan", hotels[0].Name)
}

func TestUpdateRow_UnknownRow_NotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveBooking(ctx, itinerary.Booking{ID: "bk-1", TourType: "UZ-CLASSIC-8"}))

	_, err := store.UpdateRow(ctx, itinerary.ScheduleRow{
		ID: uuid.New(), BookingID: "bk-1", Date: day(2025, time.September, 22),
	})

	assert.ErrorIs(t, err, itinerary.ErrRowNotFound)
}

// =============================================================================
// ROSTER TESTS
// =============================================================================

func TestRoster_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveBooking(ctx, itinerary.Booking{ID: "bk-1", TourType: "UZ-CLASSIC-8"}))

	in := day(2025, time.September, 22)
	out := day(2025, time.September, 26)
	require.NoError(t, store.SaveTourist(ctx, "bk-1", itinerary.Tourist{
		ID: "t-1", CheckIn: &in, CheckOut: &out, RoomPreference: "double",
	}))
	require.NoError(t, store.SaveTourist(ctx, "bk-1", itinerary.Tourist{
		ID: "t-2", RoomPreference: "twin",
	}))

	roster, err := store.Roster(ctx, "bk-1")

	require.NoError(t, err)
	require.Len(t, roster, 2)
	require.NotNil(t, roster[0].CheckIn)
	assert.Equal(t, in, *roster[0].CheckIn)
	assert.Nil(t, roster[1].CheckIn, "missing dates stay nil")
	assert.Equal(t, "twin", roster[1].RoomPreference)
}

// =============================================================================
// TEMPLATE TESTS
// =============================================================================

func TestTemplate_SaveReplacesEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := itinerary.MasterTemplate{
		TourType:               "UZ-CLASSIC-8",
		Kind:                   itinerary.KindHotel,
		FirstSegmentOffsetDays: 2,
		Entries: []itinerary.TemplateEntry{
			{OffsetDays: 0, DayNumber: 3, Name: "Hotel Uzbekistan"},
			{OffsetDays: 1, DayNumber: 4, Name: "Hotel Registan"},
		},
	}
	require.NoError(t, store.SaveTemplate(ctx, first))

	second := first
	second.Entries = []itinerary.TemplateEntry{
		{OffsetDays: 0, DayNumber: 3, Name: "Hotel Minor", Notes: "upgraded"},
	}
	require.NoError(t, store.SaveTemplate(ctx, second))

	got, err := store.Template(ctx, "UZ-CLASSIC-8", itinerary.KindHotel)

	require.NoError(t, err)
	assert.Equal(t, 2, got.FirstSegmentOffsetDays)
	require.Len(t, got.Entries, 1, "save replaces, never merges")
	assert.Equal(t, "Hotel Minor", got.Entries[0].Name)
}

func TestTemplate_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Template(context.Background(), "UZ-CLASSIC-8", itinerary.KindTransport)

	assert.ErrorIs(t, err, itinerary.ErrTemplateNotFound)
}

func TestTemplate_PreservesEntryOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tpl := itinerary.MasterTemplate{TourType: "UZ-CLASSIC-8", Kind: itinerary.KindTransport}
	names := []string{"Arrival", "City tour", "To Samarkand", "To Bukhara", "Departure"}
	for i, n := range names {
		tpl.Entries = append(tpl.Entries, itinerary.TemplateEntry{OffsetDays: i, DayNumber: i + 1, Name: n})
	}
	require.NoError(t, store.SaveTemplate(ctx, tpl))

	got, err := store.Template(ctx, "UZ-CLASSIC-8", itinerary.KindTransport)

	require.NoError(t, err)
	require.Len(t, got.Entries, len(names))
	for i, n := range names {
		assert.Equal(t, n, got.Entries[i].Name)
	}
}

// =============================================================================
// OVERRIDE CACHE TESTS
// =============================================================================

func TestOverrides_RowKeyRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	rowID := uuid.New()

	patch := itinerary.CachedPatch{
		BookingID:  "bk-1",
		RowID:      rowID,
		ContentKey: itinerary.ContentKey("UZ-CLASSIC-8", itinerary.KindTransport, "Tashkent city tour"),
		Text:       "start 09:00",
		SavedAt:    time.Date(2025, time.September, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(ctx, patch))

	got, ok, err := store.GetByRow(ctx, "bk-1", rowID)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, patch.BookingID, got.BookingID)
	assert.Equal(t, patch.RowID, got.RowID)
	assert.Equal(t, patch.ContentKey, got.ContentKey)
	assert.Equal(t, patch.Text, got.Text)
	assert.True(t, patch.SavedAt.Equal(got.SavedAt))
}

func TestOverrides_GetByRow_MissIsNotAnError(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.GetByRow(context.Background(), "bk-1", uuid.New())

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOverrides_ContentKeyReturnsNewestSave(t *testing.T) {
	// Two bookings customized the same content; a new expansion should
	// seed from the most recent save.

	store := newTestStore(t)
	ctx := context.Background()
	key := itinerary.ContentKey("UZ-CLASSIC-8", itinerary.KindTransport, "Tashkent - Samarkand")

	require.NoError(t, store.Put(ctx, itinerary.CachedPatch{
		BookingID: "bk-1", RowID: uuid.New(), ContentKey: key,
		Text: "older", SavedAt: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, store.Put(ctx, itinerary.CachedPatch{
		BookingID: "bk-2", RowID: uuid.New(), ContentKey: key,
		Text: "newer", SavedAt: time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC),
	}))

	got, ok, err := store.GetByContentKey(ctx, key)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "newer", got.Text)
}

func TestOverrides_PutUpsertsPerRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	rowID := uuid.New()

	base := itinerary.CachedPatch{BookingID: "bk-1", RowID: rowID, ContentKey: "k", SavedAt: time.Now().UTC()}
	base.Text = "v1"
	require.NoError(t, store.Put(ctx, base))
	base.Text = "v2"
	require.NoError(t, store.Put(ctx, base))

	got, ok, err := store.GetByRow(ctx, "bk-1", rowID)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v2", got.Text)
}

func TestOverrides_DeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	rowID := uuid.New()

	require.NoError(t, store.Put(ctx, itinerary.CachedPatch{
		BookingID: "bk-1", RowID: rowID, ContentKey: "k", Text: "x", SavedAt: time.Now().UTC(),
	}))

	require.NoError(t, store.Delete(ctx, "bk-1", rowID))
	require.NoError(t, store.Delete(ctx, "bk-1", rowID), "deleting a missing entry is fine")

	_, ok, err := store.GetByRow(ctx, "bk-1", rowID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOverrides_DeleteKeepsContentKeyRecord(t *testing.T) {
	// Deleting a row drops only the row-key addressability. The patch must
	// stay reachable by content key so a reload can re-seed it.

	store := newTestStore(t)
	ctx := context.Background()
	rowID := uuid.New()
	key := itinerary.ContentKey("UZ-CLASSIC-8", itinerary.KindTransport, "Tashkent - Samarkand")

	require.NoError(t, store.Put(ctx, itinerary.CachedPatch{
		BookingID: "bk-1", RowID: rowID, ContentKey: key,
		Text: "Afrosiyob, coach 3", SavedAt: time.Now().UTC(),
	}))

	require.NoError(t, store.Delete(ctx, "bk-1", rowID))

	_, ok, err := store.GetByRow(ctx, "bk-1", rowID)
	require.NoError(t, err)
	assert.False(t, ok, "the dead identity no longer resolves")

	got, ok, err := store.GetByContentKey(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Afrosiyob, coach 3", got.Text)
	assert.Equal(t, uuid.Nil, got.RowID, "the surviving record is detached")
}

// =============================================================================
// PRICE TABLE TESTS
// =============================================================================

func TestPriceTables_PrimaryAndSnapshotAreIndependent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	primary := pricing.TablePrice{Total: decimal.NewFromInt(980), SingleRoomSurcharge: decimal.NewFromInt(160)}
	snapshot := pricing.TablePrice{Total: decimal.NewFromInt(950), SingleRoomSurcharge: decimal.NewFromInt(150)}
	require.NoError(t, store.SaveTablePrice(ctx, "UZ-CLASSIC-8", "6-7", primary, false))
	require.NoError(t, store.SaveTablePrice(ctx, "UZ-CLASSIC-8", "6-7", snapshot, true))

	table, err := store.TotalPriceTable(ctx, "UZ-CLASSIC-8")
	require.NoError(t, err)
	cached, err := store.CachedPriceTable(ctx, "UZ-CLASSIC-8")
	require.NoError(t, err)

	assert.True(t, primary.Total.Equal(table["6-7"].Total))
	assert.True(t, snapshot.Total.Equal(cached["6-7"].Total))
}

func TestLineItems_RoundTripWithDecimals(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	item := pricing.CostLineItem{
		Category:  pricing.CategoryLodging,
		Label:     "Hotel Uzbekistan",
		UnitCount: 3,
		UnitPrice: decimal.RequireFromString("102.50"),
		SoloPrice: decimal.RequireFromString("131.25"),
	}
	require.NoError(t, store.SaveLineItem(ctx, "UZ-CLASSIC-8", "6-7", item))

	items, err := store.LineItems(ctx, "UZ-CLASSIC-8", "6-7", pricing.CategoryLodging)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, item.UnitPrice.Equal(items[0].UnitPrice))
	assert.True(t, item.SoloPrice.Equal(items[0].SoloPrice))
	assert.Equal(t, 3, items[0].UnitCount)
}

func TestCommissionTable_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCommissionRate(ctx, "UZ-CLASSIC-8", "4", decimal.RequireFromString("10")))
	require.NoError(t, store.SaveCommissionRate(ctx, "UZ-CLASSIC-8", "6-7", decimal.RequireFromString("12.5")))

	rates, err := store.CommissionTable(ctx, "UZ-CLASSIC-8")

	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.True(t, decimal.RequireFromString("12.5").Equal(rates["6-7"]))
}

// =============================================================================
// ENGINE-OVER-SQLITE TESTS
// =============================================================================

// seedDatedBooking writes a fully dated booking with a one-member roster
// holding both dates, so the anchor resolves from the roster.
func seedDatedBooking(t *testing.T, store *sqlite.Store, bookingID string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.SaveBooking(ctx, itinerary.Booking{
		ID:            bookingID,
		TourType:      "UZ-CLASSIC-8",
		DepartureDate: day(2025, time.September, 22),
		EndDate:       day(2025, time.September, 26),
	}))
	in, out := day(2025, time.September, 22), day(2025, time.September, 26)
	require.NoError(t, store.SaveTourist(ctx, bookingID, itinerary.Tourist{
		ID: bookingID + "-t-1", CheckIn: &in, CheckOut: &out,
	}))
}

func TestEngine_RegenerateAndResolveOverSQLite(t *testing.T) {
	// The full write path against the real store: expand, edit, wipe the
	// authoritative text, resolve with the cache repairing the gap.

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveBooking(ctx, itinerary.Booking{
		ID:            "bk-1",
		TourType:      "UZ-CLASSIC-8",
		DepartureDate: day(2025, time.September, 22),
		EndDate:       day(2025, time.September, 26),
	}))
	in, out := day(2025, time.September, 22), day(2025, time.September, 26)
	require.NoError(t, store.SaveTourist(ctx, "bk-1", itinerary.Tourist{ID: "t-1", CheckIn: &in, CheckOut: &out}))
	require.NoError(t, store.SaveTemplate(ctx, itinerary.MasterTemplate{
		TourType: "UZ-CLASSIC-8",
		Kind:     itinerary.KindTransport,
		Entries: []itinerary.TemplateEntry{
			{OffsetDays: 0, DayNumber: 1, Name: "Meeting at Tashkent airport"},
			{OffsetDays: 1, DayNumber: 2, Name: "Tashkent - Samarkand"},
		},
	}))

	engine := itinerary.NewEngine(store, store, store, store, nil, nil)

	created, err := engine.RegenerateFromTemplate(ctx, "bk-1", itinerary.KindTransport, false)
	require.NoError(t, err)
	require.Equal(t, 2, created)

	rows, err := store.ListRows(ctx, "bk-1", itinerary.KindTransport)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	target := rows[0]
	require.NoError(t, engine.SaveRowOverride(ctx, "bk-1", target.ID, "cached detail"))

	wiped, err := store.GetRow(ctx, "bk-1", target.ID)
	require.NoError(t, err)
	wiped.Notes = ""
	_, err = store.UpdateRow(ctx, wiped)
	require.NoError(t, err)

	resolved, err := engine.ResolveSchedule(ctx, "bk-1", itinerary.KindTransport)
	require.NoError(t, err)
	for _, r := range resolved {
		if r.ID == target.ID {
			assert.Equal(t, "cached detail", r.Notes)
		}
	}
}

func TestEngine_ReloadPreservesSavedNotesOverSQLite(t *testing.T) {
	// Reload deletes every row before re-expanding. The saved notes must
	// come back on the regenerated row in the real store, same as in
	// memory: the patch survives the dead row identity by content key.

	store := newTestStore(t)
	ctx := context.Background()
	seedDatedBooking(t, store, "bk-1")
	require.NoError(t, store.SaveTemplate(ctx, itinerary.MasterTemplate{
		TourType: "UZ-CLASSIC-8",
		Kind:     itinerary.KindTransport,
		Entries: []itinerary.TemplateEntry{
			{OffsetDays: 0, DayNumber: 1, Name: "Meeting at Tashkent airport"},
			{OffsetDays: 1, DayNumber: 2, Name: "Tashkent - Samarkand", Notes: "Afrosiyob train"},
		},
	}))
	engine := itinerary.NewEngine(store, store, store, store, nil, nil)

	_, err := engine.RegenerateFromTemplate(ctx, "bk-1", itinerary.KindTransport, false)
	require.NoError(t, err)
	rows, err := store.ListRows(ctx, "bk-1", itinerary.KindTransport)
	require.NoError(t, err)
	var samarkand itinerary.ScheduleRow
	for _, r := range rows {
		if r.Name == "Tashkent - Samarkand" {
			samarkand = r
		}
	}
	require.NoError(t, engine.SaveRowOverride(ctx, "bk-1", samarkand.ID, "customized detail"))

	created, err := engine.RegenerateFromTemplate(ctx, "bk-1", itinerary.KindTransport, true)
	require.NoError(t, err)
	require.Equal(t, 2, created)

	resolved, err := engine.ResolveSchedule(ctx, "bk-1", itinerary.KindTransport)
	require.NoError(t, err)
	found := false
	for _, r := range resolved {
		if r.Name == "Tashkent - Samarkand" {
			found = true
			assert.NotEqual(t, samarkand.ID, r.ID, "reload assigns a fresh identity")
			assert.Equal(t, "customized detail", r.Notes)
		}
	}
	require.True(t, found)
}

func TestEngine_SeedsOverridesIntoNewBookingOverSQLite(t *testing.T) {
	// A customization saved on booking A seeds the matching row of a
	// brand-new booking B of the same tour type, through the content key.

	store := newTestStore(t)
	ctx := context.Background()
	seedDatedBooking(t, store, "bk-a")
	seedDatedBooking(t, store, "bk-b")
	require.NoError(t, store.SaveTemplate(ctx, itinerary.MasterTemplate{
		TourType: "UZ-CLASSIC-8",
		Kind:     itinerary.KindTransport,
		Entries: []itinerary.TemplateEntry{
			{OffsetDays: 0, DayNumber: 1, Name: "Meeting at Tashkent airport"},
			{OffsetDays: 1, DayNumber: 2, Name: "Tashkent - Samarkand", Notes: "Afrosiyob train"},
		},
	}))
	engine := itinerary.NewEngine(store, store, store, store, nil, nil)

	_, err := engine.RegenerateFromTemplate(ctx, "bk-a", itinerary.KindTransport, false)
	require.NoError(t, err)
	rowsA, err := store.ListRows(ctx, "bk-a", itinerary.KindTransport)
	require.NoError(t, err)
	var samarkand itinerary.ScheduleRow
	for _, r := range rowsA {
		if r.Name == "Tashkent - Samarkand" {
			samarkand = r
		}
	}
	require.NoError(t, engine.SaveRowOverride(ctx, "bk-a", samarkand.ID, "Afrosiyob, coach 3"))

	_, err = engine.RegenerateFromTemplate(ctx, "bk-b", itinerary.KindTransport, false)
	require.NoError(t, err)

	rowsB, err := store.ListRows(ctx, "bk-b", itinerary.KindTransport)
	require.NoError(t, err)
	found := false
	for _, r := range rowsB {
		if r.Name == "Tashkent - Samarkand" {
			found = true
			assert.Equal(t, "Afrosiyob, coach 3", r.Notes)
		}
	}
	require.True(t, found)
}
