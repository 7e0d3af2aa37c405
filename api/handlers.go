/*
handlers.go - HTTP API handlers for the itinerary & pricing engine

PURPOSE:
  Exposes the engine via REST. Handles HTTP request/response and JSON
  serialization, delegates everything else to the engine and resolver.

ENDPOINTS:
  Schedule:
    GET    /api/bookings/{id}/schedule              Ordered, gap-repaired rows
    POST   /api/bookings/{id}/schedule/regenerate   Idempotent expansion
    POST   /api/bookings/{id}/schedule/save-as-template
    PUT    /api/bookings/{id}/rows/{rowID}/notes    Dual-store save
    DELETE /api/bookings/{id}/rows/{rowID}

  Costing:
    GET    /api/bookings/{id}/price                 Fallback-chain price
    GET    /api/bookings/{id}/rooms                 Room-type breakdown

  Templates:
    GET    /api/templates/{tourType}/{kind}
    PUT    /api/templates/{tourType}/{kind}

ERROR HANDLING:
  - 400: invalid kind or malformed body
  - 404: booking/row/template not found
  - 502: authoritative store write failed
  - 500: everything else
  Deferred expansion (no anchor dates yet) is NOT an error: it returns
  200 with {"created": 0, "deferred": true}.
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/itinerary"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/pricing"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/rooming"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// PriceResolver is the slice of the pricing resolver the handlers need.
type PriceResolver interface {
	Resolve(ctx context.Context, tourType string, headcount int) (pricing.ResolvedPrice, error)
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine    *itinerary.Engine
	Prices    PriceResolver
	Bookings  itinerary.BookingStore
	Roster    itinerary.RosterStore
	Templates itinerary.TemplateStore
}

// NewHandler creates a handler over the engine and its stores.
func NewHandler(engine *itinerary.Engine, prices PriceResolver, bookings itinerary.BookingStore, roster itinerary.RosterStore, templates itinerary.TemplateStore) *Handler {
	return &Handler{
		Engine:    engine,
		Prices:    prices,
		Bookings:  bookings,
		Roster:    roster,
		Templates: templates,
	}
}

// =============================================================================
// SCHEDULE ENDPOINTS
// =============================================================================

// GetSchedule returns a booking's rows in canonical display order.
// ?kind=transport|hotel, default transport.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	kind := kindParam(r.URL.Query().Get("kind"))

	rows, err := h.Engine.ResolveSchedule(r.Context(), bookingID, kind)
	if err != nil {
		writeEngineError(w, "failed to resolve schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleRowDTOs(rows))
}

// Regenerate expands the master template into the booking's schedule.
func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var req RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	created, err := h.Engine.RegenerateFromTemplate(r.Context(), bookingID, kindParam(req.Kind), req.Reload)
	if err != nil {
		if itinerary.IsDeferred(err) {
			writeJSON(w, http.StatusOK, RegenerateResponse{Created: created, Deferred: true})
			return
		}
		writeEngineError(w, "failed to regenerate schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, RegenerateResponse{Created: created})
}

// SaveRowNotes persists a user edit of a row's free text to both stores.
func (h *Handler) SaveRowNotes(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	rowID, err := uuid.Parse(chi.URLParam(r, "rowID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid row id", err)
		return
	}

	var req SaveNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.Engine.SaveRowOverride(r.Context(), bookingID, rowID, req.Text); err != nil {
		writeEngineError(w, "failed to save notes", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// DeleteRow removes a row and cleans up its cache entry.
func (h *Handler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	rowID, err := uuid.Parse(chi.URLParam(r, "rowID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid row id", err)
		return
	}

	if err := h.Engine.DeleteRow(r.Context(), bookingID, rowID); err != nil {
		writeEngineError(w, "failed to delete row", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveAsTemplate promotes the booking's current rows to the tour type's
// master template.
func (h *Handler) SaveAsTemplate(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var req SaveAsTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.Engine.SaveAsTemplate(r.Context(), bookingID, kindParam(req.Kind)); err != nil {
		writeEngineError(w, "failed to save template", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// =============================================================================
// COSTING ENDPOINTS
// =============================================================================

// GetPrice resolves the booking's total price via the fallback chain.
func (h *Handler) GetPrice(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	booking, err := h.Bookings.Booking(r.Context(), bookingID)
	if err != nil {
		writeEngineError(w, "failed to load booking", err)
		return
	}
	roster, err := h.Roster.Roster(r.Context(), bookingID)
	if err != nil {
		writeEngineError(w, "failed to load roster", err)
		return
	}

	price, err := h.Prices.Resolve(r.Context(), string(booking.TourType), len(roster))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve price", err)
		return
	}
	writeJSON(w, http.StatusOK, toPriceDTO(price, len(roster)))
}

// GetRooms returns the room-type counts for the booking's roster.
func (h *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	roster, err := h.Roster.Roster(r.Context(), bookingID)
	if err != nil {
		writeEngineError(w, "failed to load roster", err)
		return
	}

	prefs := make([]string, len(roster))
	for i, t := range roster {
		prefs[i] = t.RoomPreference
	}
	writeJSON(w, http.StatusOK, toRoomsDTO(rooming.Breakdown(prefs)))
}

// =============================================================================
// TEMPLATE ENDPOINTS
// =============================================================================

// GetTemplate returns the master template for a (tour type, kind).
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tt := itinerary.TourTypeCode(chi.URLParam(r, "tourType"))
	kind := kindParam(chi.URLParam(r, "kind"))

	tpl, err := h.Templates.Template(r.Context(), tt, kind)
	if err != nil {
		writeEngineError(w, "failed to load template", err)
		return
	}
	writeJSON(w, http.StatusOK, toTemplateDTO(tpl))
}

// PutTemplate replaces the master template for a (tour type, kind).
func (h *Handler) PutTemplate(w http.ResponseWriter, r *http.Request) {
	tt := chi.URLParam(r, "tourType")
	kind := kindParam(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "invalid kind", nil)
		return
	}

	var dto TemplateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	dto.TourType = tt
	dto.Kind = string(kind)

	if err := h.Templates.SaveTemplate(r.Context(), fromTemplateDTO(dto)); err != nil {
		writeError(w, http.StatusBadGateway, "failed to save template", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// =============================================================================
// HELPERS
// =============================================================================

// kindParam maps a query/body kind string to a RowKind, defaulting to
// transport. Unknown values pass through so the engine's validation can
// reject them with a clear error.
func kindParam(s string) itinerary.RowKind {
	if s == "" {
		return itinerary.KindTransport
	}
	return itinerary.RowKind(s)
}

func writeEngineError(w http.ResponseWriter, message string, err error) {
	switch {
	case itinerary.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	case itinerary.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, itinerary.ErrAuthoritativeWriteFailed):
		writeError(w, http.StatusBadGateway, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
