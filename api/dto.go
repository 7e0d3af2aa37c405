/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/itinerary"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/pricing"
	"github.com/ulugbekdjahangirov/Orient-Insight-sub003/rooming"
)

// =============================================================================
// SCHEDULE
// =============================================================================

// ScheduleRowDTO represents one leg or stay in API responses.
type ScheduleRowDTO struct {
	ID         string `json:"id"`
	DayNumber  int    `json:"day_number"`
	Date       string `json:"date"`
	Name       string `json:"name"`
	Notes      string `json:"notes,omitempty"`
	PartyCount *int   `json:"party_count,omitempty"`
}

func toScheduleRowDTOs(rows []itinerary.ScheduleRow) []ScheduleRowDTO {
	out := make([]ScheduleRowDTO, len(rows))
	for i, r := range rows {
		out[i] = ScheduleRowDTO{
			ID:         r.ID.String(),
			DayNumber:  r.DayNumber,
			Date:       r.Date.Format("2006-01-02"),
			Name:       r.Name,
			Notes:      r.Notes,
			PartyCount: r.PartyCount,
		}
	}
	return out
}

// RegenerateRequest triggers template expansion for one schedule kind.
// Reload is the explicit "delete and re-expand" action.
type RegenerateRequest struct {
	Kind   string `json:"kind"`
	Reload bool   `json:"reload,omitempty"`
}

// RegenerateResponse reports what expansion did. Deferred is true when
// the booking has no usable anchor dates yet.
type RegenerateResponse struct {
	Created  int  `json:"created"`
	Deferred bool `json:"deferred,omitempty"`
}

// SaveNotesRequest carries a user edit of a row's free text.
type SaveNotesRequest struct {
	Text string `json:"text"`
}

// SaveAsTemplateRequest promotes a booking's schedule to its tour type's
// master template.
type SaveAsTemplateRequest struct {
	Kind string `json:"kind"`
}

// =============================================================================
// TEMPLATES
// =============================================================================

// TemplateEntryDTO is one line of a master plan.
type TemplateEntryDTO struct {
	OffsetDays int    `json:"offset_days"`
	DayNumber  int    `json:"day_number"`
	Name       string `json:"name"`
	Notes      string `json:"notes,omitempty"`
}

// TemplateDTO is a master template in API form.
type TemplateDTO struct {
	TourType               string             `json:"tour_type"`
	Kind                   string             `json:"kind"`
	FirstSegmentOffsetDays int                `json:"first_segment_offset_days,omitempty"`
	Entries                []TemplateEntryDTO `json:"entries"`
}

func toTemplateDTO(tpl itinerary.MasterTemplate) TemplateDTO {
	dto := TemplateDTO{
		TourType:               string(tpl.TourType),
		Kind:                   string(tpl.Kind),
		FirstSegmentOffsetDays: tpl.FirstSegmentOffsetDays,
		Entries:                make([]TemplateEntryDTO, len(tpl.Entries)),
	}
	for i, e := range tpl.Entries {
		dto.Entries[i] = TemplateEntryDTO{
			OffsetDays: e.OffsetDays,
			DayNumber:  e.DayNumber,
			Name:       e.Name,
			Notes:      e.Notes,
		}
	}
	return dto
}

func fromTemplateDTO(dto TemplateDTO) itinerary.MasterTemplate {
	tpl := itinerary.MasterTemplate{
		TourType:               itinerary.TourTypeCode(dto.TourType),
		Kind:                   itinerary.RowKind(dto.Kind),
		FirstSegmentOffsetDays: dto.FirstSegmentOffsetDays,
		Entries:                make([]itinerary.TemplateEntry, len(dto.Entries)),
	}
	for i, e := range dto.Entries {
		tpl.Entries[i] = itinerary.TemplateEntry{
			OffsetDays: e.OffsetDays,
			DayNumber:  e.DayNumber,
			Name:       e.Name,
			Notes:      e.Notes,
		}
	}
	return tpl
}

// =============================================================================
// PRICING & ROOMS
// =============================================================================

// PriceDTO is the resolved price for a booking. Flagged marks a zero
// placeholder awaiting operator attention.
type PriceDTO struct {
	TierID              string `json:"tier_id"`
	Headcount           int    `json:"headcount"`
	Total               string `json:"total"`
	SingleRoomSurcharge string `json:"single_room_surcharge"`
	Flagged             bool   `json:"flagged,omitempty"`
}

func toPriceDTO(p pricing.ResolvedPrice, headcount int) PriceDTO {
	return PriceDTO{
		TierID:              p.TierID,
		Headcount:           headcount,
		Total:               p.Total.String(),
		SingleRoomSurcharge: p.SingleRoomSurcharge.String(),
		Flagged:             p.Flagged,
	}
}

// RoomsDTO is the room-type breakdown for a booking's roster.
type RoomsDTO struct {
	Double int `json:"double"`
	Twin   int `json:"twin"`
	Single int `json:"single"`
}

func toRoomsDTO(c rooming.RoomCounts) RoomsDTO {
	return RoomsDTO{Double: c.Double, Twin: c.Twin, Single: c.Single}
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
