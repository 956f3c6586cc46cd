package handlers

import (
	"net/http"
)

// handleListEvents returns all events, open and ended
func (h *Handlers) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Event.ListEvents(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, toEventResponses(events))
}

// handleListUpcomingEvents returns events that have not yet been drawn
func (h *Handlers) handleListUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Event.ListUpcoming(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, toEventResponses(events))
}

// handleGetEvent returns one event with its pool summary
func (h *Handlers) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	detail, err := h.Event.GetEventDetail(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, EventDetailResponse{
		EventResponse: toEventResponse(&detail.Event),
		PoolSize:      detail.PoolSize,
		Participants:  detail.Participants,
		EntryCounts:   detail.EntryCounts,
	})
}
