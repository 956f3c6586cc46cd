package handlers

import (
	"net/http"
	"time"
)

// ==================== Public Pages ====================

func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.templates.Index.Execute(w, nil)
}

func (h *Handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.templates.Login.Execute(w, LoginPageData{})
}

func (h *Handlers) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.templates.Register.Execute(w, nil)
}

func (h *Handlers) handleEventsPage(w http.ResponseWriter, r *http.Request) {
	h.templates.Events.Execute(w, nil)
}

func (h *Handlers) handleCartPage(w http.ResponseWriter, r *http.Request) {
	h.templates.Cart.Execute(w, nil)
}

func (h *Handlers) handleAccountPage(w http.ResponseWriter, r *http.Request) {
	h.templates.Account.Execute(w, nil)
}

// ==================== Admin Pages ====================

func (h *Handlers) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	data := AdminPageData{
		Title:     "Admin Dashboard",
		PageTitle: "Admin Dashboard",
		ActiveNav: "dashboard",
	}
	h.templates.AdminDashboard.ExecuteTemplate(w, "admin", data)
}

func (h *Handlers) handleAdminEvents(w http.ResponseWriter, r *http.Request) {
	data := AdminPageData{
		Title:     "Manage Events",
		PageTitle: "Manage Events",
		ActiveNav: "events",
	}
	h.templates.AdminEvents.ExecuteTemplate(w, "admin", data)
}

func (h *Handlers) handleAdminSettings(w http.ResponseWriter, r *http.Request) {
	data := AdminPageData{
		Title:     "Admin Settings",
		PageTitle: "Admin Settings",
		ActiveNav: "settings",
	}
	h.templates.AdminSettings.ExecuteTemplate(w, "admin", data)
}

// ==================== Events ====================

func (h *Handlers) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		respondError(w, BadRequest("Invalid starts_at: must be RFC3339"))
		return
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		respondError(w, BadRequest("Invalid ends_at: must be RFC3339"))
		return
	}

	event, err := h.Event.CreateEvent(r.Context(), req.Name, startsAt, endsAt)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, toEventResponse(event))
}

// handleDrawEvent closes an event by drawing a winner from its pool
func (h *Handlers) handleDrawEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Draw.Draw(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// ==================== Sales Control ====================

func (h *Handlers) handleSetSalesStatus(w http.ResponseWriter, r *http.Request) {
	var req SalesStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Settings.SetSalesOpen(r.Context(), req.Open); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, SalesStatusResponse{Open: req.Open})
}

func (h *Handlers) handleGetSalesStatus(w http.ResponseWriter, r *http.Request) {
	open, err := h.Settings.IsSalesOpen(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, SalesStatusResponse{Open: open})
}

// ==================== Stats & Settings ====================

func (h *Handlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Settings.GetStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, stats)
}

func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	baseURL, err := h.Settings.GetBaseURL(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	open, err := h.Settings.IsSalesOpen(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, SettingsResponse{BaseURL: baseURL, SalesOpen: open})
}

func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if req.BaseURL != "" {
		if err := h.Settings.SetBaseURL(r.Context(), req.BaseURL); err != nil {
			respondError(w, err)
			return
		}
	}
	respondSuccess(w, "Settings updated")
}
