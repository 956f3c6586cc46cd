package handlers

import (
	"net/http"
)

// handleAddToCart creates an unbought ticket for the authenticated user
func (h *Handlers) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req CartAddRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ticket, err := h.Ticket.AddToCart(r.Context(), userID, req.EventID, req.Value)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, toTicketResponse(ticket))
}

// handleGetCart lists the user's unbought tickets
func (h *Handlers) handleGetCart(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	tickets, err := h.Ticket.ListCart(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, toTicketResponses(tickets))
}

// handleCheckout charges the card and settles the selected cart tickets
func (h *Handlers) handleCheckout(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Settlement.Checkout(r.Context(), userID, req.TicketIDs, req.CardToken)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleSettle retries settlement for tickets whose payment is already
// confirmed. Redelivered confirmations are reported as already settled.
func (h *Handlers) handleSettle(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req SettleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Settlement.SettleByID(r.Context(), userID, req.TicketIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleTicketQR serves a PNG QR image linking to the ticket
func (h *Handlers) handleTicketQR(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	ticketID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	png, err := h.Ticket.TicketQRImage(r.Context(), userID, ticketID)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
