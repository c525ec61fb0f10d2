package adaptor

import (
	"net/http"

	"github.com/roygutt18/quiteSlot/internal/dto/request"
	"github.com/roygutt18/quiteSlot/internal/wizard"
)

// State handles GET /api/wizard/state. The first call on a fresh session also
// loads the remote identity and catalog.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	h.service.Auth.Bootstrap(r.Context(), sess)
	h.respondState(w, sess, "Wizard state")
}

// Mode handles POST /api/wizard/mode
func (h *Handler) Mode(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	var req request.ModeRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.Wizard.SetMode(r.Context(), sess, wizard.Mode(req.Mode)); err != nil {
		h.handleServiceError(w, err, "set mode")
		return
	}

	h.respondState(w, sess, "Mode selected")
}

// Back handles POST /api/wizard/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	h.service.Wizard.Back(sess)
	h.respondState(w, sess, "Went back")
}

// Reset handles POST /api/wizard/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	h.service.Wizard.Reset(sess)
	h.respondState(w, sess, "Wizard reset")
}

// Month handles POST /api/wizard/month
func (h *Handler) Month(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	var req request.MonthRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.service.Wizard.ShiftMonth(sess, req.Direction)
	h.respondState(w, sess, "Month shifted")
}

// Service handles POST /api/wizard/service
func (h *Handler) Service(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	var req request.ServiceRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.Wizard.ChooseService(sess, req.ServiceID); err != nil {
		h.handleServiceError(w, err, "choose service")
		return
	}

	h.respondState(w, sess, "Service selected")
}

// Date handles POST /api/wizard/date
func (h *Handler) Date(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	var req request.DateRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.Wizard.ChooseDate(r.Context(), sess, req.Date); err != nil {
		h.handleServiceError(w, err, "choose date")
		return
	}

	h.respondState(w, sess, "Date selected")
}

// Slot handles POST /api/wizard/slot
func (h *Handler) Slot(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	var req request.SlotRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.Wizard.ChooseSlot(sess, req.Time); err != nil {
		h.handleServiceError(w, err, "choose slot")
		return
	}

	h.respondState(w, sess, "Confirmation required")
}

// CancelList handles POST /api/wizard/cancel-list, refreshing the cancellable
// appointments for the current user.
func (h *Handler) CancelList(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	if err := h.service.Wizard.LoadCancelList(r.Context(), sess); err != nil {
		h.handleServiceError(w, err, "load appointments")
		return
	}

	h.respondState(w, sess, "Appointments loaded")
}

// Cancel handles POST /api/wizard/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	var req request.CancelRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.Wizard.RequestCancel(sess, req.AppointmentID); err != nil {
		h.handleServiceError(w, err, "request cancellation")
		return
	}

	h.respondState(w, sess, "Confirmation required")
}

// Confirm handles POST /api/wizard/confirm, resolving the pending prompt.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	var req request.ConfirmRequest
	if !h.decode(w, r, &req) {
		return
	}

	ran, err := h.service.Wizard.ResolvePrompt(r.Context(), sess, req.Accept)
	if err != nil {
		h.handleServiceError(w, err, "resolve confirmation")
		return
	}

	message := "Dismissed"
	if ran {
		message = "Done"
	}
	h.respondState(w, sess, message)
}
