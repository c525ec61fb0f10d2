package adaptor

import (
	"net/http"

	"github.com/roygutt18/quiteSlot/internal/dto/request"
)

// Phone handles POST /api/wizard/phone
func (h *Handler) Phone(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	var req request.PhoneRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.Auth.StartAuth(r.Context(), sess, req.Phone); err != nil {
		h.handleServiceError(w, err, "request code")
		return
	}

	h.respondState(w, sess, "Code sent")
}

// Verify handles POST /api/wizard/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	var req request.VerifyRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.Auth.VerifyCode(r.Context(), sess, req.Code, req.Name); err != nil {
		h.handleServiceError(w, err, "verify code")
		return
	}

	h.respondState(w, sess, "Code verified")
}

// Resend handles POST /api/wizard/resend
func (h *Handler) Resend(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	if err := h.service.Auth.Resend(r.Context(), sess); err != nil {
		h.handleServiceError(w, err, "resend code")
		return
	}

	h.respondState(w, sess, "Code sent")
}

// Name handles POST /api/wizard/name
func (h *Handler) Name(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	var req request.NameRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.Auth.SaveName(r.Context(), sess, req.Name); err != nil {
		h.handleServiceError(w, err, "save name")
		return
	}

	h.respondState(w, sess, "Name saved")
}

// Logout handles POST /api/wizard/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	if err := h.service.Auth.RequestLogout(sess); err != nil {
		h.handleServiceError(w, err, "request logout")
		return
	}

	h.respondState(w, sess, "Confirmation required")
}
