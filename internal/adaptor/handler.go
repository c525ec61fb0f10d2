package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/roygutt18/quiteSlot/internal/remote"
	"github.com/roygutt18/quiteSlot/internal/session"
	"github.com/roygutt18/quiteSlot/internal/usecase"
	"github.com/roygutt18/quiteSlot/pkg/middleware"
	"github.com/roygutt18/quiteSlot/pkg/utils"

	"go.uber.org/zap"
)

// Handler serves the wizard intent API. Every endpoint mutates (or reads) the
// caller's session orchestrator and answers with a fresh render snapshot, so
// the renderer never tracks state of its own.
type Handler struct {
	service *usecase.Service
	log     *zap.Logger
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// currentSession pulls the session installed by the WizardSession middleware.
func (h *Handler) currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.log.Error("Request reached handler without a session", zap.String("path", r.URL.Path))
		utils.ResponseInternalError(w, "Session unavailable")
		return nil, false
	}
	return sess, true
}

// decode reads and validates a JSON request body.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// respondState answers with the session's current render snapshot.
func (h *Handler) respondState(w http.ResponseWriter, sess *session.Session, message string) {
	utils.ResponseSuccess(w, message, h.service.Wizard.State(sess))
}

// handleServiceError maps service failures onto HTTP responses. Remote
// rejections pass their message through verbatim so the renderer can show
// exactly what the booking API said.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var apiErr *remote.APIError
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &apiErr):
		h.log.Warn(operation+" rejected by booking API", zap.Error(err))
		utils.ResponseUnprocessable(w, apiErr.Error())

	case errors.As(err, &validationErr):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrAuthRequired):
		h.log.Warn(operation+" without authentication", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrCooldownActive):
		h.log.Warn(operation+" during resend cooldown", zap.Error(err))
		utils.ResponseTooManyRequests(w, err.Error())

	case errors.Is(err, usecase.ErrNameRequired),
		errors.Is(err, usecase.ErrServiceRequired),
		errors.Is(err, usecase.ErrDateRequired),
		errors.Is(err, usecase.ErrNoPendingPhone):
		h.log.Warn(operation+" out of order", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrDateUnavailable),
		errors.Is(err, usecase.ErrSlotUnavailable),
		errors.Is(err, usecase.ErrUnknownService):
		h.log.Warn(operation+" refused", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadGateway(w, "Could not reach the booking service. Please try again.")
	}
}
