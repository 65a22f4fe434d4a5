package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartattend/attendance-backend-go/internal/domain/auth"
	"github.com/smartattend/attendance-backend-go/internal/domain/manualcheck"
	"github.com/smartattend/attendance-backend-go/internal/handler/http/middleware"
	"github.com/smartattend/attendance-backend-go/internal/handler/http/response"
)

type ManualCheckHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type ManualCheckHandlerImpl struct {
	manualCheckService manualcheck.Service
}

func NewManualCheckHandler(manualCheckService manualcheck.Service) ManualCheckHandler {
	return &ManualCheckHandlerImpl{manualCheckService: manualCheckService}
}

// Submit implements ManualCheckHandler.
func (h *ManualCheckHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var submitReq manualcheck.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("Submit manual check decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.manualCheckService.Submit(r.Context(), identity, submitReq)
	if err != nil {
		slog.Error("Submit manual check service error", "error", err, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual check-in request submitted", result)
}

// Review implements ManualCheckHandler.
func (h *ManualCheckHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var reviewReq manualcheck.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&reviewReq); err != nil {
		slog.Error("Review manual check decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	reviewReq.ID = chi.URLParam(r, "id")

	result, err := h.manualCheckService.Review(r.Context(), identity, reviewReq)
	if err != nil {
		slog.Error("Review manual check service error", "error", err, "request_id", reviewReq.ID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ManualCheckHandler.
func (h *ManualCheckHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.manualCheckService.List(r.Context(), identity)
	if err != nil {
		slog.Error("List manual checks service error", "error", err, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
