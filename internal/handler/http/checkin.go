package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/smartattend/attendance-backend-go/internal/domain/auth"
	"github.com/smartattend/attendance-backend-go/internal/domain/checkin"
	"github.com/smartattend/attendance-backend-go/internal/handler/http/middleware"
	"github.com/smartattend/attendance-backend-go/internal/handler/http/response"
)

type CheckinHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type CheckinHandlerImpl struct {
	checkinService checkin.Service
}

func NewCheckinHandler(checkinService checkin.Service) CheckinHandler {
	return &CheckinHandlerImpl{checkinService: checkinService}
}

// Record implements CheckinHandler.
func (h *CheckinHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var recordReq checkin.RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&recordReq); err != nil {
		slog.Error("Record decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checkinService.Record(r.Context(), identity, recordReq)
	if err != nil {
		slog.Error("Record service error", "error", err, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in recorded", result)
}

// List implements CheckinHandler.
func (h *CheckinHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var listReq checkin.ListRequest
	if from := r.URL.Query().Get("from"); from != "" {
		listReq.From = &from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		listReq.To = &to
	}

	result, err := h.checkinService.List(r.Context(), identity, listReq)
	if err != nil {
		slog.Error("List checkins service error", "error", err, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
