package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/smartattend/attendance-backend-go/internal/domain/auth"
	"github.com/smartattend/attendance-backend-go/internal/domain/leave"
	"github.com/smartattend/attendance-backend-go/internal/handler/http/middleware"
	"github.com/smartattend/attendance-backend-go/internal/handler/http/response"
)

const maxAttachmentSize = 10 << 20

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.Service
}

func NewLeaveHandler(leaveService leave.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Apply implements LeaveHandler. Accepts either a JSON body or a
// multipart form carrying an optional attachment file.
func (h *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var applyReq leave.ApplyRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
			slog.Error("Apply leave multipart parse error", "error", err)
			response.BadRequest(w, "Invalid multipart form", nil)
			return
		}

		applyReq.LeaveType = r.FormValue("leave_type")
		applyReq.StartTime = r.FormValue("start_time")
		applyReq.EndTime = r.FormValue("end_time")
		if reason := r.FormValue("reason"); reason != "" {
			applyReq.Reason = &reason
		}

		file, header, err := r.FormFile("attachment")
		if err == nil {
			defer file.Close()
			applyReq.Attachment = file
			applyReq.AttachmentFilename = header.Filename
		} else if err != http.ErrMissingFile {
			slog.Error("Apply leave attachment error", "error", err)
			response.BadRequest(w, "Invalid attachment", nil)
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&applyReq); err != nil {
			slog.Error("Apply leave decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.leaveService.Apply(r.Context(), identity, applyReq)
	if err != nil {
		slog.Error("Apply leave service error", "error", err, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted", result)
}

// Review implements LeaveHandler.
func (h *LeaveHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var reviewReq leave.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&reviewReq); err != nil {
		slog.Error("Review leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	reviewReq.ID = chi.URLParam(r, "id")

	result, err := h.leaveService.Review(r.Context(), identity, reviewReq)
	if err != nil {
		slog.Error("Review leave service error", "error", err, "application_id", reviewReq.ID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements LeaveHandler.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.leaveService.List(r.Context(), identity)
	if err != nil {
		slog.Error("List leaves service error", "error", err, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
