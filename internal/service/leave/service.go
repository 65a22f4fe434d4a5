package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smartattend/attendance-backend-go/internal/domain/leave"
	"github.com/smartattend/attendance-backend-go/internal/domain/user"
	"github.com/smartattend/attendance-backend-go/internal/pkg/database"
	"github.com/smartattend/attendance-backend-go/internal/service/file"
	"github.com/smartattend/attendance-backend-go/internal/service/scope"
)

type ServiceImpl struct {
	tx           database.TxManager
	applications leave.Repository
	fileService  file.FileService
	authorizer   scope.Authorizer
}

func NewLeaveService(
	tx database.TxManager,
	applications leave.Repository,
	fileService file.FileService,
	authorizer scope.Authorizer,
) *ServiceImpl {
	return &ServiceImpl{
		tx:           tx,
		applications: applications,
		fileService:  fileService,
		authorizer:   authorizer,
	}
}

// Apply implements leave.Service.
func (s *ServiceImpl) Apply(ctx context.Context, identity user.Identity, req leave.ApplyRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	start, end := req.Window()

	var attachmentPath *string
	if req.Attachment != nil {
		stored, err := s.fileService.UploadLeaveAttachment(ctx, identity.UserID, req.Attachment, req.AttachmentFilename)
		if err != nil {
			return leave.ApplicationResponse{}, err
		}
		attachmentPath = &stored
	}

	created, err := s.applications.Create(ctx, leave.Application{
		UserID:         identity.UserID,
		LeaveType:      strings.TrimSpace(req.LeaveType),
		StartTime:      start,
		EndTime:        end,
		Reason:         req.Reason,
		AttachmentPath: attachmentPath,
		Status:         leave.StatusPending,
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	return toResponse(created), nil
}

// Review implements leave.Service. Unlike manual check approval, leave
// review never materializes check-in rows.
func (s *ServiceImpl) Review(ctx context.Context, identity user.Identity, req leave.ReviewRequest) (leave.ApplicationResponse, error) {
	var target leave.Status
	switch leave.ReviewAction(req.Action) {
	case leave.ActionApprove:
		target = leave.StatusApproved
	case leave.ActionReject:
		target = leave.StatusRejected
	default:
		return leave.ApplicationResponse{}, leave.ErrInvalidAction
	}

	var reviewed leave.Application
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		application, err := s.applications.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if application.Status != leave.StatusPending {
			return leave.ErrAlreadyProcessed
		}

		won, err := s.applications.Review(ctx, req.ID, target, identity.UserID)
		if err != nil {
			return err
		}
		if !won {
			return leave.ErrAlreadyProcessed
		}

		application.Status = target
		application.ReviewerID = &identity.UserID
		application.UpdatedAt = time.Now()
		reviewed = application
		return nil
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	return toResponse(reviewed), nil
}

// List implements leave.Service.
func (s *ServiceImpl) List(ctx context.Context, identity user.Identity) ([]leave.ApplicationResponse, error) {
	visibility, err := s.authorizer.DepartmentScopeFor(ctx, identity)
	if err != nil {
		return nil, err
	}
	if visibility.None {
		return []leave.ApplicationResponse{}, nil
	}

	applications, err := s.applications.List(ctx, leave.ListFilter{
		UserID:       visibility.UserID,
		DepartmentID: visibility.DepartmentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}

	responses := make([]leave.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		responses = append(responses, toResponse(application))
	}

	return responses, nil
}

func toResponse(a leave.Application) leave.ApplicationResponse {
	return leave.ApplicationResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		UserName:       a.UserName,
		LeaveType:      a.LeaveType,
		StartTime:      a.StartTime.Format(time.RFC3339),
		EndTime:        a.EndTime.Format(time.RFC3339),
		Reason:         a.Reason,
		AttachmentPath: a.AttachmentPath,
		Status:         string(a.Status),
		ReviewerID:     a.ReviewerID,
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
}
