package manualcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/smartattend/attendance-backend-go/internal/domain/checkin"
	"github.com/smartattend/attendance-backend-go/internal/domain/latealert"
	"github.com/smartattend/attendance-backend-go/internal/domain/manualcheck"
	"github.com/smartattend/attendance-backend-go/internal/domain/user"
	"github.com/smartattend/attendance-backend-go/internal/pkg/database"
	"github.com/smartattend/attendance-backend-go/internal/pkg/validator"
	"github.com/smartattend/attendance-backend-go/internal/service/scope"
	"github.com/smartattend/attendance-backend-go/internal/service/timerule"
)

type ServiceImpl struct {
	tx         database.TxManager
	requests   manualcheck.Repository
	records    checkin.Repository
	rules      timerule.Resolver
	dispatcher latealert.Dispatcher
	authorizer scope.Authorizer
}

func NewManualCheckService(
	tx database.TxManager,
	requests manualcheck.Repository,
	records checkin.Repository,
	rules timerule.Resolver,
	dispatcher latealert.Dispatcher,
	authorizer scope.Authorizer,
) *ServiceImpl {
	return &ServiceImpl{
		tx:         tx,
		requests:   requests,
		records:    records,
		rules:      rules,
		dispatcher: dispatcher,
		authorizer: authorizer,
	}
}

// monthWindow is the calendar month containing ts:
// [first-of-month 00:00:00, first-of-next-month 00:00:00). AddDate
// rolls December into January of the following year.
func monthWindow(ts time.Time) (time.Time, time.Time) {
	from := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
	return from, from.AddDate(0, 1, 0)
}

// Submit implements manualcheck.Service.
func (s *ServiceImpl) Submit(ctx context.Context, identity user.Identity, req manualcheck.SubmitRequest) (manualcheck.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return manualcheck.RequestResponse{}, err
	}

	checkType, ok := checkin.NormalizeType(req.CheckType)
	if !ok {
		return manualcheck.RequestResponse{}, checkin.ErrInvalidCheckType
	}

	requestedTS, _ := validator.IsValidDateTime(req.RequestedTS)

	var created manualcheck.Request
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		from, to := monthWindow(requestedTS)
		count, err := s.requests.CountNonRejectedInWindow(ctx, identity.UserID, from, to)
		if err != nil {
			return err
		}
		if count >= manualcheck.MonthlyQuota {
			return manualcheck.ErrQuotaExceeded
		}

		created, err = s.requests.Create(ctx, manualcheck.Request{
			UserID:      identity.UserID,
			CheckType:   checkType,
			RequestedTS: requestedTS,
			Reason:      req.Reason,
			Status:      manualcheck.StatusPending,
		})
		return err
	})
	if err != nil {
		return manualcheck.RequestResponse{}, err
	}

	return toResponse(created), nil
}

// Review implements manualcheck.Service. Status transition, record
// materialization and alert insert are one transaction: if any step
// fails the request stays PENDING for a future retry.
func (s *ServiceImpl) Review(ctx context.Context, identity user.Identity, req manualcheck.ReviewRequest) (manualcheck.RequestResponse, error) {
	var target manualcheck.Status
	switch manualcheck.ReviewAction(req.Action) {
	case manualcheck.ActionApprove:
		target = manualcheck.StatusApproved
	case manualcheck.ActionReject:
		target = manualcheck.StatusRejected
	default:
		return manualcheck.RequestResponse{}, manualcheck.ErrInvalidAction
	}

	var reviewed manualcheck.Request
	var notice *latealert.Notice

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.requests.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if request.Status != manualcheck.StatusPending {
			return manualcheck.ErrAlreadyProcessed
		}

		// Conditional update: a concurrent reviewer who got here first
		// wins and this call observes the already-taken transition.
		won, err := s.requests.TransitionStatus(ctx, req.ID, target)
		if err != nil {
			return err
		}
		if !won {
			return manualcheck.ErrAlreadyProcessed
		}

		request.Status = target
		reviewed = request

		if target != manualcheck.StatusApproved {
			return nil
		}

		// Materialize the check-in with the same lateness semantics as
		// a direct check-in, evaluated against the requested timestamp.
		isLate := false
		if request.CheckType == checkin.TypeIn {
			rule, err := s.rules.Resolve(ctx, request.UserID)
			if err != nil {
				return err
			}
			isLate = rule.IsLate(request.RequestedTS)
		}

		exists, err := s.records.Exists(ctx, request.UserID, request.CheckType, request.RequestedTS)
		if err != nil {
			return err
		}
		if exists {
			// Identical record already materialized; approval stays
			// idempotent.
			return nil
		}

		record, err := s.records.Create(ctx, checkin.Record{
			UserID:    request.UserID,
			CheckType: request.CheckType,
			Timestamp: request.RequestedTS,
			IsLate:    isLate,
		})
		if err != nil {
			return fmt.Errorf("failed to materialize check-in record: %w", err)
		}

		if isLate {
			notice, err = s.dispatcher.NotifyIfNeeded(ctx, request.UserID, &record.ID, request.RequestedTS)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return manualcheck.RequestResponse{}, err
	}

	s.dispatcher.Queue(notice)

	return toResponse(reviewed), nil
}

// List implements manualcheck.Service.
func (s *ServiceImpl) List(ctx context.Context, identity user.Identity) ([]manualcheck.RequestResponse, error) {
	visibility, err := s.authorizer.DepartmentScopeFor(ctx, identity)
	if err != nil {
		return nil, err
	}
	if visibility.None {
		return []manualcheck.RequestResponse{}, nil
	}

	requests, err := s.requests.List(ctx, manualcheck.ListFilter{
		UserID:       visibility.UserID,
		DepartmentID: visibility.DepartmentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list manual check requests: %w", err)
	}

	responses := make([]manualcheck.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toResponse(request))
	}

	return responses, nil
}

func toResponse(r manualcheck.Request) manualcheck.RequestResponse {
	return manualcheck.RequestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		UserName:    r.UserName,
		CheckType:   string(r.CheckType),
		RequestedTS: r.RequestedTS.Format(time.RFC3339),
		Reason:      r.Reason,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}
