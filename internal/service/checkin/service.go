package checkin

import (
	"context"
	"fmt"
	"time"

	"github.com/smartattend/attendance-backend-go/internal/domain/checkin"
	"github.com/smartattend/attendance-backend-go/internal/domain/latealert"
	"github.com/smartattend/attendance-backend-go/internal/domain/user"
	"github.com/smartattend/attendance-backend-go/internal/pkg/database"
	"github.com/smartattend/attendance-backend-go/internal/pkg/validator"
	"github.com/smartattend/attendance-backend-go/internal/service/scope"
	"github.com/smartattend/attendance-backend-go/internal/service/timerule"
)

type ServiceImpl struct {
	tx         database.TxManager
	records    checkin.Repository
	rules      timerule.Resolver
	dispatcher latealert.Dispatcher
	authorizer scope.Authorizer
	now        func() time.Time
}

func NewCheckinService(
	tx database.TxManager,
	records checkin.Repository,
	rules timerule.Resolver,
	dispatcher latealert.Dispatcher,
	authorizer scope.Authorizer,
) *ServiceImpl {
	return &ServiceImpl{
		tx:         tx,
		records:    records,
		rules:      rules,
		dispatcher: dispatcher,
		authorizer: authorizer,
		now:        time.Now,
	}
}

// Record implements checkin.Service. The record insert and the late
// alert both happen inside one transaction; the alert send is queued
// only after the transaction commits.
func (s *ServiceImpl) Record(ctx context.Context, identity user.Identity, req checkin.RecordRequest) (checkin.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return checkin.RecordResponse{}, err
	}

	checkType, ok := checkin.NormalizeType(req.CheckType)
	if !ok {
		return checkin.RecordResponse{}, checkin.ErrInvalidCheckType
	}

	now := s.now()

	var persisted checkin.Record
	var notice *latealert.Notice

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		isLate := false
		if checkType == checkin.TypeIn {
			rule, err := s.rules.Resolve(ctx, identity.UserID)
			if err != nil {
				return err
			}
			isLate = rule.IsLate(now)
		}

		created, err := s.records.Create(ctx, checkin.Record{
			UserID:    identity.UserID,
			CheckType: checkType,
			Timestamp: now,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			IsLate:    isLate,
		})
		if err != nil {
			return fmt.Errorf("failed to persist check-in: %w", err)
		}
		persisted = created

		if isLate {
			notice, err = s.dispatcher.NotifyIfNeeded(ctx, identity.UserID, &created.ID, now)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return checkin.RecordResponse{}, err
	}

	s.dispatcher.Queue(notice)

	return toResponse(persisted), nil
}

// List implements checkin.Service.
func (s *ServiceImpl) List(ctx context.Context, identity user.Identity, req checkin.ListRequest) ([]checkin.RecordResponse, error) {
	visibility, err := s.authorizer.DepartmentScopeFor(ctx, identity)
	if err != nil {
		return nil, err
	}
	if visibility.None {
		return []checkin.RecordResponse{}, nil
	}

	filter := checkin.ListFilter{
		UserID:       visibility.UserID,
		DepartmentID: visibility.DepartmentID,
	}

	if req.From != nil {
		from, ok := validator.IsValidDateTime(*req.From)
		if !ok {
			return nil, validator.ValidationErrors{{Field: "from", Message: "from must be a valid ISO8601 timestamp"}}
		}
		filter.From = &from
	}
	if req.To != nil {
		to, ok := validator.IsValidDateTime(*req.To)
		if !ok {
			return nil, validator.ValidationErrors{{Field: "to", Message: "to must be a valid ISO8601 timestamp"}}
		}
		filter.To = &to
	}

	records, err := s.records.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}

	responses := make([]checkin.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec))
	}

	return responses, nil
}

func toResponse(rec checkin.Record) checkin.RecordResponse {
	return checkin.RecordResponse{
		ID:        rec.ID,
		UserID:    rec.UserID,
		UserName:  rec.UserName,
		CheckType: string(rec.CheckType),
		Timestamp: rec.Timestamp.Format(time.RFC3339),
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		IsLate:    rec.IsLate,
	}
}
