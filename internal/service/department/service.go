package department

import (
	"context"
	"time"

	"github.com/smartattend/attendance-backend-go/internal/domain/department"
)

type ServiceImpl struct {
	departments department.Repository
}

func NewDepartmentService(departments department.Repository) *ServiceImpl {
	return &ServiceImpl{departments: departments}
}

// Create implements department.Service.
func (s *ServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	d := department.Department{
		Name:             req.Name,
		ManagerID:        req.ManagerID,
		LateStartTime:    "09:00",
		LateGraceMinutes: 5,
	}
	if req.LateStartTime != nil {
		d.LateStartTime = *req.LateStartTime
	}
	if req.LateGraceMinutes != nil {
		d.LateGraceMinutes = *req.LateGraceMinutes
	}

	created, err := s.departments.Create(ctx, d)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	return toResponse(created), nil
}

// Update implements department.Service.
func (s *ServiceImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	d, err := s.departments.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.ManagerID != nil {
		d.ManagerID = req.ManagerID
	}
	if req.LateStartTime != nil {
		d.LateStartTime = *req.LateStartTime
	}
	if req.LateGraceMinutes != nil {
		d.LateGraceMinutes = *req.LateGraceMinutes
	}

	if err := s.departments.Update(ctx, d); err != nil {
		return department.DepartmentResponse{}, err
	}

	return toResponse(d), nil
}

// List implements department.Service.
func (s *ServiceImpl) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, toResponse(d))
	}

	return responses, nil
}

func toResponse(d department.Department) department.DepartmentResponse {
	return department.DepartmentResponse{
		ID:               d.ID,
		Name:             d.Name,
		ManagerID:        d.ManagerID,
		LateStartTime:    d.LateStartTime,
		LateGraceMinutes: d.LateGraceMinutes,
		CreatedAt:        d.CreatedAt.Format(time.RFC3339),
	}
}
