package user

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/smartattend/attendance-backend-go/internal/domain/user"
)

type ServiceImpl struct {
	users user.Repository
}

func NewUserService(users user.Repository) *ServiceImpl {
	return &ServiceImpl{users: users}
}

// Create implements user.Service.
func (s *ServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.users.Create(ctx, user.User{
		Username:     req.Username,
		PasswordHash: string(hashed),
		Role:         user.Role(req.Role),
		Name:         req.Name,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return toResponse(created), nil
}

// Update implements user.Service. Role and department assignment are
// admin-mutable; credentials are not touched here.
func (s *ServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.users.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = req.Email
	}
	if req.DepartmentID != nil {
		u.DepartmentID = req.DepartmentID
	}

	if err := s.users.Update(ctx, u); err != nil {
		return user.UserResponse{}, err
	}

	return toResponse(u), nil
}

// List implements user.Service.
func (s *ServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}

	return responses, nil
}

func toResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Role:         string(u.Role),
		Name:         u.Name,
		Email:        u.Email,
		DepartmentID: u.DepartmentID,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
	}
}
