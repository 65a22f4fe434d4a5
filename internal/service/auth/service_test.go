package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartattend/attendance-backend-go/internal/domain/auth"
	"github.com/smartattend/attendance-backend-go/internal/domain/user"
	"github.com/smartattend/attendance-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	byUsername map[string]user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error { return nil }

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }

func newService(t *testing.T) auth.Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserRepo{byUsername: map[string]user.User{
		"ari": {
			ID:           "u1",
			Username:     "ari",
			PasswordHash: string(hash),
			Role:         user.RoleEmployee,
		},
	}}

	return NewAuthService(users, jwt.NewJWTService("test-secret", "1h"))
}

func TestLoginSuccess(t *testing.T) {
	svc := newService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "ari",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, string(user.RoleEmployee), resp.Role)
	assert.Greater(t, resp.ExpiresIn, int64(0))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "ari",
		Password: "battery staple",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "nobody",
		Password: "correct horse",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginRejectsEmptyFields(t *testing.T) {
	svc := newService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{})

	require.Error(t, err)
}
