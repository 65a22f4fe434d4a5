package timerule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartattend/attendance-backend-go/internal/domain/department"
	"github.com/smartattend/attendance-backend-go/internal/domain/user"
)

type fakeUserRepo struct {
	users map[string]user.User
	err   error
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error { return nil }

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }

type fakeDepartmentRepo struct {
	departments map[string]department.Department
	err         error
}

func (f *fakeDepartmentRepo) Create(ctx context.Context, d department.Department) (department.Department, error) {
	return d, nil
}

func (f *fakeDepartmentRepo) GetByID(ctx context.Context, id string) (department.Department, error) {
	if f.err != nil {
		return department.Department{}, f.err
	}
	d, ok := f.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (f *fakeDepartmentRepo) GetByManagerID(ctx context.Context, managerID string) (department.Department, error) {
	return department.Department{}, department.ErrDepartmentNotFound
}

func (f *fakeDepartmentRepo) Update(ctx context.Context, d department.Department) error { return nil }

func (f *fakeDepartmentRepo) List(ctx context.Context) ([]department.Department, error) {
	return nil, nil
}

func at(hour, min, sec int) time.Time {
	return time.Date(2026, time.March, 9, hour, min, sec, 0, time.UTC)
}

func TestRuleIsLate(t *testing.T) {
	rule := DefaultRule

	tests := []struct {
		name string
		ts   time.Time
		late bool
	}{
		{"well before start", at(8, 30, 0), false},
		{"at start", at(9, 0, 0), false},
		{"inside grace", at(9, 3, 0), false},
		{"exactly at grace end", at(9, 5, 0), false},
		{"one second past grace end", at(9, 5, 1), true},
		{"well past grace end", at(9, 10, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.late, rule.IsLate(tt.ts))
		})
	}
}

func TestRuleIsLateCustomConfig(t *testing.T) {
	rule := Rule{StartHour: 8, StartMinute: 30, GraceMinutes: 10}

	assert.False(t, rule.IsLate(at(8, 40, 0)))
	assert.True(t, rule.IsLate(at(8, 40, 1)))
	assert.True(t, rule.IsLate(at(9, 0, 0)))
}

func TestRuleGraceEndUsesTimestampDay(t *testing.T) {
	rule := DefaultRule

	ts := time.Date(2026, time.December, 31, 23, 0, 0, 0, time.UTC)
	graceEnd := rule.GraceEnd(ts)

	assert.Equal(t, ts.Year(), graceEnd.Year())
	assert.Equal(t, ts.Month(), graceEnd.Month())
	assert.Equal(t, ts.Day(), graceEnd.Day())
	assert.Equal(t, 9, graceEnd.Hour())
	assert.Equal(t, 5, graceEnd.Minute())
}

func TestFromDepartment(t *testing.T) {
	tests := []struct {
		name string
		dept department.Department
		want Rule
	}{
		{
			name: "valid config",
			dept: department.Department{LateStartTime: "08:30", LateGraceMinutes: 10},
			want: Rule{StartHour: 8, StartMinute: 30, GraceMinutes: 10},
		},
		{
			name: "zero grace is valid",
			dept: department.Department{LateStartTime: "09:00", LateGraceMinutes: 0},
			want: Rule{StartHour: 9, StartMinute: 0, GraceMinutes: 0},
		},
		{
			name: "malformed start keeps default start only",
			dept: department.Department{LateStartTime: "25:99", LateGraceMinutes: 15},
			want: Rule{StartHour: 9, StartMinute: 0, GraceMinutes: 15},
		},
		{
			name: "grace above bound keeps default grace only",
			dept: department.Department{LateStartTime: "10:00", LateGraceMinutes: 240},
			want: Rule{StartHour: 10, StartMinute: 0, GraceMinutes: 5},
		},
		{
			name: "negative grace keeps default grace",
			dept: department.Department{LateStartTime: "10:00", LateGraceMinutes: -1},
			want: Rule{StartHour: 10, StartMinute: 0, GraceMinutes: 5},
		},
		{
			name: "both malformed falls back entirely",
			dept: department.Department{LateStartTime: "soon", LateGraceMinutes: 999},
			want: DefaultRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromDepartment(tt.dept))
		})
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	deptID := "dept-1"

	tests := []struct {
		name  string
		users *fakeUserRepo
		depts *fakeDepartmentRepo
	}{
		{
			name:  "unknown user",
			users: &fakeUserRepo{users: map[string]user.User{}},
			depts: &fakeDepartmentRepo{},
		},
		{
			name: "user without department",
			users: &fakeUserRepo{users: map[string]user.User{
				"u1": {ID: "u1"},
			}},
			depts: &fakeDepartmentRepo{},
		},
		{
			name: "department row missing",
			users: &fakeUserRepo{users: map[string]user.User{
				"u1": {ID: "u1", DepartmentID: &deptID},
			}},
			depts: &fakeDepartmentRepo{departments: map[string]department.Department{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.users, tt.depts)

			rule, err := r.Resolve(context.Background(), "u1")

			require.NoError(t, err)
			assert.Equal(t, DefaultRule, rule)
		})
	}
}

func TestResolveUsesDepartmentConfig(t *testing.T) {
	deptID := "dept-1"
	users := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", DepartmentID: &deptID},
	}}
	depts := &fakeDepartmentRepo{departments: map[string]department.Department{
		deptID: {ID: deptID, LateStartTime: "08:30", LateGraceMinutes: 10},
	}}

	r := NewResolver(users, depts)

	rule, err := r.Resolve(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, Rule{StartHour: 8, StartMinute: 30, GraceMinutes: 10}, rule)
}

func TestResolvePropagatesStorageErrors(t *testing.T) {
	storageErr := errors.New("connection reset")

	r := NewResolver(&fakeUserRepo{err: storageErr}, &fakeDepartmentRepo{})

	_, err := r.Resolve(context.Background(), "u1")

	require.Error(t, err)
	assert.ErrorIs(t, err, storageErr)
}

func TestResolveDepartmentStorageErrorPropagates(t *testing.T) {
	deptID := "dept-1"
	storageErr := errors.New("connection reset")

	users := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", DepartmentID: &deptID},
	}}
	r := NewResolver(users, &fakeDepartmentRepo{err: storageErr})

	_, err := r.Resolve(context.Background(), "u1")

	require.Error(t, err)
	assert.ErrorIs(t, err, storageErr)
}
