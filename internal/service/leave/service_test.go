package leave

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartattend/attendance-backend-go/internal/domain/leave"
	"github.com/smartattend/attendance-backend-go/internal/domain/user"
	"github.com/smartattend/attendance-backend-go/internal/pkg/validator"
	"github.com/smartattend/attendance-backend-go/internal/service/scope"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveRepo struct {
	mu           sync.Mutex
	applications map[string]leave.Application
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{applications: make(map[string]leave.Application)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, a leave.Application) (leave.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.applications[a.ID] = a
	return a, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.applications[id]
	if !ok {
		return leave.Application{}, leave.ErrApplicationNotFound
	}
	return a, nil
}

func (f *fakeLeaveRepo) Review(ctx context.Context, id string, status leave.Status, reviewerID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.applications[id]
	if !ok || a.Status != leave.StatusPending {
		return false, nil
	}
	a.Status = status
	a.ReviewerID = &reviewerID
	a.UpdatedAt = time.Now()
	f.applications[id] = a
	return true, nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.ListFilter) ([]leave.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.Application
	for _, a := range f.applications {
		if filter.UserID != nil && a.UserID != *filter.UserID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeFileService struct {
	uploads int
	path    string
}

func (f *fakeFileService) UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	f.uploads++
	if f.path != "" {
		return f.path, nil
	}
	return "leave/" + userID + "/" + filename, nil
}

type fixedAuthorizer struct {
	scope scope.Scope
}

func (f fixedAuthorizer) DepartmentScopeFor(ctx context.Context, identity user.Identity) (scope.Scope, error) {
	return f.scope, nil
}

func employee() user.Identity {
	return user.Identity{UserID: "emp-1", Role: user.RoleEmployee}
}

func reviewer() user.Identity {
	return user.Identity{UserID: "mgr-1", Role: user.RoleManager}
}

func newService() (*fakeLeaveRepo, *fakeFileService, *ServiceImpl) {
	repo := newFakeLeaveRepo()
	files := &fakeFileService{}
	svc := NewLeaveService(passthroughTx{}, repo, files, fixedAuthorizer{})
	return repo, files, svc
}

func validApply() leave.ApplyRequest {
	return leave.ApplyRequest{
		LeaveType: "annual",
		StartTime: "2026-03-16T00:00:00Z",
		EndTime:   "2026-03-18T00:00:00Z",
	}
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	_, files, svc := newService()

	resp, err := svc.Apply(context.Background(), employee(), validApply())

	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.Equal(t, "emp-1", resp.UserID)
	assert.Nil(t, resp.AttachmentPath)
	assert.Equal(t, 0, files.uploads)
}

func TestApplyTrimsLeaveType(t *testing.T) {
	repo, _, svc := newService()

	req := validApply()
	req.LeaveType = "  sick  "
	resp, err := svc.Apply(context.Background(), employee(), req)

	require.NoError(t, err)
	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "sick", stored.LeaveType)
}

func TestApplyStoresAttachmentPath(t *testing.T) {
	_, files, svc := newService()
	files.path = "leave/emp-1/abc.pdf"

	req := validApply()
	req.Attachment = strings.NewReader("%PDF-1.4")
	req.AttachmentFilename = "medical.pdf"

	resp, err := svc.Apply(context.Background(), employee(), req)

	require.NoError(t, err)
	require.NotNil(t, resp.AttachmentPath)
	assert.Equal(t, "leave/emp-1/abc.pdf", *resp.AttachmentPath)
	assert.Equal(t, 1, files.uploads)
}

func TestApplyWindowValidation(t *testing.T) {
	_, _, svc := newService()

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"end after start", "2026-03-16T09:00:00Z", "2026-03-16T09:00:01Z", false},
		{"end equals start", "2026-03-16T09:00:00Z", "2026-03-16T09:00:00Z", true},
		{"end before start", "2026-03-16T09:00:00Z", "2026-03-15T09:00:00Z", true},
		{"malformed start", "next monday", "2026-03-16T09:00:00Z", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validApply()
			req.StartTime = tt.start
			req.EndTime = tt.end

			_, err := svc.Apply(context.Background(), employee(), req)

			if tt.wantErr {
				var verrs validator.ValidationErrors
				require.ErrorAs(t, err, &verrs)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestReviewApproveRecordsReviewer(t *testing.T) {
	_, _, svc := newService()

	applied, err := svc.Apply(context.Background(), employee(), validApply())
	require.NoError(t, err)

	reviewed, err := svc.Review(context.Background(), reviewer(), leave.ReviewRequest{
		ID:     applied.ID,
		Action: "APPROVE",
	})

	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), reviewed.Status)
	require.NotNil(t, reviewed.ReviewerID)
	assert.Equal(t, "mgr-1", *reviewed.ReviewerID)
}

func TestReviewTerminalStatusIsFinal(t *testing.T) {
	_, _, svc := newService()

	applied, err := svc.Apply(context.Background(), employee(), validApply())
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), reviewer(), leave.ReviewRequest{
		ID:     applied.ID,
		Action: "REJECT",
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), reviewer(), leave.ReviewRequest{
		ID:     applied.ID,
		Action: "APPROVE",
	})

	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestReviewRejectsUnknownAction(t *testing.T) {
	_, _, svc := newService()

	_, err := svc.Review(context.Background(), reviewer(), leave.ReviewRequest{
		ID:     "whatever",
		Action: "MAYBE",
	})

	assert.ErrorIs(t, err, leave.ErrInvalidAction)
}

func TestReviewUnknownApplication(t *testing.T) {
	_, _, svc := newService()

	_, err := svc.Review(context.Background(), reviewer(), leave.ReviewRequest{
		ID:     uuid.NewString(),
		Action: "APPROVE",
	})

	assert.ErrorIs(t, err, leave.ErrApplicationNotFound)
}

func TestListScopeNoneReturnsEmpty(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(passthroughTx{}, repo, &fakeFileService{}, fixedAuthorizer{scope: scope.Scope{None: true}})

	out, err := svc.List(context.Background(), reviewer())

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestListScopedToSelf(t *testing.T) {
	repo := newFakeLeaveRepo()
	self := "emp-1"
	svc := NewLeaveService(passthroughTx{}, repo, &fakeFileService{}, fixedAuthorizer{scope: scope.Scope{UserID: &self}})

	_, err := repo.Create(context.Background(), leave.Application{UserID: "emp-1", Status: leave.StatusPending})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), leave.Application{UserID: "emp-2", Status: leave.StatusPending})
	require.NoError(t, err)

	out, err := svc.List(context.Background(), employee())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "emp-1", out[0].UserID)
}
