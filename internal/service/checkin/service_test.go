package checkin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartattend/attendance-backend-go/internal/domain/checkin"
	"github.com/smartattend/attendance-backend-go/internal/domain/latealert"
	"github.com/smartattend/attendance-backend-go/internal/domain/user"
	"github.com/smartattend/attendance-backend-go/internal/service/scope"
	"github.com/smartattend/attendance-backend-go/internal/service/timerule"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCheckinRepo struct {
	mu      sync.Mutex
	records []checkin.Record
	err     error
}

func (f *fakeCheckinRepo) Create(ctx context.Context, r checkin.Record) (checkin.Record, error) {
	if f.err != nil {
		return checkin.Record{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now()
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeCheckinRepo) Exists(ctx context.Context, userID string, checkType checkin.CheckType, ts time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.UserID == userID && r.CheckType == checkType && r.Timestamp.Equal(ts) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCheckinRepo) List(ctx context.Context, filter checkin.ListFilter) ([]checkin.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []checkin.Record
	for _, r := range f.records {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.From != nil && r.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !r.Timestamp.Before(*filter.To) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fixedResolver struct {
	rule timerule.Rule
	err  error
}

func (f fixedResolver) Resolve(ctx context.Context, userID string) (timerule.Rule, error) {
	if f.err != nil {
		return timerule.Rule{}, f.err
	}
	return f.rule, nil
}

type recordingDispatcher struct {
	mu       sync.Mutex
	notified []time.Time
	queued   []*latealert.Notice
	notice   *latealert.Notice
	err      error
}

func (d *recordingDispatcher) NotifyIfNeeded(ctx context.Context, userID string, checkinID *string, lateAt time.Time) (*latealert.Notice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	d.notified = append(d.notified, lateAt)
	return d.notice, nil
}

func (d *recordingDispatcher) Queue(n *latealert.Notice) {
	if n == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queued = append(d.queued, n)
}

type fixedAuthorizer struct {
	scope scope.Scope
	err   error
}

func (f fixedAuthorizer) DepartmentScopeFor(ctx context.Context, identity user.Identity) (scope.Scope, error) {
	if f.err != nil {
		return scope.Scope{}, f.err
	}
	return f.scope, nil
}

func employee() user.Identity {
	return user.Identity{UserID: "emp-1", Role: user.RoleEmployee}
}

func serviceAt(ts time.Time, repo *fakeCheckinRepo, dispatcher *recordingDispatcher) *ServiceImpl {
	s := NewCheckinService(
		passthroughTx{},
		repo,
		fixedResolver{rule: timerule.DefaultRule},
		dispatcher,
		fixedAuthorizer{},
	)
	s.now = func() time.Time { return ts }
	return s
}

func TestRecordOnTimeCheckin(t *testing.T) {
	repo := &fakeCheckinRepo{}
	dispatcher := &recordingDispatcher{}
	s := serviceAt(time.Date(2026, 3, 9, 9, 5, 0, 0, time.UTC), repo, dispatcher)

	resp, err := s.Record(context.Background(), employee(), checkin.RecordRequest{CheckType: "IN"})

	require.NoError(t, err)
	assert.False(t, resp.IsLate)
	assert.Empty(t, dispatcher.notified)
	assert.Empty(t, dispatcher.queued)
}

func TestRecordLateCheckinRaisesAlert(t *testing.T) {
	repo := &fakeCheckinRepo{}
	notice := &latealert.Notice{UserID: "emp-1"}
	dispatcher := &recordingDispatcher{notice: notice}
	s := serviceAt(time.Date(2026, 3, 9, 9, 10, 0, 0, time.UTC), repo, dispatcher)

	resp, err := s.Record(context.Background(), employee(), checkin.RecordRequest{CheckType: "in"})

	require.NoError(t, err)
	assert.True(t, resp.IsLate)
	assert.Equal(t, "IN", resp.CheckType)
	require.Len(t, dispatcher.notified, 1)
	require.Len(t, dispatcher.queued, 1)
	assert.Same(t, notice, dispatcher.queued[0])
}

func TestRecordOutNeverLate(t *testing.T) {
	repo := &fakeCheckinRepo{}
	dispatcher := &recordingDispatcher{}
	s := serviceAt(time.Date(2026, 3, 9, 17, 30, 0, 0, time.UTC), repo, dispatcher)

	resp, err := s.Record(context.Background(), employee(), checkin.RecordRequest{CheckType: "OUT"})

	require.NoError(t, err)
	assert.False(t, resp.IsLate)
	assert.Empty(t, dispatcher.notified)
}

func TestRecordRejectsUnknownCheckType(t *testing.T) {
	s := serviceAt(time.Now(), &fakeCheckinRepo{}, &recordingDispatcher{})

	_, err := s.Record(context.Background(), employee(), checkin.RecordRequest{CheckType: "LUNCH"})

	assert.ErrorIs(t, err, checkin.ErrInvalidCheckType)
}

func TestRecordRejectsInvalidCoordinates(t *testing.T) {
	s := serviceAt(time.Now(), &fakeCheckinRepo{}, &recordingDispatcher{})
	lat := 123.0

	_, err := s.Record(context.Background(), employee(), checkin.RecordRequest{CheckType: "IN", Latitude: &lat})

	require.Error(t, err)
}

func TestRecordFailedTransactionQueuesNothing(t *testing.T) {
	repo := &fakeCheckinRepo{err: errors.New("insert failed")}
	dispatcher := &recordingDispatcher{notice: &latealert.Notice{}}
	s := serviceAt(time.Date(2026, 3, 9, 9, 10, 0, 0, time.UTC), repo, dispatcher)

	_, err := s.Record(context.Background(), employee(), checkin.RecordRequest{CheckType: "IN"})

	require.Error(t, err)
	assert.Empty(t, dispatcher.queued)
}

func TestListScopeNoneReturnsEmpty(t *testing.T) {
	repo := &fakeCheckinRepo{}
	repo.records = append(repo.records, checkin.Record{UserID: "emp-1", CheckType: checkin.TypeIn, Timestamp: time.Now()})

	s := NewCheckinService(passthroughTx{}, repo, fixedResolver{}, &recordingDispatcher{}, fixedAuthorizer{scope: scope.Scope{None: true}})

	out, err := s.List(context.Background(), user.Identity{UserID: "mgr-1", Role: user.RoleManager}, checkin.ListRequest{})

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestListScopedToSelf(t *testing.T) {
	repo := &fakeCheckinRepo{}
	now := time.Now()
	repo.records = append(repo.records,
		checkin.Record{ID: "a", UserID: "emp-1", CheckType: checkin.TypeIn, Timestamp: now},
		checkin.Record{ID: "b", UserID: "emp-2", CheckType: checkin.TypeIn, Timestamp: now},
	)

	self := "emp-1"
	s := NewCheckinService(passthroughTx{}, repo, fixedResolver{}, &recordingDispatcher{}, fixedAuthorizer{scope: scope.Scope{UserID: &self}})

	out, err := s.List(context.Background(), employee(), checkin.ListRequest{})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "emp-1", out[0].UserID)
}

func TestListRejectsMalformedRange(t *testing.T) {
	self := "emp-1"
	s := NewCheckinService(passthroughTx{}, &fakeCheckinRepo{}, fixedResolver{}, &recordingDispatcher{}, fixedAuthorizer{scope: scope.Scope{UserID: &self}})

	from := "not-a-date"
	_, err := s.List(context.Background(), employee(), checkin.ListRequest{From: &from})

	require.Error(t, err)
}
