package latealert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/smartattend/attendance-backend-go/internal/domain/department"
	"github.com/smartattend/attendance-backend-go/internal/domain/latealert"
	"github.com/smartattend/attendance-backend-go/internal/domain/user"
	"github.com/smartattend/attendance-backend-go/internal/pkg/email"
)

// Config holds dispatcher tuning knobs.
type Config struct {
	QueueSize int // default: 256
}

type dispatcher struct {
	alerts      latealert.Repository
	users       user.Repository
	departments department.Repository
	sender      email.Sender

	queue  chan *latealert.Notice
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewDispatcher creates a late alert dispatcher with one background
// sender worker. Sends are best effort: failures are logged, never
// surfaced to the request path.
func NewDispatcher(
	alerts latealert.Repository,
	users user.Repository,
	departments department.Repository,
	sender email.Sender,
	cfg Config,
) latealert.Dispatcher {
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}

	d := &dispatcher{
		alerts:      alerts,
		users:       users,
		departments: departments,
		sender:      sender,
		queue:       make(chan *latealert.Notice, cfg.QueueSize),
		stopCh:      make(chan struct{}),
	}

	d.wg.Add(1)
	go d.worker()

	return d
}

// NotifyIfNeeded implements latealert.Dispatcher. It runs inside the
// caller's transaction so the dedup check and the alert insert see
// consistent state with the triggering check-in.
func (d *dispatcher) NotifyIfNeeded(ctx context.Context, userID string, checkinID *string, lateAt time.Time) (*latealert.Notice, error) {
	date := latealert.DateOf(lateAt)

	exists, err := d.alerts.ExistsForDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check late alert dedup guard: %w", err)
	}
	if exists {
		return nil, nil
	}

	u, err := d.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.Warn("Late alert skipped, user missing", "user_id", userID)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve late alert user: %w", err)
	}

	recipients := d.resolveRecipients(ctx, u)

	if len(recipients) == 0 || !d.sender.Configured() {
		slog.Info("Late alert send skipped",
			"user_id", userID,
			"date", date,
			"recipients", len(recipients),
			"mail_configured", d.sender.Configured(),
		)
		return nil, nil
	}

	_, duplicate, err := d.alerts.Create(ctx, latealert.Alert{
		UserID:    userID,
		CheckinID: checkinID,
		LateDate:  date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist late alert: %w", err)
	}
	if duplicate {
		// Lost the (user, date) insert race: already notified, no-op.
		return nil, nil
	}

	return &latealert.Notice{
		UserID:     userID,
		UserName:   u.Name,
		Recipients: recipients,
		LateAt:     lateAt,
	}, nil
}

// resolveRecipients collects the employee's own email plus the
// department manager's, preserving insertion order without duplicates.
// A manager managing their own department is not notified twice.
func (d *dispatcher) resolveRecipients(ctx context.Context, u user.User) []string {
	var recipients []string
	seen := make(map[string]struct{})

	add := func(addr string) {
		if addr == "" {
			return
		}
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		recipients = append(recipients, addr)
	}

	if u.Email != nil {
		add(*u.Email)
	}

	if u.DepartmentID == nil {
		return recipients
	}

	dept, err := d.departments.GetByID(ctx, *u.DepartmentID)
	if err != nil {
		if !errors.Is(err, department.ErrDepartmentNotFound) {
			slog.Error("Failed to resolve department for late alert", "user_id", u.ID, "error", err)
		}
		return recipients
	}

	if dept.ManagerID == nil || *dept.ManagerID == u.ID {
		return recipients
	}

	manager, err := d.users.GetByID(ctx, *dept.ManagerID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			slog.Error("Failed to resolve manager for late alert", "user_id", u.ID, "error", err)
		}
		return recipients
	}

	if manager.Email != nil {
		add(*manager.Email)
	}

	return recipients
}

// Queue implements latealert.Dispatcher. Callers invoke it after their
// transaction commits; a nil notice is a no-op.
func (d *dispatcher) Queue(n *latealert.Notice) {
	if n == nil {
		return
	}

	select {
	case d.queue <- n:
	default:
		// Queue saturated: drop rather than block the request path.
		slog.Warn("Late alert queue full, dropping notification", "user_id", n.UserID)
	}
}

// Stop drains the queue and stops the sender worker.
func (d *dispatcher) Stop() {
	close(d.stopCh)
	d.wg.Wait()
}

func (d *dispatcher) worker() {
	defer d.wg.Done()

	for {
		select {
		case n := <-d.queue:
			d.send(n)
		case <-d.stopCh:
			for {
				select {
				case n := <-d.queue:
					d.send(n)
				default:
					return
				}
			}
		}
	}
}

func (d *dispatcher) send(n *latealert.Notice) {
	subject := fmt.Sprintf("Late check-in: %s on %s", n.UserName, latealert.DateOf(n.LateAt))
	body := fmt.Sprintf(
		"%s checked in late at %s.\r\n\r\nThis is an automated attendance notification.",
		n.UserName, n.LateAt.Format("2006-01-02 15:04:05"),
	)

	if ok := d.sender.Send(n.Recipients, subject, body); !ok {
		slog.Warn("Late alert notification not delivered", "user_id", n.UserID, "recipients", n.Recipients)
	}
}
