package latealert

import (
	"context"
	"time"
)

// Notice is a prepared late notification: the alert row has been
// persisted and recipients resolved, but nothing has been sent yet.
type Notice struct {
	AlertID    string
	UserID     string
	UserName   string
	Recipients []string
	LateAt     time.Time
}

// Dispatcher raises at-most-one-per-day late alerts and sends the
// notification off the request path.
//
// NotifyIfNeeded runs inside the caller's transaction: it applies the
// (user, date) dedup guard, resolves recipients and persists the alert
// row. It returns nil when the alert was deduplicated or there is
// nobody to notify; that is a normal outcome, never an error the
// caller should fail on.
//
// Queue hands a notice to the asynchronous sender. Callers invoke it
// only after their transaction has committed, so a rolled-back check-in
// never produces mail. Queue is nil-safe.
type Dispatcher interface {
	NotifyIfNeeded(ctx context.Context, userID string, checkinID *string, lateAt time.Time) (*Notice, error)
	Queue(n *Notice)
}
