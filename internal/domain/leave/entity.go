package leave

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Application struct {
	ID             string
	UserID         string
	LeaveType      string
	StartTime      time.Time
	EndTime        time.Time
	Reason         *string
	AttachmentPath *string
	Status         Status
	ReviewerID     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined for listings
	UserName *string
}
