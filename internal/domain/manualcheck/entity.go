package manualcheck

import (
	"time"

	"github.com/smartattend/attendance-backend-go/internal/domain/checkin"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// MonthlyQuota is the maximum number of non-rejected correction
// requests a user may hold per calendar month.
const MonthlyQuota = 2

// Request is a retroactive correction to the attendance log. Once
// reviewed it is terminal; approval materializes a check-in record.
type Request struct {
	ID          string
	UserID      string
	CheckType   checkin.CheckType
	RequestedTS time.Time
	Reason      *string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for listings
	UserName *string
}
