package checkin

import (
	"strings"
	"time"
)

type CheckType string

const (
	TypeIn  CheckType = "IN"
	TypeOut CheckType = "OUT"
)

// NormalizeType maps a raw client value to a CheckType,
// case-insensitively. ok is false for anything but IN/OUT.
func NormalizeType(raw string) (CheckType, bool) {
	switch CheckType(strings.ToUpper(strings.TrimSpace(raw))) {
	case TypeIn:
		return TypeIn, true
	case TypeOut:
		return TypeOut, true
	}
	return "", false
}

// Record is an append-only attendance event. It is never updated or
// deleted once written; corrections happen through manual check
// requests that materialize additional records.
type Record struct {
	ID        string
	UserID    string
	CheckType CheckType
	Timestamp time.Time
	Latitude  *float64
	Longitude *float64
	IsLate    bool
	CreatedAt time.Time

	// Joined for listings
	UserName *string
}
