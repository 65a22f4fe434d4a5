package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"2024-01-15T10:30:00Z", true},
		{"2024-01-15T10:30:00+07:00", true},
		{"2024-01-15T10:30:00.123456Z", true},
		{"2024-01-15 10:30:00", true},
		{"2024-01-15", false},
		{"15/01/2024 10:30", false},
		{"", false},
	}
	for _, c := range cases {
		_, got := IsValidDateTime(c.input)
		if got != c.want {
			t.Errorf("IsValidDateTime(%q) ok = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDateTimePreservesInstant(t *testing.T) {
	parsed, ok := IsValidDateTime("2024-03-01T08:41:01Z")
	if !ok {
		t.Fatal("expected timestamp to parse")
	}
	want := time.Date(2024, 3, 1, 8, 41, 1, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Errorf("parsed %v, want %v", parsed, want)
	}
}
