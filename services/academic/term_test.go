package academic

import (
	"errors"
	"testing"
	"time"
)

func TestTermWindow(t *testing.T) {
	start, end, err := TermWindow(1, 2026)
	if err != nil {
		t.Fatalf("TermWindow(1, 2026) error: %v", err)
	}
	if start.Month() != time.March || start.Day() != 1 {
		t.Errorf("term 1 start = %v", start)
	}
	if end.Month() != time.July || end.Day() != 31 {
		t.Errorf("term 1 end = %v", end)
	}

	start, end, err = TermWindow(2, 2026)
	if err != nil {
		t.Fatalf("TermWindow(2, 2026) error: %v", err)
	}
	if start.Month() != time.August || start.Day() != 1 {
		t.Errorf("term 2 start = %v", start)
	}
	if end.Month() != time.December || end.Day() != 31 {
		t.Errorf("term 2 end = %v", end)
	}

	if _, _, err := TermWindow(3, 2026); !errors.Is(err, ErrInvalidTerm) {
		t.Errorf("TermWindow(3) error = %v, want ErrInvalidTerm", err)
	}
	if _, _, err := TermWindow(0, 2026); !errors.Is(err, ErrInvalidTerm) {
		t.Errorf("TermWindow(0) error = %v, want ErrInvalidTerm", err)
	}
}

func TestInTermWindow(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		term int
		want bool
	}{
		{name: "first day of term 1", date: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), term: 1, want: true},
		{name: "last day of term 1", date: time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC), term: 1, want: true},
		{name: "late on last day", date: time.Date(2026, time.July, 31, 23, 59, 0, 0, time.UTC), term: 1, want: true},
		{name: "day before term 1", date: time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), term: 1, want: false},
		{name: "day after term 1", date: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), term: 1, want: false},
		{name: "inside term 2", date: time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), term: 2, want: true},
		{name: "term 2 date in term 1", date: time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), term: 1, want: false},
		{name: "wrong year", date: time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC), term: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InTermWindow(tt.date, tt.term, 2026); got != tt.want {
				t.Errorf("InTermWindow(%v, %d, 2026) = %v, want %v", tt.date, tt.term, got, tt.want)
			}
		})
	}
}
