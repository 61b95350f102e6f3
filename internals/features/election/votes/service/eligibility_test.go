// file: internals/features/election/votes/service/eligibility_test.go
package service

import (
	"testing"
	"time"
)

func TestCheckWindow(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want TargetStatus
	}{
		{"before start", start.Add(-time.Minute), StatusNotYetOpen},
		{"exactly at start", start, StatusOpen},
		{"inside window", start.Add(time.Hour), StatusOpen},
		{"exactly at end", end, StatusOpen},
		{"after end", end.Add(time.Second), StatusClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckWindow(start, end, tt.now); got != tt.want {
				t.Fatalf("CheckWindow = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckTarget(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	inside := start.Add(time.Hour)

	tests := []struct {
		name       string
		isEligible bool
		now        time.Time
		want       TargetStatus
	}{
		{"eligible inside window", true, inside, StatusOK},
		{"ineligible inside window", false, inside, StatusIneligible},
		// Ineligibility overrides the window status.
		{"ineligible before start", false, start.Add(-time.Minute), StatusIneligible},
		{"eligible before start", true, start.Add(-time.Minute), StatusNotYetOpen},
		{"eligible after end", true, end.Add(time.Minute), StatusClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckTarget(tt.isEligible, start, end, tt.now); got != tt.want {
				t.Fatalf("CheckTarget = %q, want %q", got, tt.want)
			}
		})
	}
}
