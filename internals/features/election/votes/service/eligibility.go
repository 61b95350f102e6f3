// file: internals/features/election/votes/service/eligibility.go
package service

import (
	"time"
)

/* =========================
   Window / target status
   ========================= */

type TargetStatus string

const (
	StatusNotYetOpen TargetStatus = "NOT_YET_OPEN"
	StatusOpen       TargetStatus = "OPEN"
	StatusClosed     TargetStatus = "CLOSED"
	StatusIneligible TargetStatus = "INELIGIBLE"
	StatusOK         TargetStatus = "OK"
)

// CheckWindow classifies now against [start, end]. Bounds are inclusive.
// Pure and safe for concurrent use.
func CheckWindow(start, end, now time.Time) TargetStatus {
	if now.Before(start) {
		return StatusNotYetOpen
	}
	if now.After(end) {
		return StatusClosed
	}
	return StatusOpen
}

// CheckTarget decides whether a registration may receive votes right now.
// Ineligibility overrides whatever the window says.
func CheckTarget(isEligible bool, start, end, now time.Time) TargetStatus {
	if !isEligible {
		return StatusIneligible
	}
	switch CheckWindow(start, end, now) {
	case StatusNotYetOpen:
		return StatusNotYetOpen
	case StatusClosed:
		return StatusClosed
	default:
		return StatusOK
	}
}
