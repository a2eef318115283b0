// Package policy holds the booking eligibility rules. Every function is pure
// and takes the current time as an argument, so the rules are reproducible in
// tests and identical wherever they are evaluated.
package policy

import (
	"fmt"
	"time"

	"triplus-booking-service/internal/module/booking/models/entity"
)

const (
	// CancelWindow is how long after creation a booking may still be
	// cancelled. The bound is inclusive: exactly 12h is allowed.
	CancelWindow = 12 * time.Hour

	// RatingDelay is how long after creation a completed booking must wait
	// before it can be rated.
	RatingDelay = 24 * time.Hour
)

// CanCancel reports whether the booking may be cancelled at now. A zero
// creation timestamp fails closed.
func CanCancel(b entity.Booking, now time.Time) bool {
	if b.CreatedAt.IsZero() {
		return false
	}
	if b.Status != entity.StatusPending && b.Status != entity.StatusConfirmed {
		return false
	}
	return now.Sub(b.CreatedAt) <= CancelWindow
}

// CancelCountdown returns the time remaining in the cancellation window, or
// ok=false when no time remains. At the deadline itself CanCancel still
// allows the cancellation but the countdown is already gone, so ok is false.
func CancelCountdown(b entity.Booking, now time.Time) (time.Duration, bool) {
	if !CanCancel(b, now) {
		return 0, false
	}

	deadline := b.CreatedAt.Add(CancelWindow)
	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return 0, false
	}
	return remaining, true
}

// FormatCountdown renders a countdown as whole hours and minutes, "3h 45m".
func FormatCountdown(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// CanRate reports whether the booking may be rated at now: completed, at
// least RatingDelay old and not yet reviewed. A zero creation timestamp
// fails closed.
func CanRate(b entity.Booking, now time.Time) bool {
	if b.CreatedAt.IsZero() {
		return false
	}
	if b.Status != entity.StatusCompleted {
		return false
	}
	if b.Reviewed {
		return false
	}
	return now.Sub(b.CreatedAt) >= RatingDelay
}

// RatingWindowOpen checks only the status and timing half of CanRate, so
// callers can distinguish "too early / wrong status" from "already rated".
func RatingWindowOpen(b entity.Booking, now time.Time) bool {
	if b.CreatedAt.IsZero() {
		return false
	}
	if b.Status != entity.StatusCompleted {
		return false
	}
	return now.Sub(b.CreatedAt) >= RatingDelay
}
