package auction

import (
	"time"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/models"
)

// ResolveLaunch computes the scheduled start and initial status for a new auction
func ResolveLaunch(launchType string, scheduledStart *time.Time, now time.Time) (time.Time, string, error) {
	switch launchType {
	case models.LaunchImmediate:
		return now, models.StatusActive, nil
	case models.LaunchScheduled:
		if scheduledStart == nil || scheduledStart.IsZero() {
			return time.Time{}, "", auctionerrors.Invalid("scheduledStart", "Scheduled start time is required for scheduled auctions")
		}
		return scheduledStart.UTC(), models.StatusScheduled, nil
	default:
		return time.Time{}, "", auctionerrors.Invalid("launchType", "Launch type must be immediate or scheduled")
	}
}

// ApplyApproval marks an auction approved and settles its start time.
//
// Immediate auctions start at their first approval; a repeated approval keeps
// that start. Scheduled auctions keep a valid future start and are moved to
// now when the stored start is missing or already past.
func ApplyApproval(a *models.Auction, now time.Time) {
	switch a.LaunchType {
	case models.LaunchScheduled:
		if a.ScheduledStart.IsZero() || a.ScheduledStart.Before(now) {
			a.ScheduledStart = now
		}
	default:
		if !a.Approved || a.ScheduledStart.IsZero() {
			a.ScheduledStart = now
		}
	}
	a.Approved = true
	if !a.ScheduledStart.After(now) {
		a.Status = models.StatusActive
	} else {
		a.Status = models.StatusScheduled
	}
}
