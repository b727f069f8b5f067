package autoreply

import (
	"time"

	"reviewloop/internal/domain"
)

// IsEligible decides whether one review qualifies for an automated
// reply right now. force bypasses the enabled, business-hours and delay
// gates; the rating range is always enforced.
func IsEligible(review domain.Review, settings domain.AISettings, now time.Time, force bool) bool {
	if review.Replied {
		return false
	}
	if !force && !settings.AutoReplyEnabled {
		return false
	}
	if review.Rating < settings.AutoReplyMinRating || review.Rating > settings.AutoReplyMaxRating {
		return false
	}
	if !force && settings.AutoReplyBusinessHoursOnly {
		if !WithinBusinessHours(now, settings.BusinessHoursStart, settings.BusinessHoursEnd) {
			return false
		}
	}
	if !force {
		elapsed := now.Sub(review.CreatedAt).Minutes()
		if elapsed < float64(settings.AutoReplyDelayMinutes) {
			return false
		}
	}
	return true
}

// WithinBusinessHours compares zero-padded HH:MM strings, both bounds
// inclusive. No timezone conversion: the caller's clock is
// authoritative.
func WithinBusinessHours(now time.Time, start, end string) bool {
	hm := now.Format("15:04")
	return hm >= start && hm <= end
}
