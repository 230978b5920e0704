package domain

import "time"

// WithinOperatingHours reports whether now falls inside the service's
// weekday or weekend window. False when the relevant window is unset.
func WithinOperatingHours(s *ServiceLocation, now time.Time) bool {
	w := s.HoursFor(now)
	if w == nil {
		return false
	}
	h := now.Hour()
	return h >= w.StartHour && h < w.EndHour
}

// WouldExceedClosingTime reports whether a wait of totalWaitMinutes starting
// now would run past the end of the relevant operating window. Partial hours
// round up. Always false when no window is configured or the wait is zero.
func WouldExceedClosingTime(s *ServiceLocation, totalWaitMinutes int, now time.Time) bool {
	w := s.HoursFor(now)
	if w == nil || totalWaitMinutes <= 0 {
		return false
	}
	waitHours := (totalWaitMinutes + 59) / 60
	return now.Hour()+waitHours > w.EndHour
}
