package domain

// EstimatedWait returns the wait in minutes for an entry at position given
// the current serving pointer and the per-customer service time.
//
// It is zero when the service time is unset; distinguishing "no estimate
// configured" from "wait is zero" is a presentation concern, not this
// function's.
func EstimatedWait(position, currentServingNumber, serviceMinutes int) int {
	if serviceMinutes <= 0 {
		return 0
	}
	ahead := position - currentServingNumber
	if ahead < 0 {
		ahead = 0
	}
	return ahead * serviceMinutes
}
