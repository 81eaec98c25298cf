package capture

import "time"

// DefaultAttempts is the number of capture attempts made per page.
const DefaultAttempts = 5

// DefaultRetryDelay is the pause between capture attempts.
const DefaultRetryDelay = 1000 * time.Millisecond

// DefaultRetryDelays returns the delays between capture attempts:
// four pauses of 1s, giving five attempts in total.
func DefaultRetryDelays() []time.Duration {
	return FixedDelays(DefaultAttempts, DefaultRetryDelay)
}

// FixedDelays returns the delay schedule for attempts tries spaced by d.
// The result always has attempts-1 entries and is never nil, so a single
// attempt is distinguishable from "use the default schedule".
func FixedDelays(attempts int, d time.Duration) []time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	delays := make([]time.Duration, attempts-1)
	for i := range delays {
		delays[i] = d
	}
	return delays
}
