package countdown

import "time"

const (
	msPerDay    = 24 * 60 * 60 * 1000
	msPerHour   = 60 * 60 * 1000
	msPerMinute = 60 * 1000
	msPerSecond = 1000
)

// Breakdown is the time remaining until the ceremony, decomposed into
// display units. Once expired all fields are zero.
type Breakdown struct {
	Days      int  `json:"days"`
	Hours     int  `json:"hours"`
	Minutes   int  `json:"minutes"`
	Seconds   int  `json:"seconds"`
	IsExpired bool `json:"isExpired"`
}

// Until computes the breakdown of target − now. The decomposition is a
// fixed-radix division on millisecond units, not calendar arithmetic:
// no DST or leap-second handling, matching what a countdown display wants.
func Until(target, now time.Time) Breakdown {
	diff := target.Sub(now).Milliseconds()
	if diff <= 0 {
		return Breakdown{IsExpired: true}
	}

	return Breakdown{
		Days:    int(diff / msPerDay),
		Hours:   int(diff % msPerDay / msPerHour),
		Minutes: int(diff % msPerHour / msPerMinute),
		Seconds: int(diff % msPerMinute / msPerSecond),
	}
}
