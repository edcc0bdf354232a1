package scheduler

import (
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/timeparse"
)

// WorkforceCapFraction is the maximum share of the workforce allowed on
// break during any single minute.
const WorkforceCapFraction = 0.35

// ValidateDistribution builds a per-minute occupancy histogram over the
// snapshot's break assignments and checks every minute against the
// workforce cap. The verdict reports the first violating minute in
// clock order, not the worst one; early actionable feedback beats an
// exhaustive listing here.
//
// The cap has a floor of 1 so a one-agent workforce is never rejected
// for taking its own break.
func ValidateDistribution(snapshot *domain.WorkforceSnapshot) domain.ValidationVerdict {
	size := snapshot.WorkforceSize
	if size == 0 {
		size = len(snapshot.Records)
	}

	capLimit := int(float64(size) * WorkforceCapFraction)
	if capLimit < 1 {
		capLimit = 1
	}

	var histogram [minutesPerDay]int
	for _, b := range snapshot.Breaks {
		start, err := timeparse.ToMinutes(b.Start)
		if err != nil {
			// Overrides may carry "N/A"; such breaks occupy nothing.
			continue
		}
		for i := 0; i < b.DurationMinutes; i++ {
			histogram[(start+i)%minutesPerDay]++
		}
	}

	for minute := 0; minute < minutesPerDay; minute++ {
		if histogram[minute] > capLimit {
			violating := timeparse.FromMinutes(minute)
			return domain.ValidationVerdict{
				Valid:           false,
				ViolatingMinute: &violating,
				Occupancy:       histogram[minute],
				Cap:             capLimit,
			}
		}
	}

	return domain.ValidationVerdict{Valid: true, Cap: capLimit}
}
