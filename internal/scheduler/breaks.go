// Package scheduler computes break assignments from shift start times
// and validates the resulting per-minute break distribution against the
// workforce concurrency cap.
package scheduler

import (
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/timeparse"
)

const (
	FirstBreakOffsetMinutes   = 120
	FirstBreakDurationMinutes = 10

	SecondBreakOffsetMinutes   = 240
	SecondBreakDurationMinutes = 20

	// A shift must last at least this long to earn a second break.
	SecondBreakMinShiftMinutes = 360

	minutesPerDay = 24 * 60
)

// ScheduleBreaks derives the break assignments for one shift record.
// Pure function of the record's start and end times: the first break
// always lands at start+120, the second at start+240 only when the
// shift lasts >= 360 minutes. Arithmetic wraps across midnight, so a
// 23:30 shift gets its first break at 01:30 the next day.
//
// Records that are not schedulable (missing times, non-normal motive)
// yield nil; an unparseable start time yields nil as well since there
// is nothing to anchor the offsets to.
func ScheduleBreaks(rec domain.ShiftRecord) []domain.BreakAssignment {
	if !rec.Schedulable() {
		return nil
	}

	start, err := timeparse.ToMinutes(rec.StartTime)
	if err != nil {
		return nil
	}

	breaks := []domain.BreakAssignment{
		{
			ShiftRecordID:   rec.ID,
			AgentName:       rec.AgentName,
			Date:            rec.Date,
			Kind:            domain.BreakFirst,
			Start:           timeparse.FromMinutes(start + FirstBreakOffsetMinutes),
			DurationMinutes: FirstBreakDurationMinutes,
		},
	}

	if duration, ok := shiftDuration(rec); ok && duration >= SecondBreakMinShiftMinutes {
		breaks = append(breaks, domain.BreakAssignment{
			ShiftRecordID:   rec.ID,
			AgentName:       rec.AgentName,
			Date:            rec.Date,
			Kind:            domain.BreakSecond,
			Start:           timeparse.FromMinutes(start + SecondBreakOffsetMinutes),
			DurationMinutes: SecondBreakDurationMinutes,
		})
	}

	return breaks
}

// shiftDuration returns end-start in minutes, corrected for shifts
// that cross midnight.
func shiftDuration(rec domain.ShiftRecord) (int, bool) {
	start, err := timeparse.ToMinutes(rec.StartTime)
	if err != nil {
		return 0, false
	}
	end, err := timeparse.ToMinutes(rec.EndTime)
	if err != nil {
		return 0, false
	}

	duration := end - start
	if duration < 0 {
		duration += minutesPerDay
	}
	return duration, true
}
