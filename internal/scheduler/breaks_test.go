package scheduler

import (
	"testing"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalShift(agent, start, end string) domain.ShiftRecord {
	return domain.ShiftRecord{
		AgentName: agent,
		Date:      "2025-05-08",
		StartTime: start,
		EndTime:   end,
		Motive:    domain.MotiveNormalShift,
	}
}

func TestScheduleBreaksOffsets(t *testing.T) {
	breaks := ScheduleBreaks(normalShift("Gomez", "08:00", "16:00"))
	require.Len(t, breaks, 2)

	assert.Equal(t, domain.BreakFirst, breaks[0].Kind)
	assert.Equal(t, "10:00", breaks[0].Start)
	assert.Equal(t, 10, breaks[0].DurationMinutes)

	assert.Equal(t, domain.BreakSecond, breaks[1].Kind)
	assert.Equal(t, "12:00", breaks[1].Start)
	assert.Equal(t, 20, breaks[1].DurationMinutes)
}

func TestScheduleBreaksWrapsMidnight(t *testing.T) {
	breaks := ScheduleBreaks(normalShift("Diaz", "23:30", "07:30"))
	require.Len(t, breaks, 2)
	assert.Equal(t, "01:30", breaks[0].Start)
	assert.Equal(t, "03:30", breaks[1].Start)
}

func TestSecondBreakDurationBoundary(t *testing.T) {
	// Exactly 360 minutes earns a second break.
	breaks := ScheduleBreaks(normalShift("Perez", "08:00", "14:00"))
	require.Len(t, breaks, 2)

	// 359 minutes does not.
	breaks = ScheduleBreaks(normalShift("Perez", "08:00", "13:59"))
	require.Len(t, breaks, 1)
	assert.Equal(t, domain.BreakFirst, breaks[0].Kind)
}

func TestScheduleBreaksSkipsIneligibleRecords(t *testing.T) {
	missingEnd := normalShift("Lopez", "08:00", "")
	assert.Nil(t, ScheduleBreaks(missingEnd))

	vacation := normalShift("Lopez", "08:00", "16:00")
	vacation.Motive = "vacaciones"
	assert.Nil(t, ScheduleBreaks(vacation))
}

func TestValidateDistributionCap(t *testing.T) {
	// Ten agents, cap = floor(10*0.35) = 3.
	snapshot := &domain.WorkforceSnapshot{Date: "2025-05-08", WorkforceSize: 10}
	for i := 0; i < 4; i++ {
		snapshot.Breaks = append(snapshot.Breaks, domain.BreakAssignment{
			Kind: domain.BreakFirst, Start: "10:00", DurationMinutes: 10,
		})
	}

	verdict := ValidateDistribution(snapshot)
	assert.False(t, verdict.Valid)
	require.NotNil(t, verdict.ViolatingMinute)
	assert.Equal(t, "10:00", *verdict.ViolatingMinute)
	assert.Equal(t, 4, verdict.Occupancy)
	assert.Equal(t, 3, verdict.Cap)

	// Three overlapping breaks fit exactly under the cap.
	snapshot.Breaks = snapshot.Breaks[:3]
	verdict = ValidateDistribution(snapshot)
	assert.True(t, verdict.Valid)
	assert.Nil(t, verdict.ViolatingMinute)
}

func TestValidateDistributionCapFloor(t *testing.T) {
	// A single agent on break must never be a violation.
	snapshot := &domain.WorkforceSnapshot{
		Date:          "2025-05-08",
		WorkforceSize: 1,
		Breaks: []domain.BreakAssignment{
			{Kind: domain.BreakFirst, Start: "10:00", DurationMinutes: 10},
		},
	}

	verdict := ValidateDistribution(snapshot)
	assert.True(t, verdict.Valid)
	assert.Equal(t, 1, verdict.Cap)
}

func TestValidateDistributionWrappedBreak(t *testing.T) {
	snapshot := &domain.WorkforceSnapshot{
		Date:          "2025-05-08",
		WorkforceSize: 1,
		Breaks: []domain.BreakAssignment{
			{Kind: domain.BreakSecond, Start: "23:55", DurationMinutes: 20},
		},
	}

	// Occupancy wraps into the early minutes without panicking.
	verdict := ValidateDistribution(snapshot)
	assert.True(t, verdict.Valid)
}

func TestScheduleThenValidateRoundTrip(t *testing.T) {
	// With a cap of 100% of the workforce no distribution can violate.
	agents := []string{"Gomez", "Diaz", "Perez", "Lopez", "Suarez"}
	snapshot := &domain.WorkforceSnapshot{Date: "2025-05-08"}
	for i, agent := range agents {
		rec := normalShift(agent, "08:00", "16:00")
		rec.ID = int64(i + 1)
		snapshot.Records = append(snapshot.Records, rec)
		snapshot.Breaks = append(snapshot.Breaks, ScheduleBreaks(rec)...)
	}
	// Workforce size large enough that the cap covers everyone.
	snapshot.WorkforceSize = len(agents) * 3

	verdict := ValidateDistribution(snapshot)
	assert.True(t, verdict.Valid)
}
