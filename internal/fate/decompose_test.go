package fate

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecompose_Zero(t *testing.T) {
	assert.Equal(t, Breakdown{}, Decompose(0))
	assert.True(t, Decompose(0).IsZero())
}

func TestDecompose_Negative(t *testing.T) {
	assert.Equal(t, Breakdown{}, Decompose(-42))
}

func TestDecompose_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		expected Breakdown
	}{
		{"one second", 1, Breakdown{Seconds: 1}},
		{"one minute", 60, Breakdown{Minutes: 1}},
		{"one hour one second", 3601, Breakdown{Hours: 1, Seconds: 1}},
		{"one day", DaySeconds, Breakdown{Days: 1}},
		{"one month", MonthSeconds, Breakdown{Months: 1}},
		{"one year", YearSeconds, Breakdown{Years: 1}},
		{
			"mixed",
			2*YearSeconds + 3*MonthSeconds + 4*DaySeconds + 5*HourSeconds + 6*MinuteSeconds + 7,
			Breakdown{Years: 2, Months: 3, Days: 4, Hours: 5, Minutes: 6, Seconds: 7},
		},
		{
			"year tail folds into last month",
			363*DaySeconds + 10*HourSeconds,
			Breakdown{Months: 11, Days: 29, Hours: 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decompose(tt.total))
		})
	}
}

func coarsestUnit(b Breakdown) int64 {
	switch {
	case b.Years > 0:
		return YearSeconds
	case b.Months > 0:
		return MonthSeconds
	case b.Days > 0:
		return DaySeconds
	case b.Hours > 0:
		return HourSeconds
	case b.Minutes > 0:
		return MinuteSeconds
	default:
		return 1
	}
}

func assertDecomposition(t *testing.T, total int64) {
	t.Helper()
	b := Decompose(total)

	assert.GreaterOrEqual(t, b.Years, int64(0))
	assert.True(t, b.Months >= 0 && b.Months < 12, "months out of range for %d: %+v", total, b)
	assert.True(t, b.Days >= 0 && b.Days < 30, "days out of range for %d: %+v", total, b)
	assert.True(t, b.Hours >= 0 && b.Hours < 24, "hours out of range for %d: %+v", total, b)
	assert.True(t, b.Minutes >= 0 && b.Minutes < 60, "minutes out of range for %d: %+v", total, b)
	assert.True(t, b.Seconds >= 0 && b.Seconds < 60, "seconds out of range for %d: %+v", total, b)

	rebuilt := b.TotalSeconds()
	assert.LessOrEqual(t, rebuilt, total)
	assert.Less(t, total-rebuilt, coarsestUnit(b), "lost more than one coarsest unit for %d: %+v", total, b)
}

func TestDecompose_Bounds(t *testing.T) {
	edges := []int64{
		0, 1, 59, 60, 3599, 3600, DaySeconds - 1, DaySeconds,
		MonthSeconds - 1, MonthSeconds, 12*MonthSeconds - 1, 12 * MonthSeconds,
		YearSeconds - 1, YearSeconds, YearSeconds + 1,
		61 * YearSeconds, 61*YearSeconds - 1,
	}
	for _, total := range edges {
		assertDecomposition(t, total)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10000; i++ {
		assertDecomposition(t, rng.Int64N(70*YearSeconds))
	}
}

func TestDecompose_ExactBelowYearTail(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 1000; i++ {
		years := rng.Int64N(60)
		rest := rng.Int64N(12 * MonthSeconds)
		total := years*YearSeconds + rest
		assert.Equal(t, total, Decompose(total).TotalSeconds())
	}
}
