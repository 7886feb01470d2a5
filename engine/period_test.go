package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamvolt/binex/types"
)

func TestPeriodWindowDay(t *testing.T) {
	from, to := PeriodWindow(types.PeriodDay, time.UTC, testNow)

	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC), to)
}

func TestPeriodWindowWeekStartsMonday(t *testing.T) {
	// 2024-05-15 is a Wednesday.
	from, to := PeriodWindow(types.PeriodWeek, time.UTC, testNow)

	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), to)

	// Sunday still belongs to the week that began the previous Monday.
	sunday := time.Date(2024, 5, 19, 23, 30, 0, 0, time.UTC)
	from, to = PeriodWindow(types.PeriodWeek, time.UTC, sunday)

	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), to)
}

func TestPeriodWindowMonth(t *testing.T) {
	from, to := PeriodWindow(types.PeriodMonth, time.UTC, testNow)

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestPeriodWindowTenantTimezone(t *testing.T) {
	tehran, err := time.LoadLocation("Asia/Tehran")
	require.NoError(t, err)

	// 20:45 UTC is already past midnight in Tehran: the local day window
	// starts on the 16th.
	late := time.Date(2024, 5, 15, 20, 45, 0, 0, time.UTC)
	from, to := PeriodWindow(types.PeriodDay, tehran, late)

	assert.Equal(t, time.Date(2024, 5, 16, 0, 0, 0, 0, tehran).Unix(), from.Unix())
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, tehran).Unix(), to.Unix())
}
