package payroll

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodFor_ReferencePeriod(t *testing.T) {
	p := PeriodFor(time.Date(2025, time.January, 6, 10, 0, 0, 0, newYork), 0, newYork)

	assert.Equal(t, date(2025, time.January, 6), p.Start)
	assert.Equal(t, date(2025, time.January, 19), p.End)
	assert.Equal(t, payroll.PeriodCurrent, p.Status)
	assert.Equal(t, "Jan 06 - Jan 19, 2025", p.Label())
}

func TestPeriodFor_Boundaries(t *testing.T) {
	lastMinute := time.Date(2025, time.January, 19, 23, 59, 0, 0, newYork)
	assert.Equal(t, date(2025, time.January, 6), PeriodFor(lastMinute, 0, newYork).Start)

	nextDay := time.Date(2025, time.January, 20, 0, 0, 0, 0, newYork)
	assert.Equal(t, date(2025, time.January, 20), PeriodFor(nextDay, 0, newYork).Start)

	// 03:00 UTC on the 20th is still the 19th in New York.
	utcLate := time.Date(2025, time.January, 20, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2025, time.January, 6), PeriodFor(utcLate, 0, newYork).Start)
}

func TestPeriodFor_BeforeReferenceUsesFloor(t *testing.T) {
	p := PeriodFor(time.Date(2025, time.January, 5, 12, 0, 0, 0, newYork), 0, newYork)
	assert.Equal(t, date(2024, time.December, 23), p.Start)
	assert.Equal(t, date(2025, time.January, 5), p.End)
}

func TestPeriodFor_ContainsNow(t *testing.T) {
	start := time.Date(2024, time.June, 1, 7, 30, 0, 0, newYork)
	for i := 0; i < 400; i++ {
		now := start.Add(time.Duration(i) * 37 * time.Hour)
		p := PeriodFor(now, 0, newYork)
		assert.True(t, p.Contains(now.In(newYork)), "period %s does not contain %s", p.Label(), now)
	}
}

func TestPeriodFor_Tiles(t *testing.T) {
	now := time.Date(2025, time.May, 14, 15, 0, 0, 0, newYork)
	for k := -40; k < 40; k++ {
		cur := PeriodFor(now, k, newYork)
		next := PeriodFor(now, k+1, newYork)
		assert.Equal(t, next.Start, cur.End.AddDate(0, 0, 1), "offset %d", k)
		assert.Equal(t, next, cur.Next())
		assert.Equal(t, cur, next.Previous())
	}
}

func TestPeriods_Enumeration(t *testing.T) {
	now := time.Date(2025, time.May, 14, 15, 0, 0, 0, newYork)
	periods := Periods(now, 3, newYork)

	require.Len(t, periods, 5)
	wantOffsets := []int{-3, -2, -1, 0, 1}
	wantStatus := []payroll.PeriodStatus{
		payroll.PeriodCompleted, payroll.PeriodCompleted, payroll.PeriodCompleted,
		payroll.PeriodCurrent, payroll.PeriodUpcoming,
	}
	for i, p := range periods {
		assert.Equal(t, wantOffsets[i], p.Offset)
		assert.Equal(t, wantStatus[i], p.Status)
	}
}

func TestPayPeriod_MarshalJSON(t *testing.T) {
	p := PeriodFor(time.Date(2025, time.January, 8, 9, 0, 0, 0, newYork), -1, newYork)

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "2024-12-23", got["start"])
	assert.Equal(t, "2025-01-05", got["end"])
	assert.Equal(t, "completed", got["status"])
	assert.Equal(t, "Dec 23 - Jan 05, 2025", got["label"])
	assert.EqualValues(t, -1, got["offset"])
}
