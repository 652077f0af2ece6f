package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"prep_tracker/internal/feature/tracker/domain/entity"
)

var now = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

func day(offset int) string {
	return now.AddDate(0, 0, offset).Format("2006-01-02")
}

func TestStreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"no logs", nil, 0},
		{"today, yesterday and the day before", []string{day(0), day(-1), day(-2)}, 3},
		{"order does not matter", []string{day(-2), day(0), day(-1)}, 3},
		{"nothing today or yesterday", []string{day(-2), day(-3)}, 0},
		{"yesterday keeps the streak alive", []string{day(-1), day(-2), day(-4)}, 2},
		{"two logs today count once", []string{day(0), day(0)}, 1},
		{"timestamps collapse to their day", []string{day(0) + "T01:00:00Z", day(0) + "T23:00:00Z", day(-1)}, 2},
		{"only yesterday", []string{day(-1)}, 1},
		{"gap right after today", []string{day(0), day(-2), day(-3)}, 1},
		{"future dates break it", []string{day(1)}, 0},
		{"unparseable dates are ignored", []string{"garbage", day(0)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Streak(tt.dates, now))
		})
	}
}

func TestStreak_AcrossMonthAndDST(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tz database not available")
	}
	// The night of 2024-03-10 is 23 hours long in New York.
	local := time.Date(2024, 3, 11, 0, 30, 0, 0, loc)

	got := Streak([]string{"2024-03-11", "2024-03-10", "2024-03-09", "2024-03-01", "2024-02-29"}, local)

	assert.Equal(t, 3, got)
	assert.Equal(t, 2, Streak([]string{"2024-03-01", "2024-02-29"}, time.Date(2024, 3, 1, 8, 0, 0, 0, loc)))
}

func TestMockRatio(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.7, MockRatio([]int{8, 6}), 1e-9)
	assert.Zero(t, MockRatio(nil))
	assert.InDelta(t, 1.0, MockRatio([]int{10}), 1e-9)
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 61, Readiness(0.5, 1.0, 0.0, 0.8))
	assert.Equal(t, 0, Readiness(0, 0, 0, 0))
	assert.Equal(t, 100, Readiness(1, 1, 1, 1))
}

func TestReadiness_Monotonic(t *testing.T) {
	t.Parallel()

	const total = 5
	for base := 0; base < total; base++ {
		for i := range 3 {
			before := [3]float64{0.4, 0.4, 0.4}
			after := before
			before[i] = float64(base) / total
			after[i] = float64(base+1) / total

			assert.GreaterOrEqual(t,
				Readiness(after[0], after[1], after[2], 0.5),
				Readiness(before[0], before[1], before[2], 0.5))
		}
	}
}

func TestCompute(t *testing.T) {
	t.Parallel()

	snap := Snapshot{
		DSA: []entity.DSATopic{
			{Status: entity.StatusCompleted},
			{Status: entity.StatusInProgress},
		},
		CS: []entity.CSTopic{
			{Status: entity.StatusCompleted},
		},
		Projects: []entity.Project{
			{Status: entity.ProjectInProgress, IsInterviewReady: true},
			{Status: entity.ProjectPlanned},
		},
		Mocks: []entity.MockInterview{{SelfRating: 8}, {SelfRating: 8}},
		Logs: []entity.DailyLog{
			{Date: day(0), HoursSpent: 2},
			{Date: day(0), HoursSpent: 1},
			{Date: day(-1), HoursSpent: 3},
		},
	}

	got := Compute(snap, now)

	assert.Equal(t, Progress{Completed: 1, Total: 2, Percent: 50}, got.DSA)
	assert.Equal(t, Progress{Completed: 1, Total: 1, Percent: 100}, got.CS)
	assert.Equal(t, Progress{Completed: 0, Total: 2, Percent: 0}, got.Projects)
	assert.InDelta(t, 80, got.MockScore, 1e-9)
	assert.Equal(t, 2, got.MockCount)
	assert.Equal(t, 61, got.Readiness)
	assert.Equal(t, 2, got.StreakDays)
	assert.Equal(t, 6, got.TotalHours)
	assert.Equal(t, 1, got.InterviewReadyProjects)

	assert.Equal(t, got, Compute(snap, now), "same input must give identical output")
}

func TestCompute_Empty(t *testing.T) {
	t.Parallel()

	got := Compute(Snapshot{}, now)

	assert.Equal(t, Stats{}, got)
}
