// Package analytics derives the readiness dashboard from a user's tracked records.
// Everything here is pure: the same snapshot and clock always give the same Stats.
package analytics

import (
	"math"
	"slices"
	"time"

	"prep_tracker/internal/feature/tracker/domain/entity"
	"prep_tracker/internal/shared/scoped"
)

// Readiness weights, in points out of 100.
const (
	WeightDSA      = 30
	WeightCS       = 30
	WeightProjects = 20
	WeightMocks    = 20
)

// maxSelfRating is the top of the mock interview self-rating scale.
const maxSelfRating = 10

// Snapshot is everything one user has tracked, as read from the stores.
type Snapshot struct {
	DSA      []entity.DSATopic
	CS       []entity.CSTopic
	Projects []entity.Project
	Mocks    []entity.MockInterview
	Logs     []entity.DailyLog
}

// Progress is the completion of one category.
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

// Stats is the dashboard.
type Stats struct {
	DSA                    Progress `json:"dsa"`
	CS                     Progress `json:"cs"`
	Projects               Progress `json:"projects"`
	MockScore              float64  `json:"mock_score"`
	MockCount              int      `json:"mock_count"`
	Readiness              int      `json:"readiness"`
	StreakDays             int      `json:"streak_days"`
	TotalHours             int      `json:"total_hours"`
	InterviewReadyProjects int      `json:"interview_ready_projects"`
}

// Compute derives Stats from s. now fixes "today" for the streak, in now's location.
func Compute(s Snapshot, now time.Time) Stats {
	dsa := progress(s.DSA, func(t entity.DSATopic) bool { return t.Status == entity.StatusCompleted })
	cs := progress(s.CS, func(t entity.CSTopic) bool { return t.Status == entity.StatusCompleted })
	projects := progress(s.Projects, func(p entity.Project) bool { return p.Status == entity.ProjectCompleted })

	ratings := make([]int, 0, len(s.Mocks))
	for _, m := range s.Mocks {
		ratings = append(ratings, m.SelfRating)
	}
	mockRatio := MockRatio(ratings)

	dates := make([]string, 0, len(s.Logs))
	hours := 0
	for _, l := range s.Logs {
		dates = append(dates, l.Date)
		hours += l.HoursSpent
	}

	ready := 0
	for _, p := range s.Projects {
		if p.IsInterviewReady {
			ready++
		}
	}

	return Stats{
		DSA:                    dsa,
		CS:                     cs,
		Projects:               projects,
		MockScore:              mockRatio * 100,
		MockCount:              len(s.Mocks),
		Readiness:              Readiness(ratio(dsa), ratio(cs), ratio(projects), mockRatio),
		StreakDays:             Streak(dates, now),
		TotalHours:             hours,
		InterviewReadyProjects: ready,
	}
}

// Readiness combines the four ratios (each in [0,1]) into a whole percentage.
func Readiness(dsa, cs, projects, mocks float64) int {
	score := dsa*WeightDSA + cs*WeightCS + projects*WeightProjects + mocks*WeightMocks
	return int(math.Round(score))
}

// MockRatio is the average self rating as a fraction of the top rating; 0 without ratings.
func MockRatio(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings)) / maxSelfRating
}

// Streak counts consecutive logged days ending today or yesterday. dates are
// calendar dates (YYYY-MM-DD or RFC 3339); unparseable entries are skipped.
func Streak(dates []string, now time.Time) int {
	seen := make(map[int]struct{}, len(dates))
	days := make([]int, 0, len(dates))
	for _, d := range dates {
		day, ok := dayNumber(d)
		if !ok {
			continue
		}
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	if len(days) == 0 {
		return 0
	}
	slices.Sort(days)
	slices.Reverse(days)

	today := civilDay(now.Year(), now.Month(), now.Day())
	if days[0] != today && days[0] != today-1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1]-days[i] != 1 {
			break
		}
		streak++
	}
	return streak
}

func progress[T any](items []T, done func(T) bool) Progress {
	p := Progress{Total: len(items)}
	for _, it := range items {
		if done(it) {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = float64(p.Completed) / float64(p.Total) * 100
	}
	return p
}

func ratio(p Progress) float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// dayNumber maps a calendar date to a day count, so adjacent days differ by exactly one.
func dayNumber(s string) (int, bool) {
	date, err := scoped.ParseCalendarDate(s)
	if err != nil {
		return 0, false
	}
	t, err := time.Parse(scoped.DateLayout, date)
	if err != nil {
		return 0, false
	}
	return civilDay(t.Year(), t.Month(), t.Day()), true
}

// civilDay numbers days at UTC midnight, which has no DST gaps.
func civilDay(y int, m time.Month, d int) int {
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
