// Package engine holds the pure progress and streak computations. Nothing
// here reads the clock or touches storage; callers pass the current instant
// and full prior state and persist whatever comes back.
package engine

import (
	"math"
	"time"

	"github.com/stridehq/stride/internal/model"
)

// fallbackIncrement is the flat progress bump applied per log event when a
// goal has no milestones.
const fallbackIncrement = 5

// decayPenalty is the display-only reduction applied when the most recent
// log is not from the current calendar day. It is never persisted.
const decayPenalty = 5

// LogResult is the updated goal state produced by a log-progress event.
type LogResult struct {
	Progress    int
	Streak      int
	LastUpdated time.Time
}

// DiffDays returns the whole-day difference between now and last, computed
// by flooring the raw duration against 24h rather than comparing calendar
// dates. Two instants 23h apart on different calendar days count as the
// same day here; the display-side decay uses calendar comparison instead.
func DiffDays(last, now time.Time) int {
	return int(math.Floor(now.Sub(last).Hours() / 24))
}

// NextStreak applies the streak rule for a log event at now.
//
// A nil lastUpdated means this is the first-ever log, which starts the
// streak at 1. Exactly one day later continues the streak, more than one
// day breaks it back to 1, and a same-day re-log leaves it untouched.
// A negative day difference (event timestamped before the stored
// lastUpdated, e.g. clock skew between sessions) is treated as same-day.
func NextStreak(lastUpdated *time.Time, streak int, now time.Time) int {
	if lastUpdated == nil {
		return 1
	}
	switch d := DiffDays(*lastUpdated, now); {
	case d == 1:
		return streak + 1
	case d > 1:
		return 1
	default:
		return streak
	}
}

// MilestoneProgress is the completion percentage derived from milestone
// state: round(100 * completed / total), or 0 for an empty slice.
func MilestoneProgress(milestones []*model.Milestone) int {
	if len(milestones) == 0 {
		return 0
	}
	completed := 0
	for _, m := range milestones {
		if m.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(milestones)) * 100))
}

// LogProgress computes the goal state after a log-progress event at now.
// The streak rule is applied first, then the progress rule: milestone state
// is authoritative whenever milestones exist, otherwise the stored progress
// is bumped by the flat increment and clamped at 100.
func LogProgress(goal *model.Goal, milestones []*model.Milestone, now time.Time) LogResult {
	res := LogResult{
		Streak:      NextStreak(goal.LastUpdated, goal.Streak, now),
		LastUpdated: now,
	}
	if len(milestones) > 0 {
		res.Progress = MilestoneProgress(milestones)
	} else {
		res.Progress = min(100, goal.Progress+fallbackIncrement)
	}
	return res
}

// SameCalendarDay reports whether a and b fall on the same calendar date,
// compared by year/month/day fields. b is converted into a's location so
// the comparison is against a single wall clock.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// LoggedToday reports whether the goal's last update falls on the same
// calendar date as now.
func LoggedToday(goal *model.Goal, now time.Time) bool {
	if goal.LastUpdated == nil {
		return false
	}
	return SameCalendarDay(now, *goal.LastUpdated)
}

// DisplayProgress is the cosmetic progress value used for rendering: the
// stored progress when the goal was logged today, otherwise the stored
// progress decayed by a fixed penalty, floored at 0. Persisted state is
// never changed by this.
func DisplayProgress(goal *model.Goal, now time.Time) int {
	if LoggedToday(goal, now) {
		return goal.Progress
	}
	return max(0, goal.Progress-decayPenalty)
}
