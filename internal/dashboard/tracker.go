package dashboard

import (
	"errors"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/2beens/nutriflow/internal/plans"
)

// caloriesPerExercisePerKg is a flat placeholder factor: every completed exercise
// burns weight * 0.5 kcal.
const caloriesPerExercisePerKg = 0.5

var (
	ErrDayOutOfRange   = errors.New("workout day out of range")
	ErrNoActiveDay     = errors.New("no active workout day")
	ErrUnknownExercise = errors.New("exercise not in active day")
)

// Tracker keeps the exercises marked done for the active workout day.
// The plan itself is read only. Tracker is not safe for concurrent use.
type Tracker struct {
	days      []plans.WorkoutDay
	activeDay int
	completed map[string]struct{}
	weight    float64
}

// NewTracker starts tracking days with activeDay selected; weight (kg) feeds the
// calorie estimate. An out of range activeDay leaves no active day.
func NewTracker(days []plans.WorkoutDay, activeDay int, weight float64) *Tracker {
	return &Tracker{
		days:      days,
		activeDay: activeDay,
		completed: make(map[string]struct{}),
		weight:    weight,
	}
}

func (t *Tracker) Days() []plans.WorkoutDay {
	return t.days
}

func (t *Tracker) ActiveDayIndex() int {
	return t.activeDay
}

func (t *Tracker) ActiveDay() (plans.WorkoutDay, bool) {
	if t.activeDay < 0 || t.activeDay >= len(t.days) {
		return plans.WorkoutDay{}, false
	}
	return t.days[t.activeDay], true
}

// SetActiveDay selects a day and always empties the completion set, even when the
// same day is selected again.
func (t *Tracker) SetActiveDay(index int) error {
	if index < 0 || index >= len(t.days) {
		return ErrDayOutOfRange
	}
	t.activeDay = index
	clear(t.completed)
	return nil
}

// ToggleExercise flips whether name is marked done for the active day.
func (t *Tracker) ToggleExercise(name string) error {
	day, ok := t.ActiveDay()
	if !ok {
		return ErrNoActiveDay
	}
	if !slices.Contains(day.Exercises, name) {
		return ErrUnknownExercise
	}

	if _, done := t.completed[name]; done {
		delete(t.completed, name)
	} else {
		t.completed[name] = struct{}{}
	}
	return nil
}

func (t *Tracker) IsCompleted(name string) bool {
	_, done := t.completed[name]
	return done
}

// Completed lists done exercises in the active day's order.
func (t *Tracker) Completed() []string {
	day, ok := t.ActiveDay()
	if !ok {
		return nil
	}
	done := make([]string, 0, len(t.completed))
	for _, ex := range day.Exercises {
		if t.IsCompleted(ex) && !slices.Contains(done, ex) {
			done = append(done, ex)
		}
	}
	return done
}

// WorkoutProgress is the rounded percentage of the active day's exercises marked done,
// 0 when there is no active day or it has no exercises.
func (t *Tracker) WorkoutProgress() int {
	day, ok := t.ActiveDay()
	if !ok || len(day.Exercises) == 0 {
		return 0
	}
	return int(math.Round(float64(len(t.completed)) / float64(len(day.Exercises)) * 100))
}

// EstimatedCaloriesBurnt is round(done * weight * 0.5), 0 when there is no active day.
func (t *Tracker) EstimatedCaloriesBurnt() int {
	if _, ok := t.ActiveDay(); !ok {
		return 0
	}
	return int(math.Round(float64(len(t.completed)) * t.weight * caloriesPerExercisePerKg))
}

// InitialDayIndex picks the first day whose label contains now's weekday name,
// case-insensitively, falling back to the first day.
func InitialDayIndex(days []plans.WorkoutDay, now time.Time) int {
	today := strings.ToLower(now.Weekday().String())
	for i, d := range days {
		if strings.Contains(strings.ToLower(d.Day), today) {
			return i
		}
	}
	return 0
}
