package session

import "errors"

// Stage is one step of the post-onboarding flow:
//
//	goal -> fitness -> timing -> diet -> complete
//	             \-------------> diet
type Stage string

const (
	StageGoal     Stage = "goal"
	StageFitness  Stage = "fitness"
	StageTiming   Stage = "timing"
	StageDiet     Stage = "diet"
	StageComplete Stage = "complete"
)

func (s Stage) String() string {
	return string(s)
}

var (
	ErrWrongStage    = errors.New("action not allowed in current stage")
	ErrNoGoals       = errors.New("at least one goal must be selected")
	ErrTimingNotSet  = errors.New("workout timing not selected")
	ErrInvalidDiet   = errors.New("diet type and region are required")
	ErrDietBusy      = errors.New("diet plan generation already in progress")
	ErrSessionClosed = errors.New("session closed")
)
