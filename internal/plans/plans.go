package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/nutriflow/internal/profile"
)

// WorkoutDay is one day of a generated weekly plan. Exercise order is the display
// and tracking order.
type WorkoutDay struct {
	Day       string   `json:"day"`
	Duration  string   `json:"duration"`
	Exercises []string `json:"exercises"`
}

// DietPlan is a generated one-day meal plan. Snack is requested from the generator
// but nothing downstream reads it.
type DietPlan struct {
	Breakfast string   `json:"breakfast"`
	Lunch     string   `json:"lunch"`
	Snack     string   `json:"snack"`
	Dinner    string   `json:"dinner"`
	Tips      []string `json:"tips"`
}

// FeaturedTip is the first tip, or empty if there are none.
func (d DietPlan) FeaturedTip() string {
	if len(d.Tips) == 0 {
		return ""
	}
	return d.Tips[0]
}

//go:generate mockgen -destination=../session/generator_mock_test.go -package=session_test github.com/2beens/nutriflow/internal/plans Generator

// Generator produces workout and diet plans for a profile.
type Generator interface {
	GenerateWorkoutPlan(ctx context.Context, p profile.Profile) ([]WorkoutDay, error)
	GenerateDietPlan(ctx context.Context, p profile.Profile) (*DietPlan, error)
}

// Kind names the plan type a generation was for.
type Kind string

const (
	KindWorkout Kind = "workout"
	KindDiet    Kind = "diet"
)

func (k Kind) String() string {
	return string(k)
}

var (
	ErrEmptyResponse   = errors.New("empty response")
	ErrInvalidResponse = errors.New("response does not match schema")
)

// RemoteGenerationError is the single error kind for any failed plan generation:
// transport, upstream, or decoding.
type RemoteGenerationError struct {
	Kind Kind
	Err  error
}

func (e *RemoteGenerationError) Error() string {
	return fmt.Sprintf("generate %s plan: %s", e.Kind, e.Err)
}

func (e *RemoteGenerationError) Unwrap() error {
	return e.Err
}

func newRemoteGenerationError(kind Kind, err error) error {
	return &RemoteGenerationError{Kind: kind, Err: err}
}
