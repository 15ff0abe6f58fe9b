package onboarding

import (
	"errors"
	"strings"

	"github.com/2beens/nutriflow/internal/profile"
)

// Step is one of the four onboarding inputs, in order.
type Step int

const (
	StepName Step = iota + 1
	StepAge
	StepHeight
	StepWeight
)

func (s Step) String() string {
	switch s {
	case StepName:
		return "name"
	case StepAge:
		return "age"
	case StepHeight:
		return "height"
	case StepWeight:
		return "weight"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidStep = errors.New("current step input is not valid")
	ErrCompleted   = errors.New("onboarding already completed")
)

// Input holds the raw text the user typed; it is parsed only when validated.
type Input struct {
	Name   string `json:"name"`
	Age    string `json:"age"`
	Height string `json:"height"`
	Weight string `json:"weight"`
}

// Flow collects name, age, height and weight, one validated step at a time.
// It is not safe for concurrent use.
type Flow struct {
	step      Step
	input     Input
	completed bool
}

func NewFlow() *Flow {
	return &Flow{step: StepName}
}

func (f *Flow) Step() Step {
	return f.step
}

func (f *Flow) Input() Input {
	return f.input
}

func (f *Flow) Completed() bool {
	return f.completed
}

func (f *Flow) SetName(name string)     { f.input.Name = name }
func (f *Flow) SetAge(age string)       { f.input.Age = age }
func (f *Flow) SetHeight(height string) { f.input.Height = height }
func (f *Flow) SetWeight(weight string) { f.input.Weight = weight }

// StepValid reports whether the current step's input passes its bounds.
// Unparseable numbers are simply invalid.
func (f *Flow) StepValid() bool {
	switch f.step {
	case StepName:
		return profile.ValidName(f.input.Name)
	case StepAge:
		age, ok := profile.ParseAge(f.input.Age)
		return ok && profile.ValidAge(age)
	case StepHeight:
		height, ok := profile.ParseMeasure(f.input.Height)
		return ok && profile.ValidHeight(height)
	case StepWeight:
		weight, ok := profile.ParseMeasure(f.input.Weight)
		return ok && profile.ValidWeight(weight)
	default:
		return false
	}
}

// Advance moves to the next step. On the last step it computes the BMI, marks the
// flow completed and returns the new profile. An invalid step changes nothing.
func (f *Flow) Advance() (*profile.Profile, error) {
	if f.completed {
		return nil, ErrCompleted
	}
	if !f.StepValid() {
		return nil, ErrInvalidStep
	}

	if f.step < StepWeight {
		f.step++
		return nil, nil
	}

	// earlier inputs may have been edited after their step was passed
	age, ageOK := profile.ParseAge(f.input.Age)
	height, heightOK := profile.ParseMeasure(f.input.Height)
	weight, _ := profile.ParseMeasure(f.input.Weight)
	if !profile.ValidName(f.input.Name) || !ageOK || !profile.ValidAge(age) || !heightOK || !profile.ValidHeight(height) {
		return nil, ErrInvalidStep
	}

	f.completed = true
	return &profile.Profile{
		Name:   strings.TrimSpace(f.input.Name),
		Age:    age,
		Height: height,
		Weight: weight,
		BMI:    profile.CalculateBMI(height, weight),
	}, nil
}

// Retreat goes one step back; it does nothing on the first step or once completed.
func (f *Flow) Retreat() {
	if f.completed || f.step <= StepName {
		return
	}
	f.step--
}
