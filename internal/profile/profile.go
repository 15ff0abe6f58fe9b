package profile

import (
	"fmt"
	"slices"
	"strings"
)

// Profile is the single record describing the user and their in-progress choices.
// Onboarding fills the biometrics and BMI, the session fills the rest field by field.
type Profile struct {
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Height float64 `json:"height"` // cm
	Weight float64 `json:"weight"` // kg
	BMI    float64 `json:"bmi"`

	Goals            []Goal        `json:"goals,omitempty"`
	WantsFitnessPlan *bool         `json:"wantsFitnessPlan,omitempty"`
	WorkoutTiming    WorkoutTiming `json:"workoutTiming,omitempty"`
	AlarmEnabled     bool          `json:"alarmEnabled,omitempty"`
	DietType         DietType      `json:"dietType,omitempty"`
	Region           string        `json:"region,omitempty"`
}

// Clone returns a deep copy, so callers can hand out snapshots without sharing slices.
func (p Profile) Clone() Profile {
	c := p
	c.Goals = slices.Clone(p.Goals)
	if p.WantsFitnessPlan != nil {
		wants := *p.WantsFitnessPlan
		c.WantsFitnessPlan = &wants
	}
	return c
}

func (p Profile) HasGoal(g Goal) bool {
	return slices.Contains(p.Goals, g)
}

// ToggleGoal flips the membership of g, keeping the insertion order of the rest.
func (p *Profile) ToggleGoal(g Goal) {
	if i := slices.Index(p.Goals, g); i >= 0 {
		p.Goals = slices.Delete(p.Goals, i, i+1)
		return
	}
	p.Goals = append(p.Goals, g)
}

// GoalsString joins goal ids with ", ", or returns "General Fitness" when none are set.
func (p Profile) GoalsString() string {
	if len(p.Goals) == 0 {
		return "General Fitness"
	}
	ids := make([]string, 0, len(p.Goals))
	for _, g := range p.Goals {
		ids = append(ids, g.String())
	}
	return strings.Join(ids, ", ")
}

func (p Profile) Category() Category {
	return CategoryFor(p.BMI)
}

// Goal can be one of:
//   - strength
//   - cardio
//   - weight_gain
//   - weight_loss
type Goal string

const (
	GoalStrength   Goal = "strength"
	GoalCardio     Goal = "cardio"
	GoalWeightGain Goal = "weight_gain"
	GoalWeightLoss Goal = "weight_loss"
)

var AllGoals = []Goal{GoalStrength, GoalCardio, GoalWeightGain, GoalWeightLoss}

func (g Goal) String() string {
	return string(g)
}

func (g Goal) IsValid() bool {
	switch g {
	case GoalStrength, GoalCardio, GoalWeightGain, GoalWeightLoss:
		return true
	default:
		return false
	}
}

func (g Goal) Label() string {
	switch g {
	case GoalStrength:
		return "Strength Training"
	case GoalCardio:
		return "Cardio Fitness"
	case GoalWeightGain:
		return "Weight Gaining"
	case GoalWeightLoss:
		return "Weight Loss"
	default:
		return ""
	}
}

func ParseGoal(s string) (Goal, error) {
	g := Goal(strings.ToLower(strings.TrimSpace(s)))
	if !g.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownGoal, s)
	}
	return g, nil
}

type DietType string

const (
	DietVeg    DietType = "Veg"
	DietNonVeg DietType = "Non-Veg"
)

func (d DietType) String() string {
	return string(d)
}

func (d DietType) IsValid() bool {
	return d == DietVeg || d == DietNonVeg
}

func ParseDietType(s string) (DietType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "veg":
		return DietVeg, nil
	case "non-veg", "nonveg", "non_veg":
		return DietNonVeg, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDietType, s)
	}
}

// WorkoutTiming holds the label of one of the fixed timing options.
type WorkoutTiming string

func (t WorkoutTiming) String() string {
	return string(t)
}

type TimingOption struct {
	ID    string        `json:"id"`
	Label WorkoutTiming `json:"label"`
	Time  string        `json:"time"`
}

var TimingOptions = []TimingOption{
	{ID: "early_morning", Label: "Early Morning", Time: "06:00 AM"},
	{ID: "morning", Label: "Late Morning", Time: "10:00 AM"},
	{ID: "afternoon", Label: "Afternoon", Time: "02:00 PM"},
	{ID: "evening", Label: "Evening", Time: "06:00 PM"},
	{ID: "night", Label: "Night", Time: "09:00 PM"},
}

// ParseWorkoutTiming accepts an option label or id, case-insensitively, and returns the label.
func ParseWorkoutTiming(s string) (WorkoutTiming, error) {
	s = strings.TrimSpace(s)
	for _, opt := range TimingOptions {
		if strings.EqualFold(s, opt.Label.String()) || strings.EqualFold(s, opt.ID) {
			return opt.Label, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTiming, s)
}
