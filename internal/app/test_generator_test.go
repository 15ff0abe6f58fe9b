package app

import (
	"context"
	"sync"

	"github.com/2beens/nutriflow/internal/plans"
	"github.com/2beens/nutriflow/internal/profile"
)

type testGenerator struct {
	mu           sync.Mutex
	workoutCalls int
	dietCalls    int
	workout      func(ctx context.Context, p profile.Profile) ([]plans.WorkoutDay, error)
	diet         func(ctx context.Context, p profile.Profile) (*plans.DietPlan, error)
}

func (g *testGenerator) GenerateWorkoutPlan(ctx context.Context, p profile.Profile) ([]plans.WorkoutDay, error) {
	g.mu.Lock()
	g.workoutCalls++
	fn := g.workout
	g.mu.Unlock()
	return fn(ctx, p)
}

func (g *testGenerator) GenerateDietPlan(ctx context.Context, p profile.Profile) (*plans.DietPlan, error) {
	g.mu.Lock()
	g.dietCalls++
	fn := g.diet
	g.mu.Unlock()
	return fn(ctx, p)
}

func (g *testGenerator) calls() (workout, diet int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.workoutCalls, g.dietCalls
}

var testWeek = []plans.WorkoutDay{
	{Day: "Monday", Duration: "90 mins", Exercises: []string{"Squats", "Lunges"}},
	{Day: "Tuesday", Duration: "60 mins", Exercises: []string{"Run", "Stretch"}},
	{Day: "Wednesday", Duration: "75 mins", Exercises: []string{"Swim"}},
	{Day: "Thursday", Duration: "90 mins", Exercises: []string{"Bench press"}},
	{Day: "Friday", Duration: "60 mins", Exercises: []string{"Rowing"}},
	{Day: "Saturday", Duration: "120 mins", Exercises: []string{"Hike"}},
	{Day: "Sunday", Duration: "60 mins", Exercises: []string{"Yoga"}},
}

var testDiet = &plans.DietPlan{
	Breakfast: "Oats with figs",
	Lunch:     "Chickpea salad",
	Snack:     "Walnuts",
	Dinner:    "Stuffed peppers",
	Tips:      []string{"Use olive oil"},
}

func newOKGenerator() *testGenerator {
	return &testGenerator{
		workout: func(context.Context, profile.Profile) ([]plans.WorkoutDay, error) {
			return testWeek, nil
		},
		diet: func(context.Context, profile.Profile) (*plans.DietPlan, error) {
			return testDiet, nil
		},
	}
}
