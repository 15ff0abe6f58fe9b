package session

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/2beens/nutriflow/internal/dashboard"
	"github.com/2beens/nutriflow/internal/plans"
	"github.com/2beens/nutriflow/internal/profile"
	"github.com/2beens/nutriflow/internal/telemetry/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const DefaultFetchTimeout = 60 * time.Second

type Params struct {
	Generator    plans.Generator
	FetchTimeout time.Duration
	Metrics      *metrics.Manager
	// Now is used to pick the workout day matching today; defaults to time.Now.
	Now func() time.Time
}

// Session drives one user through goal, fitness, timing and diet selection, fetching
// the plans at the right transitions. It owns the profile from onboarding on.
//
// Every fetch is tagged with the session generation; Close bumps it and cancels
// in-flight fetches, so a late result never lands in a reset session.
type Session struct {
	mu sync.Mutex
	wg sync.WaitGroup

	id         uuid.UUID
	generation uint64
	ctx        context.Context
	cancel     context.CancelFunc

	generator    plans.Generator
	fetchTimeout time.Duration
	metrics      *metrics.Manager
	now          func() time.Time

	stage          Stage
	profile        profile.Profile
	workoutLoading bool
	workoutErr     error
	dietLoading    bool
	dietErr        error
	workoutPlan    []plans.WorkoutDay
	dietPlan       *plans.DietPlan
	tracker        *dashboard.Tracker
}

func New(p profile.Profile, params Params) *Session {
	fetchTimeout := params.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:           uuid.New(),
		ctx:          ctx,
		cancel:       cancel,
		generator:    params.Generator,
		fetchTimeout: fetchTimeout,
		metrics:      params.Metrics,
		now:          now,
		stage:        StageGoal,
		profile:      p.Clone(),
		tracker:      dashboard.NewTracker(nil, 0, p.Weight),
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

func (s *Session) Profile() profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// ToggleGoal flips a goal. Goals stay editable until the session completes; the
// non-empty guard applies only when confirming the goal stage.
func (s *Session) ToggleGoal(g profile.Goal) error {
	if !g.IsValid() {
		return fmt.Errorf("%w: %q", profile.ErrUnknownGoal, g)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.stage == StageComplete {
		return ErrWrongStage
	}
	s.profile.ToggleGoal(g)
	return nil
}

func (s *Session) ConfirmGoals() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStage(StageGoal); err != nil {
		return err
	}
	if len(s.profile.Goals) == 0 {
		return ErrNoGoals
	}
	s.stage = StageFitness
	return nil
}

func (s *Session) ChooseFitnessPlan(wants bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStage(StageFitness); err != nil {
		return err
	}

	s.profile.WantsFitnessPlan = &wants
	if wants {
		s.stage = StageTiming
	} else {
		s.stage = StageDiet
	}
	return nil
}

// SelectTiming accepts a timing option label or id and stores the label.
func (s *Session) SelectTiming(timing string) error {
	label, err := profile.ParseWorkoutTiming(timing)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStage(StageTiming); err != nil {
		return err
	}
	s.profile.WorkoutTiming = label
	return nil
}

func (s *Session) ToggleAlarm() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStage(StageTiming); err != nil {
		return err
	}
	s.profile.AlarmEnabled = !s.profile.AlarmEnabled
	return nil
}

// ConfirmTiming moves to the diet stage right away and fetches the workout plan in
// the background. A failed fetch only leaves the session without a workout plan.
func (s *Session) ConfirmTiming() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStage(StageTiming); err != nil {
		return err
	}
	if s.profile.WorkoutTiming == "" {
		return ErrTimingNotSet
	}

	s.stage = StageDiet
	s.workoutLoading = true
	s.workoutErr = nil

	gen := s.generation
	p := s.profile.Clone()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.fetchWorkoutPlan(gen, p)
	}()

	return nil
}

func (s *Session) fetchWorkoutPlan(gen uint64, p profile.Profile) {
	ctx, cancel := context.WithTimeout(s.ctx, s.fetchTimeout)
	defer cancel()

	days, err := s.generator.GenerateWorkoutPlan(ctx, p)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		log.Debugf("session %s: discarding stale workout plan result", s.id)
		s.countStale()
		return
	}

	s.workoutLoading = false
	if err != nil {
		log.Errorf("session %s: generate workout plan: %s", s.id, err)
		s.workoutErr = err
		return
	}

	s.workoutPlan = days
	s.tracker = dashboard.NewTracker(days, dashboard.InitialDayIndex(days, s.now()), s.profile.Weight)
	log.Debugf("session %s: workout plan with %d days stored", s.id, len(days))
}

// SubmitDiet stores the diet choices and blocks until the diet plan is generated.
// On failure the session stays in the diet stage with the choices kept, ready for
// another submit.
func (s *Session) SubmitDiet(ctx context.Context, dietType profile.DietType, region string) error {
	s.mu.Lock()
	if err := s.checkStage(StageDiet); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.dietLoading {
		s.mu.Unlock()
		return ErrDietBusy
	}
	if !dietType.IsValid() || !profile.ValidRegion(region) {
		s.mu.Unlock()
		return ErrInvalidDiet
	}

	s.profile.DietType = dietType
	s.profile.Region = region
	s.dietLoading = true
	s.dietErr = nil
	gen := s.generation
	p := s.profile.Clone()
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	dietPlan, err := s.generator.GenerateDietPlan(ctx, p)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		log.Debugf("session %s: discarding stale diet plan result", s.id)
		s.countStale()
		return ErrSessionClosed
	}

	s.dietLoading = false
	if err != nil {
		log.Errorf("session %s: generate diet plan: %s", s.id, err)
		s.dietErr = err
		return err
	}

	s.dietPlan = dietPlan
	s.stage = StageComplete
	return nil
}

func (s *Session) ToggleExercise(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStage(StageComplete); err != nil {
		return err
	}
	return s.tracker.ToggleExercise(name)
}

func (s *Session) SetActiveDay(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStage(StageComplete); err != nil {
		return err
	}
	return s.tracker.SetActiveDay(index)
}

// Close invalidates the session: in-flight fetches are cancelled and their results,
// if they still arrive, are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return
	}
	s.generation++
	s.cancel()
	s.workoutLoading = false
	s.dietLoading = false
}

// Wait blocks until background fetches started by this session have returned.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) checkOpen() error {
	if s.ctx.Err() != nil {
		return ErrSessionClosed
	}
	return nil
}

func (s *Session) checkStage(want Stage) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.stage != want {
		return fmt.Errorf("%w: in %s, want %s", ErrWrongStage, s.stage, want)
	}
	return nil
}

func (s *Session) countStale() {
	if s.metrics != nil {
		s.metrics.CounterStaleResults.Inc()
	}
}

// State is a read-only snapshot of the session, including the dashboard derivations.
type State struct {
	ID                     string             `json:"id"`
	Stage                  Stage              `json:"stage"`
	Profile                profile.Profile    `json:"profile"`
	BMICategory            profile.Category   `json:"bmiCategory"`
	WorkoutLoading         bool               `json:"workoutLoading"`
	WorkoutError           string             `json:"workoutError,omitempty"`
	DietLoading            bool               `json:"dietLoading"`
	DietError              string             `json:"dietError,omitempty"`
	WorkoutPlan            []plans.WorkoutDay `json:"workoutPlan,omitempty"`
	DietPlan               *plans.DietPlan    `json:"dietPlan,omitempty"`
	FeaturedTip            string             `json:"featuredTip,omitempty"`
	ActiveDayIndex         int                `json:"activeDayIndex"`
	CompletedExercises     []string           `json:"completedExercises"`
	WorkoutProgress        int                `json:"workoutProgress"`
	EstimatedCaloriesBurnt int                `json:"estimatedCaloriesBurnt"`
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		ID:                     s.id.String(),
		Stage:                  s.stage,
		Profile:                s.profile.Clone(),
		BMICategory:            s.profile.Category(),
		WorkoutLoading:         s.workoutLoading,
		DietLoading:            s.dietLoading,
		WorkoutPlan:            slices.Clone(s.workoutPlan),
		ActiveDayIndex:         s.tracker.ActiveDayIndex(),
		CompletedExercises:     s.tracker.Completed(),
		WorkoutProgress:        s.tracker.WorkoutProgress(),
		EstimatedCaloriesBurnt: s.tracker.EstimatedCaloriesBurnt(),
	}
	if st.CompletedExercises == nil {
		st.CompletedExercises = []string{}
	}
	if s.workoutErr != nil {
		st.WorkoutError = s.workoutErr.Error()
	}
	if s.dietErr != nil {
		st.DietError = s.dietErr.Error()
	}
	if s.dietPlan != nil {
		dietPlan := *s.dietPlan
		st.DietPlan = &dietPlan
		st.FeaturedTip = dietPlan.FeaturedTip()
	}
	return st
}
