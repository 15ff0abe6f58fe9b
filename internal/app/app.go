package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/nutriflow/internal/onboarding"
	"github.com/2beens/nutriflow/internal/plans"
	"github.com/2beens/nutriflow/internal/profile"
	"github.com/2beens/nutriflow/internal/session"
	"github.com/2beens/nutriflow/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

type Phase string

const (
	PhaseOnboarding Phase = "onboarding"
	PhaseSession    Phase = "session"
)

var (
	ErrNotInSession    = errors.New("onboarding not completed")
	ErrNotInOnboarding = errors.New("onboarding already completed")
)

type Params struct {
	Store        profile.Store
	Generator    plans.Generator
	FetchTimeout time.Duration
	Metrics      *metrics.Manager
	Now          func() time.Time
}

// App is the single-user application shell. It starts in onboarding, or in the
// session when a profile is already stored, and swaps the two on completion and reset.
type App struct {
	mu sync.Mutex

	store        profile.Store
	generator    plans.Generator
	fetchTimeout time.Duration
	metrics      *metrics.Manager
	now          func() time.Time

	flow    *onboarding.Flow
	session *session.Session
}

func New(params Params) *App {
	return &App{
		store:        params.Store,
		generator:    params.Generator,
		fetchTimeout: params.FetchTimeout,
		metrics:      params.Metrics,
		now:          params.Now,
		flow:         onboarding.NewFlow(),
	}
}

// Start loads the stored profile and, if there is one, skips onboarding. A record that
// does not decode or fails validation is treated as absent. A store that cannot be read
// leaves the app in onboarding and the error is returned.
func (a *App) Start(ctx context.Context) error {
	p, err := a.store.Load(ctx)
	if err != nil {
		if errors.Is(err, profile.ErrMalformedProfile) {
			log.Warnf("ignoring stored profile: %s", err)
			return nil
		}
		return fmt.Errorf("load stored profile: %w", err)
	}
	if p == nil {
		log.Debugln("no stored profile, starting onboarding")
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.startSession(*p)
	log.Infof("stored profile for [%s] loaded, session %s started", p.Name, a.session.ID())
	return nil
}

func (a *App) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase()
}

func (a *App) phase() Phase {
	if a.session != nil {
		return PhaseSession
	}
	return PhaseOnboarding
}

// InputUpdate carries the onboarding fields to change; nil fields are left as they are.
type InputUpdate struct {
	Name   *string `json:"name"`
	Age    *string `json:"age"`
	Height *string `json:"height"`
	Weight *string `json:"weight"`
}

func (a *App) UpdateOnboardingInput(u InputUpdate) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != nil {
		return ErrNotInOnboarding
	}

	if u.Name != nil {
		a.flow.SetName(*u.Name)
	}
	if u.Age != nil {
		a.flow.SetAge(*u.Age)
	}
	if u.Height != nil {
		a.flow.SetHeight(*u.Height)
	}
	if u.Weight != nil {
		a.flow.SetWeight(*u.Weight)
	}
	return nil
}

// AdvanceOnboarding moves to the next onboarding step. Completing the last step
// persists the profile and starts the session. A failed save is logged and the
// session still starts, with the profile held in memory only.
func (a *App) AdvanceOnboarding(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != nil {
		return ErrNotInOnboarding
	}

	p, err := a.flow.Advance()
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}

	if err := a.store.Save(ctx, *p); err != nil {
		log.Errorf("save profile for [%s]: %s", p.Name, err)
	}
	if a.metrics != nil {
		a.metrics.CounterOnboardingCompletions.Inc()
	}
	a.startSession(*p)
	log.Infof("onboarding completed for [%s], bmi %.1f, session %s started", p.Name, p.BMI, a.session.ID())
	return nil
}

func (a *App) RetreatOnboarding() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != nil {
		return ErrNotInOnboarding
	}
	a.flow.Retreat()
	return nil
}

// Session returns the running session, or ErrNotInSession during onboarding.
func (a *App) Session() (*session.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil, ErrNotInSession
	}
	return a.session, nil
}

// Reset clears the stored profile, discards the session with any in-flight plan
// fetches, and restarts onboarding. Nothing changes if the store cannot be cleared.
func (a *App) Reset(ctx context.Context) error {
	a.mu.Lock()
	if err := a.store.Clear(ctx); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("clear stored profile: %w", err)
	}

	s := a.session
	a.session = nil
	a.flow = onboarding.NewFlow()
	a.mu.Unlock()

	if s != nil {
		s.Close()
		log.Infof("session %s discarded", s.ID())
	}
	if a.metrics != nil {
		a.metrics.CounterResets.Inc()
	}
	return nil
}

// Close stops the running session and waits for its background fetches.
func (a *App) Close() {
	a.mu.Lock()
	s := a.session
	a.mu.Unlock()

	if s != nil {
		s.Close()
		s.Wait()
	}
}

func (a *App) startSession(p profile.Profile) {
	a.session = session.New(p, session.Params{
		Generator:    a.generator,
		FetchTimeout: a.fetchTimeout,
		Metrics:      a.metrics,
		Now:          a.now,
	})
}

type OnboardingView struct {
	Step      int              `json:"step"`
	StepName  string           `json:"stepName"`
	Input     onboarding.Input `json:"input"`
	StepValid bool             `json:"stepValid"`
}

type View struct {
	Phase      Phase           `json:"phase"`
	Onboarding *OnboardingView `json:"onboarding,omitempty"`
	Session    *session.State  `json:"session,omitempty"`
}

func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		st := a.session.State()
		return View{
			Phase:   PhaseSession,
			Session: &st,
		}
	}

	return View{
		Phase: PhaseOnboarding,
		Onboarding: &OnboardingView{
			Step:      int(a.flow.Step()),
			StepName:  a.flow.Step().String(),
			Input:     a.flow.Input(),
			StepValid: a.flow.StepValid(),
		},
	}
}
