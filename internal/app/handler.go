package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/nutriflow/internal/dashboard"
	"github.com/2beens/nutriflow/internal/middleware"
	"github.com/2beens/nutriflow/internal/onboarding"
	"github.com/2beens/nutriflow/internal/plans"
	"github.com/2beens/nutriflow/internal/profile"
	"github.com/2beens/nutriflow/internal/session"
	"github.com/2beens/nutriflow/internal/telemetry/metrics"
	"github.com/2beens/nutriflow/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxRequestBodyBytes = 1 << 16

type Handler struct {
	app *App
}

func NewHandler(app *App) *Handler {
	return &Handler{app: app}
}

func (h *Handler) SetupRoutes(
	r *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	planRateLimitPerMin int,
) {
	r.HandleFunc("/state", h.HandleState).Methods("GET", "OPTIONS").Name("state")

	r.HandleFunc("/onboarding/input", h.HandleOnboardingInput).Methods("PUT", "OPTIONS").Name("onboarding-input")
	r.HandleFunc("/onboarding/next", h.HandleOnboardingNext).Methods("POST", "OPTIONS").Name("onboarding-next")
	r.HandleFunc("/onboarding/back", h.HandleOnboardingBack).Methods("POST", "OPTIONS").Name("onboarding-back")

	// confirm must be registered before the {goal} route to win the match
	r.HandleFunc("/session/goals/confirm", h.HandleConfirmGoals).Methods("POST", "OPTIONS").Name("confirm-goals")
	r.HandleFunc("/session/goals/{goal}", h.HandleToggleGoal).Methods("POST", "OPTIONS").Name("toggle-goal")
	r.HandleFunc("/session/fitness", h.HandleFitnessChoice).Methods("POST", "OPTIONS").Name("fitness-choice")
	r.HandleFunc("/session/timing", h.HandleSelectTiming).Methods("PUT", "OPTIONS").Name("select-timing")
	r.HandleFunc("/session/alarm", h.HandleToggleAlarm).Methods("POST", "OPTIONS").Name("toggle-alarm")

	workoutLimit := middleware.RateLimit(rateLimiter, metricsManager, "nutriflow-plan-workout", planRateLimitPerMin)
	r.Handle("/session/timing/confirm", workoutLimit(http.HandlerFunc(h.HandleConfirmTiming))).Methods("POST", "OPTIONS").Name("confirm-timing")
	dietLimit := middleware.RateLimit(rateLimiter, metricsManager, "nutriflow-plan-diet", planRateLimitPerMin)
	r.Handle("/session/diet", dietLimit(http.HandlerFunc(h.HandleSubmitDiet))).Methods("POST", "OPTIONS").Name("submit-diet")

	r.HandleFunc("/dashboard/exercises", h.HandleToggleExercise).Methods("POST", "OPTIONS").Name("toggle-exercise")
	r.HandleFunc("/dashboard/day/{index}", h.HandleSetActiveDay).Methods("PUT", "OPTIONS").Name("set-active-day")

	r.HandleFunc("/profile", h.HandleReset).Methods("DELETE", "OPTIONS").Name("reset")
}

func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	pkg.WriteJSON(w, h.app.View(), http.StatusOK)
}

func (h *Handler) HandleOnboardingInput(w http.ResponseWriter, r *http.Request) {
	var u InputUpdate
	if !decodeBody(w, r, &u) {
		return
	}
	if err := h.app.UpdateOnboardingInput(u); err != nil {
		writeAppError(w, err)
		return
	}
	h.writeView(w)
}

func (h *Handler) HandleOnboardingNext(w http.ResponseWriter, r *http.Request) {
	if err := h.app.AdvanceOnboarding(r.Context()); err != nil {
		writeAppError(w, err)
		return
	}
	h.writeView(w)
}

func (h *Handler) HandleOnboardingBack(w http.ResponseWriter, r *http.Request) {
	if err := h.app.RetreatOnboarding(); err != nil {
		writeAppError(w, err)
		return
	}
	h.writeView(w)
}

func (h *Handler) HandleToggleGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := profile.ParseGoal(mux.Vars(r)["goal"])
	if err != nil {
		writeAppError(w, err)
		return
	}
	h.withSession(w, func(s *session.Session) error {
		return s.ToggleGoal(goal)
	})
}

func (h *Handler) HandleConfirmGoals(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, func(s *session.Session) error {
		return s.ConfirmGoals()
	})
}

type fitnessRequest struct {
	WantsFitnessPlan *bool `json:"wantsFitnessPlan"`
}

func (h *Handler) HandleFitnessChoice(w http.ResponseWriter, r *http.Request) {
	var req fitnessRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.WantsFitnessPlan == nil {
		pkg.WriteError(w, "wantsFitnessPlan missing", http.StatusBadRequest)
		return
	}
	h.withSession(w, func(s *session.Session) error {
		return s.ChooseFitnessPlan(*req.WantsFitnessPlan)
	})
}

type timingRequest struct {
	Timing string `json:"timing"`
}

func (h *Handler) HandleSelectTiming(w http.ResponseWriter, r *http.Request) {
	var req timingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.withSession(w, func(s *session.Session) error {
		return s.SelectTiming(req.Timing)
	})
}

func (h *Handler) HandleToggleAlarm(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, func(s *session.Session) error {
		return s.ToggleAlarm()
	})
}

func (h *Handler) HandleConfirmTiming(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, func(s *session.Session) error {
		return s.ConfirmTiming()
	})
}

type dietRequest struct {
	DietType string `json:"dietType"`
	Region   string `json:"region"`
}

func (h *Handler) HandleSubmitDiet(w http.ResponseWriter, r *http.Request) {
	var req dietRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// an empty diet type is a missing choice, not an unknown one
	var dietType profile.DietType
	if strings.TrimSpace(req.DietType) != "" {
		var err error
		if dietType, err = profile.ParseDietType(req.DietType); err != nil {
			writeAppError(w, err)
			return
		}
	}

	h.withSession(w, func(s *session.Session) error {
		return s.SubmitDiet(r.Context(), dietType, req.Region)
	})
}

type exerciseRequest struct {
	Name string `json:"name"`
}

func (h *Handler) HandleToggleExercise(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.withSession(w, func(s *session.Session) error {
		return s.ToggleExercise(req.Name)
	})
}

func (h *Handler) HandleSetActiveDay(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		pkg.WriteError(w, "day index must be a number", http.StatusBadRequest)
		return
	}
	h.withSession(w, func(s *session.Session) error {
		return s.SetActiveDay(index)
	})
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Reset(r.Context()); err != nil {
		writeAppError(w, err)
		return
	}
	h.writeView(w)
}

func (h *Handler) withSession(w http.ResponseWriter, fn func(s *session.Session) error) {
	s, err := h.app.Session()
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := fn(s); err != nil {
		writeAppError(w, err)
		return
	}
	h.writeView(w)
}

func (h *Handler) writeView(w http.ResponseWriter) {
	pkg.WriteJSON(w, h.app.View(), http.StatusOK)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := dec.Decode(v); err != nil {
		log.Debugf("decode %s %s body: %s", r.Method, r.URL.Path, err)
		pkg.WriteError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func statusFor(err error) int {
	var remoteErr *plans.RemoteGenerationError
	switch {
	case errors.As(err, &remoteErr):
		return http.StatusBadGateway
	case errors.Is(err, profile.ErrUnknownGoal),
		errors.Is(err, profile.ErrUnknownDietType),
		errors.Is(err, profile.ErrUnknownTiming):
		return http.StatusBadRequest
	case errors.Is(err, onboarding.ErrInvalidStep),
		errors.Is(err, onboarding.ErrCompleted),
		errors.Is(err, session.ErrWrongStage),
		errors.Is(err, session.ErrNoGoals),
		errors.Is(err, session.ErrTimingNotSet),
		errors.Is(err, session.ErrInvalidDiet),
		errors.Is(err, session.ErrDietBusy),
		errors.Is(err, session.ErrSessionClosed),
		errors.Is(err, dashboard.ErrDayOutOfRange),
		errors.Is(err, dashboard.ErrNoActiveDay),
		errors.Is(err, dashboard.ErrUnknownExercise),
		errors.Is(err, ErrNotInSession),
		errors.Is(err, ErrNotInOnboarding):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeAppError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorf("request failed: %s", err)
		pkg.WriteError(w, "internal error", status)
		return
	}
	pkg.WriteError(w, err.Error(), status)
}
