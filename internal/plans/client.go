package plans

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/nutriflow/internal/profile"
	"github.com/2beens/nutriflow/internal/telemetry/metrics"
	"github.com/2beens/nutriflow/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

// contentGenerator returns the raw JSON text a model produced for prompt, constrained by schema.
type contentGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

var (
	workoutPlanSchema = &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"day":      {Type: genai.TypeString, Description: "Day of the week"},
				"duration": {Type: genai.TypeString, Description: "e.g., 90 mins"},
				"exercises": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"day", "duration", "exercises"},
		},
	}

	dietPlanSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"breakfast": {Type: genai.TypeString},
			"lunch":     {Type: genai.TypeString},
			"snack":     {Type: genai.TypeString},
			"dinner":    {Type: genai.TypeString},
			"tips": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"breakfast", "lunch", "snack", "dinner", "tips"},
	}
)

// Client implements Generator on top of a text-generation backend. A single attempt
// is made per call; callers decide whether to retry.
type Client struct {
	backend contentGenerator
	metrics *metrics.Manager
}

func NewClient(backend contentGenerator, metricsManager *metrics.Manager) *Client {
	return &Client{
		backend: backend,
		metrics: metricsManager,
	}
}

func (c *Client) GenerateWorkoutPlan(ctx context.Context, p profile.Profile) (_ []WorkoutDay, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "plans.generate.workout", trace.WithSpanKind(trace.SpanKindClient))
	defer c.observe(KindWorkout, time.Now(), &err)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	text, err := c.backend.GenerateJSON(ctx, WorkoutPrompt(p), workoutPlanSchema)
	if err != nil {
		return nil, newRemoteGenerationError(KindWorkout, err)
	}

	days, err := parseWorkoutPlan(text)
	if err != nil {
		return nil, newRemoteGenerationError(KindWorkout, err)
	}
	span.SetAttributes(attribute.Int("plan.days", len(days)))

	if len(days) != 7 {
		log.Warnf("workout plan for [%s] has %d days, expected 7", p.Name, len(days))
	}

	return days, nil
}

func (c *Client) GenerateDietPlan(ctx context.Context, p profile.Profile) (_ *DietPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "plans.generate.diet", trace.WithSpanKind(trace.SpanKindClient))
	defer c.observe(KindDiet, time.Now(), &err)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	text, err := c.backend.GenerateJSON(ctx, DietPrompt(p), dietPlanSchema)
	if err != nil {
		return nil, newRemoteGenerationError(KindDiet, err)
	}

	dietPlan, err := parseDietPlan(text)
	if err != nil {
		return nil, newRemoteGenerationError(KindDiet, err)
	}
	span.SetAttributes(attribute.Int("plan.tips", len(dietPlan.Tips)))

	return dietPlan, nil
}

func (c *Client) observe(kind Kind, begin time.Time, err *error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if *err != nil {
		outcome = "failure"
	}
	c.metrics.CounterPlanGenerations.WithLabelValues(kind.String(), outcome).Inc()
	c.metrics.HistPlanGenerationDuration.WithLabelValues(kind.String()).Observe(time.Since(begin).Seconds())
}

// workoutDayResponse uses pointers so missing required fields can be told apart from empty ones.
type workoutDayResponse struct {
	Day       *string   `json:"day"`
	Duration  *string   `json:"duration"`
	Exercises *[]string `json:"exercises"`
}

func parseWorkoutPlan(text string) ([]WorkoutDay, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	var resp []workoutDayResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	days := make([]WorkoutDay, 0, len(resp))
	for i, d := range resp {
		if d.Day == nil || d.Duration == nil || d.Exercises == nil {
			return nil, fmt.Errorf("%w: day %d is missing required fields", ErrInvalidResponse, i)
		}
		days = append(days, WorkoutDay{
			Day:       *d.Day,
			Duration:  *d.Duration,
			Exercises: *d.Exercises,
		})
	}
	return days, nil
}

type dietPlanResponse struct {
	Breakfast *string   `json:"breakfast"`
	Lunch     *string   `json:"lunch"`
	Snack     *string   `json:"snack"`
	Dinner    *string   `json:"dinner"`
	Tips      *[]string `json:"tips"`
}

func parseDietPlan(text string) (*DietPlan, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	var resp dietPlanResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if resp.Breakfast == nil || resp.Lunch == nil || resp.Dinner == nil || resp.Tips == nil {
		return nil, fmt.Errorf("%w: diet plan is missing required fields", ErrInvalidResponse)
	}

	dietPlan := &DietPlan{
		Breakfast: *resp.Breakfast,
		Lunch:     *resp.Lunch,
		Dinner:    *resp.Dinner,
		Tips:      *resp.Tips,
	}
	if resp.Snack != nil {
		dietPlan.Snack = *resp.Snack
	}
	return dietPlan, nil
}
