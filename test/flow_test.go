package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/2beens/nutriflow/internal/app"
	"github.com/2beens/nutriflow/internal/profile"
	"github.com/2beens/nutriflow/internal/session"

	"github.com/brianvoe/gofakeit/v6"
)

func (s *IntegrationTestSuite) call(method, path string, body any) (int, app.View) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewBuffer(b)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var view app.View
	if resp.StatusCode == http.StatusOK {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&view))
	}
	return resp.StatusCode, view
}

func (s *IntegrationTestSuite) SetupTest() {
	status, _ := s.call(http.MethodDelete, "/profile", nil)
	s.Require().Equal(http.StatusOK, status)
}

func (s *IntegrationTestSuite) onboard(name string) {
	inputs := []map[string]string{
		{"name": name},
		{"age": "34"},
		{"height": "180"},
		{"weight": "75"},
	}
	for _, input := range inputs {
		status, _ := s.call(http.MethodPut, "/onboarding/input", input)
		s.Require().Equal(http.StatusOK, status)
		status, _ = s.call(http.MethodPost, "/onboarding/next", nil)
		s.Require().Equal(http.StatusOK, status)
	}
}

func (s *IntegrationTestSuite) storedProfile() *profile.Profile {
	var data []byte
	err := s.DB.QueryRow(`SELECT data FROM profile_store WHERE key = $1`, profile.StoreKey).Scan(&data)
	if err != nil {
		return nil
	}
	var p profile.Profile
	s.Require().NoError(json.Unmarshal(data, &p))
	return &p
}

func (s *IntegrationTestSuite) TestOnboardingPersistsProfile() {
	name := gofakeit.FirstName()
	s.onboard(name)

	status, view := s.call(http.MethodGet, "/state", nil)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(app.PhaseSession, view.Phase)
	s.Require().NotNil(view.Session)
	s.Equal(23.1, view.Session.Profile.BMI)
	s.Equal(profile.CategoryNormal, view.Session.BMICategory)

	stored := s.storedProfile()
	s.Require().NotNil(stored)
	s.Equal(name, stored.Name)
	s.Equal(34, stored.Age)
	s.Equal(23.1, stored.BMI)

	status, view = s.call(http.MethodDelete, "/profile", nil)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(app.PhaseOnboarding, view.Phase)
	s.Nil(s.storedProfile())
}

func (s *IntegrationTestSuite) TestPlansFlow() {
	s.onboard("Marko")

	status, _ := s.call(http.MethodPost, "/session/goals/strength", nil)
	s.Require().Equal(http.StatusOK, status)
	status, _ = s.call(http.MethodPost, "/session/goals/cardio", nil)
	s.Require().Equal(http.StatusOK, status)
	status, _ = s.call(http.MethodPost, "/session/goals/confirm", nil)
	s.Require().Equal(http.StatusOK, status)
	status, _ = s.call(http.MethodPost, "/session/fitness", map[string]bool{"wantsFitnessPlan": true})
	s.Require().Equal(http.StatusOK, status)
	status, _ = s.call(http.MethodPut, "/session/timing", map[string]string{"timing": "evening"})
	s.Require().Equal(http.StatusOK, status)

	status, view := s.call(http.MethodPost, "/session/timing/confirm", nil)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(session.StageDiet, view.Session.Stage)

	s.Require().Eventually(func() bool {
		_, v := s.call(http.MethodGet, "/state", nil)
		return v.Session != nil && !v.Session.WorkoutLoading
	}, 10*time.Second, 50*time.Millisecond)

	status, view = s.call(http.MethodPost, "/session/diet", map[string]string{"dietType": "Veg", "region": "Mediterranean"})
	s.Require().Equal(http.StatusOK, status)
	s.Equal(session.StageComplete, view.Session.Stage)
	s.Len(view.Session.WorkoutPlan, 7)
	s.Require().NotNil(view.Session.DietPlan)
	s.Equal("Prefer olive oil", view.Session.FeaturedTip)

	day := view.Session.WorkoutPlan[view.Session.ActiveDayIndex]
	status, view = s.call(http.MethodPost, "/dashboard/exercises", map[string]string{"name": day.Exercises[0]})
	s.Require().Equal(http.StatusOK, status)
	s.Positive(view.Session.WorkoutProgress)
	// one exercise at 75 kg
	s.Equal(38, view.Session.EstimatedCaloriesBurnt)

	prompts := s.gemini.Prompts()
	s.Require().GreaterOrEqual(len(prompts), 2)
	s.Contains(prompts[len(prompts)-2], "Goals: strength, cardio.")
	s.Contains(prompts[len(prompts)-2], "Preferred workout time: Evening.")
	s.Contains(prompts[len(prompts)-1], "Profile: Veg diet, Region: Mediterranean.")

	// rate limiter keys live in redis
	keys, err := s.redisClient.Keys(context.Background(), "rate:*").Result()
	s.Require().NoError(err)
	s.NotEmpty(keys)
}
