package test

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/2beens/nutriflow/pkg"
)

const fakeWorkoutPlan = `[
	{"day": "Monday", "duration": "90 mins", "exercises": ["Squats", "Lunges"]},
	{"day": "Tuesday", "duration": "60 mins", "exercises": ["Run", "Stretch"]},
	{"day": "Wednesday", "duration": "75 mins", "exercises": ["Swim"]},
	{"day": "Thursday", "duration": "90 mins", "exercises": ["Bench press", "Rows"]},
	{"day": "Friday", "duration": "60 mins", "exercises": ["Rowing"]},
	{"day": "Saturday", "duration": "120 mins", "exercises": ["Hike"]},
	{"day": "Sunday", "duration": "60 mins", "exercises": ["Yoga", "Walk"]}
]`

const fakeDietPlan = `{
	"breakfast": "Greek yoghurt with honey",
	"lunch": "Lentil soup",
	"snack": "Almonds",
	"dinner": "Grilled vegetables with feta",
	"tips": ["Prefer olive oil", "Eat seasonal produce"]
}`

type generateContentRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role"`
	Parts []generatePart `json:"parts"`
}

type generateCandidate struct {
	Content      generateContent `json:"content"`
	FinishReason string          `json:"finishReason"`
}

type generateContentResponse struct {
	Candidates []generateCandidate `json:"candidates"`
}

// fakeGemini answers generateContent calls with canned plans, picked by prompt.
type fakeGemini struct {
	mu      sync.Mutex
	prompts []string
}

func newFakeGemini() *fakeGemini {
	return &fakeGemini{}
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, ":generateContent") {
		http.NotFound(w, r)
		return
	}

	var req generateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var prompt string
	if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
		prompt = req.Contents[0].Parts[0].Text
	}

	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	text := fakeDietPlan
	if strings.HasPrefix(prompt, "Generate a 7-day fitness routine") {
		text = fakeWorkoutPlan
	}

	pkg.WriteJSON(w, generateContentResponse{
		Candidates: []generateCandidate{{
			Content: generateContent{
				Role:  "model",
				Parts: []generatePart{{Text: text}},
			},
			FinishReason: "STOP",
		}},
	}, http.StatusOK)
}

func (f *fakeGemini) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}
