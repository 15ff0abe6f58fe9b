package plans

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-3-flash-preview"

type GeminiParams struct {
	APIKey     string
	Model      string
	BaseURL    string // optional, overrides the public endpoint
	HTTPClient *http.Client
}

// GeminiBackend talks to the Gemini API and asks for JSON output matching a schema.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

func NewGeminiBackend(ctx context.Context, params GeminiParams) (*GeminiBackend, error) {
	if params.APIKey == "" {
		return nil, errors.New("gemini api key not set")
	}

	model := params.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     params.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: params.HTTPClient,
	}
	if params.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: params.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("new genai client: %w", err)
	}

	log.Debugf("gemini backend ready, model: %s", model)

	return &GeminiBackend{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiBackend) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}
