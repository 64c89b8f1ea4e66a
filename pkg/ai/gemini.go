package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

const promptTemplate = `Basado en la siguiente solicitud de un profesor, crea un módulo de evaluación adecuado: "%s"`

// ErrMissingAPIKey is returned when the client is built without a credential.
var ErrMissingAPIKey = errors.New("gemini api key is required")

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiModuleGenerator asks Gemini for an evaluation module as structured JSON.
type GeminiModuleGenerator struct {
	models contentGenerator
	model  string
}

// NewGeminiModuleGenerator builds a client for the Gemini API backend.
func NewGeminiModuleGenerator(ctx context.Context, apiKey, model string) (*GeminiModuleGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGenerator(client.Models, model), nil
}

func newGenerator(models contentGenerator, model string) *GeminiModuleGenerator {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiModuleGenerator{models: models, model: model}
}

// GenerateModuleJSON performs one generation call and returns the raw JSON text.
func (g *GeminiModuleGenerator) GenerateModuleJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(prompt)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ModuleSchema(),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil {
		return "", errors.New("gemini returned no response")
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}

// BuildPrompt embeds the user's request in the generation instruction.
func BuildPrompt(request string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(request))
}

// ModuleSchema describes the JSON object the model must return.
func ModuleSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {
				Type:        genai.TypeString,
				Description: "Nombre del módulo de evaluación",
			},
			"type": {
				Type:        genai.TypeString,
				Enum:        []string{"text", "select"},
				Description: "Tipo de campo: texto libre o selección",
			},
			"options": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Opciones disponibles cuando el tipo es select",
			},
		},
		Required: []string{"name", "type"},
	}
}
