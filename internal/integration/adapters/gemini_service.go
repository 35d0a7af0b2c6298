// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiService implements adapter.CategorySuggester using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

var _ adapter.CategorySuggester = (*GeminiService)(nil)

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Suggest asks Gemini for the category that best fits description.
func (s *GeminiService) Suggest(ctx context.Context, description string, knownCategories []string) (*adapter.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildSuggestPrompt(description, knownCategories)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	suggestion, err := parseSuggestResponse(resp, knownCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return suggestion, nil
}

func buildSuggestPrompt(description string, knownCategories []string) string {
	var sb strings.Builder

	sb.WriteString(`Voce categoriza despesas pessoais. Dada a descricao de uma despesa, escolha a categoria mais adequada.

REGRAS:
- Prefira uma das categorias existentes quando ela corresponder bem
- Se nenhuma servir, proponha um nome curto em Portugues Brasileiro
  (Supermercado, Restaurante, Transporte, Saude, Educacao, Lazer, Moradia, Assinaturas)
- Termos comuns em ingles no Brasil podem ser mantidos: Delivery, Streaming, Pet Shop, Fitness

CATEGORIAS EXISTENTES:
`)

	if len(knownCategories) > 0 {
		for _, category := range knownCategories {
			sb.WriteString("- " + category + "\n")
		}
	} else {
		sb.WriteString("(Nenhuma categoria existente)\n")
	}

	fmt.Fprintf(&sb, "\nDESCRICAO: %q\n", description)

	sb.WriteString(`
Responda apenas com um objeto JSON:
{"category": "nome da categoria", "confidence": 0.0-1.0, "reasoning": "breve explicacao em Portugues"}
`)

	return sb.String()
}

type geminiSuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// parseSuggestResponse reads the JSON answer. A category matching a known one
// case-insensitively is returned with the known spelling.
func parseSuggestResponse(resp *genai.GenerateContentResponse, knownCategories []string) (*adapter.CategorySuggestion, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Strip markdown fences the model sometimes adds.
	textContent = strings.TrimSpace(textContent)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var raw geminiSuggestion
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	category := strings.TrimSpace(raw.Category)
	if category == "" {
		return nil, fmt.Errorf("response has no category")
	}
	for _, known := range knownCategories {
		if strings.EqualFold(known, category) {
			category = known
			break
		}
	}

	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &adapter.CategorySuggestion{
		Category:   category,
		Confidence: confidence,
		Reasoning:  raw.Reasoning,
	}, nil
}
