package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"companion-backend/internal/models"
)

// InsightsService generates personalized learning recommendations for the
// analytics panel. It is optional: when no Gemini key is configured the
// panel falls back to the static recommendation set.
type InsightsService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewInsightsService(apiKey string) (*InsightsService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-3-flash-preview")
	model.SetTemperature(0.4)

	return &InsightsService{client: client, model: model}, nil
}

func (s *InsightsService) Close() {
	s.client.Close()
}

// Recommendations asks the model for a short list of study recommendations
// tailored to the user's preferences and active goals.
func (s *InsightsService) Recommendations(ctx context.Context, settings *models.CompanionSettings, goals []models.LearningGoal) ([]string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(buildRecommendationPrompt(settings, goals)))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	raw := extractText(resp)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var recommendations []string
	if err := json.Unmarshal([]byte(raw), &recommendations); err != nil {
		// Try to extract the JSON array from surrounding prose
		start := strings.Index(raw, "[")
		end := strings.LastIndex(raw, "]")
		if start >= 0 && end > start {
			json.Unmarshal([]byte(raw[start:end+1]), &recommendations)
		}
	}

	valid := recommendations[:0]
	for _, r := range recommendations {
		if strings.TrimSpace(r) != "" {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("Gemini returned no usable recommendations")
	}

	return valid, nil
}

func buildRecommendationPrompt(settings *models.CompanionSettings, goals []models.LearningGoal) string {
	var b strings.Builder

	b.WriteString("You are an educational coach. Generate 3 to 5 short, actionable study recommendations for a student.\n\n")
	b.WriteString("CRITICAL: Return ONLY a valid JSON array of strings. No preamble, no markdown, no backticks.\n\n")

	b.WriteString(fmt.Sprintf("Learning style: %s\n", settings.LearningStyle))
	b.WriteString(fmt.Sprintf("Difficulty level: %s\n", settings.DifficultyLevel))

	if len(goals) > 0 {
		b.WriteString("\nActive goals:\n")
		for _, g := range goals {
			b.WriteString(fmt.Sprintf("- %s (%d%% complete)\n", g.Title, g.Progress))
		}
	}

	b.WriteString("\nEach recommendation must be a single sentence under 20 words.\n")

	return b.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
