package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type FoodSuggestion struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// GenerationResult is the validated shape of a /generate response.
// When FlaggedWord is set the remote service produced no mood or food
// data and the caller must not persist the entry.
type GenerationResult struct {
	DetectedEmotion    string           `json:"detected_emotion"`
	RawReflection      string           `json:"raw_reflection"`
	PolishedReflection string           `json:"polished_reflection"`
	FoodSuggestions    []FoodSuggestion `json:"food_suggestions"`
	FlaggedWord        *string          `json:"flagged_word"`
}

func (r *GenerationResult) Flagged() bool {
	return r.FlaggedWord != nil && *r.FlaggedWord != ""
}

// Generator is what the journal service needs from the remote
// text-generation API.
type Generator interface {
	Generate(ctx context.Context, text string, avoidedFoods []string) (*GenerationResult, error)
}

type GenerationService struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewGenerationService() *GenerationService {
	return &GenerationService{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: os.Getenv("GENERATION_API_URL"),
		token:   os.Getenv("GENERATION_API_TOKEN"),
	}
}

// Generate posts the entry text plus the user's avoided foods and
// returns the validated result. Malformed responses are rejected here
// rather than letting half-filled fields reach the store.
func (s *GenerationService) Generate(ctx context.Context, text string, avoidedFoods []string) (*GenerationResult, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("GENERATION_API_URL not set")
	}

	if avoidedFoods == nil {
		avoidedFoods = []string{}
	}
	payload := map[string]any{
		"text":          text,
		"avoided_foods": avoidedFoods,
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/generate", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read generation response error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("generation api error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("generation api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out GenerationResult
	if err := json.Unmarshal(respBytes, &out); err != nil {
		preview := string(respBytes)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return nil, fmt.Errorf("decode generation response error: %v | body: %s", err, preview)
	}

	if !out.Flagged() {
		if out.DetectedEmotion == "" {
			return nil, fmt.Errorf("malformed generation response: missing detected_emotion")
		}
		if out.PolishedReflection == "" {
			return nil, fmt.Errorf("malformed generation response: missing polished_reflection")
		}
	}
	return &out, nil
}
