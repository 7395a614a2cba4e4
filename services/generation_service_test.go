package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func newTestGenerationService(t *testing.T, handler http.HandlerFunc) *GenerationService {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	os.Setenv("GENERATION_API_URL", srv.URL)
	os.Setenv("GENERATION_API_TOKEN", "test-token")
	return NewGenerationService()
}

func TestGenerateParsesResponse(t *testing.T) {
	var gotBody map[string]any
	svc := newTestGenerationService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Errorf("path = %q, want /generate", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"detected_emotion":    "a bit sad",
			"raw_reflection":      "raw",
			"polished_reflection": "It sounds like a heavy day.",
			"food_suggestions": []map[string]string{
				{"name": "Dark chocolate", "reason": "comfort in moderation"},
			},
			"flagged_word": nil,
		})
	})

	res, err := svc.Generate(context.Background(), "today was rough", []string{"ice cream"})
	if err != nil {
		t.Fatal(err)
	}
	if res.DetectedEmotion != "a bit sad" {
		t.Errorf("DetectedEmotion = %q", res.DetectedEmotion)
	}
	if res.Flagged() {
		t.Error("unexpected flagged result")
	}
	if len(res.FoodSuggestions) != 1 || res.FoodSuggestions[0].Name != "Dark chocolate" {
		t.Errorf("FoodSuggestions = %v", res.FoodSuggestions)
	}

	if gotBody["text"] != "today was rough" {
		t.Errorf("request text = %v", gotBody["text"])
	}
	avoided, _ := gotBody["avoided_foods"].([]any)
	if len(avoided) != 1 || avoided[0] != "ice cream" {
		t.Errorf("request avoided_foods = %v", gotBody["avoided_foods"])
	}
}

func TestGenerateSendsEmptyAvoidedList(t *testing.T) {
	var gotBody map[string]any
	svc := newTestGenerationService(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"detected_emotion":    "calm",
			"polished_reflection": "ok",
		})
	})

	if _, err := svc.Generate(context.Background(), "hello", nil); err != nil {
		t.Fatal(err)
	}
	// nil slice must serialize as [], not null
	if avoided, ok := gotBody["avoided_foods"].([]any); !ok || len(avoided) != 0 {
		t.Errorf("avoided_foods = %v (%T)", gotBody["avoided_foods"], gotBody["avoided_foods"])
	}
}

func TestGenerateFlaggedResponse(t *testing.T) {
	svc := newTestGenerationService(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"flagged_word": "hurt",
		})
	})

	res, err := svc.Generate(context.Background(), "something dark", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Flagged() || *res.FlaggedWord != "hurt" {
		t.Errorf("want flagged result, got %+v", res)
	}
}

func TestGenerateRejectsMalformedResponse(t *testing.T) {
	// non-flagged response with no detected emotion must be rejected
	// instead of reaching the store half-filled
	svc := newTestGenerationService(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"polished_reflection": "nice day",
		})
	})

	if _, err := svc.Generate(context.Background(), "hello", nil); err == nil {
		t.Error("expected error for response without detected_emotion")
	}
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	svc := newTestGenerationService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limited"})
	})

	_, err := svc.Generate(context.Background(), "hello", nil)
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestGenerateRequiresBaseURL(t *testing.T) {
	os.Setenv("GENERATION_API_URL", "")
	svc := NewGenerationService()
	if _, err := svc.Generate(context.Background(), "hello", nil); err == nil {
		t.Error("expected error when GENERATION_API_URL is unset")
	}
}
