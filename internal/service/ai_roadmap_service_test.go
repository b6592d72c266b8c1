package service

import (
	"career_guide_backend/internal/config"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func aiReply(roadmapJSON string) string {
	reply := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": roadmapJSON}},
			}},
		},
	}
	raw, _ := json.Marshal(reply)
	return string(raw)
}

const validRoadmapJSON = `{
	"overallGoal": "Land a job",
	"totalDuration": "2 years",
	"years": [{
		"year": 1, "title": "Foundation Building", "goal": "Basics",
		"months": [{
			"month": "January", "goal": "HTML",
			"weeks": [{
				"week": 1, "focus": "Tags",
				"dailyTasks": [{"day": "Monday", "tasks": [{"id": "y1-m1-w1-Mon-0", "title": "Learn HTML", "type": "study", "duration": "45 min"}]}]
			}]
		}]
	}]
}`

func newAIService(baseURL string) *AIRoadmapService {
	return NewAIRoadmapService(config.AIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
}

func TestAIRoadmapGenerate(t *testing.T) {
	t.Run("parses a valid reply", func(t *testing.T) {
		var gotPath, gotKey string
		var gotBody []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.URL.Query().Get("key")
			gotBody, _ = io.ReadAll(r.Body)
			w.Write([]byte(aiReply(validRoadmapJSON)))
		}))
		defer srv.Close()

		svc := newAIService(srv.URL + "/v1/models/generateContent")
		data := svc.Generate(context.Background(), onboardingFixture(1, 2))
		if data == nil {
			t.Fatal("expected a roadmap, got nil")
		}
		if data.OverallGoal != "Land a job" || len(data.Years) != 1 {
			t.Errorf("unexpected parse result: %+v", data)
		}

		if gotPath != "/v1/models/generateContent" {
			t.Errorf("unexpected request path %q", gotPath)
		}
		if gotKey != "test-key" {
			t.Errorf("api key should travel as query param, got %q", gotKey)
		}

		var req map[string]interface{}
		if err := json.Unmarshal(gotBody, &req); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		if _, ok := req["contents"]; !ok {
			t.Error("request body missing contents")
		}
		genCfg, ok := req["generationConfig"].(map[string]interface{})
		if !ok {
			t.Fatal("request body missing generationConfig")
		}
		if genCfg["responseMimeType"] != "application/json" {
			t.Errorf("expected JSON response mime type, got %v", genCfg["responseMimeType"])
		}
	})

	t.Run("prompt carries the onboarding answers", func(t *testing.T) {
		var prompt string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			var req generateContentRequest
			json.Unmarshal(body, &req)
			if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
				prompt = req.Contents[0].Parts[0].Text
			}
			w.Write([]byte(aiReply(validRoadmapJSON)))
		}))
		defer srv.Close()

		svc := newAIService(srv.URL)
		svc.Generate(context.Background(), onboardingFixture(2, 4, "web-dev"))

		for _, want := range []string{"web-dev", "year 2", "graduate in year 4"} {
			if !strings.Contains(prompt, want) {
				t.Errorf("prompt should mention %q\nprompt: %s", want, prompt)
			}
		}
	})

	t.Run("nil on server error", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		if data := newAIService(srv.URL).Generate(context.Background(), onboardingFixture(1, 2)); data != nil {
			t.Error("expected nil on 500")
		}
		if calls != 1 {
			t.Errorf("must not retry, got %d calls", calls)
		}
	})

	t.Run("nil on malformed reply text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(aiReply("this is not json")))
		}))
		defer srv.Close()

		if data := newAIService(srv.URL).Generate(context.Background(), onboardingFixture(1, 2)); data != nil {
			t.Error("expected nil for non-JSON reply text")
		}
	})

	t.Run("nil on empty candidates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		}))
		defer srv.Close()

		if data := newAIService(srv.URL).Generate(context.Background(), onboardingFixture(1, 2)); data != nil {
			t.Error("expected nil when no candidates returned")
		}
	})

	t.Run("nil on empty years", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(aiReply(`{"overallGoal":"x","years":[]}`)))
		}))
		defer srv.Close()

		if data := newAIService(srv.URL).Generate(context.Background(), onboardingFixture(1, 2)); data != nil {
			t.Error("an empty tree should be rejected")
		}
	})

	t.Run("disabled without credentials", func(t *testing.T) {
		svc := NewAIRoadmapService(config.AIConfig{})
		if svc.Enabled() {
			t.Error("service without key and URL must report disabled")
		}
		if data := svc.Generate(context.Background(), onboardingFixture(1, 2)); data != nil {
			t.Error("disabled service must return nil")
		}
	})
}
