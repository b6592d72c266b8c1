package service

import (
	"bytes"
	"career_guide_backend/internal/config"
	"career_guide_backend/internal/model"
	"career_guide_backend/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AIRoadmapService 调用生成式文本接口产出路线图。
// 尽力而为：单次请求，不重试，任何失败都返回 nil 由调用方回退到静态生成。
type AIRoadmapService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIRoadmapService(cfg config.AIConfig) *AIRoadmapService {
	return &AIRoadmapService{
		config: cfg,
		client: &http.Client{},
	}
}

// UpdateConfig 配置热加载时替换接口参数
func (s *AIRoadmapService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

func (s *AIRoadmapService) snapshot() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *AIRoadmapService) Enabled() bool {
	cfg := s.snapshot()
	return cfg.APIKey != "" && cfg.BaseURL != ""
}

func (s *AIRoadmapService) Timeout() time.Duration {
	return s.snapshot().Timeout
}

type generateContentRequest struct {
	Contents         []aiContent      `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type aiContent struct {
	Parts []aiPart `json:"parts"`
}

type aiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []aiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate 单次请求生成路线图，失败一律返回 nil
func (s *AIRoadmapService) Generate(ctx context.Context, o *model.CareerOnboarding) *model.RoadmapData {
	cfg := s.snapshot()
	if cfg.APIKey == "" || cfg.BaseURL == "" {
		return nil
	}

	prompt := buildRoadmapPrompt(o)

	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.7
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	reqBody := generateContentRequest{
		Contents: []aiContent{{Parts: []aiPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:      temperature,
			MaxOutputTokens:  maxTokens,
			ResponseMimeType: "application/json",
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil
	}

	url := fmt.Sprintf("%s?key=%s", cfg.BaseURL, cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Log.Debug("AI roadmap request failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Log.Debug("AI roadmap request returned non-2xx", zap.Int("status", resp.StatusCode))
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	var result generateContentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil
	}

	var data model.RoadmapData
	text := result.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		logger.Log.Debug("AI roadmap reply is not valid JSON", zap.Error(err))
		return nil
	}

	// 结构校验：空树不如没有
	if len(data.Years) == 0 {
		return nil
	}

	return &data
}

func buildRoadmapPrompt(o *model.CareerOnboarding) string {
	var b strings.Builder
	b.WriteString("You are a career mentor for students. Create a detailed year-by-year study roadmap as JSON.\n\n")
	fmt.Fprintf(&b, "The student's primary goal is: %s.\n", goalLabel(o.PrimaryGoal))
	fmt.Fprintf(&b, "Preferred timeframe: %s. Current skill level: %s.\n", o.Timeframe, o.CurrentLevel)
	fmt.Fprintf(&b, "Interests: %s.\n", strings.Join(o.Interests, ", "))
	fmt.Fprintf(&b, "They are currently in academic year %d (%s semester) and graduate in year %d.\n\n",
		o.CurrentYear, o.CurrentSemester, o.GraduationYear)
	b.WriteString("Respond with ONLY a JSON object of this exact shape, no prose:\n")
	b.WriteString(`{"overallGoal":"...","totalDuration":"...","years":[{"year":1,"title":"...","goal":"...",` +
		`"months":[{"month":"January","goal":"...","weeks":[{"week":1,"focus":"...",` +
		`"dailyTasks":[{"day":"Monday","tasks":[{"id":"...","title":"...","type":"study","duration":"45 min"}]}]}]}]}]}`)
	b.WriteString("\n\nTask type must be one of study, practice, project, review. ")
	b.WriteString("Cover every year from the current year to graduation, 12 months per year, and give every week all 7 days.")
	return b.String()
}

func goalLabel(goal string) string {
	if phrase, ok := goalPhrases[goal]; ok {
		return phrase
	}
	return defaultGoalPhrase
}
