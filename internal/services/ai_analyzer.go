package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cardscout/card-arbitrage/internal/analysis"
	"github.com/cardscout/card-arbitrage/internal/metrics"
)

const (
	openAIModel   = "gpt-4o"
	openAIURL     = "https://api.openai.com/v1/chat/completions"
	openAITimeout = 60 * time.Second
)

const aiSystemPrompt = `You are a collectible card buying assistant. Given a Japanese auction listing, assess the card's condition and whether it is worth buying.

Rules:
- Prefer cards in condition S or A (Mint or Near Mint)
- Do not recommend buying if there is visible whitening, heavy scratches, or folds
- Compare the listing price against the typical sold price you estimate
- If the listing price is less than 50% of the typical sold price and the condition is decent, recommend BUY
- Consider card rarity, edition, and region

Respond ONLY with a JSON object:
{
  "condition": "Mint|Near Mint|Excellent|Very Good|Good|Light Played|Played|Poor",
  "condition_rating": 0.0,
  "confidence": 0.0,
  "condition_notes": ["string"],
  "special_notes": ["string"],
  "grading_info": {"service": "string", "grade": "string"},
  "market_price": 0.0,
  "profit_margin": 0.0,
  "recommendation": "BUY|PASS"
}
Omit grading_info if the card is not professionally graded. special_notes should name printing oddities only (error, misprint, test print, prototype, sample).`

// AIAnalyzerService asks a chat model to assess a listing. Disabled without
// an API key; callers get nil analysis and the pipeline runs on rules alone.
type AIAnalyzerService struct {
	apiKey     string
	httpClient *http.Client
	enabled    bool
}

func NewAIAnalyzerService() *AIAnalyzerService {
	apiKey := os.Getenv("OPENAI_API_KEY")

	svc := &AIAnalyzerService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: openAITimeout},
		enabled:    apiKey != "",
	}

	if svc.enabled {
		log.Printf("AI analyzer: enabled (model=%s)", openAIModel)
	} else {
		log.Printf("AI analyzer: disabled (no OPENAI_API_KEY)")
	}

	return svc
}

// IsEnabled returns whether the analyzer can make inference calls.
func (s *AIAnalyzerService) IsEnabled() bool {
	return s.enabled
}

// Analyze runs a text assessment of one listing.
func (s *AIAnalyzerService) Analyze(ctx context.Context, title, description string, priceYen float64) (*analysis.AIAnalysis, error) {
	if !s.enabled {
		return nil, fmt.Errorf("AI analyzer not enabled (no OPENAI_API_KEY)")
	}

	prompt := fmt.Sprintf("Title: %s\nDescription: %s\nPrice: ¥%.0f", title, description, priceYen)

	text, err := s.chat(ctx, []chatMessage{
		{Role: "system", Content: aiSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	result, dropped := DecodeAIAnalysis([]byte(stripCodeFence(text)))
	if result == nil {
		metrics.AIErrorsTotal.WithLabelValues("parse").Inc()
		return nil, fmt.Errorf("unparsable analysis payload: %s", text)
	}
	if len(dropped) > 0 {
		log.Printf("AI analyzer: dropped malformed fields %v", dropped)
	}
	return result, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIAnalyzerService) chat(ctx context.Context, messages []chatMessage) (string, error) {
	start := time.Now()

	reqJSON, err := json.Marshal(chatRequest{
		Model:       openAIModel,
		Messages:    messages,
		MaxTokens:   1000,
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", openAIURL, bytes.NewReader(reqJSON))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		metrics.AIErrorsTotal.WithLabelValues("network").Inc()
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.AIErrorsTotal.WithLabelValues("read").Inc()
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.AIErrorsTotal.WithLabelValues("api").Inc()
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		metrics.AIErrorsTotal.WithLabelValues("parse").Inc()
		return "", fmt.Errorf("failed to parse API response: %w", err)
	}
	if apiResp.Error != nil {
		metrics.AIErrorsTotal.WithLabelValues("api").Inc()
		return "", fmt.Errorf("API error: %s", apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		metrics.AIErrorsTotal.WithLabelValues("empty").Inc()
		return "", fmt.Errorf("no completion returned")
	}

	metrics.AICallsTotal.Inc()
	metrics.AILatency.Observe(time.Since(start).Seconds())

	return apiResp.Choices[0].Message.Content, nil
}

// stripCodeFence removes a surrounding markdown fence if the model wrapped
// its JSON in one.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

// DecodeAIAnalysis decodes a model payload leniently: fields that are
// missing or of the wrong type are dropped rather than failing the decode.
// Returns nil only when the payload is not a JSON object at all; the names
// of dropped fields come back for logging.
func DecodeAIAnalysis(doc []byte) (*analysis.AIAnalysis, []string) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil
	}

	var dropped []string
	result := &analysis.AIAnalysis{}

	takeString := func(key string) string {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
			dropped = append(dropped, key)
		}
		return ""
	}
	takeFloat := func(key string) float64 {
		if v, ok := m[key]; ok {
			switch t := v.(type) {
			case float64:
				return t
			case string:
				var f float64
				if _, err := fmt.Sscanf(strings.TrimSpace(t), "%g", &f); err == nil {
					return f
				}
				dropped = append(dropped, key)
			default:
				dropped = append(dropped, key)
			}
		}
		return 0
	}
	takeStrings := func(key string) []string {
		v, ok := m[key]
		if !ok {
			return nil
		}
		items, ok := v.([]any)
		if !ok {
			// A single bare string is common enough to accept.
			if s, ok := v.(string); ok && s != "" {
				return []string{s}
			}
			dropped = append(dropped, key)
			return nil
		}
		var out []string
		for _, item := range items {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	result.Condition = takeString("condition")
	result.ConditionRating = takeFloat("condition_rating")
	result.Confidence = takeFloat("confidence")
	result.ConditionNotes = takeStrings("condition_notes")
	result.SpecialNotes = takeStrings("special_notes")
	result.MarketPrice = takeFloat("market_price")
	result.ProfitMargin = takeFloat("profit_margin")
	result.Recommendation = strings.ToUpper(takeString("recommendation"))

	if v, ok := m["grading_info"]; ok {
		if g, ok := v.(map[string]any); ok {
			info := &analysis.GradingInfo{}
			if s, ok := g["service"].(string); ok {
				info.Service = strings.TrimSpace(s)
			}
			if s, ok := g["grade"].(string); ok {
				info.Grade = strings.TrimSpace(s)
			}
			if info.Service != "" || info.Grade != "" {
				result.GradingInfo = info
			}
		} else if v != nil {
			dropped = append(dropped, "grading_info")
		}
	}

	return result, dropped
}
