package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cardscout/card-arbitrage/internal/analysis"
	"github.com/cardscout/card-arbitrage/internal/metrics"
)

const (
	imageHeadTimeout = 5 * time.Second
	imageGetTimeout  = 10 * time.Second
	maxImageBytes    = 5 * 1024 * 1024
)

const imagePrompt = `Analyze this trading card image carefully. Focus on:
1. Surface condition: Are there any visible scratches, scuffs, or surface wear?
2. Edge condition: Is there any edge wear, whitening, or damage?
3. Corner condition: Are the corners sharp or worn?
4. Creases: Are there any visible creases or folds?
5. Overall condition: What is the overall condition of the card?

If you see any damage at all, set is_damaged to true. If the card appears
to be in perfect condition with no visible flaws, set is_damaged to false.

Respond ONLY with a JSON object:
{
  "condition_analysis": "Your detailed analysis here.",
  "is_damaged": true/false
}`

// damageTerms is the fallback signal when the vision model answers in prose
// instead of JSON.
var damageTerms = []string{
	"scratch", "scuff", "wear", "damage", "crease", "fold", "whitening",
}

// ImageAnalyzerService grades the physical condition visible in listing
// photos. It picks the largest image available, since sellers usually
// upload the close-up last and thumbnails hide edge wear.
type ImageAnalyzerService struct {
	apiKey     string
	httpClient *http.Client
	imgClient  *http.Client
	enabled    bool
}

func NewImageAnalyzerService() *ImageAnalyzerService {
	apiKey := os.Getenv("OPENAI_API_KEY")

	svc := &ImageAnalyzerService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: openAITimeout},
		imgClient:  &http.Client{Timeout: imageGetTimeout},
		enabled:    apiKey != "",
	}

	if svc.enabled {
		log.Printf("Image analyzer: enabled (model=%s)", openAIModel)
	} else {
		log.Printf("Image analyzer: disabled (no OPENAI_API_KEY)")
	}

	return svc
}

func (s *ImageAnalyzerService) IsEnabled() bool {
	return s.enabled
}

// AnalyzeImages downloads the largest of the given images and asks the
// vision model for a condition verdict.
func (s *ImageAnalyzerService) AnalyzeImages(ctx context.Context, imageURLs []string) (*analysis.ImageVerdict, error) {
	if !s.enabled {
		return nil, fmt.Errorf("image analyzer not enabled (no OPENAI_API_KEY)")
	}

	imageBytes, imageURL, err := s.largestImage(ctx, imageURLs)
	if err != nil {
		return nil, err
	}
	log.Printf("Image analyzer: selected %s (%d bytes)", imageURL, len(imageBytes))

	return s.analyzeBytes(ctx, imageBytes)
}

// largestImage checks content-length via HEAD for each URL and downloads
// the biggest one. URLs that fail are skipped, not fatal.
func (s *ImageAnalyzerService) largestImage(ctx context.Context, imageURLs []string) ([]byte, string, error) {
	if len(imageURLs) == 0 {
		return nil, "", fmt.Errorf("no image URLs provided")
	}

	largestSize := int64(-1)
	largestURL := ""
	for _, imageURL := range imageURLs {
		size, err := s.imageSize(ctx, imageURL)
		if err != nil {
			log.Printf("Image analyzer: size check failed for %s: %v", imageURL, err)
			continue
		}
		if size > largestSize {
			largestSize = size
			largestURL = imageURL
		}
	}
	if largestURL == "" {
		return nil, "", fmt.Errorf("no downloadable image among %d URLs", len(imageURLs))
	}

	data, err := s.download(ctx, largestURL)
	if err != nil {
		return nil, "", err
	}
	return data, largestURL, nil
}

func (s *ImageAnalyzerService) imageSize(ctx context.Context, imageURL string) (int64, error) {
	headCtx, cancel := context.WithTimeout(ctx, imageHeadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(headCtx, "HEAD", imageURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.imgClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	size, _ := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
	return size, nil
}

func (s *ImageAnalyzerService) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.imgClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

func (s *ImageAnalyzerService) analyzeBytes(ctx context.Context, imageBytes []byte) (*analysis.ImageVerdict, error) {
	imageB64 := base64.StdEncoding.EncodeToString(imageBytes)
	mimeType := http.DetectContentType(imageBytes)
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/jpeg"
	}

	content := []map[string]any{
		{"type": "text", "text": imagePrompt},
		{"type": "image_url", "image_url": map[string]string{
			"url": fmt.Sprintf("data:%s;base64,%s", mimeType, imageB64),
		}},
	}

	svc := AIAnalyzerService{apiKey: s.apiKey, httpClient: s.httpClient, enabled: true}
	text, err := svc.chat(ctx, []chatMessage{{Role: "user", Content: content}})
	if err != nil {
		return nil, err
	}

	return DecodeImageVerdict(stripCodeFence(text)), nil
}

// DecodeImageVerdict parses the model's condition verdict. Prose answers
// fall back to damage-keyword matching, so a verdict always comes back.
func DecodeImageVerdict(text string) *analysis.ImageVerdict {
	var payload struct {
		ConditionAnalysis string `json:"condition_analysis"`
		IsDamaged         bool   `json:"is_damaged"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err == nil && payload.ConditionAnalysis != "" {
		return &analysis.ImageVerdict{
			Analysis:  payload.ConditionAnalysis,
			IsDamaged: payload.IsDamaged,
		}
	}

	metrics.AIErrorsTotal.WithLabelValues("parse").Inc()
	lower := strings.ToLower(text)
	damaged := false
	for _, term := range damageTerms {
		if strings.Contains(lower, term) {
			damaged = true
			break
		}
	}
	return &analysis.ImageVerdict{Analysis: text, IsDamaged: damaged}
}
