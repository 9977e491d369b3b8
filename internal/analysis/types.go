// Package analysis turns a raw auction listing into a structured card
// assessment. The pipeline is pure computation over the supplied inputs:
// it never fetches pages, downloads images, or calls inference services.
// Callers that already did any of that pass the results in.
package analysis

import (
	"regexp"
	"strconv"

	"github.com/cardscout/card-arbitrage/internal/models"
)

// ListingInput is the raw listing as scraped from a search-results page.
type ListingInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	PriceYen    float64  `json:"price_yen"`
	URL         string   `json:"url,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"` // first entry is the primary image
}

// DetailPage is the fuller payload scraped from a listing's own page.
// Absence means the detail-analysis tier is skipped.
type DetailPage struct {
	Description     string   `json:"description"`
	SellerCondition string   `json:"seller_condition"`
	Images          []string `json:"images,omitempty"`
}

// ImageVerdict is a vision model's take on the primary photo.
type ImageVerdict struct {
	Analysis  string `json:"analysis"`
	IsDamaged bool   `json:"is_damaged"`
}

// GradingInfo names a grading service and the grade it assigned.
type GradingInfo struct {
	Service string `json:"service,omitempty"`
	Grade   string `json:"grade,omitempty"`
}

// AIAnalysis is the optional payload from a text/vision inference call.
// Every field is optional; a missing field means "no signal", never an
// error, so the zero value is a valid (empty) analysis.
type AIAnalysis struct {
	Condition       string       `json:"condition,omitempty"`
	ConditionRating float64      `json:"condition_rating,omitempty"`
	Confidence      float64      `json:"confidence,omitempty"`
	ConditionNotes  []string     `json:"condition_notes,omitempty"`
	SpecialNotes    []string     `json:"special_notes,omitempty"`
	GradingInfo     *GradingInfo `json:"grading_info,omitempty"`
	MarketPrice     float64      `json:"market_price,omitempty"`
	ProfitMargin    float64      `json:"profit_margin,omitempty"`
	Recommendation  string       `json:"recommendation,omitempty"`
}

// ExtractedAttributes holds what the keyword and regex passes pulled out of
// the listing text. Empty string means "not found". SetCode and CardNumber
// come from a single regex match, so they are always both set or both empty.
type ExtractedAttributes struct {
	Rarity          string   `json:"rarity,omitempty"`
	SetCode         string   `json:"set_code,omitempty"`
	CardNumber      string   `json:"card_number,omitempty"`
	Edition         string   `json:"edition,omitempty"`
	Region          string   `json:"region,omitempty"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
}

// CardAssessment is the pipeline's output: one per listing per call,
// assembled once by the analyzer and never mutated afterwards.
type CardAssessment struct {
	Title    string  `json:"title"`
	PriceYen float64 `json:"price_yen"`
	URL      string  `json:"url,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`

	Condition       models.ConditionLevel `json:"condition"`
	IsValuable      bool                  `json:"is_valuable"`
	ConfidenceScore float64               `json:"confidence_score"`

	Rarity     string `json:"rarity,omitempty"`
	SetCode    string `json:"set_code,omitempty"`
	CardNumber string `json:"card_number,omitempty"`
	Edition    string `json:"edition,omitempty"`
	Region     string `json:"region,omitempty"`

	MatchedKeywords []string `json:"matched_keywords,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`

	// AnalysisTier records how deep the pipeline got: 1 = cheap filter
	// only, 2 = detail page analyzed, 3 = AI/image evidence included.
	AnalysisTier int `json:"analysis_tier"`

	// Reason is set only when the cheap filter rejected the listing.
	Reason string `json:"reason,omitempty"`
}

// Rejected reports whether the listing was dropped at the cheap-filter tier.
func (a *CardAssessment) Rejected() bool {
	return a.Reason != ""
}

var nonPriceChars = regexp.MustCompile(`[^\d.]`)

// ParsePrice extracts a numeric yen amount from scraped price text like
// "1,500円" or "¥ 4,800". Unparsable input yields 0.0, never an error.
func ParsePrice(text string) float64 {
	cleaned := nonPriceChars.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0.0
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0.0
	}
	return price
}
