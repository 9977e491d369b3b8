package analysis

import (
	"math"
	"testing"

	"github.com/cardscout/card-arbitrage/internal/lexicon"
	"github.com/cardscout/card-arbitrage/internal/models"
)

func TestScoreEmptyInput(t *testing.T) {
	scorer := NewConfidenceScorer(lexicon.Default())

	got := scorer.Score(models.ConditionUnknown, ExtractedAttributes{}, nil)
	if got != 0 {
		t.Errorf("Score with no evidence = %v, want 0", got)
	}
}

func TestScoreClampsAtOne(t *testing.T) {
	scorer := NewConfidenceScorer(lexicon.Default())

	// Every positive contribution at once must sum well past 1.0 and
	// still come back exactly 1.0.
	attrs := ExtractedAttributes{
		Rarity:     "Ghost Rare",
		SetCode:    "LOB",
		CardNumber: "001",
		Edition:    "1st Edition",
		Region:     "Japanese",
		MatchedKeywords: []string{
			"Blue-Eyes White Dragon", "Ghost Rare", "1st Edition",
			"gem mint", "psa",
		},
	}
	ai := &AIAnalysis{
		Confidence:     0.95,
		ConditionNotes: []string{"pack fresh"},
		GradingInfo:    &GradingInfo{Service: "PSA", Grade: "10"},
	}

	got := scorer.Score(models.ConditionMint, attrs, ai)
	if got != 1.0 {
		t.Errorf("Score with every signal = %v, want exactly 1.0", got)
	}
}

func TestScoreContributions(t *testing.T) {
	scorer := NewConfidenceScorer(lexicon.Default())

	tests := []struct {
		name      string
		condition models.ConditionLevel
		attrs     ExtractedAttributes
		want      float64
	}{
		{
			name:      "condition only",
			condition: models.ConditionMint,
			want:      0.35,
		},
		{
			name:      "near mint scores lower than mint",
			condition: models.ConditionNearMint,
			want:      0.30,
		},
		{
			name:      "unknown condition contributes nothing",
			condition: models.ConditionUnknown,
			attrs:     ExtractedAttributes{Edition: "1st Edition"},
			want:      0.20,
		},
		{
			name:      "set code and card number together",
			condition: models.ConditionUnknown,
			attrs:     ExtractedAttributes{SetCode: "LOB", CardNumber: "001"},
			want:      0.20,
		},
		{
			name:      "japanese region outweighs english",
			condition: models.ConditionUnknown,
			attrs:     ExtractedAttributes{Region: "Japanese"},
			want:      0.15,
		},
		{
			name:      "english region",
			condition: models.ConditionUnknown,
			attrs:     ExtractedAttributes{Region: "English"},
			want:      0.10,
		},
		{
			name:      "asia region scores like japanese",
			condition: models.ConditionUnknown,
			attrs:     ExtractedAttributes{Region: "Asia"},
			want:      0.15,
		},
		{
			name:      "two matched keywords",
			condition: models.ConditionUnknown,
			attrs:     ExtractedAttributes{MatchedKeywords: []string{"限定", "大会"}},
			want:      0.05,
		},
		{
			name:      "four matched keywords",
			condition: models.ConditionUnknown,
			attrs: ExtractedAttributes{
				MatchedKeywords: []string{"限定", "大会", "初期", "sealed"},
			},
			want: 0.15,
		},
		{
			name:      "one keyword contributes nothing",
			condition: models.ConditionUnknown,
			attrs:     ExtractedAttributes{MatchedKeywords: []string{"限定"}},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.condition, tt.attrs, nil)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRarityWeightBuckets(t *testing.T) {
	tests := []struct {
		rarity string
		want   float64
	}{
		{"Ghost Rare", 0.30},
		{"Ultimate Rare", 0.30},
		{"Quarter Century Secret Rare", 0.30},
		{"Prismatic Secret Rare", 0.25},
		{"Collector's Rare", 0.25},
		{"Secret Rare", 0.25},
		{"Gold Secret Rare", 0.20},
		{"Ultra Rare", 0.20},
		{"Super Rare", 0.15},
		{"Parallel Rare", 0.15},
		{"Rare", 0.10},
		{"Common", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := rarityWeight(tt.rarity); got != tt.want {
			t.Errorf("rarityWeight(%q) = %v, want %v", tt.rarity, got, tt.want)
		}
	}
}
