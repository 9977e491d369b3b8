package analysis

import (
	"strings"

	"github.com/cardscout/card-arbitrage/internal/lexicon"
	"github.com/cardscout/card-arbitrage/internal/models"
)

// conditionWeights are the per-condition contributions to the confidence
// score. Unknown and the low grades contribute nothing.
var conditionWeights = map[models.ConditionLevel]float64{
	models.ConditionMint:        0.35,
	models.ConditionNearMint:    0.30,
	models.ConditionExcellent:   0.25,
	models.ConditionGood:        0.15,
	models.ConditionLightPlayed: 0.10,
	models.ConditionPlayed:      0.05,
}

// ConfidenceScorer combines all the extracted evidence into one bounded
// score. Contributions are added independently and the sum clamped at 1.0;
// clamping rather than averaging is deliberate, so corroborating signals
// compound instead of diluting each other.
type ConfidenceScorer struct {
	lex *lexicon.Lexicons
}

func NewConfidenceScorer(lex *lexicon.Lexicons) *ConfidenceScorer {
	return &ConfidenceScorer{lex: lex}
}

// Score returns a confidence in [0, 1].
func (s *ConfidenceScorer) Score(condition models.ConditionLevel, attrs ExtractedAttributes, ai *AIAnalysis) float64 {
	score := conditionWeights[condition]
	score += rarityWeight(attrs.Rarity)

	// All-or-nothing: a set code without a card number (or vice versa)
	// cannot happen by construction, but a partial match contributes 0.
	if attrs.SetCode != "" && attrs.CardNumber != "" {
		score += 0.20
	}

	if attrs.Edition == "1st Edition" {
		score += 0.20
	}

	switch attrs.Region {
	case "":
	case "Japanese", "Asia":
		score += 0.15
	default:
		score += 0.10
	}

	switch n := len(attrs.MatchedKeywords); {
	case n >= 4:
		score += 0.15
	case n == 3:
		score += 0.10
	case n == 2:
		score += 0.05
	}

	joined := strings.ToLower(strings.Join(attrs.MatchedKeywords, " "))
	if containsAny(joined, s.lex.HighValueConditions) {
		score += 0.10
	}
	if containsAny(joined, s.lex.GradingMarkers) {
		score += 0.15
	}

	if ai != nil {
		if ai.Confidence > 0.8 {
			score += 0.10
		}
		if len(ai.ConditionNotes) > 0 {
			score += 0.05
		}
		if ai.GradingInfo != nil {
			score += 0.10
		}
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}

// rarityWeight buckets rarity tiers for scoring. The buckets differ from
// the extraction order on purpose: Gold/Platinum Secret print runs are
// large enough that they price like Ultra, not like true Secret.
func rarityWeight(rarity string) float64 {
	if rarity == "" {
		return 0
	}
	lower := strings.ToLower(rarity)
	switch {
	case strings.Contains(lower, "ghost"),
		strings.Contains(lower, "ultimate"),
		strings.Contains(lower, "starlight"),
		strings.Contains(lower, "quarter century"):
		return 0.30
	case strings.Contains(lower, "prismatic"),
		strings.Contains(lower, "collector"),
		lower == "secret rare":
		return 0.25
	case strings.Contains(lower, "ultra"),
		strings.Contains(lower, "gold"),
		strings.Contains(lower, "platinum"):
		return 0.20
	case strings.Contains(lower, "super"),
		strings.Contains(lower, "parallel"):
		return 0.15
	case lower == "rare":
		return 0.10
	}
	return 0
}
