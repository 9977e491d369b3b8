package analysis

import (
	"fmt"
	"strings"

	"github.com/cardscout/card-arbitrage/internal/lexicon"
	"github.com/cardscout/card-arbitrage/internal/models"
)

// Evidence weights for the condition classifier. An explicit seller rank
// is the strongest signal; free-text keywords alone are weaker.
const (
	rankConfidence    = 0.6
	keywordConfidence = 0.4
)

// ConditionResult carries the classifier's verdict plus the evidence
// behind it. Confidence is the capped contribution of this stage only.
type ConditionResult struct {
	Rank       string
	Condition  models.ConditionLevel
	Confidence float64
	Indicators []string
	Warnings   []string
}

// ConditionClassifier derives a condition level from the rank token, the
// seller's condition text, and an optional image verdict.
type ConditionClassifier struct {
	lex *lexicon.Lexicons
}

func NewConditionClassifier(lex *lexicon.Lexicons) *ConditionClassifier {
	return &ConditionClassifier{lex: lex}
}

// Classify combines the independent condition signals. The rank-derived
// condition is the source of truth: keyword or image disagreement appends
// a warning but never overwrites it. Absence of any signal yields Unknown
// plus a warning, never a guessed middle grade.
func (c *ConditionClassifier) Classify(description, sellerCondition, rankToken string, image *ImageVerdict) ConditionResult {
	result := ConditionResult{Condition: models.ConditionUnknown}

	rankSet := false
	if rankToken != "" {
		if cond, ok := c.lex.RankConditions[strings.ToUpper(rankToken)]; ok {
			result.Rank = strings.ToUpper(rankToken)
			result.Condition = cond
			result.Confidence += rankConfidence
			result.Indicators = append(result.Indicators, "Rank "+result.Rank)
			rankSet = true
		}
	}

	// Keyword scan over the seller's condition text, falling back to the
	// ordinary description when the seller supplied nothing separate.
	corpus := sellerCondition
	if corpus == "" {
		corpus = description
	}
	corpus = strings.ToLower(corpus)

	keywordHits := 0
	keywordSet := false
	for _, vocab := range c.lex.Conditions {
		text := maskBetterTiers(corpus, vocab.Level)
		for _, keyword := range vocab.Keywords {
			if !strings.Contains(text, keyword) {
				continue
			}
			result.Indicators = append(result.Indicators, keyword)
			keywordHits++
			switch {
			case !rankSet && !keywordSet:
				result.Condition = vocab.Level
				result.Confidence += keywordConfidence
				keywordSet = true
			case rankSet && vocab.Level != result.Condition:
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"Condition mismatch: Rank suggests %s, but description suggests %s",
					result.Condition, vocab.Level))
			case keywordSet && result.Condition.BetterThan(vocab.Level):
				// Tiers iterate best first, so a later distinct hit is
				// always a worse grade than the one already chosen.
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"Condition mismatch: description suggests both %s and %s",
					result.Condition, vocab.Level))
			}
		}
	}

	if keywordHits == 0 {
		result.Warnings = append(result.Warnings, "No specific condition indicators found")
	}

	// The image verdict never changes the condition; it corroborates or
	// contradicts the text-derived grade.
	if image != nil {
		switch {
		case image.IsDamaged && result.Condition.IsGood():
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"Image analysis reports damage, but text suggests %s", result.Condition))
		case !image.IsDamaged && (result.Condition == models.ConditionPlayed || result.Condition == models.ConditionPoor):
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"Image analysis reports no visible damage, but text suggests %s", result.Condition))
		case !image.IsDamaged && result.Condition.IsGood():
			result.Confidence += 0.1
			result.Indicators = append(result.Indicators, "Image analysis: no visible damage")
		}
	}

	if result.Confidence > 1.0 {
		result.Confidence = 1.0
	}

	return result
}

// tierOverlaps lists, per tier, the other tiers' phrases that embed one of
// this tier's keywords, in both vocabularies: "near mint" and ニアミント embed
// "mint"/ミント, 完全美品 and 極美品 embed 美品, やや傷あり and 小傷あり
// embed 傷あり.
var tierOverlaps = map[models.ConditionLevel][]string{
	models.ConditionMint:      {"near mint", "ニアミント"},
	models.ConditionExcellent: {"完全美品", "極美品"},
	models.ConditionGood:      {"very good"},
	models.ConditionPlayed:    {"light played", "やや傷あり", "小傷あり"},
}

// maskBetterTiers blanks out phrases that embed a shorter keyword of a
// different tier, so ニアミント does not register as Mint or 完全美品 as
// Excellent.
func maskBetterTiers(text string, level models.ConditionLevel) string {
	for _, phrase := range tierOverlaps[level] {
		text = strings.ReplaceAll(text, phrase, "")
	}
	return text
}
