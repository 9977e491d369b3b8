package analysis

import (
	"strings"

	"github.com/cardscout/card-arbitrage/internal/lexicon"
)

// specialAINotes are the AI special-note values that flag a printing
// oddity worth buying regardless of anything else.
var specialAINotes = map[string]bool{
	"error":      true,
	"misprint":   true,
	"test print": true,
	"prototype":  true,
	"sample":     true,
}

// ValuabilityClassifier decides whether a listing is worth deeper review.
// The verdict is a logical OR over independent triggers; evaluation order
// only matters for explainability, never for the result. A listing with
// zero matched attributes and zero AI signal is never valuable by default.
type ValuabilityClassifier struct {
	lex *lexicon.Lexicons
}

func NewValuabilityClassifier(lex *lexicon.Lexicons) *ValuabilityClassifier {
	return &ValuabilityClassifier{lex: lex}
}

// IsValuable checks the triggers in order, first hit wins.
func (v *ValuabilityClassifier) IsValuable(title, description string, attrs ExtractedAttributes, ai *AIAnalysis) bool {
	lower := strings.ToLower(title + " " + description)

	// A known valuable card, as long as the extracted set code (if any)
	// is one of that card's premium printings.
	for _, card := range v.lex.ValuableCards {
		if !strings.Contains(lower, strings.ToLower(card.Name)) && !containsAny(lower, card.Aliases) {
			continue
		}
		if attrs.SetCode == "" {
			return true
		}
		for _, set := range card.Sets {
			if strings.EqualFold(attrs.SetCode, set) {
				return true
			}
		}
	}

	// Secret Rare and above.
	if attrs.Rarity != "" && v.lex.HighValueRarities[attrs.Rarity] {
		return true
	}

	if attrs.Edition == "1st Edition" {
		return true
	}

	if containsAny(lower, v.lex.TournamentMarkers) {
		return true
	}

	// Premium-grade condition phrases ("gem mint", 完全美品, ...).
	if containsAny(lower, v.lex.HighValueConditions) {
		return true
	}

	if containsAny(lower, v.lex.GradingMarkers) {
		return true
	}

	if containsAny(lower, v.lex.SpecialPrintMarkers) {
		return true
	}

	if ai != nil {
		if ai.ConditionRating >= 0.8 {
			return true
		}
		for _, note := range ai.SpecialNotes {
			if specialAINotes[strings.ToLower(note)] {
				return true
			}
		}
		if ai.GradingInfo != nil {
			grade := strings.ToLower(ai.GradingInfo.Grade)
			for _, high := range []string{"10", "9", "gem"} {
				if strings.Contains(grade, high) {
					return true
				}
			}
		}
	}

	return false
}
