package analysis

import (
	"regexp"
	"strings"

	"github.com/cardscout/card-arbitrage/internal/lexicon"
)

// setCodeRegex matches print identifiers like "LOB-001" or "LOB-EN001":
// set code, optional two-letter region infix, three-digit card number.
// Only the first match is taken; titles naming two cards are not
// disambiguated.
var setCodeRegex = regexp.MustCompile(`([A-Z]{2,4})-([A-Z]{2})?(\d{3})`)

// AttributeExtractor pulls set code, rarity, edition, and region out of
// listing text via regex and the lexicon tables.
type AttributeExtractor struct {
	lex *lexicon.Lexicons
}

func NewAttributeExtractor(lex *lexicon.Lexicons) *AttributeExtractor {
	return &AttributeExtractor{lex: lex}
}

// Extract runs all the attribute passes over title and description.
// Fields that match nothing come back empty; no pass can fail.
func (e *AttributeExtractor) Extract(title, description string) ExtractedAttributes {
	text := title + " " + description
	lower := strings.ToLower(text)

	attrs := ExtractedAttributes{}

	// Set code and card number come from one match: both or neither.
	if match := setCodeRegex.FindStringSubmatch(text); match != nil {
		attrs.SetCode = match[1]
		attrs.CardNumber = match[3]
	}

	// Rarity tiers are iterated highest first so that a listing mentioning
	// both "rare" and "secret rare" resolves to Secret Rare.
	for _, tier := range e.lex.RarityTiers {
		if containsAny(lower, tier.Keywords) {
			attrs.Rarity = tier.Name
			break
		}
	}

	for _, edition := range e.lex.Editions {
		if containsAny(lower, edition.Keywords) {
			attrs.Edition = edition.Name
			break
		}
	}

	for _, region := range e.lex.Regions {
		if containsAny(lower, region.Keywords) {
			attrs.Region = region.Name
			break
		}
	}

	attrs.MatchedKeywords = e.matchKeywords(lower)

	return attrs
}

// matchKeywords unions every lexicon hit into one deduplicated list. The
// count feeds the confidence score independently of which specific
// attribute values were chosen above.
func (e *AttributeExtractor) matchKeywords(lower string) []string {
	var matched []string
	seen := make(map[string]bool)
	add := func(keyword string) {
		if !seen[keyword] {
			seen[keyword] = true
			matched = append(matched, keyword)
		}
	}

	for _, card := range e.lex.ValuableCards {
		if strings.Contains(lower, strings.ToLower(card.Name)) || containsAny(lower, card.Aliases) {
			add(card.Name)
		}
	}

	for _, tier := range e.lex.RarityTiers {
		if e.lex.HighValueRarities[tier.Name] && containsAny(lower, tier.Keywords) {
			add(tier.Name)
		}
	}

	for _, edition := range e.lex.Editions {
		if containsAny(lower, edition.Keywords) {
			add(edition.Name)
		}
	}

	for _, region := range e.lex.Regions {
		if containsAny(lower, region.Keywords) {
			add(region.Name)
		}
	}

	for _, vocab := range e.lex.Conditions {
		if containsAny(lower, vocab.Keywords) {
			add(string(vocab.Level))
		}
	}

	for _, phrase := range e.lex.HighValueConditions {
		if strings.Contains(lower, phrase) {
			add(phrase)
		}
	}

	for _, indicator := range e.lex.ValueIndicators {
		if strings.Contains(lower, indicator) {
			add(indicator)
		}
	}

	return matched
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
