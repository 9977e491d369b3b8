package analysis

import (
	"regexp"
	"strings"

	"github.com/cardscout/card-arbitrage/internal/lexicon"
	"github.com/cardscout/card-arbitrage/internal/models"
)

// rankPatterns are the label formats sellers use for the rank token,
// tried in order; the first match wins. (?i) covers descriptions that
// were lowercased upstream.
var rankPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)【ランク】\s*([A-Z+]+)`),
	regexp.MustCompile(`(?i)ランク[：:]\s*([A-Z+]+)`),
	regexp.MustCompile(`(?i)状態[：:]\s*([A-Z+]+)`),
	regexp.MustCompile(`(?i)グレード[：:]\s*([A-Z+]+)`),
}

// RankParser extracts the seller's condition rank (S, A, B+, ...) from a
// listing description and maps it onto the condition scale.
type RankParser struct {
	lex *lexicon.Lexicons
}

func NewRankParser(lex *lexicon.Lexicons) *RankParser {
	return &RankParser{lex: lex}
}

// ParseRank returns the rank token found in the description, or "" when no
// recognizable rank is present. Unrecognized tokens yield "" rather than a
// guessed grade.
func (p *RankParser) ParseRank(description string) string {
	if description == "" {
		return ""
	}

	for _, pattern := range rankPatterns {
		match := pattern.FindStringSubmatch(description)
		if match == nil {
			continue
		}
		token := strings.ToUpper(match[1])
		if _, ok := p.lex.RankConditions[token]; ok {
			return token
		}
		// Legacy folds seen in real listings: some sellers grade A+ on an
		// S/A/B scale and B++ on a B+/B scale.
		if token == "A+" {
			return "A"
		}
		if token == "B++" {
			return "B+"
		}
	}

	return ""
}

// ConditionFromRank converts a rank token to a condition level.
// Unknown tokens map to ConditionUnknown.
func (p *RankParser) ConditionFromRank(token string) models.ConditionLevel {
	if cond, ok := p.lex.RankConditions[strings.ToUpper(token)]; ok {
		return cond
	}
	return models.ConditionUnknown
}
