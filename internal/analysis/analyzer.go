package analysis

import (
	"fmt"
	"strings"

	"github.com/cardscout/card-arbitrage/internal/lexicon"
	"github.com/cardscout/card-arbitrage/internal/models"
)

// Analyzer is the tiered listing pipeline. Tier 1 is a cheap rule filter
// that can reject without touching the heavier stages; tier 2 analyzes the
// detail page for rank and condition; tier 3 folds in AI or image evidence
// the caller already obtained. The analyzer holds only the shared read-only
// lexicons, so one instance is safe for concurrent use across goroutines.
type Analyzer struct {
	lex         *lexicon.Lexicons
	ranks       *RankParser
	conditions  *ConditionClassifier
	attributes  *AttributeExtractor
	valuability *ValuabilityClassifier
	confidence  *ConfidenceScorer
}

func NewAnalyzer(lex *lexicon.Lexicons) *Analyzer {
	return &Analyzer{
		lex:         lex,
		ranks:       NewRankParser(lex),
		conditions:  NewConditionClassifier(lex),
		attributes:  NewAttributeExtractor(lex),
		valuability: NewValuabilityClassifier(lex),
		confidence:  NewConfidenceScorer(lex),
	}
}

// Analyze runs the full pipeline over one listing. detail, image, and ai
// are optional; nil means the corresponding tier is skipped. The call is
// pure: identical inputs always produce an identical assessment.
func (a *Analyzer) Analyze(listing ListingInput, detail *DetailPage, image *ImageVerdict, ai *AIAnalysis) CardAssessment {
	assessment := CardAssessment{
		Title:        listing.Title,
		PriceYen:     listing.PriceYen,
		URL:          listing.URL,
		ImageURL:     primaryImage(listing, detail),
		Condition:    models.ConditionUnknown,
		AnalysisTier: 1,
	}

	// Tier 1: throw out accessories and listings with no card-domain
	// keyword at all before any heavier work runs.
	if reason := a.fastRuleFilter(listing.Title); reason != "" {
		assessment.Reason = reason
		return assessment
	}

	// Tier 2: the detail page carries the seller's rank and condition
	// prose. Without it the condition stays Unknown with no contribution.
	description := listing.Description
	if detail != nil {
		if description == "" {
			description = detail.Description
		} else if detail.Description != "" {
			description = description + " " + detail.Description
		}

		rank := a.ranks.ParseRank(detail.Description)
		condResult := a.conditions.Classify(detail.Description, detail.SellerCondition, rank, image)
		assessment.Condition = condResult.Condition
		assessment.Warnings = append(assessment.Warnings, condResult.Warnings...)
		assessment.AnalysisTier = 2
	}

	attrs := a.attributes.Extract(listing.Title, description)
	assessment.Rarity = attrs.Rarity
	assessment.SetCode = attrs.SetCode
	assessment.CardNumber = attrs.CardNumber
	assessment.Edition = attrs.Edition
	assessment.Region = attrs.Region
	assessment.MatchedKeywords = attrs.MatchedKeywords

	// Tier 3: AI and image results are injected evidence, not calls made
	// here. Their absence just means rule-based evidence only.
	if ai != nil || image != nil {
		assessment.AnalysisTier = 3
	}

	assessment.IsValuable = a.valuability.IsValuable(listing.Title, description, attrs, ai)
	assessment.ConfidenceScore = a.confidence.Score(assessment.Condition, attrs, ai)

	return assessment
}

// fastRuleFilter is the tier-1 gate. It returns a rejection reason, or ""
// when the listing deserves full analysis.
func (a *Analyzer) fastRuleFilter(title string) string {
	lower := strings.ToLower(title)

	for _, term := range a.lex.NonCardTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return fmt.Sprintf("Filtered by non-card keyword: %s", term)
		}
	}

	for _, term := range a.lex.DomainTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return ""
		}
	}
	return "No valuable domain keyword found"
}

func primaryImage(listing ListingInput, detail *DetailPage) string {
	if len(listing.ImageURLs) > 0 {
		return listing.ImageURLs[0]
	}
	if detail != nil && len(detail.Images) > 0 {
		return detail.Images[0]
	}
	return ""
}
