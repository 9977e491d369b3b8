package analysis

import (
	"strings"
	"testing"

	"github.com/cardscout/card-arbitrage/internal/lexicon"
	"github.com/cardscout/card-arbitrage/internal/models"
)

func TestClassifyRankTakesPrecedence(t *testing.T) {
	classifier := NewConditionClassifier(lexicon.Default())

	// Rank A maps to Near Mint; the description also says "excellent".
	// The rank-derived condition must win, with a mismatch warning.
	result := classifier.Classify("【ランク】A", "excellent condition, light wear", "A", nil)

	if result.Condition != models.ConditionNearMint {
		t.Errorf("Condition = %v, want %v", result.Condition, models.ConditionNearMint)
	}
	if !hasWarningContaining(result.Warnings, "Condition mismatch") {
		t.Errorf("expected a condition mismatch warning, got %v", result.Warnings)
	}
	if result.Rank != "A" {
		t.Errorf("Rank = %q, want %q", result.Rank, "A")
	}
}

func TestClassifyKeywordOnly(t *testing.T) {
	classifier := NewConditionClassifier(lexicon.Default())

	tests := []struct {
		name           string
		sellerText     string
		wantCondition  models.ConditionLevel
		wantConfidence float64
	}{
		{
			name:           "Japanese mint keyword",
			sellerText:     "完全美品です",
			wantCondition:  models.ConditionMint,
			wantConfidence: keywordConfidence,
		},
		{
			name:           "near mint does not register as mint",
			sellerText:     "near mint",
			wantCondition:  models.ConditionNearMint,
			wantConfidence: keywordConfidence,
		},
		{
			name:           "katakana near mint does not register as mint",
			sellerText:     "ニアミント",
			wantCondition:  models.ConditionNearMint,
			wantConfidence: keywordConfidence,
		},
		{
			name:           "minor scratches does not register as played",
			sellerText:     "小傷あり",
			wantCondition:  models.ConditionVeryGood,
			wantConfidence: keywordConfidence,
		},
		{
			name:           "played keyword",
			sellerText:     "使用済み",
			wantCondition:  models.ConditionPlayed,
			wantConfidence: keywordConfidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Classify("", tt.sellerText, "", nil)
			if result.Condition != tt.wantCondition {
				t.Errorf("Condition = %v, want %v", result.Condition, tt.wantCondition)
			}
			if result.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", result.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassifyConsistentJapanesePremium(t *testing.T) {
	classifier := NewConditionClassifier(lexicon.Default())

	// Rank S maps to Mint and 完全美品 is a Mint keyword. The embedded 美品
	// (Excellent) must not surface as a mismatch.
	result := classifier.Classify("【ランク】S 完全美品", "", "S", nil)

	if result.Condition != models.ConditionMint {
		t.Errorf("Condition = %v, want %v", result.Condition, models.ConditionMint)
	}
	if hasWarningContaining(result.Warnings, "Condition mismatch") {
		t.Errorf("spurious mismatch warning on consistent listing: %v", result.Warnings)
	}
}

func TestClassifyConflictingKeywords(t *testing.T) {
	classifier := NewConditionClassifier(lexicon.Default())

	// 美品 (Excellent) and 傷あり (Played) in one blurb: the better grade
	// wins, the disagreement is surfaced as a warning.
	result := classifier.Classify("", "美品ですが傷あり", "", nil)

	if result.Condition != models.ConditionExcellent {
		t.Errorf("Condition = %v, want %v", result.Condition, models.ConditionExcellent)
	}
	if !hasWarningContaining(result.Warnings, "Condition mismatch") {
		t.Errorf("expected keyword conflict warning, got %v", result.Warnings)
	}
}

func TestClassifyNoSignals(t *testing.T) {
	classifier := NewConditionClassifier(lexicon.Default())

	result := classifier.Classify("よろしくお願いします", "", "", nil)

	if result.Condition != models.ConditionUnknown {
		t.Errorf("Condition = %v, want Unknown", result.Condition)
	}
	if result.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", result.Confidence)
	}
	if !hasWarningContaining(result.Warnings, "No specific condition indicators found") {
		t.Errorf("expected no-indicators warning, got %v", result.Warnings)
	}
}

func TestClassifyImageVerdict(t *testing.T) {
	classifier := NewConditionClassifier(lexicon.Default())

	t.Run("damage contradicts mint text", func(t *testing.T) {
		result := classifier.Classify("【ランク】S", "完全美品", "S", &ImageVerdict{IsDamaged: true})
		if result.Condition != models.ConditionMint {
			t.Errorf("image verdict must not change the condition, got %v", result.Condition)
		}
		if !hasWarningContaining(result.Warnings, "Image analysis reports damage") {
			t.Errorf("expected image discrepancy warning, got %v", result.Warnings)
		}
	})

	t.Run("clean image contradicts played text", func(t *testing.T) {
		result := classifier.Classify("", "使用済み 傷あり", "", &ImageVerdict{IsDamaged: false})
		if result.Condition != models.ConditionPlayed {
			t.Errorf("Condition = %v, want Played", result.Condition)
		}
		if !hasWarningContaining(result.Warnings, "no visible damage") {
			t.Errorf("expected image discrepancy warning, got %v", result.Warnings)
		}
	})

	t.Run("clean image corroborates mint text", func(t *testing.T) {
		withImage := classifier.Classify("【ランク】S", "完全美品", "S", &ImageVerdict{IsDamaged: false})
		withoutImage := classifier.Classify("【ランク】S", "完全美品", "S", nil)
		if withImage.Confidence <= withoutImage.Confidence {
			t.Errorf("corroborating image should nudge confidence up: %v vs %v",
				withImage.Confidence, withoutImage.Confidence)
		}
	})
}

func TestClassifyConfidenceCapped(t *testing.T) {
	classifier := NewConditionClassifier(lexicon.Default())

	// Rank + keyword + corroborating image stacks past 1.0 and must clamp.
	result := classifier.Classify("【ランク】S ミント 完全美品", "ミント 完全美品", "S", &ImageVerdict{IsDamaged: false})
	if result.Confidence > 1.0 {
		t.Errorf("Confidence = %v, want <= 1.0", result.Confidence)
	}
}

func hasWarningContaining(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
