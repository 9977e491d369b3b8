package lexicon

import (
	"strings"
	"testing"

	"github.com/cardscout/card-arbitrage/internal/models"
)

func TestDefaultRarityTierOrder(t *testing.T) {
	lex := Default()

	if len(lex.RarityTiers) == 0 {
		t.Fatal("no rarity tiers")
	}
	if lex.RarityTiers[0].Name != "Quarter Century Secret Rare" {
		t.Errorf("first tier = %q, want Quarter Century Secret Rare", lex.RarityTiers[0].Name)
	}
	last := lex.RarityTiers[len(lex.RarityTiers)-1]
	if last.Name != "Common" {
		t.Errorf("last tier = %q, want Common", last.Name)
	}

	// Every high-value rarity must actually be a known tier.
	names := make(map[string]bool)
	for _, tier := range lex.RarityTiers {
		names[tier.Name] = true
	}
	for name := range lex.HighValueRarities {
		if !names[name] {
			t.Errorf("high-value rarity %q is not a defined tier", name)
		}
	}
	if lex.HighValueRarities["Ultra Rare"] {
		t.Error("Ultra Rare must not be high value")
	}
}

func TestDefaultRankConditions(t *testing.T) {
	lex := Default()

	tests := []struct {
		rank string
		want models.ConditionLevel
	}{
		{"SS", models.ConditionMint},
		{"S", models.ConditionMint},
		{"A", models.ConditionNearMint},
		{"B+", models.ConditionExcellent},
		{"B", models.ConditionVeryGood},
		{"C", models.ConditionGood},
		{"D", models.ConditionLightPlayed},
		{"E", models.ConditionPlayed},
	}
	for _, tt := range tests {
		if got := lex.RankConditions[tt.rank]; got != tt.want {
			t.Errorf("RankConditions[%q] = %q, want %q", tt.rank, got, tt.want)
		}
	}
}

func TestDefaultConditionsOrderedBestFirst(t *testing.T) {
	lex := Default()

	prev := -1
	for _, vocab := range lex.Conditions {
		rank := vocab.Level.Rank()
		if rank <= prev {
			t.Fatalf("conditions out of order at %q", vocab.Level)
		}
		prev = rank
	}
}

func TestDefaultDomainTermsIncludeCardNames(t *testing.T) {
	lex := Default()

	joined := strings.Join(lex.DomainTerms, "\n")
	for _, card := range lex.ValuableCards {
		if !strings.Contains(joined, card.Name) {
			t.Errorf("domain terms missing card name %q", card.Name)
		}
		for _, alias := range card.Aliases {
			if !strings.Contains(joined, alias) {
				t.Errorf("domain terms missing alias %q", alias)
			}
		}
	}
}

func TestDefaultEnglishKeywordsAreLowercase(t *testing.T) {
	lex := Default()

	check := func(group string, keywords []string) {
		for _, kw := range keywords {
			if kw != strings.ToLower(kw) {
				t.Errorf("%s keyword %q is not lowercase", group, kw)
			}
		}
	}
	for _, tier := range lex.RarityTiers {
		check("rarity", tier.Keywords)
	}
	for _, vocab := range lex.Conditions {
		check("condition", vocab.Keywords)
	}
	check("grading", lex.GradingMarkers)
	check("tournament", lex.TournamentMarkers)
	check("value", lex.ValueIndicators)
	check("non-card", lex.NonCardTerms)
}
