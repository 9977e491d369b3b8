package analysis

import (
	"testing"

	"github.com/cardscout/card-arbitrage/internal/lexicon"
	"github.com/cardscout/card-arbitrage/internal/models"
)

func TestParseRank(t *testing.T) {
	parser := NewRankParser(lexicon.Default())

	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "bracket label format",
			description: "【ランク】A\n目立った傷なし",
			want:        "A",
		},
		{
			name:        "colon format",
			description: "ランク: B+",
			want:        "B+",
		},
		{
			name:        "fullwidth colon format",
			description: "状態：S 完全美品です",
			want:        "S",
		},
		{
			name:        "grade label format",
			description: "グレード: SS",
			want:        "SS",
		},
		{
			name:        "lowercase token still recognized",
			description: "【ランク】a",
			want:        "A",
		},
		{
			name:        "A+ folds to A",
			description: "【ランク】A+",
			want:        "A",
		},
		{
			name:        "B++ folds to B+",
			description: "ランク: B++",
			want:        "B+",
		},
		{
			name:        "unrecognized token returns nothing",
			description: "【ランク】Z",
			want:        "",
		},
		{
			name:        "no rank label at all",
			description: "美品です。よろしくお願いします。",
			want:        "",
		},
		{
			name:        "empty description",
			description: "",
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parser.ParseRank(tt.description); got != tt.want {
				t.Errorf("ParseRank(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}

func TestConditionFromRank(t *testing.T) {
	parser := NewRankParser(lexicon.Default())

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
		{"s", models.ConditionMint}, // case-insensitive lookup
		{"Z", models.ConditionUnknown},
		{"", models.ConditionUnknown},
	}

	for _, tt := range tests {
		if got := parser.ConditionFromRank(tt.rank); got != tt.want {
			t.Errorf("ConditionFromRank(%q) = %v, want %v", tt.rank, got, tt.want)
		}
	}
}
