package models

import "testing"

func TestConditionBetterThan(t *testing.T) {
	tests := []struct {
		a, b ConditionLevel
		want bool
	}{
		{ConditionMint, ConditionNearMint, true},
		{ConditionNearMint, ConditionMint, false},
		{ConditionMint, ConditionMint, false},
		{ConditionPoor, ConditionUnknown, true},
		{ConditionUnknown, ConditionPoor, false},
		{ConditionLevel("bogus"), ConditionPoor, false},
	}

	for _, tt := range tests {
		if got := tt.a.BetterThan(tt.b); got != tt.want {
			t.Errorf("%q.BetterThan(%q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestConditionIsGood(t *testing.T) {
	good := []ConditionLevel{ConditionMint, ConditionNearMint, ConditionExcellent}
	for _, c := range good {
		if !c.IsGood() {
			t.Errorf("%q.IsGood() = false, want true", c)
		}
	}

	bad := []ConditionLevel{
		ConditionVeryGood, ConditionGood, ConditionLightPlayed,
		ConditionPlayed, ConditionPoor, ConditionUnknown,
	}
	for _, c := range bad {
		if c.IsGood() {
			t.Errorf("%q.IsGood() = true, want false", c)
		}
	}
}
