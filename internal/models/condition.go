package models

// ConditionLevel grades a card's physical state. Sellers on Japanese auction
// sites express this either as a letter rank (S, A, B+) or as free-text
// bilingual keywords; both funnel into this one scale.
type ConditionLevel string

const (
	ConditionMint        ConditionLevel = "Mint"
	ConditionNearMint    ConditionLevel = "Near Mint"
	ConditionExcellent   ConditionLevel = "Excellent"
	ConditionVeryGood    ConditionLevel = "Very Good"
	ConditionGood        ConditionLevel = "Good"
	ConditionLightPlayed ConditionLevel = "Light Played"
	ConditionPlayed      ConditionLevel = "Played"
	ConditionPoor        ConditionLevel = "Poor"
	ConditionUnknown     ConditionLevel = "Unknown"
)

// conditionRank orders conditions best-first. Unknown deliberately sorts
// below Poor: an unknown grade never wins a tie-break.
var conditionRank = map[ConditionLevel]int{
	ConditionMint:        0,
	ConditionNearMint:    1,
	ConditionExcellent:   2,
	ConditionVeryGood:    3,
	ConditionGood:        4,
	ConditionLightPlayed: 5,
	ConditionPlayed:      6,
	ConditionPoor:        7,
	ConditionUnknown:     8,
}

// Rank returns the sort position of the condition, best first.
func (c ConditionLevel) Rank() int {
	if r, ok := conditionRank[c]; ok {
		return r
	}
	return conditionRank[ConditionUnknown]
}

// BetterThan reports whether c is a strictly better grade than other.
func (c ConditionLevel) BetterThan(other ConditionLevel) bool {
	return c.Rank() < other.Rank()
}

// IsGood reports whether the condition is acceptable for a resale lead.
// Anything below Excellent needs a bigger price gap to be worth shipping.
func (c ConditionLevel) IsGood() bool {
	switch c {
	case ConditionMint, ConditionNearMint, ConditionExcellent:
		return true
	}
	return false
}
