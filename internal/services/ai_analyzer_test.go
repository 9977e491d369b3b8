package services

import (
	"reflect"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"json fence", "```json\n{\"condition\": \"Mint\"}\n```", `{"condition": "Mint"}`},
		{"bare fence", "```\n{\"condition\": \"Mint\"}\n```", `{"condition": "Mint"}`},
		{"no fence", `{"condition": "Mint"}`, `{"condition": "Mint"}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.input); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeAIAnalysis(t *testing.T) {
	doc := []byte(`{
		"condition": "Near Mint",
		"condition_rating": 0.85,
		"confidence": 0.9,
		"condition_notes": ["minor edge wear"],
		"special_notes": ["misprint on name"],
		"grading_info": {"service": "PSA", "grade": "9"},
		"market_price": 30000,
		"profit_margin": 1.5,
		"recommendation": "BUY"
	}`)

	result, dropped := DecodeAIAnalysis(doc)
	if result == nil {
		t.Fatal("DecodeAIAnalysis() returned nil for valid payload")
	}
	if len(dropped) != 0 {
		t.Errorf("dropped = %v, want none", dropped)
	}

	if result.Condition != "Near Mint" {
		t.Errorf("condition = %q", result.Condition)
	}
	if result.ConditionRating != 0.85 {
		t.Errorf("condition rating = %v", result.ConditionRating)
	}
	if !reflect.DeepEqual(result.ConditionNotes, []string{"minor edge wear"}) {
		t.Errorf("condition notes = %v", result.ConditionNotes)
	}
	if result.GradingInfo == nil || result.GradingInfo.Service != "PSA" || result.GradingInfo.Grade != "9" {
		t.Errorf("grading info = %+v", result.GradingInfo)
	}
	if result.MarketPrice != 30000 {
		t.Errorf("market price = %v", result.MarketPrice)
	}
	if result.Recommendation != "BUY" {
		t.Errorf("recommendation = %q", result.Recommendation)
	}
}

func TestDecodeAIAnalysisLenientFields(t *testing.T) {
	// Wrong-typed fields are dropped, not fatal. Numeric strings and bare
	// strings where a list was expected are accepted.
	doc := []byte(`{
		"condition": 7,
		"condition_rating": "0.6",
		"confidence": true,
		"condition_notes": "light scratches",
		"special_notes": [],
		"grading_info": "ungraded",
		"market_price": "not sure",
		"recommendation": "buy"
	}`)

	result, dropped := DecodeAIAnalysis(doc)
	if result == nil {
		t.Fatal("DecodeAIAnalysis() returned nil for object payload")
	}

	if result.Condition != "" {
		t.Errorf("condition = %q, want empty after drop", result.Condition)
	}
	if result.ConditionRating != 0.6 {
		t.Errorf("condition rating = %v, want 0.6 from numeric string", result.ConditionRating)
	}
	if result.Confidence != 0 {
		t.Errorf("confidence = %v, want 0 after drop", result.Confidence)
	}
	if !reflect.DeepEqual(result.ConditionNotes, []string{"light scratches"}) {
		t.Errorf("condition notes = %v, want bare string accepted", result.ConditionNotes)
	}
	if result.GradingInfo != nil {
		t.Errorf("grading info = %+v, want nil for non-object", result.GradingInfo)
	}
	if result.Recommendation != "BUY" {
		t.Errorf("recommendation = %q, want uppercased", result.Recommendation)
	}

	wantDropped := map[string]bool{
		"condition": true, "confidence": true, "grading_info": true, "market_price": true,
	}
	if len(dropped) != len(wantDropped) {
		t.Errorf("dropped = %v, want %d fields", dropped, len(wantDropped))
	}
	for _, name := range dropped {
		if !wantDropped[name] {
			t.Errorf("unexpected dropped field %q", name)
		}
	}
}

func TestDecodeAIAnalysisNotAnObject(t *testing.T) {
	for _, doc := range []string{`"just a string"`, `[1, 2, 3]`, `not json at all`} {
		if result, _ := DecodeAIAnalysis([]byte(doc)); result != nil {
			t.Errorf("DecodeAIAnalysis(%q) = %+v, want nil", doc, result)
		}
	}
}

func TestDecodeAIAnalysisEmptyObject(t *testing.T) {
	result, dropped := DecodeAIAnalysis([]byte(`{}`))
	if result == nil {
		t.Fatal("DecodeAIAnalysis({}) returned nil; empty analysis is valid")
	}
	if len(dropped) != 0 {
		t.Errorf("dropped = %v, want none for missing fields", dropped)
	}
	if result.Condition != "" || result.MarketPrice != 0 || result.GradingInfo != nil {
		t.Errorf("empty object should decode to zero analysis, got %+v", result)
	}
}
