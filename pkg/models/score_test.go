package models

import (
	"math"
	"testing"
)

func TestParseScore_Normalized(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
		scored   bool
	}{
		{name: "not applicable", raw: "N/A", scored: false},
		{name: "lowercase na", raw: "na", scored: false},
		{name: "mixed case with slash", raw: "n/A", scored: false},
		{name: "empty", raw: "", scored: false},
		{name: "whitespace only", raw: "   ", scored: false},
		{name: "ten point fraction", raw: "8/10", expected: 8, scored: true},
		{name: "thirteen point fraction", raw: "10/13", expected: 7.7, scored: true},
		{name: "sixteen point fraction", raw: "12/16", expected: 7.5, scored: true},
		{name: "perfect sixteen", raw: "16/16", expected: 10, scored: true},
		{name: "padded fraction", raw: " 9 / 13 ", expected: 6.9, scored: true},
		{name: "zero denominator keeps numerator", raw: "7/0", expected: 7, scored: true},
		{name: "plain number string", raw: "6.5", expected: 6.5, scored: true},
		{name: "unparseable falls back to zero", raw: "pending", expected: 0, scored: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseScore(tt.raw).Normalized()
			if ok != tt.scored {
				t.Fatalf("ParseScore(%q).Normalized() ok = %v, want %v", tt.raw, ok, tt.scored)
			}
			if ok && math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("ParseScore(%q).Normalized() = %v, want %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestScoreFromNumber(t *testing.T) {
	got, ok := ScoreFromNumber(5).Normalized()
	if !ok || got != 5 {
		t.Errorf("ScoreFromNumber(5).Normalized() = %v, %v, want 5, true", got, ok)
	}
}

func TestNormalized_Idempotent(t *testing.T) {
	// A value already on the 10-point scale passes through untouched.
	for _, v := range []float64{0, 3.3, 7.7, 10} {
		got, ok := ScoreFromNumber(v).Normalized()
		if !ok || got != v {
			t.Errorf("Normalized(%v) = %v, %v, want identity", v, got, ok)
		}
	}
}

func TestNative_PreservesDenominator(t *testing.T) {
	value, scale, ok := ParseScore("10/13").Native()
	if !ok || value != 10 || scale != 13 {
		t.Errorf("Native() = %v/%v, %v, want 10/13, true", value, scale, ok)
	}

	value, scale, ok = ScoreFromNumber(6).Native()
	if !ok || value != 6 || scale != 10 {
		t.Errorf("numeric Native() = %v/%v, %v, want 6/10, true", value, scale, ok)
	}

	if _, _, ok := ParseScore("NA").Native(); ok {
		t.Error("unscored Native() reported ok")
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		score float64
		band  Band
	}{
		{10, BandGood},
		{8, BandGood},
		{7.9, BandFair},
		{6, BandFair},
		{5.9, BandPoor},
		{4, BandPoor},
		{3.9, BandCritical},
		{0, BandCritical},
	}
	for _, tt := range tests {
		if got := BandFor(tt.score); got != tt.band {
			t.Errorf("BandFor(%v) = %s, want %s", tt.score, got, tt.band)
		}
	}
}
