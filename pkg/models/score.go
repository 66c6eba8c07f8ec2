package models

import (
	"math"
	"strconv"
	"strings"
)

// ScoreKind discriminates the representations a SOP score arrives in.
type ScoreKind int

const (
	// ScoreUnscored marks a call that was reviewed but not scored ("N/A").
	ScoreUnscored ScoreKind = iota
	// ScoreNumeric is a plain number, assumed to be on the 10-point scale.
	ScoreNumeric
	// ScoreFractional is a "numerator/denominator" score where the
	// denominator is the maximum for the call's review category.
	ScoreFractional
)

// Score is a SOP score decoded once at ingestion. The upstream API mixes
// plain numbers, "N/A" markers, and fraction strings with category-specific
// denominators (10, 13, and 16 observed), so every consumer goes through
// this type instead of re-parsing strings.
type Score struct {
	Kind        ScoreKind `json:"kind"`
	Value       float64   `json:"value,omitempty"`       // numerator for fractional scores
	Denominator float64   `json:"denominator,omitempty"` // fractional scores only
}

// ParseScore decodes a raw SOP score string. It is total: every input maps
// to a Score, never an error. Rules, in order:
//
//  1. empty or "N/A"/"NA" (any case) -> unscored
//  2. "a/b" -> fractional with numerator a and denominator b
//  3. anything else -> plain float parse, falling back to 0
//
// The fallback-to-zero on unparseable input mirrors the upstream dashboard
// and conflates "scored zero" with "failed to parse"; callers that need to
// distinguish must do so before parsing.
func ParseScore(raw string) Score {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Score{Kind: ScoreUnscored}
	}
	switch strings.ToLower(s) {
	case "n/a", "na":
		return Score{Kind: ScoreUnscored}
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN != nil {
			n = 0
		}
		if errD != nil {
			d = 0
		}
		return Score{Kind: ScoreFractional, Value: n, Denominator: d}
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		n = 0
	}
	return Score{Kind: ScoreNumeric, Value: n}
}

// ScoreFromNumber wraps a numeric JSON score. Numbers are taken as already
// on the 10-point scale.
func ScoreFromNumber(n float64) Score {
	return Score{Kind: ScoreNumeric, Value: n}
}

// Normalized returns the canonical 10-point value used for cross-category
// comparison, and false for unscored calls. Fractions over denominators
// other than 10 are rescaled and rounded to one decimal; a zero or missing
// denominator leaves the numerator untouched. Normalizing a value already on
// the 10-point scale returns it unchanged.
func (s Score) Normalized() (float64, bool) {
	switch s.Kind {
	case ScoreNumeric:
		return s.Value, true
	case ScoreFractional:
		if s.Denominator != 0 && s.Denominator != 10 {
			return round1(s.Value / s.Denominator * 10), true
		}
		return s.Value, true
	default:
		return 0, false
	}
}

// Native returns the raw value together with its native scale, for
// per-category display where mixing denominators would mislead. Numeric
// scores report a scale of 10.
func (s Score) Native() (value, scale float64, ok bool) {
	switch s.Kind {
	case ScoreNumeric:
		return s.Value, 10, true
	case ScoreFractional:
		scale := s.Denominator
		if scale == 0 {
			scale = 10
		}
		return s.Value, scale, true
	default:
		return 0, 0, false
	}
}

// Scored reports whether the call carries a usable score.
func (s Score) Scored() bool {
	return s.Kind != ScoreUnscored
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Band buckets a normalized score for badge and chart coloring.
type Band string

const (
	BandGood     Band = "good"
	BandFair     Band = "fair"
	BandPoor     Band = "poor"
	BandCritical Band = "critical"
)

// BandFor classifies a normalized 10-point score. One shared classification
// drives both table badges and chart bar colors.
func BandFor(normalized float64) Band {
	switch {
	case normalized >= 8:
		return BandGood
	case normalized >= 6:
		return BandFair
	case normalized >= 4:
		return BandPoor
	default:
		return BandCritical
	}
}

// ScoreBand classifies a call's score, treating unscored calls as critical
// for display purposes only.
func (s Score) ScoreBand() Band {
	n, _ := s.Normalized()
	return BandFor(n)
}
