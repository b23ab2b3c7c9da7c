package sentiment

import (
	"reflect"
	"testing"
)

func TestParseLabel(t *testing.T) {
	t.Parallel()
	cases := map[string]Label{
		"positive":     Positive,
		"POSITIVE  ":   Positive,
		" Negative\n":  Negative,
		"neutral":      Neutral,
		"maybe":        Error,
		"":             Error,
		"muy positivo": Error,
		"positive.":    Error,
		"error":        Error,
	}
	for in, want := range cases {
		if got := ParseLabel(in); got != want {
			t.Errorf("ParseLabel(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"positive", "POSITIVE  ", "maybe", ""} {
		if a, b := Normalize(raw), Normalize(raw); a != b {
			t.Errorf("Normalize(%q) not stable: %q vs %q", raw, a, b)
		}
	}
}

func TestLabel_Valid(t *testing.T) {
	t.Parallel()
	for _, l := range Labels {
		if !l.Valid() {
			t.Errorf("%q should be valid", l)
		}
	}
	if Label("mixed").Valid() {
		t.Error(`"mixed" should not be valid`)
	}
}

func TestNormalizeScored_FullReply(t *testing.T) {
	t.Parallel()
	s := NormalizeScored(`{"text":"great game","sentiment":"Positive","score":0.8,"timestamp":"2024-01-01T00:00:00Z"}`)
	if s.Label != Positive {
		t.Errorf("Label = %q; want positive", s.Label)
	}
	if s.Score == nil || *s.Score != 0.8 {
		t.Errorf("Score = %v; want 0.8", s.Score)
	}
	if s.Text != "great game" || s.Timestamp != "2024-01-01T00:00:00Z" {
		t.Errorf("unexpected text/timestamp %q/%q", s.Text, s.Timestamp)
	}
	if !s.Complete() {
		t.Error("expected complete reply")
	}
}

func TestNormalizeScored_ZeroScoreIsPresent(t *testing.T) {
	t.Parallel()
	s := NormalizeScored(`{"text":"ok I guess","sentiment":"neutral","score":0.0}`)
	if s.Score == nil || *s.Score != 0 {
		t.Fatalf("Score = %v; want pointer to 0", s.Score)
	}
	if !s.Complete() {
		t.Error("a zero score must count as present")
	}
}

func TestNormalizeScored_ScoreNotClamped(t *testing.T) {
	t.Parallel()
	s := NormalizeScored(`{"text":"x","sentiment":"negative","score":-3.5}`)
	if s.Score == nil || *s.Score != -3.5 {
		t.Errorf("Score = %v; want -3.5 as given", s.Score)
	}
}

func TestNormalizeScored_Incomplete(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"string score":  `{"text":"x","sentiment":"positive","score":"high"}`,
		"missing score": `{"text":"x","sentiment":"positive"}`,
		"bad label":     `{"text":"x","sentiment":"positiva","score":0.5}`,
		"missing text":  `{"sentiment":"positive","score":0.5}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if NormalizeScored(raw).Complete() {
				t.Errorf("expected incomplete for %s", raw)
			}
		})
	}
}

func TestNormalizeScored_Fenced(t *testing.T) {
	t.Parallel()
	s := NormalizeScored("```json\n{\"text\":\"x\",\"sentiment\":\"negative\",\"score\":-0.4}\n```")
	if s.Label != Negative || s.Score == nil || *s.Score != -0.4 {
		t.Errorf("unexpected %+v", s)
	}
}

func TestNormalizeScored_NotJSON(t *testing.T) {
	t.Parallel()
	s := NormalizeScored("I think it is positive")
	if s.Label != Error || s.Score != nil {
		t.Errorf("expected error label and no score, got %+v", s)
	}
}

func TestNormalizeScored_Idempotent(t *testing.T) {
	t.Parallel()
	raw := `{"text":"x","sentiment":"positive","score":0.25}`
	if a, b := NormalizeScored(raw), NormalizeScored(raw); !reflect.DeepEqual(a, b) {
		t.Errorf("NormalizeScored not stable: %+v vs %+v", a, b)
	}
}
