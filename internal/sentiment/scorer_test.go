package sentiment

import (
	"errors"
	"math"
	"testing"
)

func TestKeywordScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"neutral", "markets open flat on expiry day", 0},
		{"net positive", "rally rally drop", 0.25},
		{"net negative", "crash and sell-off deepen losses", -0.75},
		{"balanced", "rally fades into a drop", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeywordScore(tt.text)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("KeywordScore(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestValenceScorerBounds(t *testing.T) {
	s := newValenceScorer()

	texts := []string{
		"markets rally to record highs on strong growth",
		"stocks crash in panic selloff as recession fears deepen",
		"shares surge very sharply after earnings beat",
	}
	for _, text := range texts {
		got, err := s.Score(text)
		if err != nil {
			t.Fatalf("Score(%q) unexpected error: %v", text, err)
		}
		if got <= -1 || got >= 1 {
			t.Errorf("Score(%q) = %v, want in (-1,1)", text, got)
		}
	}

	pos, _ := s.Score("markets rally on optimism")
	neg, _ := s.Score("markets crash on fear")
	if pos <= 0 {
		t.Errorf("positive text scored %v, want > 0", pos)
	}
	if neg >= 0 {
		t.Errorf("negative text scored %v, want < 0", neg)
	}
}

func TestValenceScorerNegation(t *testing.T) {
	s := newValenceScorer()

	plain, err := s.Score("stocks rally")
	if err != nil {
		t.Fatal(err)
	}
	negated, err := s.Score("stocks do not rally")
	if err != nil {
		t.Fatal(err)
	}
	if plain <= 0 || negated >= 0 {
		t.Errorf("negation did not flip score: plain=%v negated=%v", plain, negated)
	}
}

func TestValenceScorerUnscorable(t *testing.T) {
	s := newValenceScorer()
	if _, err := s.Score("the quick brown fox"); !errors.Is(err, ErrUnscorable) {
		t.Errorf("expected ErrUnscorable, got %v", err)
	}
}

func TestPolarityScorer(t *testing.T) {
	s := newPolarityScorer()

	got, err := s.Score("good results and great outlook")
	if err != nil {
		t.Fatal(err)
	}
	want := (0.7 + 0.8) / 2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", got, want)
	}

	if _, err := s.Score("nothing matches here"); !errors.Is(err, ErrUnscorable) {
		t.Errorf("expected ErrUnscorable, got %v", err)
	}
}
