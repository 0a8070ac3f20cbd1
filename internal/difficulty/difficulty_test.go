package difficulty_test

import (
	"testing"

	"github.com/saulo-duarte/quizgate-lambda/internal/difficulty"
)

func TestForLabel(t *testing.T) {
	cases := map[string]difficulty.Band{
		"easy":   {Min: 10, Max: 13},
		"medium": {Min: 14, Max: 17},
		"hard":   {Min: 18, Max: 20},
	}
	for label, want := range cases {
		t.Run(label, func(t *testing.T) {
			if got := difficulty.ForLabel(label); got != want {
				t.Errorf("ForLabel(%q) = %+v, esperado %+v", label, got, want)
			}
		})
	}

	t.Run("UnknownLabelsAreUnbounded", func(t *testing.T) {
		for _, label := range []string{"mixed", "", "EASY", "impossible", " medium"} {
			if got := difficulty.ForLabel(label); got != difficulty.Unbounded {
				t.Errorf("ForLabel(%q) = %+v, esperado faixa ilimitada", label, got)
			}
		}
		if difficulty.Unbounded != (difficulty.Band{Min: 0, Max: 100}) {
			t.Errorf("Faixa ilimitada incorreta: %+v", difficulty.Unbounded)
		}
	})
}

func TestBandContains(t *testing.T) {
	b := difficulty.ForLabel("medium")
	for score, want := range map[int]bool{13: false, 14: true, 17: true, 18: false} {
		if got := b.Contains(score); got != want {
			t.Errorf("Contains(%d) = %v, esperado %v", score, got, want)
		}
	}
}
