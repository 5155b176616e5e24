package palette

import (
	"math/rand"
	"testing"

	"github.com/san-kum/dotfield/internal/config"
	"github.com/san-kum/dotfield/internal/field"
)

var square = field.Extent{Width: 1000, Height: 1000}

func TestOnEmblem(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"left bar", 150, 500, true},
		{"right bar", 850, 500, true},
		{"chevron", 500, 600, true},
		{"gap between bars", 500, 200, false},
		{"outside square", -10, 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OnEmblem(tt.x, tt.y, square.Width, square.Height); got != tt.want {
				t.Errorf("OnEmblem(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestOnEmblemWideCanvas(t *testing.T) {
	// the emblem lives in the centered 600x600 square
	if OnEmblem(100, 300, 1200, 600) {
		t.Error("point left of the centered square should be off the emblem")
	}
	if !OnEmblem(350, 300, 1200, 600) {
		t.Error("point on the left bar should be on the emblem")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	cfg := config.DefaultConfig().Palette
	cfg.Base = "not-a-color"
	if _, err := New(cfg, 1); err == nil {
		t.Error("expected error for bad base color")
	}

	cfg = config.DefaultConfig().Palette
	cfg.Mode = "plaid"
	if _, err := New(cfg, 1); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestColorDeterministic(t *testing.T) {
	for _, mode := range []Mode{Region, Random, Noise} {
		t.Run(string(mode), func(t *testing.T) {
			cfg := config.DefaultConfig().Palette
			cfg.Mode = string(mode)

			a, err := New(cfg, 7)
			if err != nil {
				t.Fatal(err)
			}
			b, _ := New(cfg, 7)

			ra, rb := rand.New(rand.NewSource(3)), rand.New(rand.NewSource(3))
			for i := 0; i < 20; i++ {
				rest := field.Vec{X: float64(i * 45), Y: float64(i * 31)}
				ca := a.Color(rest, square, ra)
				cb := b.Color(rest, square, rb)
				if ca != cb {
					t.Fatalf("same seed gave %v and %v", ca, cb)
				}
				if !ca.IsValid() {
					t.Fatalf("invalid color %v", ca)
				}
			}
		})
	}
}

func TestRandomTealFamily(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		c := randomTeal(rng)
		if c.B < c.G || c.G < c.R {
			t.Fatalf("expected blue >= green >= red, got %v", c)
		}
	}
}
