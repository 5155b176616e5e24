package field

import (
	"errors"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestNewParticleStartsAtRest(t *testing.T) {
	p := NewParticle(7, Vec{X: 30, Y: 40}, 0.4, 0.45, colorful.Color{R: 1})

	if p.Pos() != p.Rest() {
		t.Errorf("expected position %v to equal rest %v", p.Pos(), p.Rest())
	}
	if p.State() != Free {
		t.Errorf("expected free, got %s", p.State())
	}
	if p.Vel() != (Vec{}) {
		t.Errorf("expected zero velocity, got %v", p.Vel())
	}
}

func TestBeginResetRecordsOrigin(t *testing.T) {
	p := NewParticle(1, Vec{X: 0, Y: 0}, 0.4, 0.4, colorful.Color{})
	p.Apply(Body{Pos: Vec{X: 100, Y: 50}})

	p.BeginReset()
	if !p.Resetting() {
		t.Fatal("expected resetting")
	}
	if p.ResetFrom() != (Vec{X: 100, Y: 50}) {
		t.Errorf("expected reset origin (100,50), got %v", p.ResetFrom())
	}

	p.Apply(Body{Pos: Vec{X: 60, Y: 30}, Resetting: true})
	p.BeginReset()
	if p.ResetFrom() != (Vec{X: 100, Y: 50}) {
		t.Errorf("second BeginReset moved the origin to %v", p.ResetFrom())
	}
}

func TestCancelResetKeepsPosition(t *testing.T) {
	p := NewParticle(1, Vec{X: 10, Y: 10}, 0.4, 0.4, colorful.Color{})
	p.Apply(Body{Pos: Vec{X: 80, Y: 20}, Vel: Vec{X: 3, Y: -1}})
	p.BeginReset()

	p.CancelReset()

	if p.Resetting() {
		t.Error("expected free after cancel")
	}
	if p.Pos() != (Vec{X: 80, Y: 20}) {
		t.Errorf("cancel moved particle to %v", p.Pos())
	}
}

func TestApplyKeepsMaterial(t *testing.T) {
	p := NewParticle(1, Vec{X: 10, Y: 10}, 0.4, 0.35, colorful.Color{})
	p.Apply(Body{
		Pos:         Vec{X: 1, Y: 2},
		Rest:        Vec{X: 99, Y: 99},
		Friction:    0.9,
		Restitution: 0.9,
	})

	if p.Rest() != (Vec{X: 10, Y: 10}) {
		t.Errorf("rest changed to %v", p.Rest())
	}
	if p.Friction() != 0.4 || p.Restitution() != 0.35 {
		t.Errorf("material changed: friction=%f restitution=%f", p.Friction(), p.Restitution())
	}
}

type recordingPainter struct {
	centers []Vec
	radii   []float64
}

func (r *recordingPainter) Circle(c Vec, radius float64, _ colorful.Color) {
	r.centers = append(r.centers, c)
	r.radii = append(r.radii, radius)
}

func TestDraw(t *testing.T) {
	p := NewParticle(1, Vec{X: 5, Y: 6}, 0.4, 0.4, colorful.Color{})
	var rp recordingPainter
	p.Draw(&rp, 10)

	if len(rp.centers) != 1 || rp.centers[0] != (Vec{X: 5, Y: 6}) || rp.radii[0] != 10 {
		t.Errorf("unexpected draw calls: %+v", rp)
	}
}

func TestExtentBounds(t *testing.T) {
	b := Extent{Width: 200, Height: 100}.Bounds(0.1)

	if b.Min != (Vec{X: 10, Y: 5}) || b.Max != (Vec{X: 190, Y: 95}) {
		t.Errorf("unexpected bounds %+v", b)
	}
	if !b.Contains(Vec{X: 10, Y: 95}) {
		t.Error("bounds should be inclusive")
	}
	if b.Contains(Vec{X: 9.9, Y: 50}) {
		t.Error("point left of bounds reported inside")
	}
}

func TestExtentValid(t *testing.T) {
	tests := []struct {
		ext  Extent
		want bool
	}{
		{Extent{800, 600}, true},
		{Extent{0, 600}, false},
		{Extent{800, -1}, false},
		{Extent{math.Inf(1), 600}, false},
	}
	for _, tt := range tests {
		if got := tt.ext.Valid(); got != tt.want {
			t.Errorf("%+v: expected %v, got %v", tt.ext, tt.want, got)
		}
	}
}

func TestBodyIsValid(t *testing.T) {
	if !(Body{}).IsValid() {
		t.Error("zero body should be valid")
	}
	if (Body{Vel: Vec{X: math.NaN()}}).IsValid() {
		t.Error("NaN velocity should be invalid")
	}
}

func TestStepErrorUnwrap(t *testing.T) {
	err := &StepError{ID: 3, Frame: 12, Wrapped: ErrNonFinite}
	if !errors.Is(err, ErrNonFinite) {
		t.Error("expected StepError to unwrap to ErrNonFinite")
	}
	if err.Error() != "frame 12 particle 3: field: non-finite particle state" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
