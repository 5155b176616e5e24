package integrators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/dotfield/internal/field"
)

var canvas = field.Extent{Width: 800, Height: 600}

func TestClampSymmetric(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"inside", 12, 12},
		{"above", 1000, 60},
		{"below", -1000, -60},
		{"negative inside", -59.5, -59.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, 60); got != tt.want {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestVelocityClampsNegativeSide(t *testing.T) {
	p := DefaultParams()
	b := field.Body{
		Vel:      field.Vec{X: -500, Y: -500},
		Gravity:  field.Vec{X: -500, Y: -500},
		Friction: 0.4,
	}

	v := Velocity(b, p)
	if v.X != -p.MaxVelocity || v.Y != -p.MaxVelocity {
		t.Errorf("expected both axes clamped to %f, got %+v", -p.MaxVelocity, v)
	}
}

func TestVelocityAppliesFriction(t *testing.T) {
	p := DefaultParams()
	b := field.Body{Vel: field.Vec{X: 10}, Gravity: field.Vec{X: 2, Y: -4}, Friction: 0.5}

	v := Velocity(b, p)
	if v.X != 6 || v.Y != -2 {
		t.Errorf("expected (6, -2), got %+v", v)
	}
}

func TestGravityGatedOnPress(t *testing.T) {
	p := DefaultParams()
	b := field.Body{Pos: field.Vec{X: 100, Y: 100}}

	g := Gravity(b, field.Pointer{X: 0.5, Y: 0.5}, canvas, p)
	if g != (field.Vec{}) {
		t.Errorf("expected no gravity without press, got %+v", g)
	}

	g = Gravity(b, field.Pointer{X: 0.5, Y: 0.5, Pressed: true}, canvas, p)
	if g.X <= 0 || g.Y <= 0 {
		t.Errorf("expected pull toward the lower right pointer, got %+v", g)
	}

	p.GateOnPress = false
	g = Gravity(b, field.Pointer{X: 0.5, Y: 0.5}, canvas, p)
	if g.X <= 0 || g.Y <= 0 {
		t.Errorf("ungated gravity should apply without press, got %+v", g)
	}
}

func TestGravityDisplacement(t *testing.T) {
	p := DefaultParams()
	b := field.Body{Pos: canvas.Center()}

	// pointer at the right edge, particle at the center
	g := Gravity(b, field.Pointer{X: 1, Pressed: true}, canvas, p)
	want := p.Gravity * p.Multiplier * (800.0 / 600.0)
	if math.Abs(g.X-want) > 1e-12 || g.Y != 0 {
		t.Errorf("expected (%f, 0), got %+v", want, g)
	}

	// a particle sitting under the pointer feels nothing
	b.Pos = field.Vec{X: 800.0 / 2 * (1 + 2.0/3), Y: 300}
	g = Gravity(b, field.Pointer{X: 1, Pressed: true}, canvas, p)
	if math.Abs(g.X) > 1e-12 {
		t.Errorf("expected zero x gravity under the pointer, got %f", g.X)
	}
}

func TestGravityUniform(t *testing.T) {
	p := DefaultParams()
	p.Mode = Uniform

	ptr := field.Pointer{X: -0.5, Y: 0.25, Pressed: true}
	a := Gravity(field.Body{Pos: field.Vec{X: 10, Y: 10}}, ptr, canvas, p)
	b := Gravity(field.Body{Pos: field.Vec{X: 700, Y: 500}}, ptr, canvas, p)
	if a != b {
		t.Errorf("uniform field should not depend on position: %+v vs %+v", a, b)
	}
	if a.X >= 0 || a.Y <= 0 {
		t.Errorf("uniform field should follow the pointer sign, got %+v", a)
	}
}

func TestGravityResettingIgnoresPointer(t *testing.T) {
	p := DefaultParams()
	b := field.Body{
		Pos:       field.Vec{X: 200, Y: 200},
		Rest:      field.Vec{X: 100, Y: 300},
		Resetting: true,
	}

	g := Gravity(b, field.Pointer{X: 1, Y: 1, Pressed: true}, canvas, p)
	if g.X >= 0 || g.Y <= 0 {
		t.Errorf("expected pull toward rest, got %+v", g)
	}
}

func TestGravityDegenerateExtent(t *testing.T) {
	p := DefaultParams()
	for _, ext := range []field.Extent{{}, {Width: 100}, {Height: 100}} {
		g := Gravity(field.Body{}, field.Pointer{X: 1, Pressed: true}, ext, p)
		if g != (field.Vec{}) {
			t.Errorf("extent %+v: expected zero gravity, got %+v", ext, g)
		}
	}
}

func TestAspect(t *testing.T) {
	a := Aspect(field.Extent{Width: 1000, Height: 500})
	if a.X != 2 || a.Y != 1 {
		t.Errorf("expected (2, 1), got %+v", a)
	}
	a = Aspect(field.Extent{Width: 500, Height: 1000})
	if a.X != 1 || a.Y != 2 {
		t.Errorf("expected (1, 2), got %+v", a)
	}
}

func TestPositionBounce(t *testing.T) {
	bounds := canvas.Bounds(0.1)

	tests := []struct {
		name     string
		pos, vel field.Vec
		wantPos  field.Vec
		wantVel  field.Vec
	}{
		{
			name:    "free flight",
			pos:     field.Vec{X: 100, Y: 100},
			vel:     field.Vec{X: 5, Y: -5},
			wantPos: field.Vec{X: 105, Y: 95},
			wantVel: field.Vec{X: 5, Y: -5},
		},
		{
			name:    "upper x",
			pos:     field.Vec{X: 755, Y: 100},
			vel:     field.Vec{X: 10},
			wantPos: field.Vec{X: 760, Y: 100},
			wantVel: field.Vec{X: -5},
		},
		{
			name:    "both lower",
			pos:     field.Vec{X: 42, Y: 31},
			vel:     field.Vec{X: -4, Y: -4},
			wantPos: field.Vec{X: 40, Y: 30},
			wantVel: field.Vec{X: 2, Y: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, vel := Position(tt.pos, tt.vel, 0.5, bounds)
			if pos != tt.wantPos {
				t.Errorf("expected pos %+v, got %+v", tt.wantPos, pos)
			}
			if vel != tt.wantVel {
				t.Errorf("expected vel %+v, got %+v", tt.wantVel, vel)
			}
		})
	}
}

func TestBoundaryContainment(t *testing.T) {
	p := DefaultParams()
	bounds := canvas.Bounds(p.Padding)
	rng := rand.New(rand.NewSource(7))

	bodies := make([]field.Body, 200)
	for i := range bodies {
		pos := field.Vec{
			X: bounds.Min.X + rng.Float64()*(bounds.Max.X-bounds.Min.X),
			Y: bounds.Min.Y + rng.Float64()*(bounds.Max.Y-bounds.Min.Y),
		}
		bodies[i] = field.Body{
			Pos:         pos,
			Rest:        pos,
			Vel:         field.Vec{X: rng.Float64()*200 - 100, Y: rng.Float64()*200 - 100},
			Friction:    rng.Float64()/6 + 1.0/3,
			Restitution: rng.Float64()/6 + 1.0/3,
		}
	}

	for step := 0; step < 1000; step++ {
		ptr := field.Pointer{
			X:       math.Sin(float64(step) / 17),
			Y:       math.Cos(float64(step) / 23),
			Pressed: step%200 < 150,
		}
		for i := range bodies {
			bodies[i] = Advance(bodies[i], ptr, canvas, p)
			if !bounds.Contains(bodies[i].Pos) {
				t.Fatalf("step %d body %d left bounds: %+v", step, i, bodies[i].Pos)
			}
		}
	}
}

func TestResetConvergence(t *testing.T) {
	p := DefaultParams()
	p.Padding = 0

	b := field.Body{
		Pos:         field.Vec{X: 100, Y: 100},
		ResetFrom:   field.Vec{X: 100, Y: 100},
		Friction:    0.4,
		Restitution: 0.4,
		Resetting:   true,
	}

	steps := 0
	for b.Resetting {
		if steps >= 500 {
			t.Fatalf("reset did not converge in 500 steps, at %+v", b.Pos)
		}
		b = Advance(b, field.Pointer{X: 1, Y: 1, Pressed: true}, canvas, p)
		steps++
	}

	if b.Pos != b.Rest || b.Vel != (field.Vec{}) || b.Gravity != (field.Vec{}) {
		t.Errorf("completed reset should snap to rest: %+v", b)
	}
}

func TestResetDegenerateCompletes(t *testing.T) {
	b := field.Body{
		Pos:       field.Vec{X: 50, Y: 50},
		Rest:      field.Vec{X: 50, Y: 50},
		ResetFrom: field.Vec{X: 50, Y: 50},
		Resetting: true,
	}

	got := Advance(b, field.Pointer{}, canvas, DefaultParams())
	if got.Resetting {
		t.Error("reset from rest should complete immediately")
	}
}

func TestResetVelocityRatioBounded(t *testing.T) {
	b := field.Body{
		Pos:       field.Vec{X: 30, Y: 5},
		Rest:      field.Vec{},
		ResetFrom: field.Vec{X: 10, Y: 0},
		Resetting: true,
	}

	v := ResetVelocity(b)
	if v.X != -30 {
		t.Errorf("overshoot past the origin should move at most -d, got %f", v.X)
	}
	if v.Y != -5 {
		t.Errorf("axis with no reset distance should move by -d, got %f", v.Y)
	}
}

func TestCancelThenResume(t *testing.T) {
	p := DefaultParams()
	p.Padding = 0

	b := field.Body{
		Pos:         field.Vec{X: 300, Y: 200},
		Rest:        field.Vec{X: 100, Y: 100},
		Friction:    0.4,
		Restitution: 0.4,
	}
	b.Resetting = true
	b.ResetFrom = b.Pos

	for i := 0; i < 3; i++ {
		b = Advance(b, field.Pointer{}, canvas, p)
	}
	mid := b.Pos

	b.Resetting = false
	if b.Pos != mid {
		t.Fatalf("cancel must not move the body")
	}

	b = Advance(b, field.Pointer{}, canvas, p)
	if b.Resetting {
		t.Fatal("free body must stay free")
	}

	b.Resetting = true
	b.ResetFrom = b.Pos
	for steps := 0; b.Resetting; steps++ {
		if steps >= 500 {
			t.Fatalf("resumed reset did not converge, at %+v", b.Pos)
		}
		b = Advance(b, field.Pointer{}, canvas, p)
	}
	if b.Pos != b.Rest {
		t.Errorf("expected rest %+v, got %+v", b.Rest, b.Pos)
	}
}

func TestAdvanceInvalidExtent(t *testing.T) {
	b := field.Body{Pos: field.Vec{X: 5, Y: 5}, Vel: field.Vec{X: 1}}
	got := Advance(b, field.Pointer{Pressed: true}, field.Extent{}, DefaultParams())
	if got.Pos != b.Pos {
		t.Errorf("invalid extent must not move the body, got %+v", got.Pos)
	}
}

func TestParseForceMode(t *testing.T) {
	if m, err := ParseForceMode("pointer"); err != nil || m != Uniform {
		t.Errorf("expected uniform, got %q (%v)", m, err)
	}
	if m, err := ParseForceMode(""); err != nil || m != Displacement {
		t.Errorf("expected displacement default, got %q (%v)", m, err)
	}
	if _, err := ParseForceMode("magnet"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
