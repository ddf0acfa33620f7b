package core

import (
	"math"
	"testing"
	"time"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(3, 4, 20, 6)
	if r.Right() != 23 {
		t.Errorf("Right() = %d, expected 23", r.Right())
	}
	if r.Bottom() != 10 {
		t.Errorf("Bottom() = %d, expected 10", r.Bottom())
	}
}

func TestVecOps(t *testing.T) {
	a := Vec{X: 48, Y: 16}
	b := Vec{X: 16, Y: 40}

	if got := a.Add(b); got != (Vec{X: 64, Y: 56}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Vec{X: 32, Y: -24}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := b.Scale(0.5); got != (Vec{X: 8, Y: 20}) {
		t.Errorf("Scale = %+v", got)
	}
	if got := a.Sub(b).Len(); got != 40 {
		t.Errorf("Len = %v, expected 40", got)
	}
	if got := Dist(a, b); got != 40 {
		t.Errorf("Dist = %v, expected 40", got)
	}
	if Dist(a, a) != 0 {
		t.Error("distance to self should be zero")
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		name        string
		val, lo, hi float64
		expected    float64
	}{
		{"hunger below zero", -3.5, 0, 100, 0},
		{"thirst in range", 42.25, 0, 100, 42.25},
		{"hp above max", 130, 0, 100, 100},
		{"at lower bound", 0, 0, 100, 0},
		{"at upper bound", 100, 0, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampF(tt.val, tt.lo, tt.hi); got != tt.expected {
				t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tt.val, tt.lo, tt.hi, got, tt.expected)
			}
		})
	}
}

func TestAbs(t *testing.T) {
	for _, tt := range []struct{ in, out int }{{-7, 7}, {0, 0}, {12, 12}} {
		if got := Abs(tt.in); got != tt.out {
			t.Errorf("Abs(%d) = %d, expected %d", tt.in, got, tt.out)
		}
	}
}

func TestClampDelta(t *testing.T) {
	limit := 50 * time.Millisecond
	tests := []struct {
		name     string
		dt, max  time.Duration
		expected time.Duration
	}{
		{"negative after clock skew", -time.Second, limit, 0},
		{"normal frame", 16 * time.Millisecond, limit, 16 * time.Millisecond},
		{"long stall", 2 * time.Second, limit, limit},
		{"unbounded", 2 * time.Second, 0, 2 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDelta(tt.dt, tt.max); got != tt.expected {
				t.Errorf("ClampDelta(%v, %v) = %v, expected %v", tt.dt, tt.max, got, tt.expected)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60", cfg.TickRate)
	}
	if cfg.MaxDelta <= 0 {
		t.Error("MaxDelta should bound frame deltas by default")
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		t.Errorf("screen %dx%d should be positive", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionAttack) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionAttack)
	f.MoveX, f.Sprint = 1, true

	clone := f.Clone()
	f.Clear()

	if f.Moving() || f.Sprint || f.Has(ActionAttack) {
		t.Error("Clear should reset axes, sprint and actions")
	}
	if !clone.Moving() || !clone.Sprint || !clone.Has(ActionAttack) {
		t.Error("clone should keep its own copy of the frame")
	}
}

func TestActionString(t *testing.T) {
	if ActionFarm.String() != "Farm" {
		t.Errorf("ActionFarm.String() = %q", ActionFarm.String())
	}
	if Action(math.MaxInt8).String() != "Unknown" {
		t.Error("out of range action should be Unknown")
	}
}

func TestColorDim(t *testing.T) {
	if ColorBrightGreen.Dim() != ColorDarkGreen {
		t.Error("grass should dim to dark green")
	}
	if ColorOrange.Dim() != ColorOrange {
		t.Error("fire light should not dim")
	}
}
