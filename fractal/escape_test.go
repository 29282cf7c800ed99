package fractal

import (
	"math/cmplx"
	"testing"
)

func TestEvaluateEscapesImmediately(t *testing.T) {
	points := []complex128{3, -3, complex(0, 2.5), complex(2, 2), complex(-1.9, 1.9)}
	for _, c := range points {
		if cmplx.Abs(c) <= 2 {
			t.Fatalf("test point %v is not outside radius 2", c)
		}
		for _, max := range []uint32{1, 2, 50, 1000, DefaultIterationCeiling} {
			got := Evaluate(c, max)
			want := Result{Iterations: 1, Escaped: true}
			if got != want {
				t.Errorf("Evaluate(%v, %d) = %+v, want %+v", c, max, got, want)
			}
		}
	}
}

func TestEvaluateOriginNeverEscapes(t *testing.T) {
	for _, max := range []uint32{1, 2, 7, 50, 999, DefaultIterationCeiling} {
		got := Evaluate(0, max)
		want := Result{Iterations: max, Escaped: false}
		if got != want {
			t.Errorf("Evaluate(0, %d) = %+v, want %+v", max, got, want)
		}
	}
}

func TestEvaluateKnownPoints(t *testing.T) {
	tests := []struct {
		c    complex128
		max  uint32
		want Result
	}{
		// z1 = 2, z2 = 6.
		{2, 100, Result{Iterations: 2, Escaped: true}},
		// z1 = 1, z2 = 2, z3 = 5.
		{1, 100, Result{Iterations: 3, Escaped: true}},
		// Period two cycle 0, -1, 0, -1, ...
		{-1, 100, Result{Iterations: 100, Escaped: false}},
		// Tip of the main needle stays at |z| = 2.
		{-2, 100, Result{Iterations: 100, Escaped: false}},
		{complex(0, 1), 100, Result{Iterations: 100, Escaped: false}},
		// Escaping only after the cap still counts as escaped at the cap.
		{1, 3, Result{Iterations: 3, Escaped: true}},
		{1, 2, Result{Iterations: 2, Escaped: false}},
	}
	for _, tt := range tests {
		if got := Evaluate(tt.c, tt.max); got != tt.want {
			t.Errorf("Evaluate(%v, %d) = %+v, want %+v", tt.c, tt.max, got, tt.want)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	c := complex(-0.743643887037151, 0.13182590420533)
	first := Evaluate(c, 2500)
	for i := 0; i < 50; i++ {
		if got := Evaluate(c, 2500); got != first {
			t.Fatalf("Evaluate(%v) changed between calls: %+v then %+v", c, first, got)
		}
	}
}

func TestEvaluateClampsToCeiling(t *testing.T) {
	points := []complex128{0, -1, complex(-0.743643887037151, 0.13182590420533), complex(0.25, 0.0001)}
	for _, c := range points {
		if a, b := Evaluate(c, 5000), Evaluate(c, DefaultIterationCeiling); a != b {
			t.Errorf("Evaluate(%v, 5000) = %+v, Evaluate(%v, 3000) = %+v", c, a, c, b)
		}
	}
	if got := Evaluate(0, 5000).Iterations; got != DefaultIterationCeiling {
		t.Errorf("Evaluate(0, 5000).Iterations = %d, want %d", got, DefaultIterationCeiling)
	}
}

func TestEvaluatorCustomCeiling(t *testing.T) {
	e := NewEvaluator(64)
	if got := e.Clamp(1000); got != 64 {
		t.Errorf("Clamp(1000) = %d, want 64", got)
	}
	if got := e.Clamp(0); got != 1 {
		t.Errorf("Clamp(0) = %d, want 1", got)
	}
	if got := e.Evaluate(0, 1000); got != (Result{Iterations: 64}) {
		t.Errorf("Evaluate(0, 1000) = %+v, want 64 iterations", got)
	}
}
