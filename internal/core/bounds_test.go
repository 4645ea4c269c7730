package core

import (
	"errors"
	"math"
	"testing"
)

func TestViewportCorners(t *testing.T) {
	vp := NewViewport(5, 1.6)

	if vp.Height() != 10 || vp.Width() != 16 {
		t.Fatalf("size = %fx%f, expected 16x10", vp.Width(), vp.Height())
	}
	if bl := vp.BottomLeft(); bl != V2(-8, -5) {
		t.Errorf("BottomLeft() = %v, expected (-8, -5)", bl)
	}
	if tr := vp.TopRight(); tr != V2(8, 5) {
		t.Errorf("TopRight() = %v, expected (8, 5)", tr)
	}
}

func TestHorizontalEnvelope(t *testing.T) {
	vp := NewViewport(5, 1.6) // x in [-8, 8]

	env, err := HorizontalEnvelope(vp, 2, 0.5)
	if err != nil {
		t.Fatalf("HorizontalEnvelope() failed: %v", err)
	}
	if env.MinX != -5.5 || env.MaxX != 5.5 {
		t.Errorf("envelope = [%f, %f], expected [-5.5, 5.5]", env.MinX, env.MaxX)
	}
	if env.Vertical {
		t.Error("horizontal envelope should not constrain Y")
	}

	// The object's full extent must stay inside the viewport minus padding.
	for _, x := range []float64{-100, -5.5, 0, 5.5, 100} {
		c := env.ClampX(x)
		if c-2 < -8+0.5-1e-9 || c+2 > 8-0.5+1e-9 {
			t.Errorf("ClampX(%f) = %f leaves the object outside the viewport", x, c)
		}
	}
}

func TestEnvelopeDegenerate(t *testing.T) {
	vp := NewViewport(5, 1.0) // x in [-5, 5], y in [-5, 5]

	tests := []struct {
		name    string
		half    Vec2
		padding Vec2
		axis    Axis
	}{
		{"too wide", V2(6, 1), V2(0, 0), AxisX},
		{"exactly half viewport wide", V2(4.5, 1), V2(0.5, 0), AxisX},
		{"too tall", V2(1, 4), V2(0, 1.5), AxisY},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AreaEnvelope(vp, tc.half, tc.padding)
			if err == nil {
				t.Fatal("expected a configuration error")
			}
			if !errors.Is(err, ErrDegenerateEnvelope) {
				t.Errorf("error %v should wrap ErrDegenerateEnvelope", err)
			}
			var envErr *EnvelopeError
			if !errors.As(err, &envErr) {
				t.Fatalf("error %v should be an *EnvelopeError", err)
			}
			if envErr.Axis != tc.axis {
				t.Errorf("axis = %s, expected %s", envErr.Axis, tc.axis)
			}
		})
	}
}

func TestEnvelopeInvalidViewport(t *testing.T) {
	_, err := HorizontalEnvelope(Viewport{}, 1, 0)
	if !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("expected ErrInvalidViewport, got %v", err)
	}
}

func TestEnvelopeClampIdempotent(t *testing.T) {
	env, err := AreaEnvelope(NewViewport(5, 1.5), V2(0.25, 0.25), V2(0.1, 0))
	if err != nil {
		t.Fatalf("AreaEnvelope() failed: %v", err)
	}

	points := []Vec2{
		V2(-100, 0), V2(100, 0), V2(0, -100), V2(0, 100),
		V2(-100, 100), V2(100, -100), V2(1, 1), V2(math.Inf(1), 0),
	}
	for _, p := range points {
		once, _, _ := env.Clamp(p)
		if !env.Contains(once) {
			t.Errorf("Clamp(%v) = %v is outside the envelope", p, once)
		}
		twice, cx, cy := env.Clamp(once)
		if twice != once {
			t.Errorf("Clamp is not idempotent: %v -> %v -> %v", p, once, twice)
		}
		if cx || cy {
			t.Errorf("clamping an inside point should report no clamping, got %v/%v", cx, cy)
		}
	}

	_, cx, cy := env.Clamp(V2(100, 0))
	if !cx || cy {
		t.Errorf("Clamp(100, 0) should clamp only X, got x=%v y=%v", cx, cy)
	}
}
