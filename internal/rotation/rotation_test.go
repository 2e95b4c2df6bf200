package rotation

import (
	"math"
	"testing"

	"github.com/san-kum/spinframe/internal/algebra"
)

const eps = 1e-12

func TestZeroAnglesIsIdentity(t *testing.T) {
	id, _ := algebra.Identity(3)
	tests := []struct {
		name string
		m    algebra.Matrix
	}{
		{"heading", Heading(0)},
		{"pitch", Pitch(0)},
		{"transform", Transform(0, 0)},
		{"full turn", Angles{Yaw: 360, Pitch: -360}.Transform()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.m.ApproxEqual(id, eps) {
				t.Errorf("expected identity, got\n%v", tt.m)
			}
		})
	}
}

func TestHeadingQuarterTurn(t *testing.T) {
	got, err := algebra.V3(1, 0, 0).Transform(Heading(math.Pi / 2))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.X) > eps || math.Abs(got.Y) > eps || math.Abs(got.Z-1) > eps {
		t.Errorf("expected (0,0,1), got %v", got)
	}
}

func TestPitchQuarterTurn(t *testing.T) {
	got, err := algebra.V3(0, 1, 0).Transform(Pitch(math.Pi / 2))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.X) > eps || math.Abs(got.Y) > eps || math.Abs(got.Z+1) > eps {
		t.Errorf("expected (0,0,-1), got %v", got)
	}
}

func TestTransformOrder(t *testing.T) {
	yaw, pitch := Radians(30), Radians(-45)
	want, _ := Heading(yaw).Multiply(Pitch(pitch))
	if !Transform(yaw, pitch).Equal(want) {
		t.Error("transform must be heading·pitch")
	}
	other, _ := Pitch(pitch).Multiply(Heading(yaw))
	if Transform(yaw, pitch).ApproxEqual(other, 1e-6) {
		t.Error("heading and pitch do not commute for these angles")
	}
}

func TestTransformIsOrthonormal(t *testing.T) {
	id, _ := algebra.Identity(3)
	for _, a := range []Angles{{Yaw: 17, Pitch: 5}, {Yaw: 200, Pitch: -80}, {Yaw: 366, Pitch: 93}} {
		m := a.Transform()
		mt, err := m.Multiply(m.Transpose())
		if err != nil {
			t.Fatal(err)
		}
		if !mt.ApproxEqual(id, 1e-12) {
			t.Errorf("%+v: M·Mᵗ != I:\n%v", a, mt)
		}
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); math.Abs(got-math.Pi) > eps {
		t.Errorf("Radians(180) = %v", got)
	}
}
