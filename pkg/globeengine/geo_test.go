package globeengine

import (
	"math"
	"testing"
)

func TestIsValidLatitude(t *testing.T) {
	tests := []struct {
		v    float64
		want bool
	}{
		{0, true},
		{90, true},
		{-90, true},
		{45.5, true},
		{90.0001, false},
		{-90.0001, false},
		{200, false},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, tt := range tests {
		if got := IsValidLatitude(tt.v); got != tt.want {
			t.Errorf("IsValidLatitude(%v) = %v; want %v", tt.v, got, tt.want)
		}
	}
}

func TestIsValidLongitude(t *testing.T) {
	tests := []struct {
		v    float64
		want bool
	}{
		{0, true},
		{180, true},
		{-180, true},
		{-122.4194, true},
		{180.0001, false},
		{-200, false},
		{math.NaN(), false},
		{math.Inf(1), false},
	}
	for _, tt := range tests {
		if got := IsValidLongitude(tt.v); got != tt.want {
			t.Errorf("IsValidLongitude(%v) = %v; want %v", tt.v, got, tt.want)
		}
	}
}

func TestLatLngToVec3(t *testing.T) {
	tests := []struct {
		lat, lng float64
		want     Vec3
	}{
		{0, 0, Vec3{0, 0, 1}},
		{90, 0, Vec3{0, 1, 0}},
		{-90, 0, Vec3{0, -1, 0}},
		{0, 90, Vec3{1, 0, 0}},
		{0, -90, Vec3{-1, 0, 0}},
	}
	for _, tt := range tests {
		got := LatLngToVec3(tt.lat, tt.lng)
		if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 || math.Abs(got.Z-tt.want.Z) > 1e-9 {
			t.Errorf("LatLngToVec3(%v, %v) = %+v; want %+v", tt.lat, tt.lng, got, tt.want)
		}
	}
}

func TestSlerpEndpoints(t *testing.T) {
	a := LatLngToVec3(40.7128, -74.006)
	b := LatLngToVec3(51.5072, -0.1276)

	if got := Slerp(a, b, 0); math.Abs(got.X-a.X) > 1e-9 || math.Abs(got.Y-a.Y) > 1e-9 {
		t.Errorf("Slerp(a, b, 0) = %+v; want %+v", got, a)
	}
	if got := Slerp(a, b, 1); math.Abs(got.X-b.X) > 1e-9 || math.Abs(got.Y-b.Y) > 1e-9 {
		t.Errorf("Slerp(a, b, 1) = %+v; want %+v", got, b)
	}

	// Midpoint stays on the unit sphere.
	mid := Slerp(a, b, 0.5)
	norm := math.Sqrt(mid.dot(mid))
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("Slerp midpoint norm = %v; want 1", norm)
	}
}

func TestSlerpCoincident(t *testing.T) {
	a := LatLngToVec3(10, 20)
	got := Slerp(a, a, 0.5)
	if math.Abs(got.X-a.X) > 1e-9 || math.Abs(got.Y-a.Y) > 1e-9 || math.Abs(got.Z-a.Z) > 1e-9 {
		t.Errorf("Slerp(a, a, 0.5) = %+v; want %+v", got, a)
	}
}

func TestArcPositionApex(t *testing.T) {
	// The bulge peaks at t=0.5 and vanishes at the endpoints.
	start := ArcPosition(0, -30, 0, 30, 0.4, 0)
	apex := ArcPosition(0, -30, 0, 30, 0.4, 0.5)
	end := ArcPosition(0, -30, 0, 30, 0.4, 1)

	for _, v := range []Vec3{start, end} {
		if n := math.Sqrt(v.dot(v)); math.Abs(n-1) > 1e-9 {
			t.Errorf("endpoint norm = %v; want 1", n)
		}
	}
	if n := math.Sqrt(apex.dot(apex)); math.Abs(n-1.4) > 1e-9 {
		t.Errorf("apex norm = %v; want 1.4", n)
	}
}

func TestProjector(t *testing.T) {
	p := NewProjector(1920, 1080, 400)

	// Longitude 0 faces the viewer at zero rotation and projects to the
	// horizontal center.
	x, _, visible := p.ProjectLatLng(0, 0)
	if !visible {
		t.Fatal("front equator point should be visible")
	}
	if math.Abs(x-960) > 1e-6 {
		t.Errorf("front point x = %v; want 960", x)
	}

	// The antipode is hidden.
	if _, _, visible := p.ProjectLatLng(0, 180); visible {
		t.Error("far-side point should not be visible")
	}

	// The north pole sits above center with the viewing tilt applied.
	_, y, visible := p.ProjectLatLng(90, 0)
	if !visible {
		t.Fatal("north pole should be visible with the viewing tilt")
	}
	if y >= 540 {
		t.Errorf("north pole y = %v; want above center", y)
	}

	// A half turn brings the hidden hemisphere around.
	p.SetRotation(math.Pi)
	if _, _, visible := p.ProjectLatLng(0, 180); !visible {
		t.Error("far-side point should be visible after a half turn")
	}
}
