package globeengine

import (
	"reflect"
	"testing"
)

func TestPointsFromArcsDeduplicates(t *testing.T) {
	// Two arcs share a start coordinate; it must appear exactly once and
	// keep its first-seen color.
	arcs := []Arc{
		{Order: 1, StartLat: 51.5072, StartLng: -0.1276, EndLat: 35.6762, EndLng: 139.6503, Color: "#06b6d4"},
		{Order: 2, StartLat: 51.5072, StartLng: -0.1276, EndLat: 40.7128, EndLng: -74.006, Color: "#ff0000"},
	}
	pts := PointsFromArcs(arcs, 1)

	if len(pts) != 3 {
		t.Fatalf("got %d points; want 3", len(pts))
	}
	seen := 0
	for _, p := range pts {
		if p.Lat == 51.5072 && p.Lng == -0.1276 {
			seen++
			if p.Color != (RGB{6, 182, 212}) {
				t.Errorf("shared point color = %+v; want first arc's color", p.Color)
			}
		}
	}
	if seen != 1 {
		t.Errorf("shared coordinate appears %d times; want 1", seen)
	}
}

func TestPointsFromArcsDropsInvalid(t *testing.T) {
	arcs := []Arc{
		{Order: 1, StartLat: 200, StartLng: 0, EndLat: 35.6762, EndLng: 139.6503, Color: "#06b6d4"},
		{Order: 2, StartLat: 0, StartLng: 0, EndLat: 0, EndLng: -181, Color: "#06b6d4"},
	}
	// Both arcs have an out-of-range coordinate, so neither endpoint
	// survives, including the in-range ones.
	if pts := PointsFromArcs(arcs, 1); len(pts) != 0 {
		t.Errorf("got %d points from invalid arcs; want 0", len(pts))
	}
}

func TestPointsFromArcsOrderAndColor(t *testing.T) {
	arcs := []Arc{
		{Order: 3, StartLat: 1, StartLng: 2, EndLat: 3, EndLng: 4, Color: "#9370DB"},
		{Order: 7, StartLat: 5, StartLng: 6, EndLat: 7, EndLng: 8, Color: "bogus"},
	}
	pts := PointsFromArcs(arcs, 2.5)
	if len(pts) != 4 {
		t.Fatalf("got %d points; want 4", len(pts))
	}

	wantCoords := [][2]float64{{1, 2}, {3, 4}, {5, 6}, {7, 8}}
	for i, p := range pts {
		if p.Lat != wantCoords[i][0] || p.Lng != wantCoords[i][1] {
			t.Errorf("point %d at (%v, %v); want (%v, %v)", i, p.Lat, p.Lng, wantCoords[i][0], wantCoords[i][1])
		}
		if p.Size != 2.5 {
			t.Errorf("point %d size = %v; want 2.5", i, p.Size)
		}
	}
	if pts[0].Order != 3 || pts[2].Order != 7 {
		t.Errorf("point orders = %d, %d; want 3, 7", pts[0].Order, pts[2].Order)
	}
	if pts[0].Color != (RGB{147, 112, 219}) {
		t.Errorf("point 0 color = %+v; want parsed hex", pts[0].Color)
	}
	// Unparseable color falls back to white rather than dropping the arc.
	if pts[2].Color != RGBWhite {
		t.Errorf("point 2 color = %+v; want white fallback", pts[2].Color)
	}
}

func TestPointsFromArcsIdempotent(t *testing.T) {
	arcs := SampleArcs()
	first := PointsFromArcs(arcs, 1)
	second := PointsFromArcs(arcs, 1)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated builds of the same arc list differ")
	}
}
