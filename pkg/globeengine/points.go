package globeengine

// Arc is one animated travel path between two coordinates. ArcAlt is the
// apex height relative to the globe radius; Order groups arcs into the
// animation sequence.
type Arc struct {
	Order    int     `json:"order"`
	StartLat float64 `json:"startLat"`
	StartLng float64 `json:"startLng"`
	EndLat   float64 `json:"endLat"`
	EndLng   float64 `json:"endLng"`
	ArcAlt   float64 `json:"arcAlt"`
	Color    string  `json:"color"`
}

// Valid reports whether all four endpoint coordinates are in range.
func (a Arc) Valid() bool {
	return IsValidLatitude(a.StartLat) && IsValidLongitude(a.StartLng) &&
		IsValidLatitude(a.EndLat) && IsValidLongitude(a.EndLng)
}

// Point is a marker derived from an arc endpoint.
type Point struct {
	Size  float64
	Order int
	Color RGB
	Lat   float64
	Lng   float64
}

// PointsFromArcs expands arcs into endpoint markers. Arcs with an
// out-of-range coordinate are dropped entirely. Each surviving arc emits
// its start and end point with the arc's parsed color. The result is
// deduplicated by exact (lat, lng) and the first occurrence wins.
func PointsFromArcs(arcs []Arc, size float64) []Point {
	pts := make([]Point, 0, len(arcs)*2)
	for _, a := range arcs {
		if !a.Valid() {
			continue
		}
		c := HexToRGB(a.Color)
		pts = append(pts,
			Point{Size: size, Order: a.Order, Color: c, Lat: a.StartLat, Lng: a.StartLng},
			Point{Size: size, Order: a.Order, Color: c, Lat: a.EndLat, Lng: a.EndLng},
		)
	}

	seen := make(map[[2]float64]struct{}, len(pts))
	out := pts[:0]
	for _, p := range pts {
		if !IsValidLatitude(p.Lat) || !IsValidLongitude(p.Lng) {
			continue
		}
		key := [2]float64{p.Lat, p.Lng}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
