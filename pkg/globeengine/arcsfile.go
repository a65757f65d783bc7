package globeengine

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// CityResolver turns a place name into coordinates. Implemented by
// catalog.Store.
type CityResolver interface {
	Resolve(name, cc string) (lat, lng float64, ok bool)
}

// CityRef names an arc endpoint by city instead of coordinates.
type CityRef struct {
	City string `json:"city"`
	CC   string `json:"cc"`
}

// ArcInput is one entry of an arcs JSON file. Endpoints are given either
// as coordinates (the embedded Arc fields) or as city references.
type ArcInput struct {
	Arc
	Start *CityRef `json:"start,omitempty"`
	End   *CityRef `json:"end,omitempty"`
}

// LoadArcsFile reads an arcs JSON file, resolving any city-referenced
// endpoints through resolver. Entries naming cities the resolver does not
// know are skipped with a log line; coordinate validation happens later in
// PointsFromArcs and at draw time.
func LoadArcsFile(path string, resolver CityResolver) ([]Arc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var inputs []ArcInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	arcs := make([]Arc, 0, len(inputs))
	for _, in := range inputs {
		a := in.Arc
		if in.Start != nil {
			if resolver == nil {
				log.Printf("Skipping arc %d: city endpoints need a catalog", in.Order)
				continue
			}
			lat, lng, ok := resolver.Resolve(in.Start.City, in.Start.CC)
			if !ok {
				log.Printf("Skipping arc %d: unknown city %q (%s)", in.Order, in.Start.City, in.Start.CC)
				continue
			}
			a.StartLat, a.StartLng = lat, lng
		}
		if in.End != nil {
			if resolver == nil {
				log.Printf("Skipping arc %d: city endpoints need a catalog", in.Order)
				continue
			}
			lat, lng, ok := resolver.Resolve(in.End.City, in.End.CC)
			if !ok {
				log.Printf("Skipping arc %d: unknown city %q (%s)", in.Order, in.End.City, in.End.CC)
				continue
			}
			a.EndLat, a.EndLng = lat, lng
		}
		arcs = append(arcs, a)
	}
	return arcs, nil
}

// SampleArcs is the built-in demo tour used when no arcs file is given.
func SampleArcs() []Arc {
	return []Arc{
		{Order: 1, StartLat: -19.885592, StartLng: -43.951191, EndLat: -22.9068, EndLng: -43.1729, ArcAlt: 0.1, Color: "#06b6d4"},
		{Order: 1, StartLat: 28.6139, StartLng: 77.209, EndLat: 3.139, EndLng: 101.6869, ArcAlt: 0.2, Color: "#3b82f6"},
		{Order: 1, StartLat: -19.885592, StartLng: -43.951191, EndLat: -1.303396, EndLng: 36.852443, ArcAlt: 0.5, Color: "#6366f1"},
		{Order: 2, StartLat: 1.3521, StartLng: 103.8198, EndLat: 35.6762, EndLng: 139.6503, ArcAlt: 0.2, Color: "#06b6d4"},
		{Order: 2, StartLat: 51.5072, StartLng: -0.1276, EndLat: 3.139, EndLng: 101.6869, ArcAlt: 0.3, Color: "#3b82f6"},
		{Order: 2, StartLat: -15.785493, StartLng: -47.909029, EndLat: 36.162809, EndLng: -115.119411, ArcAlt: 0.3, Color: "#6366f1"},
		{Order: 3, StartLat: -33.8688, StartLng: 151.2093, EndLat: 22.3193, EndLng: 114.1694, ArcAlt: 0.3, Color: "#06b6d4"},
		{Order: 3, StartLat: 21.3099, StartLng: -157.8581, EndLat: 40.7128, EndLng: -74.006, ArcAlt: 0.3, Color: "#3b82f6"},
		{Order: 3, StartLat: -6.2088, StartLng: 106.8456, EndLat: 51.5072, EndLng: -0.1276, ArcAlt: 0.3, Color: "#6366f1"},
		{Order: 4, StartLat: 11.986597, StartLng: 8.571831, EndLat: -15.595412, EndLng: -56.05918, ArcAlt: 0.5, Color: "#06b6d4"},
		{Order: 4, StartLat: -34.6037, StartLng: -58.3816, EndLat: 22.3193, EndLng: 114.1694, ArcAlt: 0.7, Color: "#3b82f6"},
		{Order: 4, StartLat: 51.5072, StartLng: -0.1276, EndLat: 48.8566, EndLng: -2.3522, ArcAlt: 0.1, Color: "#6366f1"},
		{Order: 5, StartLat: 14.5995, StartLng: 120.9842, EndLat: 51.5072, EndLng: -0.1276, ArcAlt: 0.3, Color: "#06b6d4"},
		{Order: 5, StartLat: 1.3521, StartLng: 103.8198, EndLat: -33.8688, EndLng: 151.2093, ArcAlt: 0.2, Color: "#3b82f6"},
		{Order: 5, StartLat: 34.0522, StartLng: -118.2437, EndLat: 48.8566, EndLng: -2.3522, ArcAlt: 0.2, Color: "#6366f1"},
		{Order: 6, StartLat: -15.432563, StartLng: 28.315853, EndLat: 1.094136, EndLng: -63.34546, ArcAlt: 0.7, Color: "#06b6d4"},
		{Order: 6, StartLat: 37.5665, StartLng: 126.978, EndLat: 35.6762, EndLng: 139.6503, ArcAlt: 0.1, Color: "#3b82f6"},
		{Order: 6, StartLat: 22.3193, StartLng: 114.1694, EndLat: 51.5072, EndLng: -0.1276, ArcAlt: 0.3, Color: "#6366f1"},
		{Order: 7, StartLat: -19.885592, StartLng: -43.951191, EndLat: -15.595412, EndLng: -56.05918, ArcAlt: 0.1, Color: "#06b6d4"},
		{Order: 7, StartLat: 48.8566, StartLng: -2.3522, EndLat: 52.52, EndLng: 13.405, ArcAlt: 0.1, Color: "#3b82f6"},
		{Order: 7, StartLat: 52.52, StartLng: 13.405, EndLat: 34.0522, EndLng: -118.2437, ArcAlt: 0.2, Color: "#6366f1"},
		{Order: 8, StartLat: -8.833221, StartLng: 13.264837, EndLat: -33.936138, EndLng: 18.436529, ArcAlt: 0.2, Color: "#06b6d4"},
		{Order: 8, StartLat: 49.2827, StartLng: -123.1207, EndLat: 52.3676, EndLng: 4.9041, ArcAlt: 0.2, Color: "#3b82f6"},
		{Order: 8, StartLat: 1.3521, StartLng: 103.8198, EndLat: 40.7128, EndLng: -74.006, ArcAlt: 0.5, Color: "#6366f1"},
		{Order: 9, StartLat: 51.5072, StartLng: -0.1276, EndLat: 34.0522, EndLng: -118.2437, ArcAlt: 0.2, Color: "#06b6d4"},
		{Order: 9, StartLat: 22.3193, StartLng: 114.1694, EndLat: -22.9068, EndLng: -43.1729, ArcAlt: 0.7, Color: "#3b82f6"},
		{Order: 9, StartLat: 1.3521, StartLng: 103.8198, EndLat: -34.6037, EndLng: -58.3816, ArcAlt: 0.5, Color: "#6366f1"},
		{Order: 10, StartLat: -22.9068, StartLng: -43.1729, EndLat: 28.6139, EndLng: 77.209, ArcAlt: 0.7, Color: "#06b6d4"},
		{Order: 10, StartLat: 34.0522, StartLng: -118.2437, EndLat: 31.2304, EndLng: 121.4737, ArcAlt: 0.3, Color: "#3b82f6"},
		{Order: 10, StartLat: -6.2088, StartLng: 106.8456, EndLat: 52.3676, EndLng: 4.9041, ArcAlt: 0.3, Color: "#6366f1"},
		{Order: 11, StartLat: 41.9028, StartLng: 12.4964, EndLat: 34.0522, EndLng: -118.2437, ArcAlt: 0.2, Color: "#06b6d4"},
		{Order: 11, StartLat: -6.2088, StartLng: 106.8456, EndLat: 31.2304, EndLng: 121.4737, ArcAlt: 0.2, Color: "#3b82f6"},
		{Order: 11, StartLat: 22.3193, StartLng: 114.1694, EndLat: 1.3521, EndLng: 103.8198, ArcAlt: 0.2, Color: "#6366f1"},
		{Order: 12, StartLat: 34.0522, StartLng: -118.2437, EndLat: 37.7749, EndLng: -122.4194, ArcAlt: 0.1, Color: "#06b6d4"},
		{Order: 12, StartLat: 35.6762, StartLng: 139.6503, EndLat: 22.3193, EndLng: 114.1694, ArcAlt: 0.2, Color: "#3b82f6"},
		{Order: 12, StartLat: 22.3193, StartLng: 114.1694, EndLat: 34.0522, EndLng: -118.2437, ArcAlt: 0.3, Color: "#6366f1"},
		{Order: 13, StartLat: 52.52, StartLng: 13.405, EndLat: 22.3193, EndLng: 114.1694, ArcAlt: 0.3, Color: "#06b6d4"},
		{Order: 13, StartLat: 11.986597, StartLng: 8.571831, EndLat: 35.6762, EndLng: 139.6503, ArcAlt: 0.3, Color: "#3b82f6"},
		{Order: 13, StartLat: -22.9068, StartLng: -43.1729, EndLat: -34.6037, EndLng: -58.3816, ArcAlt: 0.1, Color: "#6366f1"},
		{Order: 14, StartLat: -33.936138, StartLng: 18.436529, EndLat: 21.395643, EndLng: 39.883798, ArcAlt: 0.3, Color: "#06b6d4"},
	}
}
