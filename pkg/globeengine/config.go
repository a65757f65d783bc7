package globeengine

import "time"

// Config holds the cosmetic display options. All fields are optional; zero
// values fall back to the defaults when merged. The two Disable* switches
// are inverted so that the zero value keeps the default-on behavior.
type Config struct {
	PointSize          float64       `json:"pointSize"`
	GlobeColor         string        `json:"globeColor"`
	DisableAtmosphere  bool          `json:"disableAtmosphere"`
	AtmosphereColor    string        `json:"atmosphereColor"`
	AtmosphereAltitude float64       `json:"atmosphereAltitude"`
	PolygonColor       string        `json:"polygonColor"`
	ArcTime            time.Duration `json:"arcTime"`
	ArcLength          float64       `json:"arcLength"`
	RingRadius         float64       `json:"ringRadius"`
	MaxRings           int           `json:"maxRings"`
	DisableRotation    bool          `json:"disableRotation"`
	AutoRotateSpeed    float64       `json:"autoRotateSpeed"`
	InitialLat         float64       `json:"initialLat"`
	InitialLng         float64       `json:"initialLng"`
}

// RingRefreshInterval is how often the pulsing-ring subset is resampled.
const RingRefreshInterval = 2000 * time.Millisecond

func DefaultConfig() Config {
	return Config{
		PointSize:          1,
		GlobeColor:         "#1d072e",
		AtmosphereColor:    "#ffffff",
		AtmosphereAltitude: 0.1,
		PolygonColor:       "#5b6478",
		ArcTime:            2000 * time.Millisecond,
		ArcLength:          0.9,
		RingRadius:         10,
		MaxRings:           3,
		AutoRotateSpeed:    0.5,
	}
}

// Merge lays override on top of base: any non-zero override field replaces
// the base value. No validation happens here; the options are cosmetic.
func Merge(base, override Config) Config {
	out := base
	if override.PointSize != 0 {
		out.PointSize = override.PointSize
	}
	if override.GlobeColor != "" {
		out.GlobeColor = override.GlobeColor
	}
	if override.DisableAtmosphere {
		out.DisableAtmosphere = true
	}
	if override.AtmosphereColor != "" {
		out.AtmosphereColor = override.AtmosphereColor
	}
	if override.AtmosphereAltitude != 0 {
		out.AtmosphereAltitude = override.AtmosphereAltitude
	}
	if override.PolygonColor != "" {
		out.PolygonColor = override.PolygonColor
	}
	if override.ArcTime != 0 {
		out.ArcTime = override.ArcTime
	}
	if override.ArcLength != 0 {
		out.ArcLength = override.ArcLength
	}
	if override.RingRadius != 0 {
		out.RingRadius = override.RingRadius
	}
	if override.MaxRings != 0 {
		out.MaxRings = override.MaxRings
	}
	if override.DisableRotation {
		out.DisableRotation = true
	}
	if override.AutoRotateSpeed != 0 {
		out.AutoRotateSpeed = override.AutoRotateSpeed
	}
	if override.InitialLat != 0 {
		out.InitialLat = override.InitialLat
	}
	if override.InitialLng != 0 {
		out.InitialLng = override.InitialLng
	}
	return out
}
