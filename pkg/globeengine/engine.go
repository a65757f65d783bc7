// Package globeengine renders an animated rotating globe with great-circle
// arcs, location markers and pulsing activity rings.
package globeengine

import (
	"bytes"
	"image/color"
	"log"
	"math"
	"net"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	geojson "github.com/paulmach/go.geojson"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// GeoResolver locates an IP address. Implemented by catalog.GeoIP.
type GeoResolver interface {
	Resolve(ip net.IP) (lat, lng float64, cc string, ok bool)
}

// Pulse is a transient feed-driven ring anchored to a coordinate so it
// tracks the globe as it rotates.
type Pulse struct {
	Lat, Lng  float64
	StartTime time.Time
	Color     RGB
	MaxRadius float64
}

const (
	pulseLifetime = 1500 * time.Millisecond
	maxPulses     = 1500
	arcSegments   = 48
)

type Engine struct {
	Width, Height int

	// OnFrame, when set, receives every rendered frame (streaming mode).
	OnFrame func(screen *ebiten.Image)
	// FrameCaptureDir enables periodic PNG captures when non-empty.
	FrameCaptureDir string
	// GeoIP geolocates IP-bearing feed events; nil drops them.
	GeoIP GeoResolver

	cfg Config

	dataMu sync.Mutex
	arcs   []Arc
	points []Point

	ringMu    sync.Mutex
	ringSites []int
	ringStart time.Time

	pulsesMu sync.Mutex
	pulses   []*Pulse

	activityMu      sync.Mutex
	countryActivity map[string]int
	feedConnected   bool

	songMu                     sync.Mutex
	CurrentSong, CurrentArtist string

	proj     *Projector
	rotation float64
	start    time.Time

	landDots   []Vec3
	pulseImage *ebiten.Image
	dotImage   *ebiten.Image

	fontSource *text.GoTextFaceSource
	monoSource *text.GoTextFaceSource

	lastCapture time.Time
}

func NewEngine(width, height int, cfg Config) *Engine {
	s, _ := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	m, _ := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))

	merged := Merge(DefaultConfig(), cfg)
	e := &Engine{
		Width:           width,
		Height:          height,
		cfg:             merged,
		countryActivity: make(map[string]int),
		proj:            NewProjector(width, height, float64(min(width, height))*0.38),
		rotation:        -merged.InitialLng * math.Pi / 180,
		start:           time.Now(),
		fontSource:      s,
		monoSource:      m,
	}
	return e
}

func (e *Engine) Config() Config { return e.cfg }

// SetArcs replaces the arc list and recomputes the derived marker points.
func (e *Engine) SetArcs(arcs []Arc) {
	pts := PointsFromArcs(arcs, e.cfg.PointSize)

	e.dataMu.Lock()
	e.arcs = append([]Arc(nil), arcs...)
	e.points = pts
	e.dataMu.Unlock()

	// Ring indices may now be stale; resample immediately rather than
	// waiting for the next tick.
	e.RefreshRings()
	log.Printf("Loaded %d arcs (%d unique markers)", len(arcs), len(pts))
}

// Arcs returns a snapshot of the current arc list.
func (e *Engine) Arcs() []Arc {
	e.dataMu.Lock()
	defer e.dataMu.Unlock()
	return append([]Arc(nil), e.arcs...)
}

// Points returns a snapshot of the derived marker points.
func (e *Engine) Points() []Point {
	e.dataMu.Lock()
	defer e.dataMu.Unlock()
	return append([]Point(nil), e.points...)
}

// AddPulse queues a transient activity ring at a coordinate. Out-of-range
// coordinates are silently dropped.
func (e *Engine) AddPulse(lat, lng float64, c RGB) {
	if !IsValidLatitude(lat) || !IsValidLongitude(lng) {
		return
	}
	e.pulsesMu.Lock()
	defer e.pulsesMu.Unlock()
	if len(e.pulses) < maxPulses {
		e.pulses = append(e.pulses, &Pulse{
			Lat:       lat,
			Lng:       lng,
			StartTime: time.Now(),
			Color:     c,
			MaxRadius: e.cfg.RingRadius * 2.4,
		})
	}
}

// RecordVisit counts feed activity against a country and pulses the site.
func (e *Engine) RecordVisit(lat, lng float64, cc string, c RGB) {
	if cc != "" {
		e.activityMu.Lock()
		e.countryActivity[cc]++
		e.activityMu.Unlock()
	}
	e.AddPulse(lat, lng, c)
}

func (e *Engine) setFeedConnected(up bool) {
	e.activityMu.Lock()
	e.feedConnected = up
	e.activityMu.Unlock()
}

// SetNowPlaying is the audio player's metadata callback.
func (e *Engine) SetNowPlaying(song, artist string) {
	e.songMu.Lock()
	e.CurrentSong, e.CurrentArtist = song, artist
	e.songMu.Unlock()
}

func (e *Engine) Update() error {
	if !e.cfg.DisableRotation {
		// AutoRotateSpeed is expressed in the conventional orbit-control
		// unit of 6 degrees per second per unit speed.
		step := e.cfg.AutoRotateSpeed * 6 * math.Pi / 180
		tps := ebiten.TPS()
		if tps <= 0 {
			tps = ebiten.DefaultTPS
		}
		e.rotation += step / float64(tps)
	}

	now := time.Now()
	e.pulsesMu.Lock()
	active := e.pulses[:0]
	for _, p := range e.pulses {
		if now.Sub(p.StartTime) < pulseLifetime {
			active = append(active, p)
		}
	}
	e.pulses = active
	e.pulsesMu.Unlock()
	return nil
}

func (e *Engine) Layout(w, h int) (int, int) { return e.Width, e.Height }

func (e *Engine) Draw(screen *ebiten.Image) {
	e.proj.SetRotation(e.rotation)
	screen.Fill(color.RGBA{8, 10, 15, 255})

	e.drawGlobe(screen)
	e.drawArcs(screen)
	e.drawPoints(screen)
	e.drawRings(screen)
	e.drawPulses(screen)
	e.drawLegend(screen)
	e.drawStatus(screen)

	if e.OnFrame != nil {
		e.OnFrame(screen)
	}
	if e.FrameCaptureDir != "" && time.Since(e.lastCapture) > 10*time.Second {
		e.lastCapture = time.Now()
		e.captureFrame(screen, "globe", e.lastCapture)
	}
}

func (e *Engine) drawGlobe(screen *ebiten.Image) {
	cx, cy := float32(e.Width)/2, float32(e.Height)/2
	r := float32(e.proj.Radius())

	if !e.cfg.DisableAtmosphere {
		atmo := HexToRGB(e.cfg.AtmosphereColor)
		glow := float32(1 + e.cfg.AtmosphereAltitude)
		vector.DrawFilledCircle(screen, cx, cy, r*glow, color.NRGBA{atmo.R, atmo.G, atmo.B, 28}, true)
	}

	globe := HexToRGB(e.cfg.GlobeColor)
	vector.DrawFilledCircle(screen, cx, cy, r, color.NRGBA{globe.R, globe.G, globe.B, 255}, true)

	land := HexToRGB(e.cfg.PolygonColor)
	op := &ebiten.DrawImageOptions{}
	for _, dot := range e.landDots {
		x, y, depth := e.proj.Project(dot)
		if depth <= 0 {
			continue
		}
		// Fade dots toward the limb for a rounded look.
		alpha := 0.35 + 0.65*depth
		op.GeoM.Reset()
		op.GeoM.Translate(x-1, y-1)
		op.ColorScale.Reset()
		op.ColorScale.Scale(
			float32(float64(land.R)/255*alpha),
			float32(float64(land.G)/255*alpha),
			float32(float64(land.B)/255*alpha),
			float32(alpha))
		screen.DrawImage(e.dotImage, op)
	}
}

func (e *Engine) drawArcs(screen *ebiten.Image) {
	e.dataMu.Lock()
	arcs := e.arcs
	e.dataMu.Unlock()

	elapsed := time.Since(e.start).Seconds()
	period := e.cfg.ArcTime.Seconds()
	if period <= 0 {
		period = 2
	}

	for _, a := range arcs {
		if !a.Valid() {
			continue
		}
		c := HexToRGB(a.Color)
		// Stagger the dash cycle by sequence order.
		head := math.Mod(elapsed/period+float64(a.Order)*0.15, 1+e.cfg.ArcLength)
		tail := head - e.cfg.ArcLength

		var px, py float64
		havePrev := false
		for i := 0; i <= arcSegments; i++ {
			t := float64(i) / arcSegments
			if t < tail || t > head {
				havePrev = false
				continue
			}
			x, y, depth := e.proj.Project(ArcPosition(a.StartLat, a.StartLng, a.EndLat, a.EndLng, a.ArcAlt, t))
			if depth <= -0.1 {
				havePrev = false
				continue
			}
			if havePrev {
				// Fade the trailing end of the dash.
				fade := 0.0
				if e.cfg.ArcLength > 0 {
					fade = (head - t) / e.cfg.ArcLength
				}
				vector.StrokeLine(screen, float32(px), float32(py), float32(x), float32(y), 1.5, ColorAt(c, fade), true)
			}
			px, py = x, y
			havePrev = true
		}
	}
}

func (e *Engine) drawPoints(screen *ebiten.Image) {
	e.dataMu.Lock()
	pts := e.points
	e.dataMu.Unlock()

	for _, p := range pts {
		x, y, visible := e.proj.ProjectLatLng(p.Lat, p.Lng)
		if !visible {
			continue
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(p.Size*2), ColorAt(p.Color, 0), true)
	}
}

func (e *Engine) drawRings(screen *ebiten.Image) {
	if e.pulseImage == nil {
		return
	}
	e.dataMu.Lock()
	pts := e.points
	e.dataMu.Unlock()
	e.ringMu.Lock()
	sites := e.ringSites
	started := e.ringStart
	e.ringMu.Unlock()
	if len(sites) == 0 {
		return
	}

	progress := time.Since(started).Seconds() / RingRefreshInterval.Seconds()
	waves := e.cfg.MaxRings
	if waves < 1 {
		waves = 1
	}

	imgW := e.pulseImage.Bounds().Dx()
	halfW := float64(imgW) / 2
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendLighter

	for _, idx := range sites {
		if idx < 0 || idx >= len(pts) {
			continue
		}
		p := pts[idx]
		x, y, visible := e.proj.ProjectLatLng(p.Lat, p.Lng)
		if !visible {
			continue
		}
		for w := 0; w < waves; w++ {
			wt := math.Mod(progress+float64(w)/float64(waves), 1)
			radius := e.cfg.RingRadius * (0.4 + wt*2)
			alpha := (1 - wt) * 0.6
			e.stampPulse(screen, op, x, y, radius, halfW, p.Color, alpha)
		}
	}
}

func (e *Engine) drawPulses(screen *ebiten.Image) {
	if e.pulseImage == nil {
		return
	}
	e.pulsesMu.Lock()
	pulses := append([]*Pulse(nil), e.pulses...)
	e.pulsesMu.Unlock()

	now := time.Now()
	halfW := float64(e.pulseImage.Bounds().Dx()) / 2
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendLighter

	for _, p := range pulses {
		x, y, visible := e.proj.ProjectLatLng(p.Lat, p.Lng)
		if !visible {
			continue
		}
		progress := now.Sub(p.StartTime).Seconds() / pulseLifetime.Seconds()
		if progress > 1 {
			continue
		}
		radius := 3 + progress*p.MaxRadius
		alpha := (1 - progress) * 0.6
		e.stampPulse(screen, op, x, y, radius, halfW, p.Color, alpha)
	}
}

func (e *Engine) stampPulse(screen *ebiten.Image, op *ebiten.DrawImageOptions, x, y, radius, halfW float64, c RGB, alpha float64) {
	scale := radius / halfW
	op.GeoM.Reset()
	op.GeoM.Translate(-halfW, -halfW)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(r*alpha), float32(g*alpha), float32(b*alpha), float32(alpha))
	screen.DrawImage(e.pulseImage, op)
}

// InitTextures builds the procedural ring texture and the land dot stamp.
func (e *Engine) InitTextures() {
	size := 128
	if e.Width > 2000 {
		size = 256
	}
	e.pulseImage = ebiten.NewImage(size, size)
	pixels := make([]byte, size*size*4)
	center, maxDist := float64(size)/2.0, float64(size)/2.0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-center, float64(y)-center
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < maxDist {
				val, outer, inner := 0.0, 0.9, 0.8
				if e.Width > 2000 {
					outer, inner = 0.94, 0.88
				}
				if dist > maxDist*outer {
					val = math.Cos(((dist - maxDist*(outer+((1-outer)/2))) / (maxDist * ((1 - outer) / 2))) * (math.Pi / 2))
				} else if dist > maxDist*inner {
					val = math.Sin(((dist - maxDist*inner) / (maxDist * (outer - inner))) * (math.Pi / 2))
				}
				pixels[(y*size+x)*4+3] = uint8(val * 255)
				pixels[(y*size+x)*4+0], pixels[(y*size+x)*4+1], pixels[(y*size+x)*4+2] = 255, 255, 255
			}
		}
	}
	e.pulseImage.WritePixels(pixels)

	e.dotImage = ebiten.NewImage(2, 2)
	e.dotImage.Fill(color.White)
}

// LoadGeometry rasterizes landmasses into a dot grid on the unit sphere.
func (e *Engine) LoadGeometry(fc *geojson.FeatureCollection) {
	const latStep = 1.6
	var polys [][][][]float64
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		if f.Geometry.IsPolygon() {
			polys = append(polys, f.Geometry.Polygon)
		} else if f.Geometry.IsMultiPolygon() {
			polys = append(polys, f.Geometry.MultiPolygon...)
		}
	}

	boxes := make([][4]float64, len(polys))
	for i, poly := range polys {
		boxes[i] = polygonBounds(poly)
	}

	e.landDots = e.landDots[:0]
	for lat := -88.0; lat <= 88.0; lat += latStep {
		// Widen the longitude step toward the poles for even density.
		lngStep := latStep / math.Max(math.Cos(lat*math.Pi/180), 0.05)
		for lng := -180.0; lng < 180.0; lng += lngStep {
			for i, poly := range polys {
				b := boxes[i]
				if lng < b[0] || lng > b[2] || lat < b[1] || lat > b[3] {
					continue
				}
				if pointInPolygon(lng, lat, poly) {
					e.landDots = append(e.landDots, LatLngToVec3(lat, lng))
					break
				}
			}
		}
	}
	log.Printf("Globe geometry ready: %d polygons, %d land dots", len(polys), len(e.landDots))
}

func polygonBounds(poly [][][]float64) [4]float64 {
	b := [4]float64{math.MaxFloat64, math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	for _, ring := range poly {
		for _, p := range ring {
			if p[0] < b[0] {
				b[0] = p[0]
			}
			if p[1] < b[1] {
				b[1] = p[1]
			}
			if p[0] > b[2] {
				b[2] = p[0]
			}
			if p[1] > b[3] {
				b[3] = p[1]
			}
		}
	}
	return b
}

// pointInPolygon is an even-odd crossing test over the outer ring and any
// holes of a GeoJSON polygon.
func pointInPolygon(lng, lat float64, poly [][][]float64) bool {
	inside := false
	for _, ring := range poly {
		for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
			xi, yi := ring[i][0], ring[i][1]
			xj, yj := ring[j][0], ring[j][1]
			if (yi > lat) != (yj > lat) &&
				lng < (xj-xi)*(lat-yi)/(yj-yi)+xi {
				inside = !inside
			}
		}
	}
	return inside
}
