package globeengine

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/biter777/countries"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	ColorArc    = RGB{0, 191, 255}
	ColorMarker = RGB{173, 255, 47}
	ColorRing   = RGB{255, 255, 255}
)

func (e *Engine) drawLegend(screen *ebiten.Image) {
	if e.fontSource == nil {
		return
	}
	margin, fontSize := 60.0, 18.0
	spacing, swatchSize := 32.0, 14.0
	if e.Width > 2000 {
		margin, fontSize = 120.0, 36.0
		spacing, swatchSize = 64.0, 28.0
	}

	items := []struct {
		Label string
		Color RGB
	}{
		{"Route", ColorArc},
		{"Location", ColorMarker},
		{"Activity", ColorRing},
	}

	lx := margin
	ly := float64(e.Height) - margin - float64(len(items))*spacing
	face := &text.GoTextFace{Source: e.fontSource, Size: fontSize}

	for i, it := range items {
		ty := ly + float64(i)*spacing
		vector.DrawFilledCircle(screen, float32(lx+swatchSize/2), float32(ty+swatchSize/2), float32(swatchSize/2), ColorAt(it.Color, 0.3), true)

		top := &text.DrawOptions{}
		top.GeoM.Translate(lx+swatchSize+12, ty+(swatchSize/2)-(fontSize/2))
		top.ColorScale.Scale(1, 1, 1, 0.8)
		text.Draw(screen, it.Label, face, top)
	}
}

func (e *Engine) drawStatus(screen *ebiten.Image) {
	if e.monoSource == nil {
		return
	}
	margin, fontSize := 60.0, 16.0
	if e.Width > 2000 {
		margin, fontSize = 120.0, 32.0
	}
	face := &text.GoTextFace{Source: e.monoSource, Size: fontSize}

	e.dataMu.Lock()
	nArcs, nPoints := len(e.arcs), len(e.points)
	e.dataMu.Unlock()
	e.ringMu.Lock()
	nRings := len(e.ringSites)
	e.ringMu.Unlock()

	status := fmt.Sprintf("%s  routes:%d  locations:%d  active:%d",
		time.Now().UTC().Format("15:04:05 UTC"), nArcs, nPoints, nRings)

	sop := &text.DrawOptions{}
	sop.GeoM.Translate(margin, margin)
	sop.ColorScale.Scale(1, 1, 1, 0.6)
	text.Draw(screen, status, face, sop)

	e.activityMu.Lock()
	connected := e.feedConnected
	e.activityMu.Unlock()
	if connected {
		vector.DrawFilledCircle(screen, float32(margin-18), float32(margin+fontSize/2), 4, ColorAt(ColorMarker, 0), true)
	}

	e.drawTopCountries(screen, face, margin, fontSize)
	e.drawNowPlaying(screen, face, margin, fontSize)
}

// drawTopCountries lists the busiest feed countries down the left edge.
func (e *Engine) drawTopCountries(screen *ebiten.Image, face *text.GoTextFace, margin, fontSize float64) {
	type hub struct {
		cc    string
		count int
	}
	e.activityMu.Lock()
	current := make([]hub, 0, len(e.countryActivity))
	for cc, n := range e.countryActivity {
		current = append(current, hub{cc, n})
	}
	e.activityMu.Unlock()
	if len(current) == 0 {
		return
	}
	sort.Slice(current, func(i, j int) bool { return current[i].count > current[j].count })
	if len(current) > 5 {
		current = current[:5]
	}

	boxW := fontSize * 16
	yBase := float64(e.Height) / 2
	spacing := fontSize * 1.4

	vector.DrawFilledRect(screen, float32(margin-10), float32(yBase-fontSize-10), float32(boxW), float32(spacing*float64(len(current)+1)+10), color.RGBA{0, 0, 0, 100}, false)
	vector.StrokeRect(screen, float32(margin-10), float32(yBase-fontSize-10), float32(boxW), float32(spacing*float64(len(current)+1)+10), 1, color.RGBA{36, 42, 53, 255}, false)

	titleOp := &text.DrawOptions{}
	titleOp.GeoM.Translate(margin, yBase-fontSize)
	titleOp.ColorScale.Scale(1, 1, 1, 0.5)
	text.Draw(screen, "TOP ACTIVITY", face, titleOp)

	for i, h := range current {
		name := countries.ByName(h.cc).String()
		if name == "Unknown" {
			name = h.cc
		}
		if idx := strings.Index(name, " ("); idx != -1 {
			name = name[:idx]
		}
		const maxLen = 18
		if len(name) > maxLen {
			name = name[:maxLen-3] + "..."
		}

		line := fmt.Sprintf("%-18s %5d", name, h.count)
		op := &text.DrawOptions{}
		op.GeoM.Translate(margin, yBase+float64(i+1)*spacing-fontSize)
		op.ColorScale.Scale(1, 1, 1, 0.7)
		text.Draw(screen, line, face, op)
	}
}

func (e *Engine) drawNowPlaying(screen *ebiten.Image, face *text.GoTextFace, margin, fontSize float64) {
	e.songMu.Lock()
	song, artist := e.CurrentSong, e.CurrentArtist
	e.songMu.Unlock()
	if song == "" {
		return
	}
	line := "♪ " + song
	if artist != "" {
		line = "♪ " + artist + " - " + song
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(margin, float64(e.Height)-margin/2)
	op.ColorScale.Scale(1, 1, 1, 0.5)
	text.Draw(screen, line, face, op)
}
