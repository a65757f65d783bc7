package globeengine

import (
	"net"
	"testing"
)

type staticResolver struct {
	lat, lng float64
	cc       string
}

func (r staticResolver) Resolve(ip net.IP) (float64, float64, string, bool) {
	return r.lat, r.lng, r.cc, true
}

func TestHandleFeedMessageArcs(t *testing.T) {
	e := NewEngine(640, 480, Config{})
	e.handleFeedMessage([]byte(`{"type":"arcs","data":{"arcs":[
		{"order":1,"startLat":51.5,"startLng":-0.12,"endLat":35.6,"endLng":139.6,"arcAlt":0.3,"color":"#06b6d4"}
	]}}`))

	if got := len(e.Arcs()); got != 1 {
		t.Fatalf("got %d arcs; want 1", got)
	}
	if got := len(e.Points()); got != 2 {
		t.Errorf("got %d points; want 2", got)
	}
}

func TestHandleFeedMessageVisit(t *testing.T) {
	e := NewEngine(640, 480, Config{})
	e.handleFeedMessage([]byte(`{"type":"visit","data":{"visits":[
		{"lat":48.8566,"lng":2.3522,"cc":"FR"},
		{"lat":500,"lng":0,"cc":"XX"}
	]}}`))

	e.pulsesMu.Lock()
	pulses := len(e.pulses)
	e.pulsesMu.Unlock()
	if pulses != 1 {
		t.Errorf("got %d pulses; want 1 (invalid coordinate dropped)", pulses)
	}

	e.activityMu.Lock()
	fr := e.countryActivity["FR"]
	xx := e.countryActivity["XX"]
	e.activityMu.Unlock()
	if fr != 1 {
		t.Errorf("FR activity = %d; want 1", fr)
	}
	if xx != 0 {
		t.Errorf("XX activity = %d; want 0 for dropped visit", xx)
	}
}

func TestHandleFeedMessageVisitByIP(t *testing.T) {
	e := NewEngine(640, 480, Config{})

	// Without a resolver, IP visits are dropped silently.
	e.handleFeedMessage([]byte(`{"type":"visit","data":{"visits":[{"ip":"203.0.113.7"}]}}`))
	e.pulsesMu.Lock()
	if n := len(e.pulses); n != 0 {
		t.Errorf("got %d pulses without resolver; want 0", n)
	}
	e.pulsesMu.Unlock()

	e.GeoIP = staticResolver{lat: 35.6762, lng: 139.6503, cc: "JP"}
	e.handleFeedMessage([]byte(`{"type":"visit","data":{"visits":[{"ip":"203.0.113.7"}]}}`))
	e.pulsesMu.Lock()
	if n := len(e.pulses); n != 1 {
		t.Errorf("got %d pulses with resolver; want 1", n)
	}
	e.pulsesMu.Unlock()
}

func TestHandleFeedMessageGarbage(t *testing.T) {
	e := NewEngine(640, 480, Config{})
	e.handleFeedMessage([]byte(`{not json`))
	e.handleFeedMessage([]byte(`{"type":"unknown","data":{}}`))
	if got := len(e.Arcs()); got != 0 {
		t.Errorf("garbage input changed arc list: %d arcs", got)
	}
}
