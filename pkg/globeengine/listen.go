package globeengine

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

// feedMessage is the wire envelope of the activity feed. "arcs" replaces
// the displayed route set; "visit" pulses a single location, given either
// by coordinates or by an IPv4 address to geolocate.
type feedMessage struct {
	Type string `json:"type"`
	Data struct {
		Arcs   []Arc `json:"arcs"`
		Visits []struct {
			IP    string  `json:"ip"`
			Lat   float64 `json:"lat"`
			Lng   float64 `json:"lng"`
			CC    string  `json:"cc"`
			Color string  `json:"color"`
		} `json:"visits"`
	} `json:"data"`
}

// ListenToFeed consumes the activity websocket until ctx is cancelled,
// reconnecting with exponential backoff capped at one minute.
func (e *Engine) ListenToFeed(ctx context.Context, url string) {
	backoff := 1 * time.Second
	for {
		if ctx.Err() != nil {
			return
		}
		log.Printf("Connecting to activity feed: %s", url)
		c, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
		if err != nil {
			log.Printf("Dial error: %v. Retrying in %v...", err, backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > 60*time.Second {
				backoff = 60 * time.Second
			}
			continue
		}
		backoff = 1 * time.Second
		e.setFeedConnected(true)

		// Unblock ReadMessage when the context goes away.
		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				c.Close()
			case <-done:
			}
		}()

		subscribeMsg := `{"type": "subscribe", "data": {"type": "ACTIVITY"}}`
		if err := c.WriteMessage(websocket.TextMessage, []byte(subscribeMsg)); err != nil {
			log.Printf("Subscribe error: %v", err)
			close(done)
			c.Close()
			e.setFeedConnected(false)
			continue
		}

		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					close(done)
					e.setFeedConnected(false)
					return
				}
				log.Printf("Read error: %v. Reconnecting...", err)
				break
			}
			e.handleFeedMessage(message)
		}
		close(done)
		c.Close()
		e.setFeedConnected(false)

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

func (e *Engine) handleFeedMessage(message []byte) {
	var msg feedMessage
	if json.Unmarshal(message, &msg) != nil {
		return
	}
	switch msg.Type {
	case "error":
		log.Printf("[FEED ERROR] %s", string(message))
	case "arcs":
		e.SetArcs(msg.Data.Arcs)
	case "visit":
		for _, v := range msg.Data.Visits {
			lat, lng, cc := v.Lat, v.Lng, v.CC
			if v.IP != "" {
				if e.GeoIP == nil {
					continue
				}
				ip := net.ParseIP(v.IP)
				if ip == nil {
					continue
				}
				var ok bool
				if lat, lng, cc, ok = e.GeoIP.Resolve(ip); !ok {
					continue
				}
			}
			if !IsValidLatitude(lat) || !IsValidLongitude(lng) {
				continue
			}
			c := ColorRing
			if v.Color != "" {
				c = HexToRGB(v.Color)
			}
			e.RecordVisit(lat, lng, cc, c)
		}
	}
}
