package catalog

import (
	"net"

	"github.com/oschwald/maxminddb-golang"
)

// GeoIP resolves IP addresses to coordinates using a MaxMind database.
// It satisfies globeengine.GeoResolver.
type GeoIP struct {
	reader *maxminddb.Reader
}

func OpenGeoIP(path string) (*GeoIP, error) {
	r, err := maxminddb.Open(path)
	if err != nil {
		return nil, err
	}
	return &GeoIP{reader: r}, nil
}

func (g *GeoIP) Close() error {
	return g.reader.Close()
}

func (g *GeoIP) Resolve(ip net.IP) (lat, lng float64, cc string, ok bool) {
	var record struct {
		Location struct {
			Latitude  float64 `maxminddb:"latitude"`
			Longitude float64 `maxminddb:"longitude"`
		} `maxminddb:"location"`
		Country struct {
			ISOCode string `maxminddb:"iso_code"`
		} `maxminddb:"country"`
	}
	if err := g.reader.Lookup(ip, &record); err != nil {
		return 0, 0, "", false
	}
	lat = record.Location.Latitude
	lng = record.Location.Longitude
	cc = record.Country.ISOCode
	if lat == 0 && lng == 0 && cc == "" {
		return 0, 0, "", false
	}
	return lat, lng, cc, true
}
