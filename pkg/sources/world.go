// Package sources knows where globe data sets live and how to fetch them.
package sources

import (
	"io"

	geojson "github.com/paulmach/go.geojson"
	"github.com/sudorandom/globe-arcs/pkg/utils"
)

// FetchWorldGeoJSON loads the country outlines, downloading them into the
// local cache on first use.
func FetchWorldGeoJSON() (*geojson.FeatureCollection, error) {
	r, err := utils.CachedReader(WorldGeoJSONURL, "[WORLD]")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return geojson.UnmarshalFeatureCollection(data)
}

// GetWorldCitiesReader returns the world-cities CSV, cached on disk.
func GetWorldCitiesReader() (io.ReadCloser, error) {
	return utils.CachedReader(WorldCitiesURL, "[CITIES]")
}
