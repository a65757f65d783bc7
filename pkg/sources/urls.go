package sources

const (
	WorldGeoJSONURL = "https://raw.githubusercontent.com/johan/world.geo.json/master/countries.geo.json"
	WorldCitiesURL  = "https://raw.githubusercontent.com/dr5hn/countries-states-cities-database/master/csv/cities.csv"
)
