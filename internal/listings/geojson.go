package listings

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"propertycalc/server/internal/models"
)

// FeatureCollection encodes markers as GeoJSON points, keeping marker order.
func FeatureCollection(markers []models.Marker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewFeature(orb.Point{m.Longitude, m.Latitude})
		f.Properties["color"] = m.Color
		f.Properties["popup_html"] = m.PopupHTML
		f.Properties["zipcode"] = m.ZipCode
		f.Properties["price"] = m.Price
		f.Properties["beds"] = m.Beds
		fc.Append(f)
	}
	return fc
}
