package config

import "sort"

// MapView is a starting position for the listings map. Center is
// latitude, longitude.
type MapView struct {
	Name      string
	Center    [2]float64
	ZoomLevel int
}

// DefaultMapView frames the whole state and is used when a build has no
// usable coordinates.
var DefaultMapView = MapView{Name: "new-jersey", Center: [2]float64{40.0583, -74.4057}, ZoomLevel: 8}

var mapViews = map[string]MapView{
	DefaultMapView.Name: DefaultMapView,
	"union-county":      {Name: "union-county", Center: [2]float64{40.6590, -74.3074}, ZoomLevel: 11},
}

// LookupView returns the named view.
func LookupView(name string) (MapView, bool) {
	view, ok := mapViews[name]
	return view, ok
}

// ViewNames lists the accepted MAP_VIEW values in sorted order.
func ViewNames() []string {
	names := make([]string, 0, len(mapViews))
	for name := range mapViews {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
