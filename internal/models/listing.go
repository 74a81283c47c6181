package models

// Listing is one property row from the listings dataset after coercion.
type Listing struct {
	Row         int      `json:"row"`
	Price       float64  `json:"price"`
	Beds        float64  `json:"beds"`
	Baths       *float64 `json:"baths,omitempty"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	PhotoURL    string   `json:"photo_url"`
	AddressLine string   `json:"address_line"`
	ZipCode     string   `json:"zip_code"`
	PricePerBed *float64 `json:"price_per_bed,omitempty"`
}

// HasPricePerBed reports whether the listing can take part in color normalization.
func (l Listing) HasPricePerBed() bool {
	return l.PricePerBed != nil
}

// Marker is the unit handed to the map renderer. Markers are built once per
// run and never mutated afterwards.
type Marker struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	PopupHTML string  `json:"popup_html"`
	Color     string  `json:"color"`
	ZipCode   string  `json:"zipcode"`
	Price     float64 `json:"price"`
	Beds      float64 `json:"beds"`
}

type MapCenter struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
