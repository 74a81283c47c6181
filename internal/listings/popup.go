package listings

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"propertycalc/server/internal/models"
)

var popupTemplate = template.Must(template.New("popup").Parse(
	`<div class="listing-popup" onclick="setPropertyDetails({{.Price}}, {{.Beds}})">` +
		`<img src="{{.Photo}}" width="150"><br>` +
		`<b>Price:</b> {{.PriceText}}<br>` +
		`<b>Beds:</b> {{.BedsText}}<br>` +
		`{{if .BathsText}}<b>Baths:</b> {{.BathsText}}<br>{{end}}` +
		`<b>Address:</b> <a href="{{.StreetView}}" target="_blank" rel="noopener">{{.Address}} (Street View)</a><br>` +
		`<b>ZIP:</b> {{.ZipCode}}` +
		`</div>`,
))

type popupData struct {
	Price      template.JS
	Beds       template.JS
	Photo      string
	PriceText  string
	BedsText   string
	BathsText  string
	StreetView string
	Address    string
	ZipCode    string
}

// StreetViewURL links to the street-level view at the listing's coordinates.
func StreetViewURL(lat, lon float64) string {
	return fmt.Sprintf("https://www.google.com/maps/@%s,%s,3a,75y,90t",
		strconv.FormatFloat(lat, 'f', -1, 64), strconv.FormatFloat(lon, 'f', -1, 64))
}

// PopupHTML renders the marker popup for a listing. Clicking it calls the
// page's setPropertyDetails hook with the listing price and bed count.
func PopupHTML(l models.Listing) (string, error) {
	data := popupData{
		Price:      jsNumber(l.Price),
		Beds:       jsNumber(l.Beds),
		Photo:      l.PhotoURL,
		PriceText:  FormatCurrency(l.Price),
		BedsText:   formatCount(l.Beds),
		StreetView: StreetViewURL(l.Latitude, l.Longitude),
		Address:    l.AddressLine,
		ZipCode:    l.ZipCode,
	}
	if l.Baths != nil {
		data.BathsText = formatCount(*l.Baths)
	}

	var buf bytes.Buffer
	if err := popupTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render popup for row %d: %w", l.Row, err)
	}
	return buf.String(), nil
}

// jsNumber formats a finite number as a JavaScript literal.
func jsNumber(v float64) template.JS {
	return template.JS(strconv.FormatFloat(v, 'f', -1, 64))
}

// FormatCurrency renders a dollar amount rounded to cents with thousands
// separators, e.g. "-$1,234.56".
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole, cents, _ := strings.Cut(d.StringFixed(2), ".")
	for i := len(whole) - 3; i > 0; i -= 3 {
		whole = whole[:i] + "," + whole[i:]
	}
	return sign + "$" + whole + "." + cents
}

// formatCount renders bed and bath counts without a trailing ".0".
func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
