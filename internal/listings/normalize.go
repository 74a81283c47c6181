package listings

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"propertycalc/server/internal/models"
)

// Cell values that count as missing data.
var missingTokens = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true, "N/A": true,
	"NA": true, "NULL": true, "NaN": true, "None": true, "n/a": true, "nan": true, "null": true,
}

// ZIP values that are placeholders rather than postal codes.
var zipPlaceholders = map[string]bool{
	"nan": true, "NaN": true, "None": true, "inf": true, "-inf": true,
}

// parseListing turns a raw row into a Listing. A row that cannot be used is
// reported as a DataError.
func parseListing(schema Schema, row Row) (models.Listing, *models.DataError) {
	for _, col := range schema.Required() {
		if missingTokens[schema.Value(row.Fields, col)] {
			return models.Listing{}, &models.DataError{Row: row.Line, Column: col, Reason: "missing value"}
		}
	}

	listing := models.Listing{
		Row:         row.Line,
		PhotoURL:    schema.Value(row.Fields, ColumnPhoto),
		AddressLine: schema.Value(row.Fields, ColumnAddress),
	}

	numeric := []struct {
		column string
		dst    *float64
	}{
		{ColumnPrice, &listing.Price},
		{ColumnBeds, &listing.Beds},
		{ColumnLatitude, &listing.Latitude},
		{ColumnLongitude, &listing.Longitude},
	}
	for _, n := range numeric {
		v, err := parseNumber(schema.Value(row.Fields, n.column))
		if err != nil {
			return models.Listing{}, &models.DataError{Row: row.Line, Column: n.column, Reason: err.Error()}
		}
		*n.dst = v
	}

	if schema.HasBaths {
		baths, err := parseNumber(schema.Value(row.Fields, ColumnBaths))
		if err != nil {
			return models.Listing{}, &models.DataError{Row: row.Line, Column: ColumnBaths, Reason: err.Error()}
		}
		listing.Baths = &baths
	}

	zip, ok := NormalizeZipCode(schema.Value(row.Fields, ColumnZipCode))
	if !ok {
		return models.Listing{}, &models.DataError{Row: row.Line, Column: ColumnZipCode, Reason: "invalid zip code"}
	}
	listing.ZipCode = zip

	if listing.Beds > 0 {
		ppb := listing.Price / listing.Beds
		listing.PricePerBed = &ppb
	}
	return listing, nil
}

func parseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return v, nil
}

// NormalizeZipCode renders a ZIP as a zero-padded 5-digit string. Values read
// back from numeric columns ("7302.0") and ZIP+4 codes are accepted. The
// second result is false when the value is empty, a placeholder or not a ZIP.
func NormalizeZipCode(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || zipPlaceholders[s] {
		return "", false
	}

	if base, _, found := strings.Cut(s, "-"); found && base != "" {
		s = base
	}

	if isDigits(s) {
		if len(s) > 5 {
			return "", false
		}
		return strings.Repeat("0", 5-len(s)) + s, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 0 || f > 99999 {
		return "", false
	}
	return fmt.Sprintf("%05d", int(f)), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
