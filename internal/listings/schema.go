package listings

import (
	"fmt"
	"strings"

	"propertycalc/server/internal/models"
)

// Dataset column names.
const (
	ColumnPrice     = "list_price"
	ColumnBeds      = "description/beds"
	ColumnBaths     = "description/baths"
	ColumnLatitude  = "location/address/coordinate/lat"
	ColumnLongitude = "location/address/coordinate/lon"
	ColumnPhoto     = "primary_photo/href"
	ColumnAddress   = "location/address/line"
	ColumnZipCode   = "location/address/postal_code"
)

var requiredColumns = []string{
	ColumnPrice,
	ColumnBeds,
	ColumnLatitude,
	ColumnLongitude,
	ColumnPhoto,
	ColumnAddress,
	ColumnZipCode,
}

// Schema maps column names to their position in a dataset header.
type Schema struct {
	index map[string]int

	// HasBaths is set for datasets carrying a bath count; such rows must
	// provide one.
	HasBaths bool
}

// NewSchema validates a header row. A missing required column is a
// ConfigurationError.
func NewSchema(header []string) (Schema, error) {
	s := Schema{index: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := s.index[name]; !dup {
			s.index[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := s.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return Schema{}, &models.ConfigurationError{
			Message: fmt.Sprintf("dataset is missing required columns: %s", strings.Join(missing, ", ")),
		}
	}

	_, s.HasBaths = s.index[ColumnBaths]
	return s, nil
}

// Required lists the columns every row must fill in.
func (s Schema) Required() []string {
	cols := append([]string(nil), requiredColumns...)
	if s.HasBaths {
		cols = append(cols, ColumnBaths)
	}
	return cols
}

// Value returns the raw cell for column, or "" when the row is short.
func (s Schema) Value(record []string, column string) string {
	i, ok := s.index[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
