package listings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"propertycalc/server/internal/models"
)

// Row is one raw dataset record with its line number in the source file.
type Row struct {
	Line   int
	Fields []string
}

type Dataset struct {
	Schema Schema
	Rows   []Row

	// Malformed holds records the CSV reader could not parse.
	Malformed []*models.DataError
}

// LoadDataset reads the CSV file at path. A missing file is a
// ConfigurationError.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.ConfigurationError{Message: "listings file unavailable", Err: err}
	}
	defer f.Close()
	return ReadDataset(f)
}

// ReadDataset parses CSV data with a header row.
func ReadDataset(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &models.ConfigurationError{Message: "listings file is empty"}
	}
	if err != nil {
		return nil, &models.ConfigurationError{Message: "failed to read listings header", Err: err}
	}

	schema, err := NewSchema(header)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Schema: schema}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			ds.Malformed = append(ds.Malformed, &models.DataError{Row: parseErr.StartLine, Reason: parseErr.Err.Error()})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read listings: %w", err)
		}
		line, _ := reader.FieldPos(0)
		ds.Rows = append(ds.Rows, Row{Line: line, Fields: record})
	}
	return ds, nil
}
