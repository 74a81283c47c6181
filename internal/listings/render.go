package listings

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"
)

//go:embed templates/map.html.tmpl
var mapTemplateSource string

var mapTemplate = template.Must(template.New("map").Parse(mapTemplateSource))

// Page is the data rendered into the map artifact.
type Page struct {
	Title      string
	Center     [2]float64
	Zoom       int
	ZipCodes   []string
	Listings   *geojson.FeatureCollection
	LegendLow  Legend
	LegendHigh Legend
	Skipped    int
}

type Legend struct {
	Color string
	Label string
}

// NewPage prepares the artifact data for a build result.
func NewPage(title string, res *Result, scale ColorScale) Page {
	page := Page{
		Title:    title,
		Center:   [2]float64{res.Center.Latitude, res.Center.Longitude},
		Zoom:     res.Zoom,
		ZipCodes: res.ZipCodes,
		Listings: FeatureCollection(res.Markers),
		Skipped:  len(res.Skipped),
	}
	if len(res.Markers) > 0 {
		page.LegendLow = Legend{Color: scale.At(1), Label: FormatCurrency(res.MinPricePerBed) + " / bed"}
		page.LegendHigh = Legend{Color: scale.At(0), Label: FormatCurrency(res.MaxPricePerBed) + " / bed"}
	}
	return page
}

// Render writes the self-contained HTML artifact to w.
func Render(w io.Writer, page Page) error {
	if err := mapTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}
	return nil
}

// WriteArtifact renders page to path. The file is replaced atomically, so a
// failed build never leaves a partial artifact behind.
func WriteArtifact(path string, page Page) error {
	var buf bytes.Buffer
	if err := Render(&buf, page); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".map-*.html")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write map: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write map: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move map into place: %w", err)
	}
	return nil
}
