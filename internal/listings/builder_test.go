package listings

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertycalc/server/config"
)

func newTestBuilder() *Builder {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewBuilder(logger, config.DefaultMapView)
}

func mustDataset(t *testing.T, header string, rows ...string) *Dataset {
	t.Helper()
	ds, err := ReadDataset(strings.NewReader(header + "\n" + strings.Join(rows, "\n") + "\n"))
	require.NoError(t, err)
	return ds
}

func TestBuilder_Build(t *testing.T) {
	ds := mustDataset(t, baseHeader,
		"600000,2,40.70,-74.00,p1,Cheap Street,7302.0",   // 300000 per bed
		"300000,3,40.80,-74.10,p2,Middle Street,07201",   // 100000 per bed
		"400000,0,41.00,-74.30,p3,Studio Lane,07030",     // no beds, no marker
		"500000,2.5,40.60,-74.20,p4,Missing Zip Way,nan", // dropped
		"abc,2,40.60,-74.20,p5,Bad Price Rd,07302",       // dropped
		"800000,4,40.90,-74.20,p6,Upper Street,07302",    // 200000 per bed
	)

	res, err := newTestBuilder().Build(ds)
	require.NoError(t, err)

	assert.Len(t, res.Listings, 4)
	require.Len(t, res.Markers, 3)
	assert.Len(t, res.Skipped, 2)

	// Input order is kept.
	assert.Contains(t, res.Markers[0].PopupHTML, "Cheap Street")
	assert.Contains(t, res.Markers[1].PopupHTML, "Middle Street")
	assert.Contains(t, res.Markers[2].PopupHTML, "Upper Street")

	assert.Equal(t, 100000.0, res.MinPricePerBed)
	assert.Equal(t, 300000.0, res.MaxPricePerBed)

	// Highest price per bed is red, lowest green.
	assert.Equal(t, "#a50026", res.Markers[0].Color)
	assert.Equal(t, "#006837", res.Markers[1].Color)
	assert.Equal(t, RdYlGn.At(0.5), res.Markers[2].Color)

	assert.Equal(t, "07302", res.Markers[0].ZipCode)
	assert.Equal(t, []string{"07201", "07302"}, res.ZipCodes)

	// Center covers every surviving listing, including the one without beds.
	assert.InDelta(t, (40.70+40.80+41.00+40.90)/4, res.Center.Latitude, 1e-9)
	assert.InDelta(t, (-74.00-74.10-74.30-74.20)/4, res.Center.Longitude, 1e-9)
	assert.Equal(t, config.DefaultMapView.ZoomLevel, res.Zoom)
}

func TestBuilder_EqualPricePerBedUsesMidpoint(t *testing.T) {
	ds := mustDataset(t, baseHeader,
		"400000,2,40.70,-74.00,p1,A,07302",
		"600000,3,40.80,-74.10,p2,B,07302",
	)

	res, err := newTestBuilder().Build(ds)
	require.NoError(t, err)
	require.Len(t, res.Markers, 2)

	for _, m := range res.Markers {
		assert.Equal(t, RdYlGn.Midpoint(), m.Color)
	}
}

func TestBuilder_NoBedsAnywhere(t *testing.T) {
	ds := mustDataset(t, baseHeader,
		"400000,0,40.70,-74.00,p1,A,07302",
		"600000,-1,40.80,-74.10,p2,B,07302",
	)

	res, err := newTestBuilder().Build(ds)
	require.NoError(t, err)

	assert.Len(t, res.Listings, 2)
	assert.Empty(t, res.Markers)
	assert.Empty(t, res.ZipCodes)
	assert.Zero(t, res.MinPricePerBed)
	assert.Zero(t, res.MaxPricePerBed)
}

func TestBuilder_EmptyDatasetFallsBackToDefaultView(t *testing.T) {
	ds := mustDataset(t, baseHeader, "1,1,,-74,p,a,07302")

	res, err := newTestBuilder().Build(ds)
	require.NoError(t, err)

	assert.Empty(t, res.Listings)
	assert.Equal(t, config.DefaultMapView.Center[0], res.Center.Latitude)
	assert.Equal(t, config.DefaultMapView.Center[1], res.Center.Longitude)
}

func TestBuilder_BathVariant(t *testing.T) {
	ds := mustDataset(t, baseHeader+",description/baths",
		"400000,2,40.70,-74.00,p1,A,07302,1",
		"600000,3,40.80,-74.10,p2,B,07302,",
	)

	res, err := newTestBuilder().Build(ds)
	require.NoError(t, err)

	require.Len(t, res.Markers, 1)
	assert.Contains(t, res.Markers[0].PopupHTML, "<b>Baths:</b> 1")
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, ColumnBaths, res.Skipped[0].Column)
}

func TestBuilder_MalformedRecordsAreReported(t *testing.T) {
	ds := mustDataset(t, baseHeader,
		`1,1,40,-74,p,"broken"quote,07302`,
		"400000,2,40.70,-74.00,p1,A,07302",
	)

	res, err := newTestBuilder().Build(ds)
	require.NoError(t, err)
	assert.Len(t, res.Markers, 1)
	assert.Len(t, res.Skipped, 1)
}

func TestNewBuilder_NilLogger(t *testing.T) {
	b := NewBuilder(nil, config.DefaultMapView)
	assert.NotNil(t, b.logger)
}
