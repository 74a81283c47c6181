package listings

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/sirupsen/logrus"

	"propertycalc/server/config"
	"propertycalc/server/internal/models"
)

// Builder turns a listings dataset into colored map markers.
type Builder struct {
	logger   *logrus.Logger
	scale    ColorScale
	fallback config.MapView
}

func NewBuilder(logger *logrus.Logger, fallback config.MapView) *Builder {
	if logger == nil {
		logger = logrus.New()
	}
	return &Builder{
		logger:   logger,
		scale:    RdYlGn,
		fallback: fallback,
	}
}

// Result is the outcome of one build. It is not modified after Build returns.
type Result struct {
	// Listings holds every row that survived validation, in input order.
	Listings []models.Listing
	// Markers holds one marker per listing with a price per bed, in input order.
	Markers []models.Marker
	Center  models.MapCenter
	Zoom    int

	MinPricePerBed float64
	MaxPricePerBed float64

	// ZipCodes are the distinct marker ZIP codes, sorted.
	ZipCodes []string
	Skipped  []*models.DataError
}

// Build runs the whole pipeline over ds. Bad rows are skipped and reported in
// Result.Skipped; they never fail the build.
func (b *Builder) Build(ds *Dataset) (*Result, error) {
	res := &Result{Zoom: b.fallback.ZoomLevel}
	res.Skipped = append(res.Skipped, ds.Malformed...)

	for _, row := range ds.Rows {
		listing, dErr := parseListing(ds.Schema, row)
		if dErr != nil {
			b.logger.WithFields(logrus.Fields{
				"row":    dErr.Row,
				"column": dErr.Column,
			}).Debug(dErr.Reason)
			res.Skipped = append(res.Skipped, dErr)
			continue
		}
		res.Listings = append(res.Listings, listing)
	}

	res.Center = b.center(res.Listings)

	minPPB, maxPPB, priced := pricePerBedRange(res.Listings)
	if priced > 0 {
		res.MinPricePerBed, res.MaxPricePerBed = minPPB, maxPPB
	}

	zips := make(map[string]struct{})
	for _, listing := range res.Listings {
		if !listing.HasPricePerBed() {
			continue
		}

		popup, err := PopupHTML(listing)
		if err != nil {
			return nil, err
		}

		res.Markers = append(res.Markers, models.Marker{
			Latitude:  listing.Latitude,
			Longitude: listing.Longitude,
			PopupHTML: popup,
			Color:     b.color(*listing.PricePerBed, minPPB, maxPPB),
			ZipCode:   listing.ZipCode,
			Price:     listing.Price,
			Beds:      listing.Beds,
		})
		zips[listing.ZipCode] = struct{}{}
	}

	for zip := range zips {
		res.ZipCodes = append(res.ZipCodes, zip)
	}
	sort.Strings(res.ZipCodes)

	b.logger.WithFields(logrus.Fields{
		"rows":     len(ds.Rows) + len(ds.Malformed),
		"listings": len(res.Listings),
		"markers":  len(res.Markers),
		"skipped":  len(res.Skipped),
		"zipcodes": len(res.ZipCodes),
	}).Info("Built listing markers")

	return res, nil
}

// color maps price per bed onto the scale so that expensive listings are red
// and cheap ones green. A degenerate range yields the midpoint color.
func (b *Builder) color(ppb, minPPB, maxPPB float64) string {
	if maxPPB == minPPB {
		return b.scale.Midpoint()
	}
	normalized := (ppb - minPPB) / (maxPPB - minPPB)
	return b.scale.At(1 - normalized)
}

// center is the mean position of all listings, or the fallback view.
func (b *Builder) center(listings []models.Listing) models.MapCenter {
	if len(listings) == 0 {
		return models.MapCenter{Latitude: b.fallback.Center[0], Longitude: b.fallback.Center[1]}
	}
	points := make(orb.MultiPoint, len(listings))
	for i, l := range listings {
		points[i] = orb.Point{l.Longitude, l.Latitude}
	}
	c, _ := planar.CentroidArea(points)
	return models.MapCenter{Latitude: c.Lat(), Longitude: c.Lon()}
}

func pricePerBedRange(listings []models.Listing) (minPPB, maxPPB float64, count int) {
	minPPB, maxPPB = math.Inf(1), math.Inf(-1)
	for _, l := range listings {
		if !l.HasPricePerBed() {
			continue
		}
		count++
		minPPB = math.Min(minPPB, *l.PricePerBed)
		maxPPB = math.Max(maxPPB, *l.PricePerBed)
	}
	return minPPB, maxPPB, count
}
