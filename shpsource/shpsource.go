// Package shpsource loads map markers from ESRI point shapefiles.
package shpsource

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/jonas-p/go-shp"

	"github.com/phanxgames/willowmap"
)

// ErrFieldNotFound is returned when a configured attribute field is missing.
var ErrFieldNotFound = errors.New("shpsource: field not found")

// Options selects the attribute fields that fill marker payloads.
type Options struct {
	// TitleField names the attribute used for Marker.Title and Label.
	// Empty means untitled markers.
	TitleField string
	// DescriptionField names the attribute used for Marker.Description.
	DescriptionField string
	// Icon is shared by every marker.
	Icon *willowmap.Icon
	// Draggable marks every marker draggable.
	Draggable bool
}

type record struct {
	lat, lng    float64
	title, desc string
}

// Source is a willowmap.ItemSource backed by the point records of a
// shapefile. Non-point shapes are skipped. Markers are created on first use
// and reused across Populate calls.
type Source struct {
	opts    Options
	records []record
	markers []*willowmap.Marker
	skipped int
}

// Load reads every point record of the shapefile at path (the .shp file;
// the .dbf next to it supplies attributes).
func Load(path string, opts Options) (*Source, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shpsource: open %s: %w", path, err)
	}
	defer shape.Close()

	titleIdx, err := fieldIndex(shape.Fields(), opts.TitleField)
	if err != nil {
		return nil, err
	}
	descIdx, err := fieldIndex(shape.Fields(), opts.DescriptionField)
	if err != nil {
		return nil, err
	}

	src := &Source{opts: opts}
	for shape.Next() {
		n, p := shape.Shape()

		var x, y float64
		switch pt := p.(type) {
		case *shp.Point:
			x, y = pt.X, pt.Y
		case *shp.PointZ:
			x, y = pt.X, pt.Y
		case *shp.PointM:
			x, y = pt.X, pt.Y
		default:
			src.skipped++
			continue
		}

		rec := record{lat: y, lng: x}
		if titleIdx >= 0 {
			rec.title = strings.TrimSpace(shape.ReadAttribute(n, titleIdx))
		}
		if descIdx >= 0 {
			rec.desc = strings.TrimSpace(shape.ReadAttribute(n, descIdx))
		}
		src.records = append(src.records, rec)
	}
	if err := shape.Err(); err != nil {
		return nil, fmt.Errorf("shpsource: read %s: %w", path, err)
	}

	src.markers = make([]*willowmap.Marker, len(src.records))
	return src, nil
}

// fieldIndex returns the index of the named field, or -1 for an empty name.
func fieldIndex(fields []shp.Field, name string) (int, error) {
	if name == "" {
		return -1, nil
	}
	for i, f := range fields {
		// Field names are fixed-size byte arrays padded with NULs.
		if strings.EqualFold(strings.TrimRight(string(f.Name[:]), "\x00 "), name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
}

// Len returns the number of point records.
func (s *Source) Len() int {
	return len(s.records)
}

// Skipped returns the number of non-point shapes ignored by Load.
func (s *Source) Skipped() int {
	return s.skipped
}

// CreateItem returns the marker for record i.
func (s *Source) CreateItem(i int) *willowmap.Marker {
	if m := s.markers[i]; m != nil {
		return m
	}
	rec := s.records[i]
	m := willowmap.NewMarker(rec.title, s2.LatLngFromDegrees(rec.lat, rec.lng), s.opts.Icon)
	m.Label = rec.title
	m.Description = rec.desc
	m.Draggable = s.opts.Draggable
	s.markers[i] = m
	return m
}

var _ willowmap.ItemSource = (*Source)(nil)
