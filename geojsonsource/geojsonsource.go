// Package geojsonsource loads map markers from GeoJSON FeatureCollections.
package geojsonsource

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/golang/geo/s2"
	"github.com/peterstace/simplefeatures/geom"

	"github.com/phanxgames/willowmap"
)

// Property names read from each feature.
const (
	PropTitle          = "title"
	PropDescription    = "description"
	PropSubDescription = "subDescription"
	PropDraggable      = "draggable"
)

// Source is a willowmap.ItemSource over the Point features of a GeoJSON
// FeatureCollection. Other geometry types are skipped. Feature properties
// are kept in Marker.UserData.
type Source struct {
	icon    *willowmap.Icon
	markers []*willowmap.Marker
	skipped int
}

// Read decodes a FeatureCollection from r. Every marker uses icon.
func Read(r io.Reader, icon *willowmap.Icon) (*Source, error) {
	var fc geom.GeoJSONFeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("geojsonsource: decode: %w", err)
	}

	src := &Source{icon: icon}
	for _, f := range fc {
		g := f.Geometry
		if g.Type() != geom.TypePoint {
			src.skipped++
			continue
		}
		xy, ok := g.MustAsPoint().XY()
		if !ok {
			// Empty point.
			src.skipped++
			continue
		}
		src.markers = append(src.markers, newMarker(xy, f.Properties, icon))
	}
	return src, nil
}

// Load reads the FeatureCollection file at path.
func Load(path string, icon *willowmap.Icon) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geojsonsource: %w", err)
	}
	defer f.Close()
	return Read(f, icon)
}

func newMarker(xy geom.XY, props map[string]any, icon *willowmap.Icon) *willowmap.Marker {
	title := stringProp(props, PropTitle)
	m := willowmap.NewMarker(title, s2.LatLngFromDegrees(xy.Y, xy.X), icon)
	m.Label = title
	m.Description = stringProp(props, PropDescription)
	m.SubDescription = stringProp(props, PropSubDescription)
	if d, ok := props[PropDraggable].(bool); ok {
		m.Draggable = d
	}
	m.UserData = props
	return m
}

func stringProp(props map[string]any, key string) string {
	switch v := props[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Len returns the number of point features.
func (s *Source) Len() int {
	return len(s.markers)
}

// Skipped returns the number of features that were not points.
func (s *Source) Skipped() int {
	return s.skipped
}

// CreateItem returns the marker for feature i.
func (s *Source) CreateItem(i int) *willowmap.Marker {
	return s.markers[i]
}

var _ willowmap.ItemSource = (*Source)(nil)
