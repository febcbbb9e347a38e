package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/partner-map/internal/choropleth"
)

// DecodeGeoJSON reads a FeatureCollection of counties. Missing Total and
// Entities properties default to 0 and no partners.
func DecodeGeoJSON(r io.Reader, source string) (*Dataset, error) {
	var fc geojson.FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, eris.Wrap(err, "dataset: decode geojson")
	}

	counties := make([]County, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f == nil {
			continue
		}
		c := countyFromProperties(i, f.Properties)
		c.Geometry = f.Geometry
		c.Label = LabelAnchor(f.Geometry)
		counties = append(counties, c)
	}

	zap.L().Debug("dataset: decoded geojson", zap.String("source", source), zap.Int("counties", len(counties)))
	return New(source, counties), nil
}

func countyFromProperties(index int, props map[string]interface{}) County {
	var c County

	name, _ := props[PropCounty].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		c.Name = UnknownCounty
		c.ID = choropleth.FeatureID(fmt.Sprintf("feature-%d", index))
	} else {
		c.Name = name
		c.ID = choropleth.FeatureID(name)
	}

	c.TotalPartners = totalValue(props[PropTotal])

	switch v := props[PropEntities].(type) {
	case string:
		c.Entities = v
	case []interface{}:
		list := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}
		c.PartnerList = list
		c.Entities = strings.Join(list, ", ")
	}
	return c
}

func totalValue(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return sanitizeTotal(t)
	case int:
		return sanitizeTotal(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return sanitizeTotal(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return sanitizeTotal(f)
	default:
		return 0
	}
}

// FeatureCollection converts the dataset back to GeoJSON, carrying only the
// source properties. Features are in load order.
func (d *Dataset) FeatureCollection() *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(d.Counties))}
	for _, c := range d.Counties {
		props := map[string]interface{}{
			PropCounty: c.Name,
			PropTotal:  c.TotalPartners,
		}
		if c.PartnerList != nil {
			props[PropEntities] = c.PartnerList
		} else if c.Entities != "" {
			props[PropEntities] = c.Entities
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         string(c.ID),
			Geometry:   c.Geometry,
			Properties: props,
		})
	}
	return fc
}

// WriteGeoJSON encodes the dataset as a FeatureCollection.
func (d *Dataset) WriteGeoJSON(w io.Writer) error {
	data, err := json.Marshal(d.FeatureCollection())
	if err != nil {
		return eris.Wrap(err, "dataset: encode geojson")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "dataset: write geojson")
	}
	return nil
}
