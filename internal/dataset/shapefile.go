package dataset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// LoadShapefile reads county polygons and their COUNTY, TOTAL and ENTITIES
// attributes from a shapefile. Field names match case-insensitively.
func LoadShapefile(path string) (*Dataset, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	// go-shp ignores a missing or unreadable attribute table.
	dbf := strings.TrimSuffix(path, filepath.Ext(path)) + ".dbf"
	if _, err := os.Stat(dbf); err != nil {
		return nil, eris.Wrapf(err, "dataset: shapefile attributes %s", dbf)
	}
	if len(reader.Fields()) == 0 {
		return nil, eris.Errorf("dataset: shapefile %s has no attribute fields", path)
	}

	fieldIdx := make(map[string]int)
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	attr := func(name string) interface{} {
		idx, ok := fieldIdx[strings.ToLower(name)]
		if !ok {
			return nil
		}
		val := strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
		if val == "" {
			return nil
		}
		return val
	}

	var counties []County
	var skipped int
	for i := 0; reader.Next(); i++ {
		_, shape := reader.Shape()

		c := countyFromProperties(i, map[string]interface{}{
			PropCounty:   attr(PropCounty),
			PropTotal:    attr(PropTotal),
			PropEntities: attr(PropEntities),
		})

		g := shapeGeometry(shape)
		if g == nil {
			skipped++
		}
		c.Geometry = g
		c.Label = LabelAnchor(g)
		counties = append(counties, c)
	}

	if skipped > 0 {
		zap.L().Debug("dataset: shapefile records without usable geometry",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return New(path, counties), nil
}

// shapeGeometry converts a shapefile polygon to a MultiPolygon in WGS84.
// Other shape types yield nil.
func shapeGeometry(shape shp.Shape) geom.T {
	p, ok := shape.(*shp.Polygon)
	if !ok || p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			zap.L().Debug("dataset: skipping malformed ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("dataset: skipping malformed polygon", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
