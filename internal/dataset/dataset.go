// Package dataset loads the county boundary file behind the partner map and
// holds it, read-only, for the life of the process.
package dataset

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/partner-map/internal/choropleth"
)

// UnknownCounty labels features whose County property is missing.
const UnknownCounty = "Unknown County"

// Source property names.
const (
	PropCounty   = "County"
	PropTotal    = "Total"
	PropEntities = "Entities"
)

// Anchor is a label position in WGS84.
type Anchor struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// County is a loaded county: its styling attributes plus the geometry and
// display data that only the map needs.
type County struct {
	choropleth.CountyFeature

	Name     string  `json:"name"`
	Geometry geom.T  `json:"-"`
	Label    *Anchor `json:"label,omitempty"`
}

// Dataset is an immutable set of counties produced by a single load.
type Dataset struct {
	ID       uuid.UUID `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Counties []County  `json:"counties"`

	byID map[choropleth.FeatureID]int
}

// New wraps counties in a Dataset with a fresh load id. A county whose id is
// already taken is renamed "<id>#2", "<id>#3" and so on, so every feature
// keeps its own style and Lookup by the plain name returns the first one.
func New(source string, counties []County) *Dataset {
	d := &Dataset{
		ID:       uuid.New(),
		Source:   source,
		LoadedAt: time.Now().UTC(),
		Counties: counties,
		byID:     make(map[choropleth.FeatureID]int, len(counties)),
	}
	for i := range counties {
		id := counties[i].ID
		if _, dup := d.byID[id]; dup {
			id = d.nextFreeID(id)
			zap.L().Warn("dataset: duplicate county",
				zap.String("county", string(counties[i].ID)),
				zap.String("id", string(id)),
				zap.Int("index", i),
			)
			counties[i].ID = id
		}
		d.byID[id] = i
	}
	return d
}

func (d *Dataset) nextFreeID(base choropleth.FeatureID) choropleth.FeatureID {
	for n := 2; ; n++ {
		id := choropleth.FeatureID(fmt.Sprintf("%s#%d", base, n))
		if _, taken := d.byID[id]; !taken {
			return id
		}
	}
}

// Empty returns a dataset with no counties, used when loading fails.
func Empty() *Dataset {
	return New("", nil)
}

// Len returns the number of counties.
func (d *Dataset) Len() int {
	return len(d.Counties)
}

// Features returns the styling attributes of every county, in load order.
func (d *Dataset) Features() []choropleth.CountyFeature {
	out := make([]choropleth.CountyFeature, len(d.Counties))
	for i, c := range d.Counties {
		out[i] = c.CountyFeature
	}
	return out
}

// Lookup finds a county by id.
func (d *Dataset) Lookup(id choropleth.FeatureID) (County, bool) {
	i, ok := d.byID[id]
	if !ok {
		return County{}, false
	}
	return d.Counties[i], true
}

// LabelAnchor returns the centre of a geometry's bounding box, or nil for a
// missing or empty geometry.
func LabelAnchor(g geom.T) *Anchor {
	if g == nil {
		return nil
	}
	b := g.Bounds()
	if b == nil || b.Layout() == geom.NoLayout {
		return nil
	}
	minX, maxX := b.Min(0), b.Max(0)
	minY, maxY := b.Min(1), b.Max(1)
	if math.IsInf(minX, 0) || math.IsInf(maxX, 0) || math.IsInf(minY, 0) || math.IsInf(maxY, 0) {
		return nil
	}
	return &Anchor{Lat: (minY + maxY) / 2, Lng: (minX + maxX) / 2}
}

// sanitizeTotal maps NaN, infinities and negative counts to zero.
func sanitizeTotal(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
