package choropleth

// Fixed path options shared by every style.
const (
	BorderWeight  = 1
	BorderOpacity = 1.0
	FillOpacity   = 0.7
)

// FeatureID identifies a county within a dataset. It is the county name.
type FeatureID string

// CountyFeature holds the attributes of a county that drive its style.
// Geometry is owned by the dataset layer and never reaches this package.
type CountyFeature struct {
	ID            FeatureID `json:"id"`
	TotalPartners float64   `json:"total_partners"`
	Entities      string    `json:"entities,omitempty"`

	// PartnerList is set when the source supplies partners as a list rather
	// than a comma-separated string. It takes precedence over Entities.
	PartnerList []string `json:"partner_list,omitempty"`
}

// StyleDescriptor is a set of Leaflet path options.
type StyleDescriptor struct {
	FillColor   Color   `json:"fillColor"`
	Color       Color   `json:"color"`
	Weight      int     `json:"weight"`
	Opacity     float64 `json:"opacity"`
	FillOpacity float64 `json:"fillOpacity"`
}

// DefaultStyle returns the choropleth style for a county. It depends only on
// the county's own partner count.
func DefaultStyle(f CountyFeature) StyleDescriptor {
	return StyleDescriptor{
		FillColor:   ColorFor(f.TotalPartners),
		Color:       ColorBorder,
		Weight:      BorderWeight,
		Opacity:     BorderOpacity,
		FillOpacity: FillOpacity,
	}
}

// HighlightStyle returns the style for counties matching the current selection.
func HighlightStyle() StyleDescriptor {
	return StyleDescriptor{
		FillColor:   ColorHighlight,
		Color:       ColorBorder,
		Weight:      BorderWeight,
		Opacity:     BorderOpacity,
		FillOpacity: FillOpacity,
	}
}

// IsHighlight reports whether s is the highlight style.
func (s StyleDescriptor) IsHighlight() bool {
	return s == HighlightStyle()
}
