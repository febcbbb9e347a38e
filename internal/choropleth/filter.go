package choropleth

// Styles maps each county to the style it should be drawn with.
type Styles map[FeatureID]StyleDescriptor

// ApplyFilter computes the style of every county for a partner selection.
// An empty selection resets every county to its default style. Otherwise a
// county listing the selected partner is highlighted and every other county,
// including those with no partner data, gets its default style.
func ApplyFilter(features []CountyFeature, selection string) Styles {
	want := Normalize(selection)
	styles := make(Styles, len(features))
	for _, f := range features {
		if want != "" && matches(f, want) {
			styles[f.ID] = HighlightStyle()
			continue
		}
		styles[f.ID] = DefaultStyle(f)
	}
	return styles
}

// Matches returns the ids of counties listing the selected partner, in input
// order. An empty selection matches nothing.
func Matches(features []CountyFeature, selection string) []FeatureID {
	want := Normalize(selection)
	if want == "" {
		return nil
	}
	var ids []FeatureID
	for _, f := range features {
		if matches(f, want) {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

func matches(f CountyFeature, want PartnerName) bool {
	if f.PartnerList == nil && f.Entities == "" {
		return false
	}
	_, ok := PartnersOf(f)[want]
	return ok
}
