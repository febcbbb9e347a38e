package choropleth

import "strconv"

// LegendTitle heads the map legend.
const LegendTitle = "HPT Supply Number of Partners"

// legendCap is the upper bound printed on the open-ended top bucket.
const legendCap = 12

// LegendEntry is one legend row: an inclusive count range and its swatch.
type LegendEntry struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Color Color  `json:"color"`
}

// Legend returns one row per colour bucket, lightest first. Ranges are
// derived from the scale's thresholds and each swatch is the colour the
// scale assigns to the row's lower bound.
func Legend() []LegendEntry {
	entries := []LegendEntry{{Label: "No Partners", Min: 0, Max: 0, Color: ColorFor(0)}}

	lo := 1
	for i := len(thresholds) - 2; i >= 0; i-- {
		hi := int(thresholds[i].Above)
		entries = append(entries, legendRow(lo, hi))
		lo = hi + 1
	}
	return append(entries, legendRow(lo, legendCap))
}

func legendRow(lo, hi int) LegendEntry {
	label := strconv.Itoa(lo)
	if hi > lo {
		label += "–" + strconv.Itoa(hi)
	}
	return LegendEntry{Label: label, Min: lo, Max: hi, Color: ColorFor(float64(lo))}
}
