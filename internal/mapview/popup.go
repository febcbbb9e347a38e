package mapview

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/sells-group/partner-map/internal/dataset"
)

// NoPartnerData is shown in a popup when a county lists no partners.
const NoPartnerData = "No data available"

var popupTmpl = template.Must(template.New("popup").Parse(
	`<strong>County:</strong> {{.County}}<br>` +
		`<strong>Total Partners:</strong> {{.Total}}<br>` +
		`<strong>Partners:</strong> {{.Partners}}`))

// PopupHTML renders the popup shown when a county is clicked. Values are
// HTML-escaped.
func PopupHTML(c dataset.County) string {
	partners := c.Entities
	if partners == "" {
		partners = NoPartnerData
	}

	var buf bytes.Buffer
	// Execute only fails on a writer error, which bytes.Buffer never returns.
	_ = popupTmpl.Execute(&buf, struct {
		County, Total, Partners string
	}{
		County:   c.Name,
		Total:    strconv.FormatFloat(c.TotalPartners, 'f', -1, 64),
		Partners: partners,
	})
	return buf.String()
}

// LabelText is the text drawn at a county's label anchor.
func LabelText(c dataset.County) string {
	if c.Name == "" {
		return dataset.UnknownCounty
	}
	return c.Name
}
