package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/partner-map/internal/choropleth"
	"github.com/sells-group/partner-map/internal/dataset"
)

func TestPopupHTML(t *testing.T) {
	c := dataset.County{
		CountyFeature: choropleth.CountyFeature{ID: "Nairobi", TotalPartners: 5, Entities: "AMREF, CHAI"},
		Name:          "Nairobi",
	}
	assert.Equal(t,
		"<strong>County:</strong> Nairobi<br><strong>Total Partners:</strong> 5<br><strong>Partners:</strong> AMREF, CHAI",
		PopupHTML(c))
}

func TestPopupHTML_NoPartners(t *testing.T) {
	c := dataset.County{CountyFeature: choropleth.CountyFeature{ID: "Turkana"}, Name: "Turkana"}
	assert.Contains(t, PopupHTML(c), "<strong>Partners:</strong> No data available")
	assert.Contains(t, PopupHTML(c), "<strong>Total Partners:</strong> 0<br>")
}

func TestPopupHTML_Escapes(t *testing.T) {
	c := dataset.County{
		CountyFeature: choropleth.CountyFeature{ID: "x", Entities: "<script>alert(1)</script>"},
		Name:          "Tana & River",
	}
	html := PopupHTML(c)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "Tana &amp; River")
}

func TestLabelText(t *testing.T) {
	assert.Equal(t, "Kisumu", LabelText(dataset.County{Name: "Kisumu"}))
	assert.Equal(t, dataset.UnknownCounty, LabelText(dataset.County{}))
}
