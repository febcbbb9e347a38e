package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/partner-map/internal/catalog"
	"github.com/sells-group/partner-map/internal/choropleth"
)

func TestWriteLegend_Text(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeLegend(&out, "text"))

	s := out.String()
	assert.Contains(t, s, choropleth.LegendTitle)
	assert.Contains(t, s, "No Partners")
	assert.Contains(t, s, "#08306b")
	assert.Contains(t, s, "10–12")
}

func TestWriteLegend_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeLegend(&out, "json"))

	var body struct {
		Entries []choropleth.LegendEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Len(t, body.Entries, 6)
}

func TestWriteLegend_UnknownFormat(t *testing.T) {
	assert.Error(t, writeLegend(&bytes.Buffer{}, "svg"))
}

func TestWritePartners(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writePartners(&out, catalog.Default()))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	assert.Len(t, lines, 43)
	assert.Equal(t, "AMREF", string(lines[0]))
}
