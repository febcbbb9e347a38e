// Package catalog holds the partner organisations offered in the map's
// partner dropdown.
package catalog

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/partner-map/internal/choropleth"
)

// defaultPartners is the dropdown list, in display order.
var defaultPartners = []string{
	"AMREF", "Africa Resoure Centre", "Afya Ugavi", "Afya Uwazi", "Boresha Jamii USAID",
	"CHAI", "CIHEB", "CIPS", "CMMB", "FIND", "Fahari ya Jamii", "Fred Hollows",
	"HJFMRI", "Hellen Keller International", "IPAS", "IQVIA", "IRDO", "JHPIEGO", "JTP",
	"Jacaranda BMGF", "Jamii Tekelezi CHAK", "LVCT", "Lwala Community", "MSF", "MSH",
	"Nuru ya Mtoto", "Nutrition International", "PATH", "PS Kenya", "Think Well",
	"UNFPA", "UNICEF", "USAID Ampath uzima", "USAID DUMISHA AFYA", "USAID Nawiri",
	"USAID Tujenge Jamii UTJ program", "USP PQM", "Vision Impact", "WHO", "WRP",
	"Waltered program", "Xetova Microvision", "inSupply",
}

// Catalog is an ordered list of partner display names.
type Catalog struct {
	Partners []string `yaml:"partners" json:"partners"`
}

// Default returns the built-in partner list.
func Default() *Catalog {
	partners := make([]string, len(defaultPartners))
	copy(partners, defaultPartners)
	return &Catalog{Partners: partners}
}

// Load reads a catalog from a YAML file with a top-level "partners" list.
// An empty path returns the built-in list.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse %s", path)
	}

	c.Partners = dedupe(c.Partners)
	if len(c.Partners) == 0 {
		return nil, eris.Errorf("catalog: %s lists no partners", path)
	}
	return &c, nil
}

// Contains reports whether name matches a catalog entry after normalization.
func (c *Catalog) Contains(name string) bool {
	want := choropleth.Normalize(name)
	if want == "" {
		return false
	}
	for _, p := range c.Partners {
		if choropleth.Normalize(p) == want {
			return true
		}
	}
	return false
}

// dedupe trims names and drops blanks and normalized duplicates, keeping the
// first spelling seen.
func dedupe(names []string) []string {
	seen := make(map[choropleth.PartnerName]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := choropleth.Normalize(n)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
