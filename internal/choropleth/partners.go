package choropleth

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PartnerName is a trimmed, lower-cased partner organisation name.
type PartnerName string

// PartnerSet is a set of normalized partner names.
type PartnerSet map[PartnerName]struct{}

// Normalize trims and lower-cases a partner name. An all-space name normalizes
// to the empty string.
func Normalize(name string) PartnerName {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	// A Caser is stateful, so each call gets its own.
	return PartnerName(cases.Lower(language.Und).String(trimmed))
}

// NewPartnerSet builds a set from already separated names, dropping blanks.
func NewPartnerSet(names ...string) PartnerSet {
	set := make(PartnerSet, len(names))
	for _, n := range names {
		if p := Normalize(n); p != "" {
			set[p] = struct{}{}
		}
	}
	return set
}

// ParsePartners splits a comma-separated partner field into a set. Empty
// input yields an empty set.
func ParsePartners(entities string) PartnerSet {
	if strings.TrimSpace(entities) == "" {
		return PartnerSet{}
	}
	return NewPartnerSet(strings.Split(entities, ",")...)
}

// PartnersOf returns the partner set of a county, preferring the list form
// when the source provided one.
func PartnersOf(f CountyFeature) PartnerSet {
	if f.PartnerList != nil {
		return NewPartnerSet(f.PartnerList...)
	}
	return ParsePartners(f.Entities)
}

// Contains reports whether name, once normalized, is in the set.
func (s PartnerSet) Contains(name string) bool {
	p := Normalize(name)
	if p == "" {
		return false
	}
	_, ok := s[p]
	return ok
}

// Len returns the number of distinct partners.
func (s PartnerSet) Len() int {
	return len(s)
}

// Sorted returns the set members in lexical order.
func (s PartnerSet) Sorted() []PartnerName {
	out := make([]PartnerName, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
