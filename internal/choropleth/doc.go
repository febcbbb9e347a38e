// Package choropleth computes county styles for the partner map: the six-bucket
// colour scale, per-county default and highlight styles, partner list parsing,
// and the filter that decides which counties a selected partner highlights.
// Everything here is pure; applying styles to map layers is the caller's job.
package choropleth
