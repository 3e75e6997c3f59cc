// Package dataset reads and writes the tabular team-season datasets that
// feed the pipeline.
//
// Ingestion is a single parameterized step: one header-alias table maps the
// column names of every supported source CSV onto the canonical TeamSeason
// schema, and one cleaning policy (missing or malformed numeric fields
// become 0) is applied here and nowhere else. Export produces the
// consolidated CSV with raw columns followed by the derived feature
// columns.
package dataset
