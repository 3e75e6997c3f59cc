// Package features derives per-season scalar metrics from raw team records.
//
// Every function here is pure: a FeatureSet is computed from a TeamSeason
// (plus its same-year siblings for the above-average metrics) and the raw
// record is never mutated. Missing source data follows one policy
// throughout — unavailable splits contribute 0, and divisions by zero are
// defined as 0 rather than NaN.
package features
