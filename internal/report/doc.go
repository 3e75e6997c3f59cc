// Package report renders analysis results for humans: text and JSON
// writers for correlations, model diagnostics, and rankings, plus HTML
// chart export.
package report
