// Package cli implements the gridiron command line interface: scraping
// seasons into the local store, exporting the consolidated dataset,
// correlation analysis, Super Bowl prediction, chart export, and the JSON
// API server.
package cli
