// Package store provides SQLite-based persistence for scraped team
// seasons.
//
// Scraping is the slow, rate-limited part of the pipeline, so records are
// cached locally between runs. The store keeps one row per (year, team)
// with upsert semantics: re-scraping a season refreshes it in place. The
// analysis commands read year ranges back out without touching the
// network.
package store
