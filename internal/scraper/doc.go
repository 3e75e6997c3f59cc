// Package scraper provides HTTP fetching and HTML parsing for NFL season
// standings and Super Bowl results.
//
// The scraper fetches public standings pages and extracts one raw record
// per team season: wins, losses, ties, points, and whatever situational
// splits the page carries. Column layouts differ between sources and eras,
// so parsing is driven by a Schema — an ordered list of column roles —
// rather than hard-coded cell positions. A second parser extracts the
// Super Bowl winners list used to stamp the championship label.
package scraper
