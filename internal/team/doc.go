// Package team provides the core record types for NFL team seasons.
//
// The team package defines TeamSeason, the one-row-per-(year, team) record
// that the whole pipeline consumes, along with parsing helpers for W-L-T
// triple strings ("11-5-1") and the canonical franchise-name table that folds
// relocations and renames (Oakland Raiders, San Diego Chargers, ...) onto
// current franchise names.
package team
