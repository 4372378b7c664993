// Package tui implements the interactive player picker for zonectl.
//
// The picker shows a spinner while network discovery runs, then a filterable
// list of the discovered players. Selecting a player returns its handle to
// the caller; 'r' rescans (resetting the discovery cache) and 'q' quits.
package tui
