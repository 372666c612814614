// Package store provides typed table access over the rowstore. Lookups scan
// the full table and index rows by their key column; updates overwrite only
// the supplied fields (read-modify-write, no concurrency check).
package store

import (
	"strconv"

	"github.com/scrimhub/scrimhub/internal/rowstore"
)

// Table names as they appear in the backing spreadsheet.
const (
	TableUsers         = "users"
	TableClans         = "clans"
	TableClanRequests  = "clan_requests"
	TableTournaments   = "tournaments"
	TableRegistrations = "registrations"
	TableLeaderboard   = "leaderboard"
	TablePartners      = "partners"
	TableMessages      = "messages"
)

// ErrNotFound is returned when no row matches the requested key.
var ErrNotFound = rowstore.ErrRowNotFound

// Tables lists every table the stores expect to exist.
func Tables() []string {
	return []string{
		TableUsers, TableClans, TableClanRequests, TableTournaments,
		TableRegistrations, TableLeaderboard, TablePartners, TableMessages,
	}
}

func indexByKey(rows []rowstore.Row, column string) map[string]rowstore.Row {
	idx := make(map[string]rowstore.Row, len(rows))
	for _, r := range rows {
		if key := r.Get(column); key != "" {
			idx[key] = r
		}
	}
	return idx
}

func findByKey(rows []rowstore.Row, column, value string) rowstore.Row {
	return indexByKey(rows, column)[value]
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
