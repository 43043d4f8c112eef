// Package harmonic answers compatibility queries against an external
// Mixxx track catalog: given a tempo and key, find tracks in a
// harmonically compatible key within a tempo window.
package harmonic

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/franz/djtool/internal/key"
	"github.com/franz/djtool/internal/util"
	_ "modernc.org/sqlite"
)

// DefaultTolerance is the BPM window applied when the caller does not
// choose one.
const DefaultTolerance = 2.0

// maxResults caps a single query's result list
const maxResults = 50

// Track is one read-only query result from the external catalog
type Track struct {
	Artist      string
	Title       string
	Album       string
	BPM         float64
	Key         string
	DurationSec float64
	Location    string
	Tier        key.Tier
}

// Query runs compatibility searches against a Mixxx library database.
// The database is read-only from this side and opened per call; Mixxx may
// rewrite it between queries.
type Query struct {
	dbPath string
}

// NewQuery creates a query handle for the Mixxx database at dbPath
func NewQuery(dbPath string) *Query {
	return &Query{dbPath: dbPath}
}

// Available reports whether the external catalog file exists
func (q *Query) Available() bool {
	_, err := os.Stat(q.dbPath)
	return err == nil
}

// FindCompatible returns up to 50 non-deleted tracks whose key is in the
// compatible-key set of k and whose BPM lies within tolerance of bpm.
// Exact key matches (normalized) sort first, then ascending distance from
// the query tempo. A missing or broken catalog yields an empty list, not
// an error; only malformed input is an error.
func (q *Query) FindCompatible(ctx context.Context, bpm float64, k string, tolerance float64) ([]Track, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("%w: bpm must be positive, got %g", util.ErrInvalidInput, bpm)
	}
	if strings.TrimSpace(k) == "" {
		return nil, fmt.Errorf("%w: key is required", util.ErrInvalidInput)
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("%w: tolerance must not be negative", util.ErrInvalidInput)
	}
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}

	if !q.Available() {
		util.DebugLog("Mixxx database not found at %s", q.dbPath)
		return nil, nil
	}

	compatible := key.CompatibleKeys(k)
	if len(compatible) == 0 {
		compatible = []string{k}
	}
	exact := key.Spellings(k)
	if len(exact) == 0 {
		exact = []string{k}
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", q.dbPath))
	if err != nil {
		util.WarnLog("Failed to open Mixxx database: %v", err)
		return nil, nil
	}
	defer db.Close()

	query := fmt.Sprintf(`
		SELECT COALESCE(artist, ''), COALESCE(title, ''), COALESCE(album, ''),
		       COALESCE(bpm, 0), COALESCE(key, ''), COALESCE(duration, 0),
		       COALESCE(location, '')
		FROM library
		WHERE bpm BETWEEN ? AND ?
		AND key IN (%s)
		AND mixxx_deleted = 0
		ORDER BY
			CASE WHEN key IN (%s) THEN 0 ELSE 1 END,
			ABS(bpm - ?) ASC
		LIMIT %d
	`, placeholders(len(compatible)), placeholders(len(exact)), maxResults)

	args := make([]interface{}, 0, len(compatible)+len(exact)+3)
	args = append(args, bpm-tolerance, bpm+tolerance)
	for _, c := range compatible {
		args = append(args, c)
	}
	for _, e := range exact {
		args = append(args, e)
	}
	args = append(args, bpm)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		util.WarnLog("Mixxx library query failed: %v", err)
		return nil, nil
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		var t Track
		if err := rows.Scan(&t.Artist, &t.Title, &t.Album, &t.BPM, &t.Key,
			&t.DurationSec, &t.Location); err != nil {
			util.WarnLog("Failed to scan Mixxx library row: %v", err)
			return nil, nil
		}
		t.Tier = key.TierFor(k, t.Key)
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		util.WarnLog("Mixxx library query failed: %v", err)
		return nil, nil
	}

	return tracks, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// FormatDuration renders track seconds as M:SS for display
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
