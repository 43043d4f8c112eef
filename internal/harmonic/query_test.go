package harmonic

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/franz/djtool/internal/key"
	"github.com/franz/djtool/internal/util"
)

type fixtureTrack struct {
	artist  string
	title   string
	bpm     float64
	key     string
	deleted int
}

// newMixxxFixture creates a throwaway Mixxx-shaped library database
func newMixxxFixture(t *testing.T, tracks []fixtureTrack) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mixxxdb.sqlite")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to create fixture database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE library (
			id INTEGER PRIMARY KEY,
			artist TEXT,
			title TEXT,
			album TEXT,
			bpm REAL,
			key TEXT,
			duration REAL,
			location TEXT,
			mixxx_deleted INTEGER DEFAULT 0
		)
	`)
	if err != nil {
		t.Fatalf("failed to create library table: %v", err)
	}

	for i, tr := range tracks {
		_, err := db.Exec(`
			INSERT INTO library (artist, title, album, bpm, key, duration, location, mixxx_deleted)
			VALUES (?, ?, 'Album', ?, ?, 200, ?, ?)
		`, tr.artist, tr.title, tr.bpm, tr.key,
			fmt.Sprintf("/music/%d.mp3", i), tr.deleted)
		if err != nil {
			t.Fatalf("failed to insert fixture track: %v", err)
		}
	}

	return path
}

func TestFindCompatibleFiltersAndRanks(t *testing.T) {
	path := newMixxxFixture(t, []fixtureTrack{
		{artist: "Exact Camelot", title: "t1", bpm: 126.5, key: "11B"},
		{artist: "Relative Minor", title: "t2", bpm: 128, key: "F♯m"},
		{artist: "Subdominant", title: "t3", bpm: 129.5, key: "D"},
		{artist: "Too Fast", title: "t4", bpm: 130.5, key: "A"},
		{artist: "Wrong Key", title: "t5", bpm: 128, key: "C"},
		{artist: "Deleted", title: "t6", bpm: 128, key: "A", deleted: 1},
	})

	q := NewQuery(path)
	tracks, err := q.FindCompatible(context.Background(), 128, "A", 2)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	if len(tracks) != 3 {
		t.Fatalf("expected 3 results, got %d: %+v", len(tracks), tracks)
	}

	// Exact key matches come first regardless of tempo distance, then
	// the rest ordered by distance from the query tempo.
	if tracks[0].Artist != "Exact Camelot" {
		t.Errorf("expected notation-equivalent exact match first, got %s", tracks[0].Artist)
	}
	if tracks[1].Artist != "Relative Minor" {
		t.Errorf("expected closest-tempo compatible second, got %s", tracks[1].Artist)
	}
	if tracks[2].Artist != "Subdominant" {
		t.Errorf("expected farthest-tempo compatible last, got %s", tracks[2].Artist)
	}

	if tracks[0].Tier != key.TierPerfect {
		t.Errorf("expected Perfect tier for 11B against A, got %v", tracks[0].Tier)
	}
	if tracks[1].Tier != key.TierGood {
		t.Errorf("expected Good tier for F♯m against A, got %v", tracks[1].Tier)
	}
	if tracks[2].Tier != key.TierGood {
		t.Errorf("expected Good tier for D against A, got %v", tracks[2].Tier)
	}
}

func TestFindCompatibleDefaultTolerance(t *testing.T) {
	path := newMixxxFixture(t, []fixtureTrack{
		{artist: "In Window", title: "t1", bpm: 129.9, key: "A"},
		{artist: "Out Of Window", title: "t2", bpm: 131, key: "A"},
	})

	q := NewQuery(path)
	tracks, err := q.FindCompatible(context.Background(), 128, "A", 0)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(tracks) != 1 || tracks[0].Artist != "In Window" {
		t.Errorf("expected default 2 BPM window, got %+v", tracks)
	}
}

func TestFindCompatibleMissingDatabase(t *testing.T) {
	q := NewQuery(filepath.Join(t.TempDir(), "no-such.sqlite"))

	if q.Available() {
		t.Error("Available should be false for a missing catalog")
	}

	tracks, err := q.FindCompatible(context.Background(), 128, "A", 2)
	if err != nil {
		t.Errorf("missing catalog should not be an error, got %v", err)
	}
	if tracks != nil {
		t.Errorf("expected empty result for missing catalog, got %+v", tracks)
	}
}

func TestFindCompatibleInvalidInput(t *testing.T) {
	q := NewQuery(newMixxxFixture(t, nil))

	cases := []struct {
		name      string
		bpm       float64
		key       string
		tolerance float64
	}{
		{"zero bpm", 0, "A", 2},
		{"negative bpm", -10, "A", 2},
		{"empty key", 128, "", 2},
		{"blank key", 128, "   ", 2},
		{"negative tolerance", 128, "A", -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := q.FindCompatible(context.Background(), tc.bpm, tc.key, tc.tolerance)
			if !errors.Is(err, util.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestFindCompatibleResultCap(t *testing.T) {
	var tracks []fixtureTrack
	for i := 0; i < 60; i++ {
		tracks = append(tracks, fixtureTrack{
			artist: fmt.Sprintf("Artist %d", i),
			title:  fmt.Sprintf("Track %d", i),
			bpm:    128,
			key:    "A",
		})
	}
	q := NewQuery(newMixxxFixture(t, tracks))

	got, err := q.FindCompatible(context.Background(), 128, "A", 2)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 50 {
		t.Errorf("expected result cap of 50, got %d", len(got))
	}
}

func TestFindCompatibleUnknownKeyMatchesItself(t *testing.T) {
	path := newMixxxFixture(t, []fixtureTrack{
		{artist: "Same Oddball", title: "t1", bpm: 128, key: "X9"},
		{artist: "Other", title: "t2", bpm: 128, key: "A"},
	})

	q := NewQuery(path)
	got, err := q.FindCompatible(context.Background(), 128, "X9", 2)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 1 || got[0].Artist != "Same Oddball" {
		t.Errorf("expected identity fallback match only, got %+v", got)
	}
	if got[0].Tier != key.TierPerfect {
		t.Errorf("expected Perfect tier for identical unknown key, got %v", got[0].Tier)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{-5, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{185.7, "3:05"},
		{3600, "60:00"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%g) = %s, want %s", tc.seconds, got, tc.want)
		}
	}
}
