package meta

import (
	"encoding/json"
	"testing"
)

func TestFormatTagCaseInsensitive(t *testing.T) {
	f := &FFprobeFormat{Tags: map[string]string{
		"ARTIST": "Loud Person",
		"Title":  "Song",
		"album":  "Record",
	}}

	if got := f.Tag("artist"); got != "Loud Person" {
		t.Errorf("expected uppercase tag to match, got %q", got)
	}
	if got := f.Tag("TITLE"); got != "Song" {
		t.Errorf("expected mixed-case tag to match, got %q", got)
	}
	if got := f.Tag("Album"); got != "Record" {
		t.Errorf("expected lowercase tag to match, got %q", got)
	}
	if got := f.Tag("genre"); got != "" {
		t.Errorf("expected empty string for missing tag, got %q", got)
	}
}

func TestDurationSeconds(t *testing.T) {
	cases := []struct {
		duration string
		want     float64
	}{
		{"185.481000", 185.481},
		{"0", 0},
		{"", 0},
		{"N/A", 0},
	}
	for _, tc := range cases {
		f := &FFprobeFormat{Duration: tc.duration}
		if got := f.DurationSeconds(); got != tc.want {
			t.Errorf("DurationSeconds(%q) = %g, want %g", tc.duration, got, tc.want)
		}
	}
}

func TestFFprobeOutputParsing(t *testing.T) {
	raw := `{
		"format": {
			"filename": "/music/track.flac",
			"format_name": "flac",
			"duration": "241.200000",
			"tags": {
				"ARTIST": "Someone",
				"TITLE": "Something",
				"ALBUMARTIST": "Somebody Else"
			}
		}
	}`

	var info FFprobeInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		t.Fatalf("failed to parse ffprobe output: %v", err)
	}
	if info.Format == nil {
		t.Fatal("expected format block")
	}
	if info.Format.DurationSeconds() != 241.2 {
		t.Errorf("unexpected duration: %g", info.Format.DurationSeconds())
	}
	if info.Format.Tag("artist") != "Someone" {
		t.Errorf("unexpected artist: %q", info.Format.Tag("artist"))
	}
	if info.Format.Tag("albumartist") != "Somebody Else" {
		t.Errorf("unexpected albumartist: %q", info.Format.Tag("albumartist"))
	}
}
