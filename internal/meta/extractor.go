// Package meta extracts audio metadata for the library indexer. ffprobe is
// the primary source; the pure-Go tag reader covers machines without
// ffmpeg installed. BPM and musical key are never produced here - the
// catalog records them as null and the Mixxx library remains the only
// source for them.
package meta

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dhowden/tag"
	"github.com/franz/djtool/internal/util"
)

// DefaultTimeout bounds a single ffprobe invocation. A hung probe fails
// that file's analysis, never the scan.
const DefaultTimeout = 30 * time.Second

// TrackInfo is the structured result of analyzing one file
type TrackInfo struct {
	DurationSec float64
	Artist      string
	Title       string
	Album       string
	Genre       string
}

// Extractor analyzes audio files via ffprobe with a tag-library fallback
type Extractor struct {
	Timeout time.Duration
}

// New creates an extractor with the default timeout
func New() *Extractor {
	return &Extractor{Timeout: DefaultTimeout}
}

// Extract analyzes the file at path and returns its metadata
func (e *Extractor) Extract(ctx context.Context, path string) (*TrackInfo, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	info, err := RunFFprobe(ctx, path)
	if err == nil {
		f := info.Format
		artist := f.Tag("artist")
		if artist == "" {
			artist = f.Tag("albumartist")
		}
		return &TrackInfo{
			DurationSec: f.DurationSeconds(),
			Artist:      artist,
			Title:       f.Tag("title"),
			Album:       f.Tag("album"),
			Genre:       f.Tag("genre"),
		}, nil
	}

	if errors.Is(err, util.ErrNotFound) {
		// No ffprobe on this machine; tags still beat nothing
		return extractWithTag(path)
	}
	return nil, err
}

// extractWithTag reads container tags with the dhowden/tag library.
// It cannot report duration, so DurationSec stays zero.
func extractWithTag(path string) (*TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	artist := m.Artist()
	if artist == "" {
		artist = m.AlbumArtist()
	}

	return &TrackInfo{
		Artist: artist,
		Title:  m.Title(),
		Album:  m.Album(),
		Genre:  m.Genre(),
	}, nil
}
