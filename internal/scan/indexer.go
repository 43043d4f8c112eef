// Package scan implements the incremental library indexer: it walks a
// music directory, detects new and changed files by content fingerprint,
// runs metadata extraction only for those, and records the results in the
// catalog.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/franz/djtool/internal/meta"
	"github.com/franz/djtool/internal/report"
	"github.com/franz/djtool/internal/store"
	"github.com/franz/djtool/internal/util"
	"github.com/gofrs/flock"
)

// AudioExtensions are the default supported audio file extensions
var AudioExtensions = []string{
	".mp3",
	".flac",
	".wav",
	".m4a",
	".aac",
	".ogg",
	".wma",
}

// Extractor analyzes one audio file and returns its metadata. The real
// implementation shells out to ffprobe; tests substitute their own.
type Extractor interface {
	Extract(ctx context.Context, path string) (*meta.TrackInfo, error)
}

// ProgressFunc receives scan progress. It is purely observational: it may
// be nil, slow or called any number of times without affecting the scan.
type ProgressFunc func(current, total int, path string)

// Indexer scans a directory tree into the catalog
type Indexer struct {
	store      *store.Store
	extractor  Extractor
	extensions map[string]bool
	logger     *report.EventLogger
	lockPath   string
}

// Config holds indexer configuration
type Config struct {
	Store          *store.Store
	Extractor      Extractor
	AdditionalExts []string
	Logger         *report.EventLogger
	// LockPath is a sidecar flock file guarding the catalog against
	// concurrent scans. Empty disables locking.
	LockPath string
}

// New creates a new Indexer
func New(cfg *Config) *Indexer {
	// Build extension map (case-insensitive)
	extMap := make(map[string]bool)
	for _, ext := range AudioExtensions {
		extMap[strings.ToLower(ext)] = true
	}
	for _, ext := range cfg.AdditionalExts {
		extMap[strings.ToLower(ext)] = true
	}

	return &Indexer{
		store:      cfg.Store,
		extractor:  cfg.Extractor,
		extensions: extMap,
		logger:     cfg.Logger,
		lockPath:   cfg.LockPath,
	}
}

// Result is the aggregate outcome of one scan run
type Result struct {
	FilesFound   int
	NewFiles     int
	UpdatedFiles int
	Duration     time.Duration
	Errors       []error
}

// Scan walks root and brings the catalog up to date. Per-file failures
// (unreadable file, failed fingerprint, failed extraction) are logged,
// collected in Result.Errors and never abort the run; only a failure to
// enumerate root itself, or losing the catalog, is fatal.
func (ix *Indexer) Scan(ctx context.Context, root string, onProgress ProgressFunc) (*Result, error) {
	if ix.lockPath != "" {
		lock := flock.New(ix.lockPath)
		ok, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire scan lock: %w", err)
		}
		if !ok {
			return nil, util.ErrScanInProgress
		}
		defer lock.Unlock()
	}

	start := time.Now()
	result := &Result{}

	candidates, err := ix.enumerate(root)
	if err != nil {
		return nil, err
	}
	util.InfoLog("Found %d audio files under %s", len(candidates), root)

	total := len(candidates)
	for i, path := range candidates {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := ix.processFile(ctx, path, result); err != nil {
			util.WarnLog("Skipping %s: %v", path, err)
			ix.logger.LogError(path, err)
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", path, err))
		}

		if onProgress != nil {
			onProgress(i+1, total, path)
		}
	}

	result.Duration = time.Since(start)

	session := &store.ScanSession{
		FilesFound:   result.FilesFound,
		NewFiles:     result.NewFiles,
		UpdatedFiles: result.UpdatedFiles,
		DurationSec:  result.Duration.Seconds(),
	}
	if err := ix.store.RecordSession(session); err != nil {
		return result, fmt.Errorf("failed to record scan session: %w", err)
	}
	ix.logger.LogSession(result.FilesFound, result.NewFiles, result.UpdatedFiles, result.Duration)

	util.SuccessLog("Scan complete: %d found, %d new, %d updated in %v",
		result.FilesFound, result.NewFiles, result.UpdatedFiles,
		result.Duration.Round(time.Millisecond))

	return result, nil
}

// enumerate collects candidate audio files under root in walk order.
// The extension check is case-insensitive, so FOO.MP3 and foo.mp3 each
// match exactly once. Unreadable subtrees are skipped with a warning; an
// unreadable root is fatal.
func (ix *Indexer) enumerate(root string) ([]string, error) {
	var candidates []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("failed to enumerate %s: %w", root, err)
			}
			util.WarnLog("Error accessing path %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if ix.isAudioFile(path) {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return candidates, nil
}

// processFile runs the fingerprint/lookup/analyze pipeline for one
// candidate. A returned error means the file contributed nothing to the
// counters this run.
func (ix *Indexer) processFile(ctx context.Context, path string, result *Result) error {
	fp, err := util.ComputeFingerprint(path)
	if err != nil {
		return fmt.Errorf("fingerprint failed: %w", err)
	}
	ix.logger.LogScan(path, fp.Hash, fp.Size)

	prior, err := ix.store.LookupFile(path)
	if err != nil {
		return fmt.Errorf("catalog lookup failed: %w", err)
	}

	result.FilesFound++

	isNew := prior == nil
	changed := !isNew && fp.Changed(util.Fingerprint{Hash: prior.Hash, MtimeUnix: prior.MtimeUnix})

	if !isNew && !changed {
		// Unchanged fingerprint: the whole point of the catalog is to
		// skip re-analysis here
		util.DebugLog("Unchanged: %s", path)
		ix.logger.LogSkip(path)
		return nil
	}

	info, err := ix.extractor.Extract(ctx, path)
	if err != nil {
		// The analysis attempt failed, not the file: any prior record
		// stays untouched and the file counts as neither new nor updated
		return fmt.Errorf("analysis failed: %w", err)
	}

	rec := &store.ScannedFile{
		Path:        path,
		Hash:        fp.Hash,
		SizeBytes:   fp.Size,
		MtimeUnix:   fp.MtimeUnix,
		DurationSec: info.DurationSec,
		Artist:      info.Artist,
		Title:       info.Title,
		Album:       info.Album,
		Genre:       info.Genre,
	}
	if err := ix.store.UpsertFile(rec); err != nil {
		return fmt.Errorf("catalog upsert failed: %w", err)
	}

	if isNew {
		result.NewFiles++
		ix.logger.LogAnalyze(path, "new file")
	} else {
		result.UpdatedFiles++
		ix.logger.LogAnalyze(path, "fingerprint changed")
	}
	return nil
}

// isAudioFile checks if a file has a supported audio extension
func (ix *Indexer) isAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ix.extensions[ext]
}

// SupportedExtensions returns the configured extension list
func (ix *Indexer) SupportedExtensions() []string {
	exts := make([]string, 0, len(ix.extensions))
	for ext := range ix.extensions {
		exts = append(exts, ext)
	}
	return exts
}
