package util

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
)

// fingerprintWindow is how many bytes are hashed from each end of a file.
// Hashing two 64 KiB windows instead of the whole file trades collision
// resistance for scan speed on large audio files. This is a change
// signature, not a security primitive.
const fingerprintWindow = 64 * 1024

// Fingerprint is a cheap change-sensitive signature for a file: a hash of
// its head and tail windows plus filesystem size and mtime.
type Fingerprint struct {
	Hash      string
	Size      int64
	MtimeUnix int64
}

// Changed reports whether a freshly computed fingerprint differs from a
// stored one in a way that requires re-analysis. Size alone is not
// consulted; the hash windows already cover content edits and mtime covers
// retagging tools that rewrite in place.
func (fp Fingerprint) Changed(prev Fingerprint) bool {
	return fp.Hash != prev.Hash || fp.MtimeUnix != prev.MtimeUnix
}

// ComputeFingerprint hashes the first and last 64 KiB of the file at path.
// Files between 64 and 128 KiB succeed with overlapping windows; files
// smaller than a single window fail with ErrTooSmall, mirroring the tail
// seek failing. Errors here mean "no fingerprint available" and must not
// abort a scan.
func ComputeFingerprint(path string) (Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() < fingerprintWindow {
		return Fingerprint{}, fmt.Errorf("%s: %w", path, ErrTooSmall)
	}

	h := md5.New()
	head := make([]byte, fingerprintWindow)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return Fingerprint{}, fmt.Errorf("failed to read head window: %w", err)
	}
	h.Write(head[:n])

	if _, err := f.Seek(-fingerprintWindow, io.SeekEnd); err != nil {
		return Fingerprint{}, fmt.Errorf("failed to seek tail window: %w", err)
	}
	tail := make([]byte, fingerprintWindow)
	n, err = io.ReadFull(f, tail)
	if err != nil && err != io.ErrUnexpectedEOF {
		return Fingerprint{}, fmt.Errorf("failed to read tail window: %w", err)
	}
	h.Write(tail[:n])

	return Fingerprint{
		Hash:      fmt.Sprintf("%x", h.Sum(nil)),
		Size:      info.Size(),
		MtimeUnix: info.ModTime().Unix(),
	}, nil
}
