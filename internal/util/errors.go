package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrNotFound indicates a required resource was not found
	ErrNotFound = errors.New("not found")

	// ErrTooSmall indicates a file is smaller than the fingerprint read window
	ErrTooSmall = errors.New("file smaller than fingerprint window")

	// ErrScanInProgress indicates another scan holds the catalog lock
	ErrScanInProgress = errors.New("a scan is already running against this catalog")

	// ErrInvalidInput indicates malformed query input
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupported indicates a file format or operation is not supported
	ErrUnsupported = errors.New("unsupported")
)
