// Package report writes machine-readable scan event logs as JSONL, one
// event per line, for later auditing of what a scan did and why.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType represents the type of event
type EventType string

const (
	EventScan    EventType = "scan"    // candidate fingerprinted
	EventSkip    EventType = "skip"    // fingerprint unchanged, analysis skipped
	EventAnalyze EventType = "analyze" // metadata extracted and upserted
	EventError   EventType = "error"   // per-file failure, scan continued
	EventSession EventType = "session" // scan run completed
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event represents a single scan event
type Event struct {
	Timestamp time.Time         `json:"ts"`
	Level     EventLevel        `json:"level"`
	Event     EventType         `json:"event"`
	Path      string            `json:"path,omitempty"`
	Hash      string            `json:"hash,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Error     string            `json:"error,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// EventLogger writes events to a JSONL file
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	minLevel EventLevel
}

// NewEventLogger creates a new event logger writing to outputDir.
// minLevel determines which events are written.
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(outputDir, fmt.Sprintf("scan-%s.jsonl", timestamp))

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		minLevel: minLevel,
	}, nil
}

// NullLogger returns a logger that silently discards all events
func NullLogger() *EventLogger {
	return &EventLogger{}
}

// Path returns the log file path, or "" for a null logger
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil
	}

	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return nil
}

// Close closes the underlying log file
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// LogScan logs a fingerprinted candidate
func (l *EventLogger) LogScan(path, hash string, sizeBytes int64) error {
	return l.Log(&Event{
		Level: LevelDebug,
		Event: EventScan,
		Path:  path,
		Hash:  hash,
		Extra: map[string]string{
			"size_bytes": fmt.Sprintf("%d", sizeBytes),
		},
	})
}

// LogSkip logs a file whose fingerprint was unchanged
func (l *EventLogger) LogSkip(path string) error {
	return l.Log(&Event{
		Level:  LevelDebug,
		Event:  EventSkip,
		Path:   path,
		Reason: "fingerprint unchanged",
	})
}

// LogAnalyze logs a successful metadata extraction and upsert
func (l *EventLogger) LogAnalyze(path, reason string) error {
	return l.Log(&Event{
		Level:  LevelInfo,
		Event:  EventAnalyze,
		Path:   path,
		Reason: reason,
	})
}

// LogError logs a per-file failure that the scan survived
func (l *EventLogger) LogError(path string, err error) error {
	return l.Log(&Event{
		Level: LevelWarning,
		Event: EventError,
		Path:  path,
		Error: err.Error(),
	})
}

// LogSession logs the aggregate result of a completed scan
func (l *EventLogger) LogSession(found, newFiles, updated int, duration time.Duration) error {
	return l.Log(&Event{
		Level: LevelInfo,
		Event: EventSession,
		Extra: map[string]string{
			"files_found":   fmt.Sprintf("%d", found),
			"new_files":     fmt.Sprintf("%d", newFiles),
			"updated_files": fmt.Sprintf("%d", updated),
			"duration_ms":   fmt.Sprintf("%d", duration.Milliseconds()),
		},
	})
}
