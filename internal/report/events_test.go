package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open event log: %v", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("malformed JSONL line %q: %v", scanner.Text(), err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to read event log: %v", err)
	}
	return events
}

func TestEventLoggerWritesJSONL(t *testing.T) {
	logger, err := NewEventLogger(t.TempDir(), LevelDebug)
	if err != nil {
		t.Fatalf("failed to create event logger: %v", err)
	}

	if logger.Path() == "" {
		t.Error("expected non-empty log path")
	}

	logger.LogScan("/music/a.mp3", "abc123", 2048)
	logger.LogSkip("/music/b.mp3")
	logger.LogAnalyze("/music/a.mp3", "new file")
	logger.LogError("/music/c.mp3", errors.New("probe failed"))
	logger.LogSession(3, 1, 0, 1500*time.Millisecond)

	if err := logger.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	events := readEvents(t, logger.Path())
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(events))
	}

	if events[0].Event != EventScan || events[0].Hash != "abc123" {
		t.Errorf("unexpected scan event: %+v", events[0])
	}
	if events[0].Extra["size_bytes"] != "2048" {
		t.Errorf("expected size in extra, got %v", events[0].Extra)
	}
	if events[1].Event != EventSkip || events[1].Reason == "" {
		t.Errorf("unexpected skip event: %+v", events[1])
	}
	if events[3].Event != EventError || events[3].Error != "probe failed" {
		t.Errorf("unexpected error event: %+v", events[3])
	}
	if events[4].Event != EventSession || events[4].Extra["new_files"] != "1" {
		t.Errorf("unexpected session event: %+v", events[4])
	}
	for i, e := range events {
		if e.Timestamp.IsZero() {
			t.Errorf("event %d missing timestamp", i)
		}
	}
}

func TestEventLoggerMinLevel(t *testing.T) {
	logger, err := NewEventLogger(t.TempDir(), LevelInfo)
	if err != nil {
		t.Fatalf("failed to create event logger: %v", err)
	}

	logger.LogScan("/music/a.mp3", "abc", 100) // debug, filtered
	logger.LogSkip("/music/a.mp3")             // debug, filtered
	logger.LogAnalyze("/music/a.mp3", "new file")
	logger.LogError("/music/b.mp3", errors.New("boom"))

	if err := logger.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	events := readEvents(t, logger.Path())
	if len(events) != 2 {
		t.Fatalf("expected debug events filtered out, got %d events", len(events))
	}
	if events[0].Event != EventAnalyze || events[1].Event != EventError {
		t.Errorf("unexpected surviving events: %+v", events)
	}
}

func TestNullLogger(t *testing.T) {
	logger := NullLogger()

	if logger.Path() != "" {
		t.Errorf("null logger should have empty path, got %q", logger.Path())
	}
	if err := logger.LogScan("/music/a.mp3", "abc", 100); err != nil {
		t.Errorf("null logger should discard silently, got %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("null logger close should be a no-op, got %v", err)
	}

	var nilLogger *EventLogger
	if err := nilLogger.LogError("/music/a.mp3", errors.New("boom")); err != nil {
		t.Errorf("nil logger should be safe to call, got %v", err)
	}
}
