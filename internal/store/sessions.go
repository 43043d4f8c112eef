package store

import "fmt"

// RecordSession appends one scan session row. Sessions are immutable
// history; nothing updates or deletes them.
func (s *Store) RecordSession(session *ScanSession) error {
	result, err := s.db.Exec(`
		INSERT INTO scan_sessions (files_found, new_files, updated_files, scan_duration)
		VALUES (?, ?, ?, ?)
	`, session.FilesFound, session.NewFiles, session.UpdatedFiles, session.DurationSec)

	if err != nil {
		return fmt.Errorf("failed to record scan session: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		session.ID = id
	}

	return nil
}

// Sessions returns the most recent scan sessions, newest first.
// A limit of 0 returns all of them.
func (s *Store) Sessions(limit int) ([]*ScanSession, error) {
	query := `
		SELECT id, scan_date, files_found, new_files, updated_files, scan_duration
		FROM scan_sessions
		ORDER BY id DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*ScanSession
	for rows.Next() {
		sess := &ScanSession{}
		err := rows.Scan(&sess.ID, &sess.ScanDate, &sess.FilesFound,
			&sess.NewFiles, &sess.UpdatedFiles, &sess.DurationSec)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}
