package store

import (
	"database/sql"
	"fmt"
)

// UpsertFile inserts or replaces the catalog record for a path. The write
// is a single statement, so a concurrent reader sees either the old row or
// the new one, never a partial overwrite.
func (s *Store) UpsertFile(f *ScannedFile) error {
	result, err := s.db.Exec(`
		INSERT INTO scanned_files (
			file_path, file_hash, file_size, mtime_unix,
			duration_sec, bpm, key, artist, title, album, genre
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_path) DO UPDATE SET
			file_hash = excluded.file_hash,
			file_size = excluded.file_size,
			mtime_unix = excluded.mtime_unix,
			duration_sec = excluded.duration_sec,
			bpm = excluded.bpm,
			key = excluded.key,
			artist = excluded.artist,
			title = excluded.title,
			album = excluded.album,
			genre = excluded.genre,
			scan_date = CURRENT_TIMESTAMP
		`, f.Path, f.Hash, f.SizeBytes, f.MtimeUnix,
		f.DurationSec, f.BPM, f.Key, f.Artist, f.Title, f.Album, f.Genre)

	if err != nil {
		return fmt.Errorf("failed to upsert file: %w", err)
	}

	if f.ID == 0 {
		id, err := result.LastInsertId()
		if err == nil && id != 0 {
			f.ID = id
		} else {
			err = s.db.QueryRow("SELECT id FROM scanned_files WHERE file_path = ?", f.Path).Scan(&f.ID)
			if err != nil {
				return fmt.Errorf("failed to get file ID: %w", err)
			}
		}
	}

	return nil
}

const scannedFileColumns = `
	id, file_path, COALESCE(file_hash, ''), COALESCE(file_size, 0),
	COALESCE(mtime_unix, 0), COALESCE(duration_sec, 0), bpm, key,
	COALESCE(artist, ''), COALESCE(title, ''), COALESCE(album, ''),
	COALESCE(genre, ''), scan_date`

func scanFileRow(row interface{ Scan(...interface{}) error }) (*ScannedFile, error) {
	f := &ScannedFile{}
	err := row.Scan(
		&f.ID, &f.Path, &f.Hash, &f.SizeBytes,
		&f.MtimeUnix, &f.DurationSec, &f.BPM, &f.Key,
		&f.Artist, &f.Title, &f.Album, &f.Genre, &f.ScanDate,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// LookupFile retrieves the catalog record for a path, or nil if the path
// has never been scanned.
func (s *Store) LookupFile(path string) (*ScannedFile, error) {
	row := s.db.QueryRow(`
		SELECT `+scannedFileColumns+`
		FROM scanned_files WHERE file_path = ?
	`, path)

	f, err := scanFileRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up file: %w", err)
	}
	return f, nil
}

// AllFiles retrieves every catalog record, ordered by path
func (s *Store) AllFiles() ([]*ScannedFile, error) {
	rows, err := s.db.Query(`
		SELECT ` + scannedFileColumns + `
		FROM scanned_files
		ORDER BY file_path
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var files []*ScannedFile
	for rows.Next() {
		f, err := scanFileRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

// CountFiles returns the number of catalog records
func (s *Store) CountFiles() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM scanned_files").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}
	return count, nil
}
