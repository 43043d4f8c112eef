package store

// Schema v1 - Initial catalog schema
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- One row per scanned file path. Rows are upserted by the indexer and
-- never deleted by a scan; entries for files removed from disk persist.
CREATE TABLE IF NOT EXISTS scanned_files (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  file_path TEXT UNIQUE NOT NULL,
  file_hash TEXT,
  file_size INTEGER,
  mtime_unix INTEGER,
  duration_sec REAL,
  bpm REAL,
  key TEXT,
  artist TEXT,
  title TEXT,
  album TEXT,
  genre TEXT,
  scan_date DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_scanned_files_key ON scanned_files(key);
CREATE INDEX IF NOT EXISTS idx_scanned_files_artist ON scanned_files(artist);

-- One row per completed scan run
CREATE TABLE IF NOT EXISTS scan_sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  scan_date DATETIME DEFAULT CURRENT_TIMESTAMP,
  files_found INTEGER,
  new_files INTEGER,
  updated_files INTEGER,
  scan_duration REAL
);
`
