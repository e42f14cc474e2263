// Package migration holds the SQLite schema.
package migration

// Create is the DDL for a fresh database.
const Create = `
CREATE TABLE IF NOT EXISTS TrackPlay (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts TEXT NOT NULL,
  ms_played INTEGER NOT NULL,
  track TEXT NOT NULL,
  album TEXT NOT NULL DEFAULT '',
  artist TEXT NOT NULL DEFAULT '',
  track_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS EpisodePlay (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts TEXT NOT NULL,
  platform TEXT NOT NULL DEFAULT '',
  ms_played INTEGER NOT NULL,
  episode TEXT NOT NULL,
  show TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trackplay_artist ON TrackPlay (artist);
CREATE INDEX IF NOT EXISTS idx_trackplay_track_id ON TrackPlay (track_id);
CREATE INDEX IF NOT EXISTS idx_trackplay_ts ON TrackPlay (ts);
CREATE INDEX IF NOT EXISTS idx_episodeplay_show ON EpisodePlay (show);
`
