package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per camera start/stop cycle
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			ended_at DATETIME
		)`,

		// Volume events table - every volume change pushed to the mixer
		`CREATE TABLE IF NOT EXISTS volume_events (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			gesture TEXT NOT NULL,
			action TEXT NOT NULL,
			quality TEXT NOT NULL,
			distance REAL NOT NULL,
			volume INTEGER NOT NULL CHECK(volume BETWEEN 0 AND 100),
			created_at DATETIME NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_volume_events_session_id ON volume_events(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_volume_events_created_at ON volume_events(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
