package sqlite

import (
	"database/sql"
	"oep4-squirrel/util/log"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// Open opens a SQLite database file, ":memory:" opens a private in-memory database.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}

	// An in-memory database lives as long as its only connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	log.Debugf("Opened sqlite database %s", path)
	return db, nil
}
