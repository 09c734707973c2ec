package mysql

import (
	"database/sql"
	"oep4-squirrel/util/log"
	"strings"
	"time"

	// Import mysql driver
	_ "github.com/go-sql-driver/mysql"
)

var (
	connConfig = map[string]string{
		"charset":   "utf8mb4",
		"parseTime": "True",
		"loc":       "Local",
	}
)

// Open opens a MySQL connection and checks if the connection is valid.
func Open(connStr string) (*sql.DB, error) {
	if connCfg := getConnConfig(); connCfg != "" {
		connStr += "?" + connCfg
	}

	db, err := sql.Open("mysql", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	db.SetConnMaxLifetime(1 * time.Hour)

	log.Infof("Connected to mysql")
	return db, nil
}

func getConnConfig() string {
	var configSlice []string

	for k, v := range connConfig {
		configSlice = append(configSlice, k+"="+v)
	}

	return strings.Join(configSlice, "&")
}
