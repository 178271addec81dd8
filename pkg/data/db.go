package data

import (
	"database/sql"
	"embed"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// DataFileName is the default cache database file name.
const DataFileName string = "cache.db"

//go:embed sql/*
var f embed.FS

// Init creates the cache database with its schema if it does not exist.
func Init(dbFilePath string) error {
	if dbFilePath == "" {
		return errors.New("dbFilePath not specified")
	}

	if _, err := os.Stat(dbFilePath); errors.Is(err, os.ErrNotExist) {
		db, err := GetDB(dbFilePath)
		if err != nil {
			return errors.Wrapf(err, "error opening database: %s", dbFilePath)
		}
		defer db.Close()

		slog.Debug("creating db schema", "path", dbFilePath)
		b, err := f.ReadFile("sql/ddl.sql")
		if err != nil {
			return errors.Wrap(err, "failed to read the schema creation file")
		}
		if _, err := db.Exec(string(b)); err != nil {
			return errors.Wrapf(err, "failed to create database schema in: %s", dbFilePath)
		}
		slog.Debug("db schema created")
	}

	return nil
}

// GetDB opens the cache database at the given path.
func GetDB(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", path)
	}
	return conn, nil
}
