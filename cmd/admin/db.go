package main

import (
	"database/sql"

	"github.com/stridehq/stride/internal/config"
	"github.com/stridehq/stride/internal/db"
)

type dbHandle struct {
	sql    *sql.DB
	driver string
}

func withDB(fn func(*dbHandle) error) error {
	cfg := config.Load()

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer db.Close(database)

	return fn(&dbHandle{sql: database.DB, driver: cfg.DBDriver})
}
