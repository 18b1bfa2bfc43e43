package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harnesslab/wiremes/internal/common/config"

	"github.com/glebarez/sqlite"
)

// SQLite implements the Database interface using SQLite
type SQLite struct {
	*gormDB
	cfg *config.DatabaseConfig
}

// NewSQLite creates a new SQLite instance
func NewSQLite(cfg *config.DatabaseConfig) (Database, error) {
	dir := filepath.Dir(cfg.DBName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	g, err := newGormDB(sqlite.Open(cfg.DBName))
	if err != nil {
		return nil, err
	}
	return &SQLite{gormDB: g, cfg: cfg}, nil
}
