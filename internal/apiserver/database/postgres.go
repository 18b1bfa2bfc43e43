package database

import (
	"github.com/harnesslab/wiremes/internal/common/config"

	"gorm.io/driver/postgres"
)

// Postgres implements the Database interface using PostgreSQL
type Postgres struct {
	*gormDB
	cfg *config.DatabaseConfig
}

// NewPostgres creates a new Postgres instance
func NewPostgres(cfg *config.DatabaseConfig) (Database, error) {
	g, err := newGormDB(postgres.Open(cfg.GetDSN()))
	if err != nil {
		return nil, err
	}
	return &Postgres{gormDB: g, cfg: cfg}, nil
}
