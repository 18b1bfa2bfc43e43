package database

import (
	"github.com/harnesslab/wiremes/internal/common/config"

	"gorm.io/driver/mysql"
)

// MySQL implements the Database interface using MySQL
type MySQL struct {
	*gormDB
	cfg *config.DatabaseConfig
}

// NewMySQL creates a new MySQL instance
func NewMySQL(cfg *config.DatabaseConfig) (Database, error) {
	g, err := newGormDB(mysql.Open(cfg.GetDSN()))
	if err != nil {
		return nil, err
	}
	return &MySQL{gormDB: g, cfg: cfg}, nil
}
