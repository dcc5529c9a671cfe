package db

import (
	"fmt"
	stdlog "log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/utils"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewService opens the relational store. Postgres is the production driver;
// DB_DRIVER=sqlite switches to an embedded file for local development.
func NewService(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	gormLog := gormLogger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	driver := utils.GetEnv("DB_DRIVER", "postgres", logg)
	if driver == "sqlite" {
		path := utils.GetEnv("SQLITE_PATH", "engage.db", logg)
		sqliteDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLog})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return &Service{db: sqliteDB, log: serviceLog}, nil
	}

	pgHost := utils.GetEnv("POSTGRES_HOST", "localhost", logg)
	pgPort := utils.GetEnv("POSTGRES_PORT", "5432", logg)
	pgUser := utils.GetEnv("POSTGRES_USER", "postgres", logg)
	pgPassword := utils.GetEnv("POSTGRES_PASSWORD", "", logg)
	pgName := utils.GetEnv("POSTGRES_NAME", "engage", logg)

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		pgUser,
		pgPassword,
		pgHost,
		pgPort,
		pgName,
	)

	pgDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := pgDB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &Service{db: pgDB, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }
