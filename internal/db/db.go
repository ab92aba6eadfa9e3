package db

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/turnos-scheduler/internal/config"
	"github.com/BruksfildServices01/turnos-scheduler/internal/models"
)

// NewDB connects to PostgreSQL, or to a local SQLite file when no
// DATABASE_URL is configured, and migrates the schema. Failure is fatal.
func NewDB(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector
	if cfg.UsesSQLite() {
		log.Warn().Str("path", cfg.SQLitePath).Msg("DATABASE_URL not set, using SQLite for local development")
		dialector = sqlite.Open(cfg.SQLitePath + "?_busy_timeout=5000&_journal_mode=WAL")
	} else {
		log.Info().Msg("connecting to PostgreSQL")
		dialector = postgres.Open(cfg.DatabaseURL)
	}

	db, err := Open(dialector)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	return db
}

// Open configures the connection pool for dialector and runs migrations.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "connecting database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "getting sql.DB")
	}

	if dialector.Name() == "sqlite" {
		// SQLite allows a single writer; one connection also keeps
		// in-memory databases alive.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Turno{},
		&models.AuditLog{},
	); err != nil {
		return errors.Wrap(err, "migrating schema")
	}
	return nil
}
