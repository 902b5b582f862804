package database

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"elenco/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

type MethodsDB interface {
	CloseDB() error
	RunMigrations() error
	HealthCheck() error
	GetDB() *DB
}

type DB struct {
	*sqlx.DB
	log *zap.Logger
}

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// PostgresDSN builds a lib/pq connection string from the DB_* settings.
func PostgresDSN(cfg config.DB) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DbHOST,
		cfg.DbPORT,
		cfg.DbUSER,
		cfg.DbPASSWORD,
		cfg.DbNAME,
		cfg.DbSSLMODE,
	)
}

// ConnectDB opens the store selected by STORE_DRIVER and applies migrations.
func ConnectDB(cfg *config.Config, log *zap.Logger) (*DB, error) {
	driver, dsn, err := dataSource(cfg)
	if err != nil {
		return nil, err
	}

	log.Info("connecting to store", zap.String("driver", driver))

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s store: %w", driver, err)
	}

	if driver == config.StoreSQLite {
		// A single writer avoids SQLITE_BUSY on concurrent flushes.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	dbStruct := &DB{DB: db, log: log}

	if err := dbStruct.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	if err := dbStruct.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store health check failed: %w", err)
	}

	return dbStruct, nil
}

func dataSource(cfg *config.Config) (string, string, error) {
	switch cfg.Store.Driver {
	case config.StoreSQLite:
		if dir := filepath.Dir(cfg.Store.DSN); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", "", fmt.Errorf("failed to create store directory: %w", err)
			}
		}
		return "sqlite", cfg.Store.DSN, nil
	case config.StorePostgres:
		if cfg.Store.DSN != "" {
			return "postgres", cfg.Store.DSN, nil
		}
		return "postgres", PostgresDSN(cfg.DB), nil
	default:
		return "", "", fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations executes every embedded migration in file name order.
func (db *DB) RunMigrations() error {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	for _, name := range files {
		migrationSQL, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		if _, err := db.Exec(string(migrationSQL)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
		db.log.Debug("migration applied", zap.String("file", name))
	}

	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("store connection is not initialized")
	}

	return db.Ping()
}

func (db *DB) GetDB() *DB {
	return db
}
