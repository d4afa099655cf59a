package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"stocktrader/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations
var migrationsFS embed.FS

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	config Config
}

// NewManager opens the store described by config.
func NewManager(config *Config) (*Manager, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.New(zapWriter{}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	var dialector gorm.Dialector
	switch config.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(config.DSN))
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{DSN: config.DSN})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if config.Driver == DriverSQLite {
		// One writer at a time; also keeps shared-cache memory databases alive.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Manager{db: db, config: *config}, nil
}

// Migrate applies every pending embedded migration. The migrations create the
// instruments, users, watchlist and portfolio tables and seed the sample
// instruments; running it on an up-to-date store is a no-op.
func (m *Manager) Migrate() error {
	logger.Get().Info("Running database migrations...")

	mig, closeFn, err := m.migrator()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// Rollback reverts the given number of applied migrations.
func (m *Manager) Rollback(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	mig, closeFn, err := m.migrator()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := mig.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// Version reports the current schema version and whether the last migration failed midway.
func (m *Manager) Version() (uint, bool, error) {
	mig, closeFn, err := m.migrator()
	if err != nil {
		return 0, false, err
	}
	defer closeFn()

	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get version: %w", err)
	}
	return version, dirty, nil
}

// migrator builds a migrate instance for the manager's dialect. The returned
// close function must be called once the instance is no longer needed.
func (m *Manager) migrator() (*migrate.Migrate, func(), error) {
	src, err := iofs.New(migrationsFS, "migrations/"+m.config.Driver)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	switch m.config.Driver {
	case DriverSQLite:
		sqlDB, err := m.db.DB()
		if err != nil {
			_ = src.Close()
			return nil, nil, fmt.Errorf("failed to get underlying DB: %w", err)
		}
		// Run on the manager's own handle so in-memory stores see the schema.
		drv, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
		if err != nil {
			_ = src.Close()
			return nil, nil, fmt.Errorf("failed to create migrate driver: %w", err)
		}
		mig, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
		if err != nil {
			_ = src.Close()
			return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		// mig.Close would close the shared *sql.DB as well.
		return mig, func() { _ = src.Close() }, nil

	case DriverPostgres:
		mig, err := migrate.NewWithSourceInstance("iofs", src, m.config.DSN)
		if err != nil {
			_ = src.Close()
			return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		return mig, func() {
			srcErr, dbErr := mig.Close()
			if srcErr != nil {
				logger.Get().Warnf("migrate source close error: %v", srcErr)
			}
			if dbErr != nil {
				logger.Get().Warnf("migrate database close error: %v", dbErr)
			}
		}, nil
	}

	_ = src.Close()
	return nil, nil, fmt.Errorf("unsupported database driver %q", m.config.Driver)
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithConnection runs fn on a single dedicated connection taken from db's
// pool. The connection goes back to the pool when fn returns, fails or panics.
func WithConnection(ctx context.Context, db *gorm.DB, fn func(conn *gorm.DB) error) error {
	return db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		// NewDB so that each query inside fn starts from a clean statement.
		return fn(tx.Session(&gorm.Session{NewDB: true}))
	})
}

// zapWriter routes GORM's logger output through the application logger.
type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	logger.Get().Warnf(format, args...)
}
