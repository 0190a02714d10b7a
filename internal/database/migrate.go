package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies all pending up migrations for db's dialect.
func Migrate(db *gorm.DB) error {
	m, release, err := newMigrator(db)
	if err != nil {
		return err
	}
	defer release()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		log.Warn().Err(err).Msg("database migrations applied, version unknown")
		return nil
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("database migrations applied")
	return nil
}

// MigrateDown rolls back every applied migration.
func MigrateDown(db *gorm.DB) error {
	m, release, err := newMigrator(db)
	if err != nil {
		return err
	}
	defer release()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("roll back migrations: %w", err)
	}

	log.Info().Msg("database migrations rolled back")
	return nil
}

// newMigrator binds migrate to the pool gorm already owns. The migrator itself
// must not be closed since that would close the shared *sql.DB; release frees
// only what newMigrator acquired.
func newMigrator(db *gorm.DB) (*migrate.Migrate, func(), error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("database handle: %w", err)
	}

	dialect := db.Dialector.Name()
	src, err := iofs.New(migrationsFS, "migrations/"+dialect)
	if err != nil {
		return nil, nil, fmt.Errorf("load migration source: %w", err)
	}
	release := func() { _ = src.Close() }

	var driver migratedb.Driver
	switch dialect {
	case DialectPostgres:
		var pg *migratepg.Postgres
		if pg, err = postgresDriver(sqlDB); err == nil {
			driver = pg
			release = func() {
				_ = src.Close()
				_ = pg.Close()
			}
		}
	case DialectSQLite:
		driver, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	default:
		err = fmt.Errorf("no migrations for dialect %q", dialect)
	}
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("create %s migration driver: %w", dialect, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dialect, driver)
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, release, nil
}

// postgresDriver runs migrations on a dedicated connection. Closing the driver
// hands that connection back to the pool and leaves the pool open.
func postgresDriver(sqlDB *sql.DB) (*migratepg.Postgres, error) {
	ctx := context.Background()
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, err
	}
	pg, err := migratepg.WithConnection(ctx, conn, &migratepg.Config{})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return pg, nil
}
