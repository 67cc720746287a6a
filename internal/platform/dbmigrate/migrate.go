// Package dbmigrate applies the embedded SQL migrations with golang-migrate.
package dbmigrate

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/riskibarqy/pl-predictor/db"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Migrator wraps a golang-migrate instance for one driver.
type Migrator struct {
	m      *migrate.Migrate
	src    source.Driver
	shared bool
}

// Source returns the embedded migration source for a driver.
func Source(driver string) (source.Driver, error) {
	dir, err := sourceDir(driver)
	if err != nil {
		return nil, err
	}
	return SourceFS(db.Migrations, dir)
}

// SourceFS reads migrations from any fs.FS, e.g. os.DirFS for MIGRATIONS_DIR.
func SourceFS(fsys fs.FS, dir string) (source.Driver, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("open migration source %s: %w", dir, err)
	}
	return src, nil
}

// NewForURL opens a dedicated connection from dbURL. Only postgres is
// supported this way; sqlite in-memory databases must share the pool.
func NewForURL(src source.Driver, driver, dbURL string) (*Migrator, error) {
	switch normalizeDriver(driver) {
	case DriverPostgres:
		m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
		if err != nil {
			return nil, fmt.Errorf("create migrator: %w", err)
		}
		return &Migrator{m: m, src: src}, nil
	case DriverSQLite:
		sqlDB, err := sql.Open(DriverSQLite, dbURL)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		mig, err := NewForDB(src, DriverSQLite, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		mig.shared = false
		return mig, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// NewForDB runs migrations over an already opened pool. The pool stays open
// when the migrator is closed.
func NewForDB(src source.Driver, driver string, sqlDB *sql.DB) (*Migrator, error) {
	switch normalizeDriver(driver) {
	case DriverSQLite:
		target, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
		if err != nil {
			return nil, fmt.Errorf("create sqlite migration driver: %w", err)
		}
		m, err := migrate.NewWithInstance("iofs", src, DriverSQLite, target)
		if err != nil {
			return nil, fmt.Errorf("create migrator: %w", err)
		}
		return &Migrator{m: m, src: src, shared: true}, nil
	default:
		return nil, fmt.Errorf("shared-pool migrations are not supported for driver %q", driver)
	}
}

func (m *Migrator) Up() error {
	return ignoreNoChange(m.m.Up())
}

func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("down steps must be > 0")
	}
	return ignoreNoChange(m.m.Steps(-steps))
}

func (m *Migrator) Goto(version uint) error {
	return ignoreNoChange(m.m.Migrate(version))
}

func (m *Migrator) Force(version int) error {
	return m.m.Force(version)
}

// Version reports ok=false when no migration was ever applied.
func (m *Migrator) Version() (version uint, dirty bool, ok bool, err error) {
	version, dirty, err = m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("read version: %w", err)
	}
	return version, dirty, true, nil
}

// Close releases the migrator. A shared pool is left open for its owner.
func (m *Migrator) Close() error {
	if m.shared {
		return m.src.Close()
	}
	srcErr, dbErr := m.m.Close()
	if srcErr != nil {
		return fmt.Errorf("close migration source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration db: %w", dbErr)
	}
	return nil
}

// Up applies every pending migration for driver. Postgres migrates through
// its own connection built from dbURL; sqlite reuses sqlDB.
func Up(sqlDB *sql.DB, driver, dbURL string) error {
	src, err := Source(driver)
	if err != nil {
		return err
	}

	var mig *Migrator
	if normalizeDriver(driver) == DriverSQLite {
		mig, err = NewForDB(src, driver, sqlDB)
	} else {
		mig, err = NewForURL(src, driver, dbURL)
	}
	if err != nil {
		_ = src.Close()
		return err
	}
	defer mig.Close()

	return mig.Up()
}

func sourceDir(driver string) (string, error) {
	switch normalizeDriver(driver) {
	case DriverPostgres:
		return "migrations/postgres", nil
	case DriverSQLite:
		return "migrations/sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported db driver %q", driver)
	}
}

func normalizeDriver(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "postgresql", "pgx":
		return DriverPostgres
	case "sqlite", "sqlite3":
		return DriverSQLite
	default:
		return strings.ToLower(strings.TrimSpace(driver))
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
