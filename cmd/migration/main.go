package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4/source"
	"go.uber.org/zap/zapcore"

	"github.com/riskibarqy/pl-predictor/internal/config"
	"github.com/riskibarqy/pl-predictor/internal/platform/dbmigrate"
	"github.com/riskibarqy/pl-predictor/internal/platform/logging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	logger := logging.NewConsole(zapcore.InfoLevel).Named("migration")
	defer func() { _ = logger.Sync() }()

	if err := run(logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(logger *logging.Logger, cmd string, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	driver := strings.TrimSpace(os.Getenv("DB_DRIVER"))
	if driver == "" {
		driver = dbmigrate.DriverSQLite
	}
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return fmt.Errorf("DB_URL is required")
	}

	src, origin, err := resolveSource(driver)
	if err != nil {
		return err
	}
	m, err := dbmigrate.NewForURL(src, driver, dbURL)
	if err != nil {
		_ = src.Close()
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	switch strings.ToLower(strings.TrimSpace(cmd)) {
	case "up":
		if err := m.Up(); err != nil {
			return err
		}
		logger.Info("migrations applied", "driver", driver, "source", origin)
	case "down":
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		if err := m.Down(steps); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "steps", steps)
	case "version":
		version, dirty, ok, err := m.Version()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return nil
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
	case "force":
		if len(args) == 0 {
			return fmt.Errorf("force requires a version argument")
		}
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("forced migration version", "version", version)
	case "goto", "migrate":
		if len(args) == 0 {
			return fmt.Errorf("goto requires a target version argument")
		}
		target, err := parseTarget(args[0])
		if err != nil {
			return err
		}
		if err := m.Goto(target); err != nil {
			return err
		}
		logger.Info("migrated", "version", target)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// resolveSource prefers MIGRATIONS_DIR on disk and falls back to the SQL
// embedded in the binary.
func resolveSource(driver string) (source.Driver, string, error) {
	dir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if dir == "" {
		src, err := dbmigrate.Source(driver)
		return src, "embedded", err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolve MIGRATIONS_DIR: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, "", fmt.Errorf("MIGRATIONS_DIR %s is not a directory", abs)
	}
	src, err := dbmigrate.SourceFS(os.DirFS(abs), ".")
	return src, abs, err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto> [args]\n", name)
	fmt.Fprintln(os.Stderr, "env: DB_DRIVER (postgres|sqlite3), DB_URL, MIGRATIONS_DIR (optional)")
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", name)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s version\n", name)
	fmt.Fprintf(os.Stderr, "  %s force 1723766400\n", name)
}
