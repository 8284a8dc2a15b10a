// Command migrate applies the embedded PostgreSQL schema migrations.
package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/palmwatch/internal/config"
	"github.com/JaimeStill/palmwatch/pkg/database"
)

//go:embed migrations/*.sql
var migrations embed.FS


type options struct {
	dsn      string
	up       bool
	down     bool
	steps    int
	version  bool
	force    int
	forceSet bool
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if err := run(opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var o options
	fs.StringVar(&o.dsn, "dsn", "", "Database connection string (default from PALMWATCH_DB_*)")
	fs.BoolVar(&o.up, "up", false, "Run all up migrations")
	fs.BoolVar(&o.down, "down", false, "Run all down migrations")
	fs.IntVar(&o.steps, "steps", 0, "Number of migrations (positive=up, negative=down)")
	fs.BoolVar(&o.version, "version", false, "Print current migration version")
	fs.IntVar(&o.force, "force", -1, "Force set version (use with caution)")
	fs.Parse(args)

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			o.forceSet = true
		}
	})

	if o.dsn == "" {
		dsn, err := resolveDSN()
		if err != nil {
			return o, err
		}
		o.dsn = dsn
	}
	return o, nil
}

// resolveDSN builds the connection string the server would use, so both
// binaries honor the same PALMWATCH_DB_* variables.
func resolveDSN() (string, error) {
	cfg := database.Config{Name: "palmwatch", User: "palmwatch", Password: "palmwatch"}
	if err := cfg.Finalize(config.DatabaseEnv); err != nil {
		return "", fmt.Errorf("database config: %w", err)
	}
	return cfg.ConnString(), nil
}

func newSource() (source.Driver, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}
	return src, nil
}

func run(o options, out io.Writer) error {
	if !o.up && !o.down && !o.version && !o.forceSet && o.steps == 0 {
		fmt.Fprintln(out, "usage: migrate [-dsn <connection-string>] [-up|-down|-steps N|-version|-force N]")
		flag.PrintDefaults()
		return nil
	}

	src, err := newSource()
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, o.dsn)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	switch {
	case o.version:
		v, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("get version: %w", err)
		}
		fmt.Fprintf(out, "version: %d, dirty: %v\n", v, dirty)
	case o.forceSet:
		if err := m.Force(o.force); err != nil {
			return fmt.Errorf("force version: %w", err)
		}
		fmt.Fprintf(out, "forced to version %d\n", o.force)
	case o.up:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("run up migrations: %w", err)
		}
		fmt.Fprintln(out, "migrations applied successfully")
	case o.down:
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("run down migrations: %w", err)
		}
		fmt.Fprintln(out, "migrations reverted successfully")
	default:
		if err := m.Steps(o.steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("run migrations: %w", err)
		}
		fmt.Fprintf(out, "applied %d migration steps\n", o.steps)
	}

	return nil
}
