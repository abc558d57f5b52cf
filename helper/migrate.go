package helper

import (
	"errors"
	"fmt"
	"net/url"

	"guesthouse/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres migration driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // file:// migration source
	"github.com/rs/zerolog/log"
)

const migrationsSource = "file://migrations/postgres"

var ErrUnknownDirection = errors.New("unknown migration direction")

// directions maps each command of cmd/migrate to its migrate call.
var directions = map[string]func(*migrate.Migrate) error{
	"up":      (*migrate.Migrate).Up,
	"down":    func(m *migrate.Migrate) error { return m.Steps(-1) },
	"step-up": func(m *migrate.Migrate) error { return m.Steps(1) },
	"drop":    (*migrate.Migrate).Down,
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	pg := cfg.DB.Postgres
	dsn := pg.Write.URL(pg.Prefix, url.Values{"x-migrations-table": {pg.MigrationTable}})

	mig, err := migrate.New(migrationsSource, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Run applies direction to the write database. Having nothing to do is not an error.
func Run(cfg *config.Config, direction string) error {
	apply, ok := directions[direction]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDirection, direction)
	}

	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrator")
		}
	}()

	if err = apply(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", err)
	}

	log.Info().Str("direction", direction).Uint("version", version).Bool("dirty", dirty).Msg("migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return Run(cfg, "up")
}
