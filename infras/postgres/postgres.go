package postgres

import (
	"time"

	"guesthouse/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection splits reads from writes so listings can be served by a replica.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  connect("read", pg, pg.Read),
		Write: connect("write", pg, pg.Write),
	}
}

// connect retries MaxRetry times, RetryWaitTime seconds apart, and gives up
// fatally so the process never serves without a database.
func connect(role string, pg config.Postgres, node config.PostgresNode) *sqlx.DB {
	dsn := node.URL(pg.Prefix, nil)
	attempts := max(pg.MaxRetry, 1)

	logCtx := log.With().
		Str("role", role).
		Str("host", node.Host).
		Str("port", node.Port).
		Str("database", pg.Prefix+node.Name).
		Logger()

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxOpenConns(pg.MaxOpenConns)
			db.SetMaxIdleConns(pg.MaxIdleConns)

			logCtx.Info().Msg("connected to database")

			return db
		}

		lastErr = err
		logCtx.Warn().Err(err).Int("attempt", attempt).Int("of", attempts).Msg("database not reachable, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	logCtx.Fatal().Err(lastErr).Msg("could not connect to database")

	return nil
}
