package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./transaction.go -destination=./mocks/transaction_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"guesthouse/infras/otel"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const otelTxScopeName = "transaction"

// Transactor runs a unit of work on the write connection. The transaction is
// committed when fn returns nil and rolled back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error
}

type transactorImpl struct {
	db   *Connection
	otel otel.Otel
}

func NewTransactor(db *Connection, otel otel.Otel) Transactor {
	return &transactorImpl{
		db:   db,
		otel: otel,
	}
}

func (t *transactorImpl) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	ctx, scope := t.otel.NewScope(ctx, otelTxScopeName, otelTxScopeName+".WithinTx")
	defer scope.End()

	tx, err := t.db.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		scope.TraceError(err)

		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to commit transaction")

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
