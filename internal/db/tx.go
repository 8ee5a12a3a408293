package db

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"messenger-service/internal/observability"
)

// TxFunc is the body of a scoped transaction.
type TxFunc func(tx *sqlx.Tx) error

// WithTx runs fn inside a transaction on a dedicated connection. The transaction
// is committed when fn returns nil and rolled back on error or panic; the
// connection goes back to the pool on every path.
func WithTx(ctx context.Context, db *sqlx.DB, op string, fn TxFunc) (err error) {
	ctx, span := otel.Tracer("messenger-service/db").Start(ctx, "tx."+op)
	span.SetAttributes(attribute.String("db.operation", op))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		observability.IncTransaction(op, "begin_failed")
		return fmt.Errorf("begin %s: %w", op, err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(tx, op)
			observability.IncTransaction(op, "rolled_back")
			panic(p)
		}
		if err != nil {
			rollback(tx, op)
			observability.IncTransaction(op, "rolled_back")
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", op, err)
	}
	observability.IncTransaction(op, "committed")
	return nil
}

func rollback(tx *sqlx.Tx, op string) {
	if rbErr := tx.Rollback(); rbErr != nil {
		log.Printf("tx %s rollback: %v", op, rbErr)
	}
}
