package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
)

// TxFn runs inside a transaction opened by RunInTransaction.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn in one transaction so a batch of record writes
// lands together or not at all. The transaction is rolled back when fn
// returns an error or panics; a panic is re-raised after the rollback.
// Errors from fn are returned unchanged.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) (err error) {
	log := logger.FromContext(ctx).With(slog.String("component", "store_tx"))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("could not begin record transaction", redact.Attr(err))
		return fmt.Errorf("%w: begin: %w", ErrTransactionFailed, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		p := recover()
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("record transaction rollback failed", redact.Attr(rbErr))
			if p == nil {
				err = fmt.Errorf("%w (rollback: %w)", err, rbErr)
			}
		}
		if p != nil {
			log.Error("record transaction aborted by panic", slog.Any("panic", p))
			// ALLOW-PANIC: re-raise after rollback
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		log.Debug("record transaction rolled back", redact.Attr(err))
		return err
	}

	if err = tx.Commit(); err != nil {
		committed = true
		log.Error("could not commit record transaction", redact.Attr(err))
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}
	committed = true
	return nil
}
