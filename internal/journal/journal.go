// Package journal mirrors stored order records into a Postgres table for
// reporting. The JSON store stays the source of truth.
package journal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/juju/clock"
	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/domain"
)

type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Journal is a domain.Listener upserting one row per order code.
type Journal struct {
	db     Execer
	table  string
	clock  clock.Clock
	logger *zap.Logger
}

func New(db Execer, table string, clk clock.Clock, logger *zap.Logger) *Journal {
	return &Journal{
		db:     db,
		table:  pgx.Identifier{table}.Sanitize(),
		clock:  clk,
		logger: logger,
	}
}

// EnsureSchema creates the journal table when it is missing.
func (j *Journal) EnsureSchema(ctx context.Context) error {
	_, err := j.db.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
		  order_code   TEXT PRIMARY KEY,
		  store        TEXT NOT NULL,
		  product_name TEXT NOT NULL,
		  article      TEXT NOT NULL,
		  name         TEXT NOT NULL,
		  phone        TEXT NOT NULL,
		  status       TEXT NOT NULL,
		  created_at   TIMESTAMPTZ NOT NULL,
		  updated_at   TIMESTAMPTZ NOT NULL
		)
	`, j.table))
	if err != nil {
		return fmt.Errorf("create journal table: %w", err)
	}
	return nil
}

// OrderStored inserts the record or moves an existing row forward. A row
// already marked sent never goes back to new.
func (j *Journal) OrderStored(ctx context.Context, rec domain.OrderRecord) error {
	now := j.clock.Now().UTC()
	tag, err := j.db.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %[1]s (order_code, store, product_name, article, name, phone, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
		ON CONFLICT (order_code) DO UPDATE SET
		  store=EXCLUDED.store,
		  product_name=EXCLUDED.product_name,
		  article=EXCLUDED.article,
		  name=EXCLUDED.name,
		  phone=EXCLUDED.phone,
		  status=EXCLUDED.status,
		  updated_at=EXCLUDED.updated_at
		WHERE %[1]s.status = $9
	`, j.table),
		rec.OrderCode, rec.Store, rec.ProductName, rec.Article, rec.CustomerName, rec.Phone,
		string(rec.Status), now, string(domain.StatusNew),
	)
	if err != nil {
		return fmt.Errorf("journal upsert %s: %w", rec.OrderCode, err)
	}
	j.logger.Debug("Journal row written",
		zap.String("order_code", rec.OrderCode),
		zap.String("status", string(rec.Status)),
		zap.Int64("rows", tag.RowsAffected()),
	)
	return nil
}
