package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/ecostats/internal/db"
)

// FailingUoW is a UnitOfWork whose transaction fails on the FailOn-th write
// (counting from 1) with Err. Reads are never counted. It lets tests check
// that a multi-statement replace leaves nothing behind.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	conn := &countingConn{DBTX: tx, failOn: u.FailOn, err: u.Err}
	return db.Finish(tx, func() error { return fn(ctx, conn) })
}

// countingConn passes everything through to the transaction except the
// failing write.
type countingConn struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (c *countingConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.writes++
	if c.writes == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
