package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

const getValue = `SELECT value FROM kv WHERE key = ?`

func (q *Queries) GetValue(ctx context.Context, key string) (string, error) {
	row := q.db.QueryRowContext(ctx, getValue, key)
	var value string
	err := row.Scan(&value)
	return value, err
}

const putValue = `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

type PutValueParams struct {
	Key   string
	Value string
}

func (q *Queries) PutValue(ctx context.Context, arg PutValueParams) error {
	_, err := q.db.ExecContext(ctx, putValue, arg.Key, arg.Value)
	return err
}

// The stored value counts by its leading digits; anything else restarts the
// counter.
const incrementValue = `
INSERT INTO kv (key, value, updated_at) VALUES (?, '1', CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET
    value = CAST(
        (CASE WHEN ltrim(kv.value, ' ' || char(9, 10, 13)) GLOB '[0-9]*'
              THEN CAST(ltrim(kv.value, ' ' || char(9, 10, 13)) AS INTEGER) ELSE 0 END) + 1 AS TEXT),
    updated_at = CURRENT_TIMESTAMP
RETURNING CAST(value AS INTEGER)`

func (q *Queries) IncrementValue(ctx context.Context, key string) (int64, error) {
	row := q.db.QueryRowContext(ctx, incrementValue, key)
	var n int64
	err := row.Scan(&n)
	return n, err
}
