package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
)

type execCall struct {
	sql  string
	args []interface{}
}

// fakePool serves the two read shapes PgRepository issues and hands out a
// single fakeTx for writes.
type fakePool struct {
	appIDs   []string
	userRows [][]interface{}
	queryErr error
	tx       *fakeTx
	beginErr error
}

func (p *fakePool) Query(_ context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	if p.queryErr != nil {
		return nil, p.queryErr
	}

	if strings.Contains(sql, "FROM app_users") {
		var rows [][]interface{}
		for _, row := range p.userRows {
			if len(args) == 0 || row[1] == args[0] {
				rows = append(rows, row)
			}
		}
		return &fakeRows{values: rows}, nil
	}

	rows := make([][]interface{}, 0, len(p.appIDs))
	for _, id := range p.appIDs {
		rows = append(rows, []interface{}{id})
	}
	return &fakeRows{values: rows}, nil
}

func (p *fakePool) QueryRow(_ context.Context, _ string, args ...interface{}) pgx.Row {
	for _, id := range p.appIDs {
		if id == args[0] {
			return &fakeRow{values: []interface{}{id}}
		}
	}
	return &fakeRow{err: pgx.ErrNoRows}
}

func (p *fakePool) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	return p.tx, nil
}

// fakeTx records every statement. UPDATEs of ids in staleIDs affect no
// rows; INSERT ... RETURNING hands out ids after lastID.
type fakeTx struct {
	pgx.Tx
	execs      []execCall
	inserts    []execCall
	staleIDs   map[int64]bool
	lastID     int64
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, execCall{sql: sql, args: args})
	if strings.HasPrefix(strings.TrimSpace(sql), "UPDATE") {
		if id, _ := args[4].(int64); t.staleIDs[id] {
			return pgconn.CommandTag("UPDATE 0"), nil
		}
		return pgconn.CommandTag("UPDATE 1"), nil
	}
	return pgconn.CommandTag("OK 1"), nil
}

func (t *fakeTx) QueryRow(_ context.Context, sql string, args ...interface{}) pgx.Row {
	t.inserts = append(t.inserts, execCall{sql: sql, args: args})
	t.lastID++
	return &fakeRow{values: []interface{}{t.lastID}}
}

func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

func (t *fakeTx) updatedIDs() []int64 {
	var ids []int64
	for _, e := range t.execs {
		if strings.HasPrefix(strings.TrimSpace(e.sql), "UPDATE") {
			ids = append(ids, e.args[4].(int64))
		}
	}
	return ids
}

type fakeRows struct {
	pgx.Rows
	values [][]interface{}
	pos    int
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.values)
}

func (r *fakeRows) Scan(dest ...interface{}) error {
	return assign(r.values[r.pos-1], dest)
}

func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Close()     {}

type fakeRow struct {
	values []interface{}
	err    error
}

func (r *fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

func assign(values []interface{}, dest []interface{}) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d targets", len(values), len(dest))
	}
	for i, d := range dest {
		switch target := d.(type) {
		case *string:
			*target = values[i].(string)
		case *int64:
			*target = values[i].(int64)
		default:
			return fmt.Errorf("scan: unsupported target %T", d)
		}
	}
	return nil
}
