package database

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"time"
)

// Result describes a successfully committed statement
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// Executor runs a single statement and commits it
type Executor interface {
	Execute(ctx context.Context, query string, args ...any) (Result, error)
}

// tablePattern pulls the target table out of INSERT/UPDATE/DELETE/CREATE statements for logging
var tablePattern = regexp.MustCompile("(?is)^\\s*(?:insert\\s+into|update|delete\\s+from|create\\s+table(?:\\s+if\\s+not\\s+exists)?)\\s+`?([a-z0-9_]+)`?")

// Execute runs query in its own transaction and commits it.
//
// When args are given the statement is executed with bound parameters and
// the values never become part of the SQL text; otherwise the raw statement
// is executed. On failure the transaction is rolled back, the error is
// logged and returned as a *Error.
func (p *Pool) Execute(ctx context.Context, query string, args ...any) (Result, error) {
	table := statementTable(query)

	start := time.Now()
	res, err := p.execute(ctx, table, query, args)
	elapsed := time.Since(start)
	p.recordQuery(elapsed, err)

	if err != nil {
		p.log.Error().
			Err(err).
			Str("table", table).
			Str("kind", string(KindOf(err))).
			Dur("elapsed", elapsed).
			Msg("query failed")
		return Result{}, err
	}

	p.log.Info().
		Str("table", table).
		Int64("rows_affected", res.RowsAffected).
		Int64("last_insert_id", res.LastInsertID).
		Dur("elapsed", elapsed).
		Msg("query successful")
	return res, nil
}

func (p *Pool) execute(ctx context.Context, table, query string, args []any) (Result, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, newError("begin", table, err)
	}

	var sqlRes sql.Result
	if len(args) > 0 {
		sqlRes, err = tx.ExecContext(ctx, query, args...)
	} else {
		sqlRes, err = tx.ExecContext(ctx, query)
	}
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			p.log.Warn().Err(rbErr).Str("table", table).Msg("rollback failed")
		}
		return Result{}, newError("execute", table, err)
	}

	if err := tx.Commit(); err != nil {
		return Result{}, newError("commit", table, err)
	}

	var res Result
	// Not every statement reports these; zero is fine
	res.LastInsertID, _ = sqlRes.LastInsertId()
	res.RowsAffected, _ = sqlRes.RowsAffected()
	return res, nil
}

// statementTable returns the table a statement targets, or "" if unknown
func statementTable(query string) string {
	m := tablePattern.FindStringSubmatch(query)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}
