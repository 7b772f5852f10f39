// Package database provides the MySQL data-access layer for newsdb.
//
// FILE: queries.go
// PURPOSE: Base Queries struct, constructor and the generic InsertRecord
// operation that every per-table insert delegates to.
//
// KEY TYPES:
// - Queries: Main struct holding the database pool connection
// - Column: One column/value pair of an insert
//
// RELATED FILES:
// - queries_category.go: Category inserts
// - queries_reporter.go: Reporter inserts
// - queries_publisher.go: Publisher inserts
// - queries_news.go: News, image and summary inserts
// - queries_read.go: Read-back queries (news detail, row counts)
// - scanners.go: Row scanning helper functions
package database

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/willfong/newsdb/internal/models"
)

// Queries provides insert and lookup operations for the news tables
type Queries struct {
	pool     *Pool
	validate *validator.Validate
}

// NewQueries creates a new Queries instance
func NewQueries(pool *Pool) *Queries {
	v := validator.New()
	// Report failing fields by column name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("db"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Queries{pool: pool, validate: v}
}

// Column is one column/value pair of an insert
type Column struct {
	Name  string
	Value any
}

// InsertRecord inserts one row into table with the given columns, in order.
// Table and column names are checked against the known schema because
// identifiers cannot be bound as parameters; values are always bound.
func (q *Queries) InsertRecord(ctx context.Context, table string, cols []Column) (int64, error) {
	query, args, err := buildInsert(table, cols)
	if err != nil {
		return 0, err
	}

	res, err := q.pool.Execute(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertID, nil
}

// buildInsert renders a parameterized INSERT for table
func buildInsert(table string, cols []Column) (string, []any, error) {
	known, ok := models.Columns[table]
	if !ok {
		return "", nil, &Error{Kind: KindUnknownIdentifier, Op: "insert", Table: table,
			Message: fmt.Sprintf("%s %q", ErrUnknownTable, table), Err: ErrUnknownTable}
	}
	if len(cols) == 0 {
		return "", nil, &Error{Kind: KindMissingArgument, Op: "insert", Table: table, Err: ErrNoColumns}
	}

	names := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, c := range cols {
		if !slices.Contains(known, c.Name) {
			return "", nil, &Error{Kind: KindUnknownIdentifier, Op: "insert", Table: table,
				Message: fmt.Sprintf("%s %q", ErrUnknownColumn, c.Name), Err: ErrUnknownColumn}
		}
		if slices.Contains(names, "`"+c.Name+"`") {
			return "", nil, &Error{Kind: KindUnknownIdentifier, Op: "insert", Table: table,
				Message: fmt.Sprintf("duplicate column %q", c.Name), Err: ErrUnknownColumn}
		}
		names = append(names, "`"+c.Name+"`")
		args = append(args, c.Value)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := fmt.Sprintf("INSERT INTO `%s` (%s) VALUES (%s)", table, strings.Join(names, ", "), placeholders)
	return query, args, nil
}

// checkRequired fails fast when a required field of v is empty
func (q *Queries) checkRequired(table string, v any) error {
	if v == nil || reflect.ValueOf(v).IsNil() {
		return missingArgument(table, []string{"record"})
	}

	err := q.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Kind: KindMissingArgument, Op: "insert", Table: table, Err: err}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return missingArgument(table, fields)
}

// nullString maps empty optional text to NULL. Every other value is bound
// exactly as supplied.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
