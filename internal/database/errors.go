// Package database provides the MySQL data-access layer for newsdb.
//
// FILE: errors.go
// PURPOSE: Typed database errors. Every failure surfaced by Connect, Execute
// and the insert functions is a *Error carrying a Kind so callers can react
// to it instead of parsing log text.
//
// RELATED FILES:
// - pool.go: Connection manager (KindConnection)
// - executor.go: Statement execution (classifies driver errors)
// - queries.go: Insert entry points (KindMissingArgument, KindUnknownIdentifier)
package database

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors wrapped by *Error
var (
	ErrMissingArgument = errors.New("missing required argument")
	ErrUnknownTable    = errors.New("unknown table")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrNoColumns       = errors.New("no columns to insert")
)

// Kind categorizes database errors
type Kind string

const (
	KindConnection        Kind = "connection"
	KindExecution         Kind = "execution"
	KindDuplicate         Kind = "duplicate"
	KindForeignKey        Kind = "foreign_key"
	KindNotNull           Kind = "not_null"
	KindParameterMismatch Kind = "parameter_mismatch"
	KindMissingArgument   Kind = "missing_argument"
	KindUnknownIdentifier Kind = "unknown_identifier"
)

// MySQL server error numbers used for classification
const (
	erDupEntry           = 1062
	erRowIsReferenced    = 1451
	erNoReferencedRow    = 1452
	erBadNull            = 1048
	erNoDefaultForField  = 1364
	erNoSuchTable        = 1146
	erBadFieldError      = 1054
	erWrongValueCount    = 1136
	erWrongArguments     = 1210
	erNoReferencedRow2   = 1216
	erRowIsReferenced2   = 1217
	erWrongValueCountRow = 1058
	erAccessDenied       = 1045
	erBadDB              = 1049
	erDBAccessDenied     = 1044
)

// Error is a database failure with a category
type Error struct {
	Kind    Kind
	Op      string // connect, execute, commit, insert
	Table   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.Table != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Table)
	}
	sb.WriteString(": ")
	if e.Message != "" {
		sb.WriteString(e.Message)
	} else if e.Err != nil {
		sb.WriteString(e.Err.Error())
	} else {
		sb.WriteString(string(e.Kind))
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or "" if err is not a *Error
func KindOf(err error) Kind {
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.Kind
	}
	return ""
}

// IsKind reports whether err is a *Error of the given kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// classify maps a driver error onto a Kind
func classify(err error) Kind {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erDupEntry:
			return KindDuplicate
		case erNoReferencedRow, erNoReferencedRow2, erRowIsReferenced, erRowIsReferenced2:
			return KindForeignKey
		case erBadNull, erNoDefaultForField:
			return KindNotNull
		case erNoSuchTable, erBadFieldError:
			return KindUnknownIdentifier
		case erWrongValueCount, erWrongValueCountRow, erWrongArguments:
			return KindParameterMismatch
		case erAccessDenied, erDBAccessDenied, erBadDB:
			return KindConnection
		}
		return KindExecution
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return KindConnection
	}

	// database/sql reports placeholder/argument count mismatches as plain errors
	msg := err.Error()
	if strings.Contains(msg, "expected") && strings.Contains(msg, "argument") {
		return KindParameterMismatch
	}

	return KindExecution
}

// newError wraps err with op/table context, classifying it
func newError(op, table string, err error) *Error {
	return &Error{
		Kind:  classify(err),
		Op:    op,
		Table: table,
		Err:   err,
	}
}

// missingArgument builds a KindMissingArgument error naming the absent fields
func missingArgument(table string, fields []string) *Error {
	return &Error{
		Kind:    KindMissingArgument,
		Op:      "insert",
		Table:   table,
		Message: fmt.Sprintf("%s: %s", ErrMissingArgument, strings.Join(fields, ", ")),
		Err:     ErrMissingArgument,
	}
}
