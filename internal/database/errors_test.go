package database

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"duplicate", &mysql.MySQLError{Number: 1062}, KindDuplicate},
		{"fk child", &mysql.MySQLError{Number: 1452}, KindForeignKey},
		{"fk parent", &mysql.MySQLError{Number: 1451}, KindForeignKey},
		{"not null", &mysql.MySQLError{Number: 1048}, KindNotNull},
		{"no default", &mysql.MySQLError{Number: 1364}, KindNotNull},
		{"unknown table", &mysql.MySQLError{Number: 1146}, KindUnknownIdentifier},
		{"unknown column", &mysql.MySQLError{Number: 1054}, KindUnknownIdentifier},
		{"column count", &mysql.MySQLError{Number: 1136}, KindParameterMismatch},
		{"prepared args", &mysql.MySQLError{Number: 1210}, KindParameterMismatch},
		{"access denied", &mysql.MySQLError{Number: 1045}, KindConnection},
		{"unknown database", &mysql.MySQLError{Number: 1049}, KindConnection},
		{"syntax", &mysql.MySQLError{Number: 1064}, KindExecution},
		{"wrapped", fmt.Errorf("exec: %w", &mysql.MySQLError{Number: 1062}), KindDuplicate},
		{"bad conn", driver.ErrBadConn, KindConnection},
		{"invalid conn", mysql.ErrInvalidConn, KindConnection},
		{"database/sql arg count", errors.New("sql: expected 2 arguments, got 1"), KindParameterMismatch},
		{"plain", errors.New("boom"), KindExecution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := newError("execute", "categories", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'Politics'"})
	assert.Equal(t, "execute categories: Error 1062: Duplicate entry 'Politics'", err.Error())

	missing := missingArgument("publishers", []string{"phone_number", "head_office_address"})
	assert.Equal(t, "insert publishers: missing required argument: phone_number, head_office_address", missing.Error())
	assert.ErrorIs(t, missing, ErrMissingArgument)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.False(t, IsKind(nil, KindExecution))

	wrapped := fmt.Errorf("seed: %w", &Error{Kind: KindForeignKey, Op: "execute"})
	assert.Equal(t, KindForeignKey, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindForeignKey))
}
