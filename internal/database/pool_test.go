package database

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/newsdb/internal/config"
)

func TestConnectUnreachableHostReturnsNil(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	// Port 1 on loopback refuses connections
	cfg := config.DatabaseConfig{
		Host:    "127.0.0.1",
		Port:    1,
		User:    "root",
		Name:    "news",
		Driver:  "mysql",
		Timeout: 2 * time.Second,
	}

	pool, err := Connect(context.Background(), cfg, &log)
	assert.Nil(t, pool)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConnection), "kind = %q", KindOf(err))
	assert.Contains(t, buf.String(), "database connection failed")
}

func TestConnectUnknownDriver(t *testing.T) {
	cfg := config.DatabaseConfig{Host: "localhost", User: "root", Name: "news", Driver: "nosuchdriver"}

	pool, err := Connect(context.Background(), cfg, nil)
	assert.Nil(t, pool)
	assert.True(t, IsKind(err, KindConnection))
}

func TestPingAndStats(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	pool := NewPoolFromDB(db, nil)

	mock.ExpectPing()
	require.NoError(t, pool.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(context.DeadlineExceeded)
	err = pool.Ping(context.Background())
	assert.True(t, IsKind(err, KindConnection))

	assert.Equal(t, PoolStats{}, pool.Stats())
	assert.NoError(t, mock.ExpectationsWereMet())
}
