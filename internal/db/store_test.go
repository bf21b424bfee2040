package db

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestStore() *Store {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestConnBeforeConnect(t *testing.T) {
	store := newTestStore()

	conn, err := store.Conn()
	assert.Nil(t, conn)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestInitializeBeforeConnect(t *testing.T) {
	store := newTestStore()

	err := store.Initialize(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestHealthBeforeConnect(t *testing.T) {
	store := newTestStore()

	err := store.Health(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestCloseIsIdempotent(t *testing.T) {
	store := newTestStore()

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())

	// Once closed, the store is terminal
	_, err := store.Conn()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{
		Host:     "localhost",
		Port:     5432,
		User:     "customer_api",
		Password: "secret",
		DBName:   "customer_api",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=customer_api password=secret dbname=customer_api sslmode=disable",
		cfg.DSN(),
	)
}
