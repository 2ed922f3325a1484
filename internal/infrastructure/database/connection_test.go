package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carreramedico/pkg/logger"
)

func TestOpen_WaitsForDatabaseBeforeMigrating(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	// Nothing listens on port 1, so the database never becomes ready.
	pool, err := Open(ctx, "postgres://carrera@127.0.0.1:1/carrera?sslmode=disable&connect_timeout=1", logger.Test(t))
	require.Error(t, err)
	assert.Nil(t, pool)
	assert.ErrorContains(t, err, "ping database")
	assert.NotContains(t, err.Error(), "migration")
}

func TestNewPool_InvalidURL(t *testing.T) {
	t.Parallel()
	_, err := NewPool(context.Background(), "postgres://%zz", logger.Test(t))
	assert.ErrorContains(t, err, "parse database url")
}
