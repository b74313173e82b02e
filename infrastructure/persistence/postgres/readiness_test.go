package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReadiness_Ping(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool(pgxmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectPing()

		r := NewReadiness(mockPool, time.Second, zap.NewNop())
		assert.NoError(t, r.Ping(context.Background()))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("should propagate ping failure", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool(pgxmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer mockPool.Close()

		pingErr := errors.New("database unavailable")
		mockPool.ExpectPing().WillReturnError(pingErr)

		r := NewReadiness(mockPool, 0, zap.NewNop())
		err = r.Ping(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, pingErr)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestReadiness_ServerVersion(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery("SHOW server_version").
		WillReturnRows(pgxmock.NewRows([]string{"server_version"}).AddRow("16.3"))

	r := NewReadiness(mockPool, time.Second, zap.NewNop())
	version, err := r.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "16.3", version)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
