package shipdesk_test

import (
	"testing"

	"github.com/harborline/shipdesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShip() *shipdesk.Ship {
	return &shipdesk.Ship{
		VesselName:    "Ocean Star",
		OperationDate: "2024-03-15",
		Status:        shipdesk.StatusActive,
		Progress:      25,
	}
}

func TestShip_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*shipdesk.Ship)
		want   string
	}{
		{"blank vessel name", func(s *shipdesk.Ship) { s.VesselName = "  " }, "Vessel name is required"},
		{"unknown status", func(s *shipdesk.Ship) { s.Status = "sailing" }, "Status must be one of: active, loading, discharge, complete, paused"},
		{"progress above 100", func(s *shipdesk.Ship) { s.Progress = 101 }, "Progress must be a number between 0 and 100"},
		{"negative progress", func(s *shipdesk.Ship) { s.Progress = -1 }, "Progress must be a number between 0 and 100"},
		{"malformed date", func(s *shipdesk.Ship) { s.OperationDate = "15/03/2024" }, "Operation date must be YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := validShip()
			tt.modify(s)

			err := s.Validate()

			require.Error(t, err)
			assert.Equal(t, shipdesk.EINVALID, shipdesk.ErrorCode(err))
			assert.Equal(t, tt.want, shipdesk.ErrorMessage(err))
		})
	}

	t.Run("valid ship", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validShip().Validate())
	})
}

func TestProgressUpdate(t *testing.T) {
	t.Parallel()

	t.Run("full progress completes the operation", func(t *testing.T) {
		t.Parallel()

		upd, err := shipdesk.ProgressUpdate(100)

		require.NoError(t, err)
		assert.Equal(t, 100, *upd.Progress)
		assert.Equal(t, shipdesk.StatusComplete, *upd.Status)
	})

	t.Run("partial progress is active and truncated", func(t *testing.T) {
		t.Parallel()

		upd, err := shipdesk.ProgressUpdate(42.9)

		require.NoError(t, err)
		assert.Equal(t, 42, *upd.Progress)
		assert.Equal(t, shipdesk.StatusActive, *upd.Status)
	})

	t.Run("zero leaves status unchanged", func(t *testing.T) {
		t.Parallel()

		upd, err := shipdesk.ProgressUpdate(0)

		require.NoError(t, err)
		assert.Equal(t, 0, *upd.Progress)
		assert.Nil(t, upd.Status)
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()

		for _, p := range []float64{-0.5, 100.1} {
			_, err := shipdesk.ProgressUpdate(p)
			assert.Equal(t, shipdesk.EINVALID, shipdesk.ErrorCode(err), "progress %v", p)
		}
	})
}

func TestStatusUpdate(t *testing.T) {
	t.Parallel()

	upd, err := shipdesk.StatusUpdate(shipdesk.StatusPaused)
	require.NoError(t, err)
	assert.Equal(t, shipdesk.StatusPaused, *upd.Status)
	assert.Nil(t, upd.Progress)

	_, err = shipdesk.StatusUpdate("docked")
	assert.Equal(t, shipdesk.EINVALID, shipdesk.ErrorCode(err))
}

func TestShipUpdate_Apply(t *testing.T) {
	t.Parallel()

	s := validShip()
	s.Berth = "Berth 1"
	s.TotalVehicles = 500

	berth := "Berth 4"
	drivers := 42
	upd := shipdesk.ShipUpdate{Berth: &berth, TotalDrivers: &drivers}
	upd.Apply(s)

	assert.Equal(t, "Berth 4", s.Berth)
	assert.Equal(t, 42, s.TotalDrivers)
	assert.Equal(t, "Ocean Star", s.VesselName, "nil fields are untouched")
	assert.Equal(t, 500, s.TotalVehicles)
}

func TestIsValidStatus(t *testing.T) {
	t.Parallel()

	for _, status := range shipdesk.Statuses {
		assert.True(t, shipdesk.IsValidStatus(status), status)
	}
	assert.False(t, shipdesk.IsValidStatus("Active"))
	assert.False(t, shipdesk.IsValidStatus(""))
}
