package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shawnlecompte2-web/LogiVrac/timeclock"
)

func TestRecordPunchUpsertIsIdempotent(t *testing.T) {
	f := newFixture(t)
	driver := f.user(t, "Denis Boulet")
	body := gin.H{
		"id":           "p-retry",
		"employeeName": driver.Name,
		"type":         "in",
		"timestamp":    "03/06/2024, 08:00:00",
	}

	for i := 0; i < 2; i++ {
		w := f.request(t, http.MethodPost, "/api/logivrac/v1.0/punches", body, driver)
		require.Equal(t, http.StatusOK, w.Code)
	}

	logs, err := f.ep.loadLogs(context.Background())
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestRecordPunchRejectsBadType(t *testing.T) {
	f := newFixture(t)
	driver := f.user(t, "Denis Boulet")

	w := f.request(t, http.MethodPost, "/api/logivrac/v1.0/punches", gin.H{
		"id":           "p1",
		"employeeName": driver.Name,
		"type":         "pause",
		"timestamp":    "03/06/2024, 08:00:00",
	}, driver)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordPunchLearnsNewPlaque(t *testing.T) {
	f := newFixture(t)
	driver := f.user(t, "Denis Boulet")

	w := f.request(t, http.MethodPost, "/api/logivrac/v1.0/punches", gin.H{
		"id":           "p1",
		"employeeName": driver.Name,
		"type":         "in",
		"timestamp":    "03/06/2024, 08:00:00",
		"plaque":       "L-88888",
	}, driver)
	require.Equal(t, http.StatusOK, w.Code)

	settings, err := f.ep.loadSettings(context.Background())
	require.NoError(t, err)
	assert.Contains(t, settings.Plaques, "L-88888")
	assert.Contains(t, settings.Plaques, "L-12345")
}

func TestRecordPunchDoesNotLearnPlaqueFromNonDrivers(t *testing.T) {
	f := newFixture(t)
	operator := f.user(t, "Donald Strat")

	w := f.request(t, http.MethodPost, "/api/logivrac/v1.0/punches", gin.H{
		"id":           "p1",
		"employeeName": operator.Name,
		"type":         "in",
		"timestamp":    "03/06/2024, 08:00:00",
		"plaque":       "L-77777",
	}, operator)
	require.Equal(t, http.StatusOK, w.Code)

	settings, err := f.ep.loadSettings(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, settings.Plaques, "L-77777")
}

func TestPunchStatusDefaultsToCaller(t *testing.T) {
	f := newFixture(t)
	driver := f.user(t, "Denis Boulet")

	w := f.request(t, http.MethodPost, "/api/logivrac/v1.0/punches", gin.H{
		"id":           "p1",
		"employeeName": driver.Name,
		"type":         "in",
		"timestamp":    "03/06/2024, 08:00:00",
		"plaque":       "L-12345",
	}, driver)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.request(t, http.MethodGet, "/api/logivrac/v1.0/punches/status", nil, driver)
	require.Equal(t, http.StatusOK, w.Code)

	var status timeclock.PunchStatus
	decodeData(t, w, &status)
	assert.True(t, status.PunchedIn)
	assert.Equal(t, "L-12345", status.ActivePlaque)
	// fixture clock is 15:00, punched in 08:00
	assert.Equal(t, int64(7*3_600_000), status.WorkedTodayMs)
}
