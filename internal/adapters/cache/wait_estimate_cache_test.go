package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walkline/queue-service/internal/core/ports"
)

func testEstimate() ports.WaitEstimate {
	return ports.WaitEstimate{
		ServiceID:                       "svc1",
		QueueID:                         "q1",
		Open:                            true,
		Status:                          "active",
		CurrentQueueLength:              3,
		CurrentServingNumber:            1,
		EstimatedServiceTimePerCustomer: 10,
		TimeBasedOnQueue:                30,
		EstimatedTotalWait:              30,
	}
}

func TestGetWaitEstimate_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	c := NewWaitEstimateCache(db, time.Second)
	mock.ExpectGet("wait:svc1").RedisNil()

	est, err := c.GetWaitEstimate(context.Background(), "svc1")
	require.NoError(t, err)
	assert.Nil(t, est)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWaitEstimate_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	want := testEstimate()
	data, err := json.Marshal(want)
	require.NoError(t, err)

	c := NewWaitEstimateCache(db, time.Second)
	mock.ExpectGet("wait:svc1").SetVal(string(data))

	est, err := c.GetWaitEstimate(context.Background(), "svc1")
	require.NoError(t, err)
	require.NotNil(t, est)
	assert.Equal(t, want, *est)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetWaitEstimate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	est := testEstimate()
	data, err := json.Marshal(est)
	require.NoError(t, err)

	c := NewWaitEstimateCache(db, 3*time.Second)
	mock.ExpectSet("wait:svc1", data, 3*time.Second).SetVal("OK")

	require.NoError(t, c.SetWaitEstimate(context.Background(), est))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWaitEstimate_CorruptPayload(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	c := NewWaitEstimateCache(db, time.Second)
	mock.ExpectGet("wait:svc1").SetVal("{not json")

	_, err := c.GetWaitEstimate(context.Background(), "svc1")
	assert.Error(t, err)
}
