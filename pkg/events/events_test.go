package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel(t *testing.T) {
	assert.Equal(t, "jobboard.JOB_SAVED", Channel(JobSaved))
	assert.Equal(t, "jobboard.APPLICATION_STATUS_CHANGED", Channel(ApplicationStatusChanged))
}

func TestEventJSON(t *testing.T) {
	e := Event{Type: JobApplied, CandidateID: uuid.New(), JobID: uuid.New(), OccurredAt: time.Unix(0, 0).UTC()}
	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"type":"JOB_APPLIED"`)
	assert.NotContains(t, string(b), "applicationId")
}

func TestNopNeverFails(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), Event{Type: JobSaved}))
}

func TestRedisPublisherReportsUnreachableBroker(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()
	err := NewRedisPublisher(rdb).Publish(context.Background(), Event{Type: JobSaved})
	assert.Error(t, err)
}
