package queue

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishWithoutSubscriber(t *testing.T) {
	q := NewInMemoryQueue(0)
	err := q.Publish("generation_jobs", GenerationJob{Vertical: "Banking"})
	assert.Error(t, err)
}

func TestPublishDeliversToSubscriber(t *testing.T) {
	q := NewInMemoryQueue(0)

	var wg sync.WaitGroup
	wg.Add(1)
	var got GenerationJob
	require.NoError(t, q.Subscribe("generation_jobs", func(payload any) error {
		defer wg.Done()
		got = payload.(GenerationJob)
		return nil
	}))

	require.NoError(t, q.Publish("generation_jobs", GenerationJob{RunID: "r1", Vertical: "SSC", EventName: "Diwali"}))
	wg.Wait()

	assert.Equal(t, "SSC", got.Vertical)
	assert.Equal(t, "Diwali", got.EventName)
}

func TestZeroRetriesMeansSingleAttempt(t *testing.T) {
	q := NewInMemoryQueue(0)

	var attempts int32
	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, q.Subscribe("generation_jobs", func(payload any) error {
		defer wg.Done()
		atomic.AddInt32(&attempts, 1)
		return errors.New("provider unavailable")
	}))

	require.NoError(t, q.Publish("generation_jobs", GenerationJob{Vertical: "Banking"}))
	wg.Wait()
	// Give a failed retry a chance to fire if the policy were broken.
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestRetriesUntilSuccess(t *testing.T) {
	q := NewInMemoryQueue(3)

	var attempts int32
	done := make(chan struct{})
	require.NoError(t, q.Subscribe("generation_jobs", func(payload any) error {
		n := atomic.AddInt32(&attempts, 1)
		if n < 2 {
			return errors.New("transient")
		}
		close(done)
		return nil
	}))

	require.NoError(t, q.Publish("generation_jobs", GenerationJob{Vertical: "Banking"}))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job never succeeded")
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}
