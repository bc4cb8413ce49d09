package apply

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_ProcessReturnsFnError(t *testing.T) {
	q := NewQueue(4)
	q.Start()
	defer q.Stop()

	wantErr := errors.New("apply failed")
	err := q.Process(context.Background(), SourceLocal, func(context.Context) error {
		return wantErr
	})
	assert.Equal(t, wantErr, err)

	err = q.Process(context.Background(), SourceRemote, func(context.Context) error {
		return nil
	})
	assert.NoError(t, err)
}

func TestQueue_SerializesMutations(t *testing.T) {
	q := NewQueue(16)
	q.Start()
	defer q.Stop()

	// Unsynchronized counter: only safe if the worker really serializes.
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := q.Process(context.Background(), SourceRemote, func(context.Context) error {
				counter++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestQueue_ProcessUnblocksOnContextCancel(t *testing.T) {
	q := NewQueue(1)
	q.Start()

	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = q.Process(context.Background(), SourceLocal, func(context.Context) error {
			<-release
			return nil
		})
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := q.Process(ctx, SourceLocal, func(context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	wg.Wait()
	q.Stop()
}

func TestQueue_StopIsIdempotent(t *testing.T) {
	q := NewQueue(1)
	q.Start()
	q.Stop()
	q.Stop()
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "local", SourceLocal.String())
	assert.Equal(t, "remote", SourceRemote.String())
}
