// Package apply serializes every cache mutation through one worker goroutine.
//
// Two paths mutate the caches: the local optimistic path that follows a
// user-initiated write, and the reconciler processing an asynchronous change
// notification. Draining both through a single worker means neither path can
// observe a partial update from the other; the last function to run simply
// wins, which is the consistency model the caches are built on.
package apply

import (
	"context"
	"sync"
)

// Source tags who asked for a mutation: the synchronous local apply of a
// user write (phase 1) or the asynchronous confirm-or-correct arriving via a
// change notification (phase 2). Tests use the tag to simulate arrival order
// without a real network.
type Source int8

const (
	SourceLocal Source = iota
	SourceRemote
)

func (s Source) String() string {
	if s == SourceRemote {
		return "remote"
	}
	return "local"
}

type item struct {
	ctx      context.Context
	source   Source
	fn       func(context.Context) error
	response chan error
}

// Queue is the apply loop. Process enqueues a mutation and blocks until the
// worker has run it, so callers keep ordinary sequential error handling.
type Queue struct {
	queue    chan item
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{queue: make(chan item, size)}
}

// Start launches the single worker. Exactly one worker drains the queue:
// that is the serialization guarantee, not an efficiency knob.
func (q *Queue) Start() {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for it := range q.queue {
			it.response <- it.fn(it.ctx)
		}
	}()
}

// Stop closes the queue and waits for the worker to drain it.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() {
		close(q.queue)
		q.wg.Wait()
	})
}

// Process runs fn on the apply worker and returns its error. If ctx is done
// before the result arrives the caller unblocks, but the mutation may still
// run; discarding a late result is harmless because every mutation is a
// replace-by-id or remove-by-id.
func (q *Queue) Process(ctx context.Context, source Source, fn func(context.Context) error) error {
	respCh := make(chan error, 1)
	q.queue <- item{
		ctx:      ctx,
		source:   source,
		fn:       fn,
		response: respCh,
	}

	select {
	case err := <-respCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
