package postgres

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/ledgerline/books-server/internal/store"
)

// notifyChannel is the single Postgres channel the migration triggers emit
// change-event JSON on. The payload carries the table name, so one channel
// serves all tables.
const notifyChannel = "books_changes"

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// Listener turns Postgres NOTIFY payloads into ChangeEvents and fans them out
// to per-table subscribers. Delivery is at-least-once: after a dropped
// connection lib/pq reconnects and signals it with a nil notification, at
// which point events sent while disconnected are gone; the caches recover on
// the next full reload.
type Listener struct {
	pq     *pq.Listener
	logger *logrus.Logger

	mu     sync.Mutex
	subs   map[store.Table]map[int64]func(store.ChangeEvent)
	nextID int64

	done     chan struct{}
	stopOnce sync.Once
}

var _ store.Notifier = (*Listener)(nil)

func NewListener(dsn string, logger *logrus.Logger) *Listener {
	l := &Listener{
		logger: logger,
		subs:   make(map[store.Table]map[int64]func(store.ChangeEvent)),
		done:   make(chan struct{}),
	}
	l.pq = pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.WithError(err).Warn("Listener.event.connection")
		}
	})
	return l
}

// Start begins listening and dispatching. Call once.
func (l *Listener) Start() error {
	if err := l.pq.Listen(notifyChannel); err != nil {
		return err
	}
	go l.run()
	return nil
}

// Subscribe registers a handler for one table's change events. The returned
// function releases the subscription; events already in flight may still be
// delivered after it returns.
func (l *Listener) Subscribe(table store.Table, fn func(store.ChangeEvent)) store.Unsubscribe {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.subs[table] == nil {
		l.subs[table] = make(map[int64]func(store.ChangeEvent))
	}
	l.nextID++
	id := l.nextID
	l.subs[table][id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs[table], id)
	}
}

// Close stops dispatching and closes the underlying connection.
func (l *Listener) Close() error {
	l.stopOnce.Do(func() { close(l.done) })
	return l.pq.Close()
}

func (l *Listener) run() {
	for {
		select {
		case <-l.done:
			return
		case n := <-l.pq.Notify:
			// nil marks a reconnect; nothing to dispatch.
			if n == nil {
				l.logger.Info("Listener.run.reconnected")
				continue
			}
			l.dispatch(n.Extra)
		case <-time.After(pingInterval):
			go func() {
				if err := l.pq.Ping(); err != nil {
					l.logger.WithError(err).Warn("Listener.run.ping")
				}
			}()
		}
	}
}

func (l *Listener) dispatch(payload string) {
	var ev store.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		l.logger.WithError(err).Warn("Listener.dispatch.bad payload")
		return
	}

	l.mu.Lock()
	handlers := make([]func(store.ChangeEvent), 0, len(l.subs[ev.Table]))
	for _, fn := range l.subs[ev.Table] {
		handlers = append(handlers, fn)
	}
	l.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}
