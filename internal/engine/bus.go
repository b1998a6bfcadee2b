package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Driver is a presentation-layer consumer of engine events. Deliver is
// called sequentially, in publish order, from a goroutine owned by the bus.
type Driver interface {
	Wants(e Event) bool
	Deliver(e Event)
}

// Kinds is a static subscription list usable as a Wants predicate.
type Kinds []EventKind

func (k Kinds) Wants(e Event) bool {
	for _, kind := range k {
		if kind == e.Kind {
			return true
		}
	}
	return false
}

type subscription struct {
	driver Driver
	queue  chan Event
	done   chan struct{}
	once   sync.Once
}

func (s *subscription) loop() {
	defer close(s.done)
	for e := range s.queue {
		s.driver.Deliver(e)
	}
}

func (s *subscription) close() {
	s.once.Do(func() { close(s.queue) })
}

// Bus fans events out to drivers. Each driver has its own bounded queue;
// publishing never blocks, so a slow driver only delays itself and loses
// events once its queue is full.
type Bus struct {
	mu        sync.RWMutex
	subs      []*subscription
	queueSize int
	closed    bool
	log       *zap.Logger
}

// NewBus creates a bus whose driver queues hold queueSize events.
func NewBus(queueSize int, log *zap.Logger) *Bus {
	if queueSize <= 0 {
		queueSize = 256
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{queueSize: queueSize, log: log}
}

// Subscribe registers d and starts its delivery loop. The returned function
// cancels the subscription; events already queued are still delivered.
func (b *Bus) Subscribe(d Driver) (cancel func()) {
	s := &subscription{
		driver: d,
		queue:  make(chan Event, b.queueSize),
		done:   make(chan struct{}),
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(s.done)
		return func() {}
	}
	b.subs = append(b.subs, s)
	b.mu.Unlock()
	go s.loop()

	return func() {
		b.mu.Lock()
		for i, x := range b.subs {
			if x == s {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				break
			}
		}
		b.mu.Unlock()
		s.close()
		<-s.done
	}
}

// Publish stamps e and enqueues it for every interested driver.
func (b *Bus) Publish(e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, s := range b.subs {
		if !s.driver.Wants(e) {
			continue
		}
		select {
		case s.queue <- e:
		default:
			b.log.Warn("driver queue full, dropping event",
				zap.String("kind", string(e.Kind)),
				zap.String("title", e.Title),
			)
		}
	}
}

// Close stops accepting events and waits for every driver to drain its
// queue.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for _, s := range subs {
		s.close()
	}
	for _, s := range subs {
		<-s.done
	}
}

// LogDriver writes every event to a zap logger at debug level.
type LogDriver struct {
	Log *zap.Logger
}

func (LogDriver) Wants(Event) bool { return true }

func (d LogDriver) Deliver(e Event) {
	d.Log.Debug("event",
		zap.String("id", e.ID),
		zap.String("game", e.GameID),
		zap.String("kind", string(e.Kind)),
		zap.Int("turn", e.Turn),
		zap.Stringer("phase", e.Phase),
		zap.String("from", e.From),
		zap.String("to", e.To),
		zap.String("title", e.Title),
		zap.String("body", e.Body),
	)
}
