package workers

import (
	"arpg-server/pkg/logger"
	"context"
	"runtime"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// Handler processes one task message and returns the result message.
// Each worker owns its Handler; nothing is shared between workers except the
// bytes they are handed. ctx is cancelled when the pool shuts down.
type Handler interface {
	Handle(ctx context.Context, msg []byte) []byte
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, msg []byte) []byte

func (f HandlerFunc) Handle(ctx context.Context, msg []byte) []byte { return f(ctx, msg) }

// Script создаёт обработчик для нового воркера (аналог скрипта web worker).
type Script func() Handler

// Callback receives the worker's result exactly once.
type Callback func(result []byte)

// Config задаёт размер пула.
type Config struct {
	// Workers - желаемое число воркеров. 0 означает MaxWorkers.
	Workers int
	// MaxWorkers - верхняя граница (по умолчанию runtime.NumCPU()).
	MaxWorkers int
}

// Stats is a point-in-time view of the pool bookkeeping.
type Stats struct {
	Workers    int    `json:"workers"`
	Busy       int    `json:"busy"`
	Queued     int    `json:"queued"`
	Dispatched uint64 `json:"dispatched"`
	Completed  uint64 `json:"completed"`
}

type task struct {
	payload  []byte
	callback Callback
}

type slot struct {
	id       int
	busy     bool
	callback Callback
	inbox    chan []byte
}

type result struct {
	worker int
	data   []byte
}

// Pool is a fixed set of worker goroutines. A task goes to the first idle
// worker or waits in a FIFO queue; every result is routed to the callback of
// the task that produced it. Callbacks run one at a time on the pool's
// delivery goroutine.
type Pool struct {
	mu     deadlock.Mutex
	slots  []*slot
	queue  []task
	closed bool

	// держится на время вызова колбэка; Shutdown ждёт его освобождения
	callbackMu deadlock.Mutex

	dispatched uint64
	completed  uint64

	results chan result
	ctx     context.Context
	cancel  context.CancelFunc
	log     *logrus.Entry
}

// NewPool starts min(cfg.Workers, cfg.MaxWorkers) workers, at least one.
func NewPool(script Script, cfg Config) *Pool {
	limit := cfg.MaxWorkers
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	n := cfg.Workers
	if n <= 0 || n > limit {
		n = limit
	}
	if n < 1 {
		n = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		slots:   make([]*slot, n),
		results: make(chan result, n),
		ctx:     ctx,
		cancel:  cancel,
		log:     logger.Component("worker_pool"),
	}
	for i := range p.slots {
		s := &slot{id: i, inbox: make(chan []byte, 1)}
		p.slots[i] = s
		go p.runWorker(s, script())
	}
	go p.deliver()

	p.log.WithField("workers", n).Info("Worker pool started")
	return p
}

// AddTask hands payload to an idle worker or queues it. callback is invoked
// exactly once with the result unless the pool is shut down first.
func (p *Pool) AddTask(payload []byte, callback Callback) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.log.Warn("AddTask on a stopped pool, task dropped")
		return
	}
	if s := p.idleSlot(); s != nil {
		p.dispatch(s, task{payload: payload, callback: callback})
		return
	}
	p.queue = append(p.queue, task{payload: payload, callback: callback})
}

// Shutdown stops every worker and forgets all pending work.
// Callbacks of in-flight and queued tasks are never invoked. A callback that
// is already running is waited for, so none runs after Shutdown returns.
// Shutdown must not be called from inside a callback.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cancel()
	p.log.WithFields(logrus.Fields{
		"abandoned_queued": len(p.queue),
		"abandoned_busy":   p.busyCount(),
	}).Info("Worker pool stopped")
	p.slots = nil
	p.queue = nil
	p.mu.Unlock()

	// дождаться колбэка, который уже выполняется
	p.callbackMu.Lock()
	p.callbackMu.Unlock()
}

func (p *Pool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Workers:    len(p.slots),
		Busy:       p.busyCount(),
		Queued:     len(p.queue),
		Dispatched: p.dispatched,
		Completed:  p.completed,
	}
}

// dispatch must be called with mu held and s idle.
func (p *Pool) dispatch(s *slot, t task) {
	s.busy = true
	s.callback = t.callback
	p.dispatched++
	// inbox has room: an idle worker has drained it
	s.inbox <- t.payload
}

func (p *Pool) idleSlot() *slot {
	for _, s := range p.slots {
		if !s.busy {
			return s
		}
	}
	return nil
}

func (p *Pool) busyCount() int {
	n := 0
	for _, s := range p.slots {
		if s.busy {
			n++
		}
	}
	return n
}

func (p *Pool) runWorker(s *slot, h Handler) {
	for {
		select {
		case <-p.ctx.Done():
			return
		case msg := <-s.inbox:
			out := h.Handle(p.ctx, msg)
			select {
			case p.results <- result{worker: s.id, data: out}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// deliver routes results back to callbacks and refills freed workers.
func (p *Pool) deliver() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case res := <-p.results:
			p.complete(res)
		}
	}
}

func (p *Pool) complete(res result) {
	p.mu.Lock()
	if p.closed || res.worker >= len(p.slots) {
		p.mu.Unlock()
		return
	}
	s := p.slots[res.worker]
	cb := s.callback
	if cb == nil {
		// результат без ожидающего колбэка: дубликат или устаревшее сообщение
		p.mu.Unlock()
		return
	}
	s.callback = nil
	s.busy = false
	p.completed++
	if len(p.queue) > 0 {
		next := p.queue[0]
		p.queue[0] = task{}
		p.queue = p.queue[1:]
		p.dispatch(s, next)
	}
	p.mu.Unlock()

	p.callbackMu.Lock()
	defer p.callbackMu.Unlock()
	// Shutdown мог пройти между снятием mu и этой точкой
	if p.isClosed() {
		return
	}
	cb(res.data)
}
