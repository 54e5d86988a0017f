package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"countdown_timers/internal/logger"
)

// DefaultPersistTimeout bounds a single storage write.
const DefaultPersistTimeout = 10 * time.Second

// errPersisterClosed is returned by sync after close.
var errPersisterClosed = errors.New("persister closed")

type persistJob struct {
	name string
	run  func(ctx context.Context) error
	done chan struct{} // non-nil for barriers
}

// persister runs storage writes one at a time, in submission order, off
// the caller's goroutine. The queue is unbounded so submit never waits on
// storage; a write that hangs only delays the writes queued behind it.
// Failures are logged and dropped.
type persister struct {
	mu      sync.Mutex
	queue   []persistJob
	closed  bool
	wake    chan struct{}
	done    chan struct{}
	timeout time.Duration
	log     *logger.Logger
}

func newPersister(log *logger.Logger, timeout time.Duration) *persister {
	if timeout <= 0 {
		timeout = DefaultPersistTimeout
	}
	p := &persister{
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		timeout: timeout,
		log:     log,
	}
	go p.loop()
	return p
}

func (p *persister) loop() {
	defer close(p.done)
	for {
		job, ok := p.next()
		if !ok {
			return
		}
		if job.run != nil {
			p.run(job)
		}
		if job.done != nil {
			close(job.done)
		}
	}
}

// next pops the oldest job, waiting for one. ok is false once the queue is
// closed and empty.
func (p *persister) next() (persistJob, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.queue) == 0 {
		if p.closed {
			return persistJob{}, false
		}
		p.mu.Unlock()
		<-p.wake
		p.mu.Lock()
	}
	job := p.queue[0]
	p.queue[0] = persistJob{}
	p.queue = p.queue[1:]
	return job, true
}

func (p *persister) run(job persistJob) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := job.run(ctx); err != nil {
		p.log.Errorw("persist_failed", "job", job.name, "err", err)
	}
}

// enqueue appends job and reports false after close. It never blocks.
func (p *persister) enqueue(job persistJob) bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return false
	}
	p.queue = append(p.queue, job)
	p.mu.Unlock()
	p.signal()
	return true
}

func (p *persister) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// submit queues fn.
func (p *persister) submit(name string, fn func(ctx context.Context) error) {
	if !p.enqueue(persistJob{name: name, run: fn}) {
		p.log.Warnw("persist_after_close_dropped", "job", name)
	}
}

// sync waits until every job submitted before the call has run.
func (p *persister) sync(ctx context.Context) error {
	barrier := make(chan struct{})
	if !p.enqueue(persistJob{name: "barrier", done: barrier}) {
		return errPersisterClosed
	}
	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close stops accepting jobs and waits for the queue to drain or ctx to end.
func (p *persister) close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.signal()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
