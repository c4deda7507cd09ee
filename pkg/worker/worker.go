package worker

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Worker errors.
var (
	ErrAlreadyStarted = errors.New("worker already started")
	ErrNotStarted     = errors.New("worker not started")
	ErrStopped        = errors.New("worker stopped")
	ErrQueueFull      = errors.New("worker queue full")
)

// DefaultQueueDepth is the task queue capacity used when Config.QueueDepth
// is zero.
const DefaultQueueDepth = 64

// Task is one unit of work dispatched to a worker.
type Task func()

// workerState tracks the worker lifecycle.
type workerState uint8

const (
	stateIdle workerState = iota
	stateRunning
	stateStopping
	stateStopped
)

// Config configures a Worker.
type Config struct {
	// Name is the caller-visible worker name (e.g. "worker-0").
	Name string

	// QueueDepth is the task queue capacity. Zero means DefaultQueueDepth.
	QueueDepth int

	// Logger is the optional logger for debug output. If nil, logging is
	// disabled.
	Logger *slog.Logger
}

// Worker is a single-goroutine execution unit with its own task queue.
// All methods are safe for concurrent use.
type Worker struct {
	mu sync.Mutex

	id     string
	name   string
	logger *slog.Logger
	state  workerState

	tasks chan Task
	done  chan struct{}
}

// New creates a worker. The worker does not run until Start is called.
func New(cfg Config) *Worker {
	depth := cfg.QueueDepth
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Worker{
		id:     uuid.NewString(),
		name:   cfg.Name,
		logger: logger,
		tasks:  make(chan Task, depth),
		done:   make(chan struct{}),
	}
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() string {
	return w.id
}

// Name returns the caller-visible worker name.
func (w *Worker) Name() string {
	return w.name
}

// Running reports whether the worker's run loop is active.
func (w *Worker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state == stateRunning
}

// Start launches the run loop. A worker can be started at most once.
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case stateRunning:
		return ErrAlreadyStarted
	case stateStopping, stateStopped:
		return ErrStopped
	}

	w.state = stateRunning
	go w.run()

	w.logger.Debug("worker started", "worker", w.name, "id", w.id)
	return nil
}

// Submit enqueues a task for execution. It never blocks: if the queue is
// full it returns ErrQueueFull and the task is not enqueued.
func (w *Worker) Submit(task Task) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case stateIdle:
		return ErrNotStarted
	case stateStopping, stateStopped:
		return ErrStopped
	}

	// Send under the lock so no task is enqueued after Stop closed the
	// channel; the channel is buffered so this cannot block.
	select {
	case w.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop shuts the worker down and waits for the run loop to exit. Tasks
// already enqueued are executed before Stop returns; after Stop returns
// no further task runs. Stop is idempotent; stopping a never-started
// worker returns ErrNotStarted.
func (w *Worker) Stop() error {
	w.mu.Lock()
	switch w.state {
	case stateIdle:
		w.mu.Unlock()
		return ErrNotStarted
	case stateStopping, stateStopped:
		w.mu.Unlock()
		<-w.done
		return nil
	}
	w.state = stateStopping
	close(w.tasks)
	w.mu.Unlock()

	<-w.done

	w.mu.Lock()
	w.state = stateStopped
	w.mu.Unlock()

	w.logger.Debug("worker stopped", "worker", w.name, "id", w.id)
	return nil
}

// run drains the task queue until Stop closes it.
func (w *Worker) run() {
	defer close(w.done)
	for task := range w.tasks {
		task()
	}
}
