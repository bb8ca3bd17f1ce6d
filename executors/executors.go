// Package executors provides the threading model of the service: every
// storage operation runs on one serial worker goroutine, and results are
// handed back through a Dispatcher owned by the caller side.
package executors

// SerialExecutor runs submitted tasks one at a time, in submission order, on
// a single goroutine. All reads and writes against the database go through
// it, which gives every operation a total order without row locking.
type SerialExecutor struct {
	tasks chan func()
	done  chan struct{}
}

func NewSerialExecutor(queueSize int) *SerialExecutor {
	e := &SerialExecutor{
		tasks: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
	go e.run()
	return e
}

func (e *SerialExecutor) run() {
	for task := range e.tasks {
		task()
	}
	close(e.done)
}

// Execute queues a task. It blocks only when the queue is full.
func (e *SerialExecutor) Execute(task func()) {
	e.tasks <- task
}

// Shutdown stops accepting tasks and waits for the queued ones to finish.
func (e *SerialExecutor) Shutdown() {
	close(e.tasks)
	<-e.done
}

// Dispatcher delivers completion callbacks to the caller's context.
type Dispatcher interface {
	Dispatch(fn func())
}

// SyncDispatcher runs callbacks inline on the worker goroutine. The HTTP
// layer uses it because handlers block on a channel anyway.
type SyncDispatcher struct{}

func (SyncDispatcher) Dispatch(fn func()) { fn() }

// AppExecutors bundles the worker and the dispatcher for injection.
type AppExecutors struct {
	DiskIO *SerialExecutor
	Main   Dispatcher
}

func NewAppExecutors(main Dispatcher) *AppExecutors {
	return &AppExecutors{
		DiskIO: NewSerialExecutor(64),
		Main:   main,
	}
}
