// Package flow provides the default driverk.Sequencer, a control flow that
// runs submitted steps one at a time in submission order.
package flow

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/driverhelpers/driverk"
)

// ErrFlowClosed returned for steps submitted to, or still queued in, a closed flow
var ErrFlowClosed = errors.New("control flow closed")

const defaultQueueSize = 256

type flowKey struct{}

// Task is the Pending result of a step submitted to a ControlFlow
type Task struct {
	id   int64
	ctx  context.Context
	step driverk.Step
	err  error
	done chan struct{}
}

// Done is closed once the step has run (or was abandoned)
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait for the step to complete, or ctx to be done
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ID of the task, in submission order
func (t *Task) ID() int64 {
	return t.id
}

func (t *Task) finish(err error) {
	t.err = err
	close(t.done)
}

// ControlFlow executes steps on a single worker goroutine
type ControlFlow struct {
	closeLock sync.RWMutex // held for reading while submitting so Close can not strand a queued task
	queue     chan *Task
	stopCh    chan struct{} // closed first, releases submitters blocked on a full queue
	exitCh    chan struct{} // closed once no submitter holds closeLock, stops the worker
	closing   int32
	nextID    int64
}

// New control flow, the worker runs until Close is called
func New() *ControlFlow {
	return NewWithQueueSize(defaultQueueSize)
}

// NewWithQueueSize sets how many steps may be queued before Execute blocks
func NewWithQueueSize(size int) *ControlFlow {
	f := &ControlFlow{
		queue:  make(chan *Task, size),
		stopCh: make(chan struct{}),
		exitCh: make(chan struct{}),
	}
	go f.run()
	return f
}

// Execute submits step. A step submitted from inside a running step of this
// flow runs inline, it can not wait behind its own parent. Nested steps must be
// submitted with the context the parent step was given.
func (f *ControlFlow) Execute(ctx context.Context, step driverk.Step) driverk.Pending {
	t := &Task{
		id:   atomic.AddInt64(&f.nextID, 1),
		ctx:  ctx,
		step: step,
		done: make(chan struct{}),
	}

	if f.inStep(ctx) {
		t.finish(step(ctx))
		return t
	}

	f.closeLock.RLock()
	defer f.closeLock.RUnlock()
	if atomic.LoadInt32(&f.closing) == 1 {
		t.finish(ErrFlowClosed)
		return t
	}

	select {
	case f.queue <- t:
	case <-ctx.Done():
		t.finish(ctx.Err())
	case <-f.stopCh:
		t.finish(ErrFlowClosed)
	}
	return t
}

// Close stops the worker, queued steps fail with ErrFlowClosed
func (f *ControlFlow) Close() {
	if !atomic.CompareAndSwapInt32(&f.closing, 0, 1) {
		return
	}
	close(f.stopCh)
	// wait out submitters still holding the read lock before the worker drains
	f.closeLock.Lock()
	close(f.exitCh)
	f.closeLock.Unlock()
}

func (f *ControlFlow) inStep(ctx context.Context) bool {
	owner, ok := ctx.Value(flowKey{}).(*ControlFlow)
	return ok && owner == f
}

func (f *ControlFlow) run() {
	for {
		select {
		case <-f.exitCh:
			f.drain()
			return
		case t := <-f.queue:
			f.execute(t)
		}
	}
}

func (f *ControlFlow) execute(t *Task) {
	if err := t.ctx.Err(); err != nil {
		t.finish(err)
		return
	}
	stepCtx := context.WithValue(t.ctx, flowKey{}, f)
	err := t.step(stepCtx)
	if err != nil {
		log.Ctx(t.ctx).Debug().Err(err).Int64("task", t.id).Msg("step failed")
	}
	t.finish(err)
}

func (f *ControlFlow) drain() {
	for {
		select {
		case t := <-f.queue:
			t.finish(ErrFlowClosed)
		default:
			return
		}
	}
}
