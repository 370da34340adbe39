//*****************************************************************************
// Copyright 2025 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//*****************************************************************************

package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/intel/modelq/internal/datastore"
	"github.com/intel/modelq/internal/logger"
	"github.com/intel/modelq/internal/types"
	"github.com/intel/modelq/internal/utils/bcode"
)

const defaultQueueDepth = 128

// InprocOptions tune the in-process broker.
type InprocOptions struct {
	// Workers is the pool size. Defaults to 2.
	Workers int
	// QueueDepth is the submission buffer. Submit fails when full.
	QueueDepth int
	// OrphanTTL reaps non-terminal records older than this at startup.
	// Zero disables reaping.
	OrphanTTL time.Duration
}

// Inproc runs tasks on a worker pool inside the current process. Task
// records live in the datastore task table, which doubles as the result
// backend, so state survives a restart of the submitting process.
type Inproc struct {
	ds      datastore.Datastore
	handler Handler

	queue chan string
	wg    sync.WaitGroup

	mu      sync.Mutex
	running map[string]context.CancelFunc
	closed  bool

	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// NewInproc starts the worker pool. The handler executes every task; per
// operation dispatch happens inside it.
func NewInproc(ds datastore.Datastore, handler Handler, opts InprocOptions) (*Inproc, error) {
	if ds == nil {
		return nil, errors.New("broker: nil datastore")
	}
	if handler == nil {
		return nil, errors.New("broker: nil handler")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 2
	}
	depth := opts.QueueDepth
	if depth <= 0 {
		depth = defaultQueueDepth
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	b := &Inproc{
		ds:         ds,
		handler:    handler,
		queue:      make(chan string, depth),
		running:    make(map[string]context.CancelFunc),
		baseCtx:    baseCtx,
		cancelBase: cancelBase,
	}

	if opts.OrphanTTL > 0 {
		if err := b.reapOrphans(opts.OrphanTTL); err != nil {
			cancelBase()
			return nil, err
		}
	}

	for i := 0; i < workers; i++ {
		b.wg.Add(1)
		go b.worker()
	}
	return b, nil
}

// reapOrphans marks non-terminal records older than ttl as failed. They
// belong to a previous process whose workers are gone.
func (b *Inproc) reapOrphans(ttl time.Duration) error {
	ctx := context.Background()
	records, err := b.ds.List(ctx, &types.TaskRecord{}, nil)
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-ttl)
	for _, e := range records {
		rec, ok := e.(*types.TaskRecord)
		if !ok {
			continue
		}
		if types.TerminalTaskState(rec.State) || rec.UpdatedAt.After(cutoff) {
			continue
		}
		rec.State = types.TaskFailure
		rec.Message = "orphaned by a previous process"
		if err := b.ds.Put(ctx, rec); err != nil {
			return err
		}
		if logger.LogicLogger != nil {
			logger.LogicLogger.Warn("[Broker] reaped orphaned task", "task_id", rec.TaskID, "model", rec.ModelName)
		}
	}
	return nil
}

// Submit persists a not_processed record and enqueues the task id.
func (b *Inproc) Submit(ctx context.Context, args types.TaskArgs) (string, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return "", bcode.WrapError(bcode.ErrBroker, errors.New("broker is closed"))
	}
	b.mu.Unlock()

	id := uuid.NewString()
	payload, err := json.Marshal(args)
	if err != nil {
		return "", bcode.WrapError(bcode.ErrBroker, err)
	}
	rec := &types.TaskRecord{
		TaskID:    id,
		ModelName: args.ModelName,
		Operation: args.Operation,
		State:     types.TaskNotProcessed,
		Args:      string(payload),
	}
	if err := b.ds.Add(ctx, rec); err != nil {
		return "", bcode.WrapError(bcode.ErrBroker, err)
	}

	// Close cannot close the queue between the re-check and the send while
	// the mutex is held, so the send never hits a closed channel.
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		rec.State = types.TaskFailure
		rec.Message = "broker is closed"
		_ = b.ds.Put(ctx, rec)
		return "", bcode.WrapError(bcode.ErrBroker, errors.New("broker is closed"))
	}
	select {
	case b.queue <- id:
		b.mu.Unlock()
		return id, nil
	default:
		b.mu.Unlock()
		rec.State = types.TaskFailure
		rec.Message = "task queue is full"
		_ = b.ds.Put(ctx, rec)
		return "", bcode.WrapError(bcode.ErrBroker, errors.New("task queue is full"))
	}
}

// Result reads the persisted record and maps it to a result. Returns
// datastore.ErrEntityInvalid for unknown ids.
func (b *Inproc) Result(ctx context.Context, taskID string) (*types.TaskResult, error) {
	rec := &types.TaskRecord{TaskID: taskID}
	if err := b.ds.Get(ctx, rec); err != nil {
		return nil, err
	}
	res := &types.TaskResult{TaskID: taskID, State: rec.State, Error: rec.Message}
	if rec.State == types.TaskSuccess && rec.Result != "" {
		if err := json.Unmarshal([]byte(rec.Result), &res.Rows); err != nil {
			return nil, bcode.WrapError(bcode.ErrBroker, err)
		}
	}
	return res, nil
}

// Revoke cancels the task. Running tasks get their context cancelled and
// finish on their own terms; queued tasks are marked cancelled and skipped
// when a worker dequeues them.
func (b *Inproc) Revoke(ctx context.Context, taskID string) error {
	b.mu.Lock()
	cancel, isRunning := b.running[taskID]
	b.mu.Unlock()
	if isRunning {
		cancel()
		return nil
	}

	rec := &types.TaskRecord{TaskID: taskID}
	if err := b.ds.Get(ctx, rec); err != nil {
		return err
	}
	if types.TerminalTaskState(rec.State) {
		return bcode.WrapError(bcode.ErrTaskNotCancellable, fmt.Errorf("task %s already %s", taskID, rec.State))
	}
	rec.State = types.TaskCancelled
	return b.ds.Put(ctx, rec)
}

// Close stops accepting submissions and waits for in-flight tasks.
func (b *Inproc) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.queue)
	b.mu.Unlock()

	b.wg.Wait()
	b.cancelBase()
	return nil
}

func (b *Inproc) worker() {
	defer b.wg.Done()
	for id := range b.queue {
		b.execute(id)
	}
}

func (b *Inproc) execute(id string) {
	ctx := context.Background()
	rec := &types.TaskRecord{TaskID: id}
	if err := b.ds.Get(ctx, rec); err != nil {
		if logger.LogicLogger != nil {
			logger.LogicLogger.Error("[Broker] lost task record", "task_id", id, "error", err)
		}
		return
	}
	// revoked while still queued
	if rec.State != types.TaskNotProcessed {
		return
	}

	var args types.TaskArgs
	if err := json.Unmarshal([]byte(rec.Args), &args); err != nil {
		rec.State = types.TaskFailure
		rec.Message = fmt.Sprintf("corrupt task args: %v", err)
		_ = b.ds.Put(ctx, rec)
		return
	}

	now := time.Now()
	rec.State = types.TaskProcessing
	rec.StartedAt = &now
	if err := b.ds.Put(ctx, rec); err != nil {
		return
	}

	taskCtx, cancel := context.WithCancel(b.baseCtx)
	b.mu.Lock()
	b.running[id] = cancel
	b.mu.Unlock()

	rows, err := b.handler(taskCtx, args)

	b.mu.Lock()
	delete(b.running, id)
	b.mu.Unlock()
	cancel()

	switch {
	case err == nil:
		rec.State = types.TaskSuccess
		rec.Message = ""
		if rows != nil {
			if data, merr := json.Marshal(rows); merr == nil {
				rec.Result = string(data)
			} else {
				rec.State = types.TaskFailure
				rec.Message = fmt.Sprintf("encode result: %v", merr)
			}
		}
	case taskCtx.Err() != nil:
		rec.State = types.TaskCancelled
		rec.Message = ""
	default:
		rec.State = types.TaskFailure
		rec.Message = err.Error()
	}

	if err := b.ds.Put(ctx, rec); err != nil && logger.LogicLogger != nil {
		logger.LogicLogger.Error("[Broker] persist task result failed", "task_id", id, "error", err)
	}
}
