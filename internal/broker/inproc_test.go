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
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/intel/modelq/internal/datastore"
	"github.com/intel/modelq/internal/datastore/sqlite"
	"github.com/intel/modelq/internal/types"
)

func newTestBroker(t *testing.T, handler Handler, opts InprocOptions) (*Inproc, datastore.Datastore) {
	t.Helper()
	ds, err := sqlite.New(filepath.Join(t.TempDir(), "broker.db"))
	if err != nil {
		t.Fatalf("sqlite.New() error: %v", err)
	}
	if err := ds.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	b, err := NewInproc(ds, handler, opts)
	if err != nil {
		t.Fatalf("NewInproc() error: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b, ds
}

// waitForState polls until the task reaches want or the deadline passes.
func waitForState(t *testing.T, b *Inproc, taskID, want string) *types.TaskResult {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		res, err := b.Result(context.Background(), taskID)
		if err != nil {
			t.Fatalf("Result() error: %v", err)
		}
		if res.State == want {
			return res
		}
		if types.TerminalTaskState(res.State) && res.State != want {
			t.Fatalf("task %s ended as %s, want %s (error: %s)", taskID, res.State, want, res.Error)
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("task %s never reached state %s", taskID, want)
	return nil
}

func TestSubmitRunsToSuccess(t *testing.T) {
	handler := func(ctx context.Context, args types.TaskArgs) ([]types.Row, error) {
		return []types.Row{{"prediction": "ok", "model": args.ModelName}}, nil
	}
	b, _ := newTestBroker(t, handler, InprocOptions{Workers: 2})

	id, err := b.Submit(context.Background(), types.TaskArgs{ModelName: "iris", Operation: types.OperationOutput})
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	res := waitForState(t, b, id, types.TaskSuccess)
	if len(res.Rows) != 1 || res.Rows[0]["prediction"] != "ok" {
		t.Fatalf("Result() rows = %v", res.Rows)
	}
}

func TestHandlerErrorEndsAsFailure(t *testing.T) {
	handler := func(ctx context.Context, args types.TaskArgs) ([]types.Row, error) {
		return nil, errors.New("rows are garbage")
	}
	b, _ := newTestBroker(t, handler, InprocOptions{Workers: 1})

	id, err := b.Submit(context.Background(), types.TaskArgs{ModelName: "iris", Operation: types.OperationInput})
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	res := waitForState(t, b, id, types.TaskFailure)
	if res.Error != "rows are garbage" {
		t.Fatalf("Result() error = %q", res.Error)
	}
}

func TestRevokeRunningTask(t *testing.T) {
	started := make(chan struct{})
	handler := func(ctx context.Context, args types.TaskArgs) ([]types.Row, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	b, _ := newTestBroker(t, handler, InprocOptions{Workers: 1})

	id, err := b.Submit(context.Background(), types.TaskArgs{ModelName: "iris", Operation: types.OperationInput})
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	<-started
	if err := b.Revoke(context.Background(), id); err != nil {
		t.Fatalf("Revoke() error: %v", err)
	}
	waitForState(t, b, id, types.TaskCancelled)
}

func TestRevokeQueuedTask(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	handler := func(ctx context.Context, args types.TaskArgs) ([]types.Row, error) {
		if args.ModelName == "blocker" {
			close(started)
			<-release
		}
		return nil, nil
	}
	b, _ := newTestBroker(t, handler, InprocOptions{Workers: 1})
	ctx := context.Background()

	if _, err := b.Submit(ctx, types.TaskArgs{ModelName: "blocker", Operation: types.OperationInput}); err != nil {
		t.Fatalf("Submit() blocker error: %v", err)
	}
	<-started

	queued, err := b.Submit(ctx, types.TaskArgs{ModelName: "iris", Operation: types.OperationInput})
	if err != nil {
		t.Fatalf("Submit() queued error: %v", err)
	}
	if err := b.Revoke(ctx, queued); err != nil {
		t.Fatalf("Revoke() queued error: %v", err)
	}
	res, err := b.Result(ctx, queued)
	if err != nil {
		t.Fatalf("Result() error: %v", err)
	}
	if res.State != types.TaskCancelled {
		t.Fatalf("queued task state = %s, want cancelled", res.State)
	}

	close(release)
	// the worker must skip the revoked task, not run it
	time.Sleep(50 * time.Millisecond)
	res, err = b.Result(ctx, queued)
	if err != nil {
		t.Fatalf("Result() after drain error: %v", err)
	}
	if res.State != types.TaskCancelled {
		t.Fatalf("revoked task ran anyway, state = %s", res.State)
	}
}

func TestRevokeTerminalTaskFails(t *testing.T) {
	handler := func(ctx context.Context, args types.TaskArgs) ([]types.Row, error) {
		return nil, nil
	}
	b, _ := newTestBroker(t, handler, InprocOptions{Workers: 1})

	id, err := b.Submit(context.Background(), types.TaskArgs{ModelName: "iris", Operation: types.OperationInput})
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	waitForState(t, b, id, types.TaskSuccess)
	if err := b.Revoke(context.Background(), id); err == nil {
		t.Fatal("Revoke() on terminal task should fail")
	}
}

func TestOrphanReaping(t *testing.T) {
	dir := t.TempDir()
	ds, err := sqlite.New(filepath.Join(dir, "broker.db"))
	if err != nil {
		t.Fatalf("sqlite.New() error: %v", err)
	}
	if err := ds.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	ctx := context.Background()

	// a record left behind by a dead process
	orphan := &types.TaskRecord{TaskID: "orphan-1", ModelName: "iris", Operation: types.OperationInput, State: types.TaskProcessing}
	if err := ds.Add(ctx, orphan); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	done := &types.TaskRecord{TaskID: "done-1", ModelName: "iris", Operation: types.OperationInput, State: types.TaskSuccess}
	if err := ds.Add(ctx, done); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	handler := func(ctx context.Context, args types.TaskArgs) ([]types.Row, error) { return nil, nil }
	b, err := NewInproc(ds, handler, InprocOptions{Workers: 1, OrphanTTL: time.Millisecond})
	if err != nil {
		t.Fatalf("NewInproc() error: %v", err)
	}
	defer func() { _ = b.Close() }()

	res, err := b.Result(ctx, "orphan-1")
	if err != nil {
		t.Fatalf("Result() error: %v", err)
	}
	if res.State != types.TaskFailure {
		t.Fatalf("orphan state = %s, want failure", res.State)
	}
	res, err = b.Result(ctx, "done-1")
	if err != nil {
		t.Fatalf("Result() error: %v", err)
	}
	if res.State != types.TaskSuccess {
		t.Fatalf("terminal record was reaped, state = %s", res.State)
	}
}

func TestSubmitAfterClose(t *testing.T) {
	handler := func(ctx context.Context, args types.TaskArgs) ([]types.Row, error) { return nil, nil }
	b, _ := newTestBroker(t, handler, InprocOptions{Workers: 1})
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if _, err := b.Submit(context.Background(), types.TaskArgs{ModelName: "iris", Operation: types.OperationInput}); err == nil {
		t.Fatal("Submit() after Close should fail")
	}
}

func TestSubmitRacesClose(t *testing.T) {
	handler := func(ctx context.Context, args types.TaskArgs) ([]types.Row, error) { return nil, nil }
	b, _ := newTestBroker(t, handler, InprocOptions{Workers: 2, QueueDepth: 64})

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			<-start
			for j := 0; j < 50; j++ {
				// Submissions racing Close must either enqueue or fail with
				// a broker error, never panic on the closed queue.
				_, _ = b.Submit(context.Background(), types.TaskArgs{
					ModelName: fmt.Sprintf("iris-%d-%d", n, j),
					Operation: types.OperationOutput,
				})
			}
		}(i)
	}

	close(start)
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	wg.Wait()

	if _, err := b.Submit(context.Background(), types.TaskArgs{ModelName: "iris", Operation: types.OperationOutput}); err == nil {
		t.Fatal("Submit() after Close should fail")
	}
}
