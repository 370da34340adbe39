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

package manager

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/intel/modelq/internal/types"
	"github.com/intel/modelq/internal/utils/bcode"
)

// fakeBroker records submissions and lets tests drive task states by hand.
type fakeBroker struct {
	mu          sync.Mutex
	nextID      int
	states      map[string]string
	rows        map[string][]types.Row
	revoked     map[string]bool
	resultCalls int
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{
		states:  make(map[string]string),
		rows:    make(map[string][]types.Row),
		revoked: make(map[string]bool),
	}
}

func (b *fakeBroker) Submit(ctx context.Context, args types.TaskArgs) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := fmt.Sprintf("task-%d", b.nextID)
	b.states[id] = types.TaskNotProcessed
	return id, nil
}

func (b *fakeBroker) Result(ctx context.Context, taskID string) (*types.TaskResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resultCalls++
	state, ok := b.states[taskID]
	if !ok {
		return nil, fmt.Errorf("unknown task %s", taskID)
	}
	return &types.TaskResult{TaskID: taskID, State: state, Rows: b.rows[taskID]}, nil
}

func (b *fakeBroker) Revoke(ctx context.Context, taskID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.states[taskID]; !ok {
		return fmt.Errorf("unknown task %s", taskID)
	}
	b.revoked[taskID] = true
	if b.states[taskID] == types.TaskNotProcessed {
		b.states[taskID] = types.TaskCancelled
	}
	return nil
}

func (b *fakeBroker) Close() error { return nil }

func (b *fakeBroker) setState(taskID, state string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.states[taskID] = state
}

func TestStartConflictGuard(t *testing.T) {
	fb := newFakeBroker()
	m := NewModelsBackgroundManager(fb)
	ctx := context.Background()

	id1, err := m.Input(ctx, "iris", []types.Row{{"label": "a"}}, nil)
	if err != nil {
		t.Fatalf("Input() error: %v", err)
	}

	// second submission while the first is queued
	if _, err := m.Output(ctx, "iris", nil, nil); !bcode.Is(err, bcode.ErrTaskConflict) {
		t.Fatalf("Output() during queued task: got %v, want ErrTaskConflict", err)
	}
	fb.setState(id1, types.TaskProcessing)
	if _, err := m.Output(ctx, "iris", nil, nil); !bcode.Is(err, bcode.ErrTaskConflict) {
		t.Fatalf("Output() during running task: got %v, want ErrTaskConflict", err)
	}

	// other models are unaffected
	if _, err := m.Input(ctx, "petal", nil, nil); err != nil {
		t.Fatalf("Input() other model error: %v", err)
	}

	// terminal state frees the model
	fb.setState(id1, types.TaskSuccess)
	id2, err := m.Output(ctx, "iris", nil, nil)
	if err != nil {
		t.Fatalf("Output() after terminal state error: %v", err)
	}
	if id2 == id1 {
		t.Fatal("resubmission reused the previous task id")
	}
}

func TestGetStatus(t *testing.T) {
	fb := newFakeBroker()
	m := NewModelsBackgroundManager(fb)
	ctx := context.Background()

	if _, err := m.GetStatus(ctx, "ghost"); !bcode.Is(err, bcode.ErrTaskNotFound) {
		t.Fatalf("GetStatus() untracked: got %v, want ErrTaskNotFound", err)
	}

	id, err := m.Output(ctx, "iris", []types.Row{{"x": 1}}, nil)
	if err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	st, err := m.GetStatus(ctx, "iris")
	if err != nil {
		t.Fatalf("GetStatus() error: %v", err)
	}
	if st.State != types.TaskNotProcessed || st.TaskID != id || st.Operation != types.OperationOutput {
		t.Fatalf("GetStatus() = %+v", st)
	}

	fb.setState(id, types.TaskSuccess)
	fb.rows[id] = []types.Row{{"prediction": "setosa"}}
	st, err = m.GetStatus(ctx, "iris")
	if err != nil {
		t.Fatalf("GetStatus() error: %v", err)
	}
	if st.State != types.TaskSuccess || len(st.Rows) != 1 {
		t.Fatalf("GetStatus() terminal = %+v", st)
	}

	// the terminal payload is cached with the tracking record, so further
	// status reads stop polling the broker
	fb.mu.Lock()
	calls := fb.resultCalls
	fb.mu.Unlock()
	st, err = m.GetStatus(ctx, "iris")
	if err != nil {
		t.Fatalf("GetStatus() error: %v", err)
	}
	if len(st.Rows) != 1 {
		t.Fatalf("GetStatus() cached terminal = %+v", st)
	}
	fb.mu.Lock()
	after := fb.resultCalls
	fb.mu.Unlock()
	if after != calls {
		t.Fatalf("GetStatus() on terminal task polled the broker: %d -> %d calls", calls, after)
	}
}

func TestCancelQueuedTask(t *testing.T) {
	fb := newFakeBroker()
	m := NewModelsBackgroundManager(fb)
	ctx := context.Background()

	id, err := m.Input(ctx, "iris", nil, nil)
	if err != nil {
		t.Fatalf("Input() error: %v", err)
	}
	if err := m.Cancel(ctx, "iris"); err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	if !fb.revoked[id] {
		t.Fatal("Cancel() did not revoke at the broker")
	}
	st, err := m.GetStatus(ctx, "iris")
	if err != nil {
		t.Fatalf("GetStatus() error: %v", err)
	}
	if st.State != types.TaskCancelled {
		t.Fatalf("GetStatus() after cancel = %s, want cancelled", st.State)
	}

	// a cancelled task never runs again
	if err := m.Cancel(ctx, "iris"); !bcode.Is(err, bcode.ErrTaskNotCancellable) {
		t.Fatalf("Cancel() terminal: got %v, want ErrTaskNotCancellable", err)
	}

	// and the model accepts new work
	if _, err := m.Output(ctx, "iris", nil, nil); err != nil {
		t.Fatalf("Output() after cancel error: %v", err)
	}
}

func TestForget(t *testing.T) {
	fb := newFakeBroker()
	m := NewModelsBackgroundManager(fb)
	ctx := context.Background()

	if err := m.Forget("iris"); !bcode.Is(err, bcode.ErrTaskNotFound) {
		t.Fatalf("Forget() untracked: got %v, want ErrTaskNotFound", err)
	}
	if _, err := m.Input(ctx, "iris", nil, nil); err != nil {
		t.Fatalf("Input() error: %v", err)
	}
	if err := m.Forget("iris"); err != nil {
		t.Fatalf("Forget() error: %v", err)
	}
	if _, err := m.GetStatus(ctx, "iris"); !bcode.Is(err, bcode.ErrTaskNotFound) {
		t.Fatalf("GetStatus() after forget: got %v, want ErrTaskNotFound", err)
	}
}

func TestStartRejectsUnknownOperation(t *testing.T) {
	m := NewModelsBackgroundManager(newFakeBroker())
	if _, err := m.Start(context.Background(), types.TaskArgs{ModelName: "iris", Operation: "detonate"}); !bcode.Is(err, bcode.ErrUnknownOperation) {
		t.Fatalf("Start() unknown op: got %v, want ErrUnknownOperation", err)
	}
}

func TestDBBackgroundOperations(t *testing.T) {
	fb := newFakeBroker()
	m := NewModelsDBBackgroundManager(fb)
	ctx := context.Background()

	if _, err := m.InputDB(ctx, "iris", "training", nil); err != nil {
		t.Fatalf("InputDB() error: %v", err)
	}
	st, err := m.GetStatus(ctx, "iris")
	if err != nil {
		t.Fatalf("GetStatus() error: %v", err)
	}
	if st.Operation != types.OperationInputDB {
		t.Fatalf("GetStatus() operation = %s", st.Operation)
	}

	// same conflict guard as payload operations
	if _, err := m.OutputDB(ctx, "iris", "in", "out", nil); !bcode.Is(err, bcode.ErrTaskConflict) {
		t.Fatalf("OutputDB() during task: got %v, want ErrTaskConflict", err)
	}
}
