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
	"time"

	"github.com/intel/modelq/internal/broker"
	"github.com/intel/modelq/internal/logger"
	"github.com/intel/modelq/internal/types"
	"github.com/intel/modelq/internal/utils/bcode"
)

// TaskStatus is what the orchestrator reports for the latest task of a
// model. Rows is populated only for succeeded output operations.
type TaskStatus struct {
	TaskID    string      `json:"task_id"`
	ModelName string      `json:"model_name"`
	Operation string      `json:"operation"`
	State     string      `json:"state"`
	StartedAt time.Time   `json:"started_at,omitempty"`
	Rows      []types.Row `json:"rows,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// tracking is the orchestrator's local view of one submitted task. The
// result payload is captured when the state is first observed terminal, so
// later reads need no broker round trip.
type tracking struct {
	taskID    string
	operation string
	state     string
	startedAt time.Time
	rows      []types.Row
	errMsg    string
}

// ModelsBackgroundManager runs model operations through the broker, at most
// one in-flight task per model. Tracking is keyed by model name: a new
// submission replaces the previous terminal record.
type ModelsBackgroundManager struct {
	broker broker.Broker

	mu    sync.Mutex
	tasks map[string]*tracking
}

// NewModelsBackgroundManager wires the orchestrator to a broker.
func NewModelsBackgroundManager(b broker.Broker) *ModelsBackgroundManager {
	return &ModelsBackgroundManager{
		broker: b,
		tasks:  make(map[string]*tracking),
	}
}

// refreshLocked polls the broker for the current state of t and folds it
// into the local cache. Caller holds the mutex.
func (m *ModelsBackgroundManager) refreshLocked(ctx context.Context, t *tracking) error {
	if types.TerminalTaskState(t.state) {
		return nil
	}
	res, err := m.broker.Result(ctx, t.taskID)
	if err != nil {
		return bcode.WrapError(bcode.ErrBroker, err)
	}
	t.state = res.State
	if types.TerminalTaskState(t.state) {
		t.rows = res.Rows
		t.errMsg = res.Error
	}
	return nil
}

// Start submits one operation for the model. The conflict check and the
// registration of the new task happen under one mutex hold, so two
// concurrent submissions for the same model cannot both pass the guard.
// Returns the task id without waiting for execution.
func (m *ModelsBackgroundManager) Start(ctx context.Context, args types.TaskArgs) (string, error) {
	if !types.KnownOperation(args.Operation) {
		return "", bcode.WrapError(bcode.ErrUnknownOperation, fmt.Errorf("operation %q", args.Operation))
	}
	if args.ModelName == "" {
		return "", bcode.WrapError(bcode.ErrTaskBadRequest, fmt.Errorf("empty model name"))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.tasks[args.ModelName]; ok {
		if err := m.refreshLocked(ctx, prev); err != nil {
			return "", err
		}
		if !types.TerminalTaskState(prev.state) {
			return "", bcode.WrapError(bcode.ErrTaskConflict,
				fmt.Errorf("model %s has task %s in state %s", args.ModelName, prev.taskID, prev.state))
		}
	}

	id, err := m.broker.Submit(ctx, args)
	if err != nil {
		return "", err
	}
	m.tasks[args.ModelName] = &tracking{
		taskID:    id,
		operation: args.Operation,
		state:     types.TaskNotProcessed,
		startedAt: time.Now(),
	}
	if logger.LogicLogger != nil {
		logger.LogicLogger.Info("[Task] submitted", "task_id", id, "model", args.ModelName, "operation", args.Operation)
	}
	return id, nil
}

// GetStatus returns the latest task of the model, polling the broker while
// the cached state is non-terminal. NotFound when the model never had a
// task submitted through this orchestrator.
func (m *ModelsBackgroundManager) GetStatus(ctx context.Context, modelName string) (*TaskStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[modelName]
	if !ok {
		return nil, bcode.WrapError(bcode.ErrTaskNotFound, fmt.Errorf("model %s", modelName))
	}
	if err := m.refreshLocked(ctx, t); err != nil {
		return nil, err
	}

	status := &TaskStatus{
		TaskID:    t.taskID,
		ModelName: modelName,
		Operation: t.operation,
		State:     t.state,
		StartedAt: t.startedAt,
	}
	if types.TerminalTaskState(t.state) {
		status.Rows = t.rows
		status.Error = t.errMsg
	}
	return status, nil
}

// Cancel revokes the latest task of the model. A queued task ends up
// cancelled; a running one is signalled and may still complete first.
func (m *ModelsBackgroundManager) Cancel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[modelName]
	if !ok {
		return bcode.WrapError(bcode.ErrTaskNotFound, fmt.Errorf("model %s", modelName))
	}
	if err := m.refreshLocked(ctx, t); err != nil {
		return err
	}
	if types.TerminalTaskState(t.state) {
		return bcode.WrapError(bcode.ErrTaskNotCancellable,
			fmt.Errorf("task %s already %s", t.taskID, t.state))
	}
	if err := m.broker.Revoke(ctx, t.taskID); err != nil {
		return bcode.WrapError(bcode.ErrBroker, err)
	}
	return nil
}

// Forget drops the local tracking record. The broker side record may
// outlive it; a later GetStatus for the model reports NotFound regardless.
func (m *ModelsBackgroundManager) Forget(modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[modelName]; !ok {
		return bcode.WrapError(bcode.ErrTaskNotFound, fmt.Errorf("model %s", modelName))
	}
	delete(m.tasks, modelName)
	return nil
}

// Input submits a background train operation.
func (m *ModelsBackgroundManager) Input(ctx context.Context, name string, rows []types.Row, options map[string]interface{}) (string, error) {
	return m.Start(ctx, types.TaskArgs{ModelName: name, Operation: types.OperationInput, Rows: rows, Options: options})
}

// Output submits a background predict operation. The prediction payload is
// retrieved through GetStatus once the task succeeds.
func (m *ModelsBackgroundManager) Output(ctx context.Context, name string, rows []types.Row, options map[string]interface{}) (string, error) {
	return m.Start(ctx, types.TaskArgs{ModelName: name, Operation: types.OperationOutput, Rows: rows, Options: options})
}

// Update submits a background metadata update.
func (m *ModelsBackgroundManager) Update(ctx context.Context, name string, metadata map[string]interface{}) (string, error) {
	return m.Start(ctx, types.TaskArgs{ModelName: name, Operation: types.OperationUpdate, Metadata: metadata})
}

// Delete submits a background model deletion.
func (m *ModelsBackgroundManager) Delete(ctx context.Context, name string) (string, error) {
	return m.Start(ctx, types.TaskArgs{ModelName: name, Operation: types.OperationDelete})
}
