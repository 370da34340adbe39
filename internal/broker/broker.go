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

// Package broker defines the task transport the orchestrator submits work
// through. The orchestrator treats it as opaque: submit returns an id,
// results are polled by id, revoke is best effort.
package broker

import (
	"context"

	"github.com/intel/modelq/internal/types"
)

// Handler executes one task. It must honor ctx cancellation between steps;
// a revoked running task surfaces as ctx.Err().
type Handler func(ctx context.Context, args types.TaskArgs) ([]types.Row, error)

// Broker accepts task submissions and serves their results.
type Broker interface {
	// Submit enqueues the task and returns its id without waiting for
	// execution.
	Submit(ctx context.Context, args types.TaskArgs) (string, error)

	// Result returns the current state of the task, with the output rows
	// once it succeeded or the failure message once it failed.
	Result(ctx context.Context, taskID string) (*types.TaskResult, error)

	// Revoke cancels the task. A queued task is dropped; a running one is
	// signalled through its context and may still complete first.
	Revoke(ctx context.Context, taskID string) error

	// Close drains the workers. Submit fails afterwards.
	Close() error
}
