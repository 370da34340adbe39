//*****************************************************************************
// Copyright 2025 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//*****************************************************************************

package types

// Row is one record of tabular model data, keyed by column name. Training
// and prediction payloads are slices of rows, both inline over the API and
// when read from a datastore table.
type Row map[string]any

// Task operations. Each one maps to a ModelsManager method executed on the
// worker side of the broker.
const (
	OperationInput    = "input"
	OperationOutput   = "output"
	OperationUpdate   = "update"
	OperationDelete   = "delete"
	OperationInputDB  = "input_db"
	OperationOutputDB = "output_db"
)

// KnownOperation reports whether op names a dispatchable task operation.
func KnownOperation(op string) bool {
	switch op {
	case OperationInput, OperationOutput, OperationUpdate, OperationDelete,
		OperationInputDB, OperationOutputDB:
		return true
	}
	return false
}

// Task states. A record starts as TaskNotProcessed the moment it is accepted
// and moves to TaskProcessing when a worker picks it up. The three terminal
// states never transition further.
const (
	TaskNotProcessed = "not_processed"
	TaskProcessing   = "processing"
	TaskSuccess      = "success"
	TaskFailure      = "failure"
	TaskCancelled    = "cancelled"
)

// TerminalTaskState reports whether state is one of success/failure/cancelled.
func TerminalTaskState(state string) bool {
	switch state {
	case TaskSuccess, TaskFailure, TaskCancelled:
		return true
	}
	return false
}

// TaskArgs is the unit of work handed to the broker. Exactly one of Rows or
// Table carries the input data depending on the operation; Options passes
// through to the model type untouched.
type TaskArgs struct {
	ModelName   string         `json:"model_name"`
	Operation   string         `json:"operation"`
	Rows        []Row          `json:"rows,omitempty"`
	Table       string         `json:"table,omitempty"`
	OutputTable string         `json:"output_table,omitempty"`
	Options     map[string]any `json:"options,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// TaskResult is what the result backend reports for one task id.
type TaskResult struct {
	TaskID string `json:"task_id"`
	State  string `json:"state"`
	Rows   []Row  `json:"rows,omitempty"`
	Error  string `json:"error,omitempty"`
}
