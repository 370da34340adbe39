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

	"github.com/intel/modelq/internal/broker"
	"github.com/intel/modelq/internal/types"
)

// ModelsDBBackgroundManager adds the table-backed operations to the task
// orchestrator. The same one-task-per-model guard applies; the worker side
// performs the transactional table replace.
type ModelsDBBackgroundManager struct {
	*ModelsBackgroundManager
}

// NewModelsDBBackgroundManager wires the DB-aware orchestrator to a broker.
func NewModelsDBBackgroundManager(b broker.Broker) *ModelsDBBackgroundManager {
	return &ModelsDBBackgroundManager{ModelsBackgroundManager: NewModelsBackgroundManager(b)}
}

// InputDB submits a background train over every row of table.
func (m *ModelsDBBackgroundManager) InputDB(ctx context.Context, name, table string, options map[string]interface{}) (string, error) {
	return m.Start(ctx, types.TaskArgs{ModelName: name, Operation: types.OperationInputDB, Table: table, Options: options})
}

// OutputDB submits a background predict from inTable into outTable.
func (m *ModelsDBBackgroundManager) OutputDB(ctx context.Context, name, inTable, outTable string, options map[string]interface{}) (string, error) {
	return m.Start(ctx, types.TaskArgs{
		ModelName:   name,
		Operation:   types.OperationOutputDB,
		Table:       inTable,
		OutputTable: outTable,
		Options:     options,
	})
}
