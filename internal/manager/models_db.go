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
	"errors"

	"github.com/intel/modelq/internal/datastore"
	"github.com/intel/modelq/internal/types"
	"github.com/intel/modelq/internal/utils/bcode"
)

// ModelsDBManager extends the instance cache with operations whose rows
// come from and go to datastore tables instead of request payloads.
type ModelsDBManager struct {
	*ModelsManager
}

// NewModelsDBManager wraps an existing ModelsManager.
func NewModelsDBManager(models *ModelsManager) *ModelsDBManager {
	return &ModelsDBManager{ModelsManager: models}
}

func (m *ModelsDBManager) readTable(ctx context.Context, table string) ([]types.Row, error) {
	if m.ds == nil {
		return nil, bcode.WrapError(bcode.ErrDataRead, errors.New("no datastore configured"))
	}
	rows, err := m.ds.ReadDataTable(ctx, table)
	if err != nil {
		if errors.Is(err, datastore.ErrTableNotExist) {
			return nil, bcode.WrapError(bcode.ErrDataTableNotFound, err)
		}
		return nil, bcode.WrapError(bcode.ErrDataRead, err)
	}
	return rows, nil
}

// InputDB trains the model with every row of table.
func (m *ModelsDBManager) InputDB(ctx context.Context, name, table string, options map[string]interface{}) error {
	rows, err := m.readTable(ctx, table)
	if err != nil {
		return err
	}
	return m.Input(ctx, name, rows, options)
}

// OutputDB predicts over every row of inTable and replaces the contents of
// outTable with the result. The replace is a single transaction, so readers
// of outTable see either the old rows or the new rows, never a mix.
func (m *ModelsDBManager) OutputDB(ctx context.Context, name, inTable, outTable string, options map[string]interface{}) error {
	rows, err := m.readTable(ctx, inTable)
	if err != nil {
		return err
	}
	out, err := m.Output(ctx, name, rows, options)
	if err != nil {
		return err
	}
	if err := m.ds.ReplaceDataTable(ctx, outTable, out); err != nil {
		return bcode.WrapError(bcode.ErrDataReplace, err)
	}
	return nil
}
