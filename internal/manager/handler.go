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

	"github.com/intel/modelq/internal/broker"
	"github.com/intel/modelq/internal/types"
	"github.com/intel/modelq/internal/utils/bcode"
)

// NewTaskHandler returns the broker handler executing tasks against models.
// Workers hold their own manager, so their instance cache is independent of
// the submitting process; artifact mtime is the only coordination.
func NewTaskHandler(models *ModelsDBManager) broker.Handler {
	return func(ctx context.Context, args types.TaskArgs) ([]types.Row, error) {
		switch args.Operation {
		case types.OperationInput:
			return nil, models.Input(ctx, args.ModelName, args.Rows, args.Options)
		case types.OperationOutput:
			return models.Output(ctx, args.ModelName, args.Rows, args.Options)
		case types.OperationUpdate:
			return nil, models.Update(ctx, args.ModelName, metadataFromMap(args.Metadata))
		case types.OperationDelete:
			return nil, models.Delete(ctx, args.ModelName)
		case types.OperationInputDB:
			return nil, models.InputDB(ctx, args.ModelName, args.Table, args.Options)
		case types.OperationOutputDB:
			return nil, models.OutputDB(ctx, args.ModelName, args.Table, args.OutputTable, args.Options)
		default:
			return nil, bcode.WrapError(bcode.ErrUnknownOperation, fmt.Errorf("operation %q", args.Operation))
		}
	}
}

func metadataFromMap(m map[string]any) ModelMetadata {
	str := func(key string) string {
		if v, ok := m[key].(string); ok {
			return v
		}
		return ""
	}
	return ModelMetadata{
		Title:       str("title"),
		Description: str("description"),
		Tags:        str("tags"),
		Source:      str("source"),
	}
}
