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

package dto

import (
	"github.com/intel/modelq/internal/manager"
	"github.com/intel/modelq/internal/types"
	"github.com/intel/modelq/internal/utils"
	"github.com/intel/modelq/internal/utils/bcode"
)

type CreateModelRequest struct {
	Name      string `json:"name" validate:"required,model_name"`
	Type      string `json:"type" validate:"required"`
	Overwrite bool   `json:"overwrite"`
}

type CreateModelResponse struct {
	bcode.Bcode
	Name string `json:"name"`
	Type string `json:"type"`
}

type GetModelsRequest struct {
	Name string `form:"name"`
}

type GetModelsResponse struct {
	bcode.Bcode
	Data []manager.ModelInfo `json:"data"`
}

type GetModelRequest struct {
	Name string `form:"name" validate:"required,model_name"`
}

type GetModelResponse struct {
	bcode.Bcode
	Data   manager.ModelInfo  `json:"data"`
	Record *types.ModelRecord `json:"record,omitempty"`
}

type UpdateModelRequest struct {
	Name        string `json:"name" validate:"required,model_name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	Source      string `json:"source"`
}

type UpdateModelResponse struct {
	bcode.Bcode
}

type DeleteModelRequest struct {
	Name string `json:"name" validate:"required,model_name"`
}

type DeleteModelResponse struct {
	bcode.Bcode
}

type LoadModelRequest struct {
	Name  string `json:"name" validate:"required,model_name"`
	Force bool   `json:"force"`
}

type LoadModelResponse struct {
	bcode.Bcode
}

type ModelInputRequest struct {
	Name    string                 `json:"name" validate:"required,model_name"`
	Rows    []types.Row            `json:"rows" validate:"required,min=1"`
	Options map[string]interface{} `json:"options"`
}

type ModelInputResponse struct {
	bcode.Bcode
}

type ModelOutputRequest struct {
	Name    string                 `json:"name" validate:"required,model_name"`
	Rows    []types.Row            `json:"rows" validate:"required,min=1"`
	Options map[string]interface{} `json:"options"`
}

type ModelOutputResponse struct {
	bcode.Bcode
	Data []types.Row `json:"data"`
}

type ModelInputDBRequest struct {
	Name    string                 `json:"name" validate:"required,model_name"`
	Table   string                 `json:"table" validate:"required"`
	Options map[string]interface{} `json:"options"`
}

type ModelInputDBResponse struct {
	bcode.Bcode
}

type ModelOutputDBRequest struct {
	Name        string                 `json:"name" validate:"required,model_name"`
	Table       string                 `json:"table" validate:"required"`
	OutputTable string                 `json:"output_table" validate:"required"`
	Options     map[string]interface{} `json:"options"`
}

type ModelOutputDBResponse struct {
	bcode.Bcode
}

// Background task DTOs. Start requests mirror their synchronous
// counterparts; the response carries the task id only.

type StartTaskResponse struct {
	bcode.Bcode
	TaskID string `json:"task_id"`
}

type TaskUpdateRequest struct {
	Name     string                 `json:"name" validate:"required,model_name"`
	Metadata map[string]interface{} `json:"metadata" validate:"required"`
}

type TaskDeleteRequest struct {
	Name string `json:"name" validate:"required,model_name"`
}

type GetTaskStatusRequest struct {
	Name string `form:"name" validate:"required,model_name"`
}

type GetTaskStatusResponse struct {
	bcode.Bcode
	Data *manager.TaskStatus `json:"data"`
}

type CancelTaskRequest struct {
	Name string `json:"name" validate:"required,model_name"`
}

type CancelTaskResponse struct {
	bcode.Bcode
}

type ForgetTaskRequest struct {
	Name string `json:"name" validate:"required,model_name"`
}

type ForgetTaskResponse struct {
	bcode.Bcode
}

type ReadDataTableRequest struct {
	Table string `form:"table" validate:"required"`
}

type ReadDataTableResponse struct {
	bcode.Bcode
	Data []types.Row `json:"data"`
}

type GetHealthResponse struct {
	bcode.Bcode
	Status string             `json:"status"`
	Stats  *utils.SystemStats `json:"stats,omitempty"`
	Models int                `json:"models"`
}
