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

package server

import (
	"context"

	"github.com/intel/modelq/internal/api/dto"
	"github.com/intel/modelq/internal/manager"
	"github.com/intel/modelq/internal/utils/bcode"
)

type Task interface {
	StartInput(ctx context.Context, request *dto.ModelInputRequest) (*dto.StartTaskResponse, error)
	StartOutput(ctx context.Context, request *dto.ModelOutputRequest) (*dto.StartTaskResponse, error)
	StartUpdate(ctx context.Context, request *dto.TaskUpdateRequest) (*dto.StartTaskResponse, error)
	StartDelete(ctx context.Context, request *dto.TaskDeleteRequest) (*dto.StartTaskResponse, error)
	StartInputDB(ctx context.Context, request *dto.ModelInputDBRequest) (*dto.StartTaskResponse, error)
	StartOutputDB(ctx context.Context, request *dto.ModelOutputDBRequest) (*dto.StartTaskResponse, error)
	GetStatus(ctx context.Context, request *dto.GetTaskStatusRequest) (*dto.GetTaskStatusResponse, error)
	Cancel(ctx context.Context, request *dto.CancelTaskRequest) (*dto.CancelTaskResponse, error)
	Forget(ctx context.Context, request *dto.ForgetTaskRequest) (*dto.ForgetTaskResponse, error)
}

type TaskImpl struct {
	Bg *manager.ModelsDBBackgroundManager
}

func NewTask(bg *manager.ModelsDBBackgroundManager) Task {
	return &TaskImpl{Bg: bg}
}

func startResponse(taskID string) *dto.StartTaskResponse {
	return &dto.StartTaskResponse{Bcode: *bcode.TaskCode, TaskID: taskID}
}

func (s *TaskImpl) StartInput(ctx context.Context, request *dto.ModelInputRequest) (*dto.StartTaskResponse, error) {
	id, err := s.Bg.Input(ctx, request.Name, request.Rows, request.Options)
	if err != nil {
		return nil, err
	}
	return startResponse(id), nil
}

func (s *TaskImpl) StartOutput(ctx context.Context, request *dto.ModelOutputRequest) (*dto.StartTaskResponse, error) {
	id, err := s.Bg.Output(ctx, request.Name, request.Rows, request.Options)
	if err != nil {
		return nil, err
	}
	return startResponse(id), nil
}

func (s *TaskImpl) StartUpdate(ctx context.Context, request *dto.TaskUpdateRequest) (*dto.StartTaskResponse, error) {
	id, err := s.Bg.Update(ctx, request.Name, request.Metadata)
	if err != nil {
		return nil, err
	}
	return startResponse(id), nil
}

func (s *TaskImpl) StartDelete(ctx context.Context, request *dto.TaskDeleteRequest) (*dto.StartTaskResponse, error) {
	id, err := s.Bg.Delete(ctx, request.Name)
	if err != nil {
		return nil, err
	}
	return startResponse(id), nil
}

func (s *TaskImpl) StartInputDB(ctx context.Context, request *dto.ModelInputDBRequest) (*dto.StartTaskResponse, error) {
	id, err := s.Bg.InputDB(ctx, request.Name, request.Table, request.Options)
	if err != nil {
		return nil, err
	}
	return startResponse(id), nil
}

func (s *TaskImpl) StartOutputDB(ctx context.Context, request *dto.ModelOutputDBRequest) (*dto.StartTaskResponse, error) {
	id, err := s.Bg.OutputDB(ctx, request.Name, request.Table, request.OutputTable, request.Options)
	if err != nil {
		return nil, err
	}
	return startResponse(id), nil
}

func (s *TaskImpl) GetStatus(ctx context.Context, request *dto.GetTaskStatusRequest) (*dto.GetTaskStatusResponse, error) {
	status, err := s.Bg.GetStatus(ctx, request.Name)
	if err != nil {
		return nil, err
	}
	return &dto.GetTaskStatusResponse{Bcode: *bcode.TaskCode, Data: status}, nil
}

func (s *TaskImpl) Cancel(ctx context.Context, request *dto.CancelTaskRequest) (*dto.CancelTaskResponse, error) {
	if err := s.Bg.Cancel(ctx, request.Name); err != nil {
		return nil, err
	}
	return &dto.CancelTaskResponse{Bcode: *bcode.TaskCode}, nil
}

func (s *TaskImpl) Forget(ctx context.Context, request *dto.ForgetTaskRequest) (*dto.ForgetTaskResponse, error) {
	if err := s.Bg.Forget(request.Name); err != nil {
		return nil, err
	}
	return &dto.ForgetTaskResponse{Bcode: *bcode.TaskCode}, nil
}
