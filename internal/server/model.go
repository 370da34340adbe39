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

// Package server holds the service layer between the HTTP handlers and the
// model managers.
package server

import (
	"context"

	"github.com/intel/modelq/internal/api/dto"
	"github.com/intel/modelq/internal/datastore"
	"github.com/intel/modelq/internal/manager"
	"github.com/intel/modelq/internal/utils/bcode"
)

type Model interface {
	CreateModel(ctx context.Context, request *dto.CreateModelRequest) (*dto.CreateModelResponse, error)
	GetModels(ctx context.Context, request *dto.GetModelsRequest) (*dto.GetModelsResponse, error)
	GetModel(ctx context.Context, request *dto.GetModelRequest) (*dto.GetModelResponse, error)
	UpdateModel(ctx context.Context, request *dto.UpdateModelRequest) (*dto.UpdateModelResponse, error)
	DeleteModel(ctx context.Context, request *dto.DeleteModelRequest) (*dto.DeleteModelResponse, error)
	LoadModel(ctx context.Context, request *dto.LoadModelRequest) (*dto.LoadModelResponse, error)
	Input(ctx context.Context, request *dto.ModelInputRequest) (*dto.ModelInputResponse, error)
	Output(ctx context.Context, request *dto.ModelOutputRequest) (*dto.ModelOutputResponse, error)
	InputDB(ctx context.Context, request *dto.ModelInputDBRequest) (*dto.ModelInputDBResponse, error)
	OutputDB(ctx context.Context, request *dto.ModelOutputDBRequest) (*dto.ModelOutputDBResponse, error)
}

type ModelImpl struct {
	Ds     datastore.Datastore
	Models *manager.ModelsDBManager
}

func NewModel(models *manager.ModelsDBManager) Model {
	return &ModelImpl{
		Ds:     datastore.GetDefaultDatastore(),
		Models: models,
	}
}

func (s *ModelImpl) CreateModel(ctx context.Context, request *dto.CreateModelRequest) (*dto.CreateModelResponse, error) {
	if err := s.Models.Create(ctx, request.Name, request.Type, request.Overwrite); err != nil {
		return nil, err
	}
	return &dto.CreateModelResponse{
		Bcode: *bcode.ModelCode,
		Name:  request.Name,
		Type:  request.Type,
	}, nil
}

func (s *ModelImpl) GetModels(ctx context.Context, request *dto.GetModelsRequest) (*dto.GetModelsResponse, error) {
	if request.Name != "" {
		info, err := s.Models.Get(ctx, request.Name)
		if err != nil {
			return nil, err
		}
		return &dto.GetModelsResponse{Bcode: *bcode.ModelCode, Data: []manager.ModelInfo{info}}, nil
	}
	infos, err := s.Models.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.GetModelsResponse{Bcode: *bcode.ModelCode, Data: infos}, nil
}

func (s *ModelImpl) GetModel(ctx context.Context, request *dto.GetModelRequest) (*dto.GetModelResponse, error) {
	info, err := s.Models.Get(ctx, request.Name)
	if err != nil {
		return nil, err
	}
	resp := &dto.GetModelResponse{Bcode: *bcode.ModelCode, Data: info}
	if rec, err := s.Models.Record(ctx, request.Name); err == nil {
		resp.Record = rec
	}
	return resp, nil
}

func (s *ModelImpl) UpdateModel(ctx context.Context, request *dto.UpdateModelRequest) (*dto.UpdateModelResponse, error) {
	meta := manager.ModelMetadata{
		Title:       request.Title,
		Description: request.Description,
		Tags:        request.Tags,
		Source:      request.Source,
	}
	if err := s.Models.Update(ctx, request.Name, meta); err != nil {
		return nil, err
	}
	return &dto.UpdateModelResponse{Bcode: *bcode.ModelCode}, nil
}

func (s *ModelImpl) DeleteModel(ctx context.Context, request *dto.DeleteModelRequest) (*dto.DeleteModelResponse, error) {
	if err := s.Models.Delete(ctx, request.Name); err != nil {
		return nil, err
	}
	return &dto.DeleteModelResponse{Bcode: *bcode.ModelCode}, nil
}

func (s *ModelImpl) LoadModel(ctx context.Context, request *dto.LoadModelRequest) (*dto.LoadModelResponse, error) {
	if err := s.Models.Load(ctx, request.Name, request.Force); err != nil {
		return nil, err
	}
	return &dto.LoadModelResponse{Bcode: *bcode.ModelCode}, nil
}

func (s *ModelImpl) Input(ctx context.Context, request *dto.ModelInputRequest) (*dto.ModelInputResponse, error) {
	if err := s.Models.Input(ctx, request.Name, request.Rows, request.Options); err != nil {
		return nil, err
	}
	return &dto.ModelInputResponse{Bcode: *bcode.ModelCode}, nil
}

func (s *ModelImpl) Output(ctx context.Context, request *dto.ModelOutputRequest) (*dto.ModelOutputResponse, error) {
	rows, err := s.Models.Output(ctx, request.Name, request.Rows, request.Options)
	if err != nil {
		return nil, err
	}
	return &dto.ModelOutputResponse{Bcode: *bcode.ModelCode, Data: rows}, nil
}

func (s *ModelImpl) InputDB(ctx context.Context, request *dto.ModelInputDBRequest) (*dto.ModelInputDBResponse, error) {
	if err := s.Models.InputDB(ctx, request.Name, request.Table, request.Options); err != nil {
		return nil, err
	}
	return &dto.ModelInputDBResponse{Bcode: *bcode.ModelCode}, nil
}

func (s *ModelImpl) OutputDB(ctx context.Context, request *dto.ModelOutputDBRequest) (*dto.ModelOutputDBResponse, error) {
	if err := s.Models.OutputDB(ctx, request.Name, request.Table, request.OutputTable, request.Options); err != nil {
		return nil, err
	}
	return &dto.ModelOutputDBResponse{Bcode: *bcode.ModelCode}, nil
}
