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

	"github.com/intel/modelq/config"
	"github.com/intel/modelq/internal/api/dto"
	"github.com/intel/modelq/internal/manager"
	"github.com/intel/modelq/internal/utils"
	"github.com/intel/modelq/internal/utils/bcode"
)

type Health interface {
	Health(ctx context.Context) (*dto.GetHealthResponse, error)
}

type HealthImpl struct {
	Models *manager.ModelsDBManager
}

func NewHealth(models *manager.ModelsDBManager) Health {
	return &HealthImpl{Models: models}
}

func (h *HealthImpl) Health(ctx context.Context) (*dto.GetHealthResponse, error) {
	resp := &dto.GetHealthResponse{Bcode: *bcode.HealthCode, Status: "UP"}

	infos, err := h.Models.List(ctx)
	if err != nil {
		return nil, err
	}
	resp.Models = len(infos)

	stats, err := utils.CollectSystemStats(config.GlobalEnvironment.RootDir)
	if err != nil {
		return nil, bcode.WrapError(bcode.ErrHealthStats, err)
	}
	resp.Stats = stats
	return resp, nil
}
