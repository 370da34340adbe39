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
	"errors"

	"github.com/intel/modelq/internal/api/dto"
	"github.com/intel/modelq/internal/datastore"
	"github.com/intel/modelq/internal/utils/bcode"
)

type Data interface {
	ReadTable(ctx context.Context, request *dto.ReadDataTableRequest) (*dto.ReadDataTableResponse, error)
}

type DataImpl struct {
	Ds datastore.Datastore
}

func NewData() Data {
	return &DataImpl{Ds: datastore.GetDefaultDatastore()}
}

func (s *DataImpl) ReadTable(ctx context.Context, request *dto.ReadDataTableRequest) (*dto.ReadDataTableResponse, error) {
	rows, err := s.Ds.ReadDataTable(ctx, request.Table)
	if err != nil {
		if errors.Is(err, datastore.ErrTableNotExist) {
			return nil, bcode.WrapError(bcode.ErrDataTableNotFound, err)
		}
		return nil, bcode.WrapError(bcode.ErrDataRead, err)
	}
	return &dto.ReadDataTableResponse{Bcode: *bcode.DataCode, Data: rows}, nil
}
