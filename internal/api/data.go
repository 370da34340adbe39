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

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intel/modelq/internal/api/dto"
	"github.com/intel/modelq/internal/utils/bcode"
)

func (t *ModelQCoreServer) ReadDataTable(c *gin.Context) {
	request := new(dto.ReadDataTableRequest)
	if err := c.Bind(request); err != nil {
		bcode.ReturnError(c, bcode.ErrDataBadRequest)
		return
	}

	if err := validate.Struct(request); err != nil {
		bcode.ReturnError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := t.Data.ReadTable(ctx, request)
	if err != nil {
		bcode.ReturnError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (t *ModelQCoreServer) GetHealth(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := t.Health.Health(ctx)
	if err != nil {
		bcode.ReturnError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
