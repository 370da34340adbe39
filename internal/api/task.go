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
	"github.com/intel/modelq/internal/logger"
	"github.com/intel/modelq/internal/utils/bcode"
)

func (t *ModelQCoreServer) StartTaskInput(c *gin.Context) {
	request := new(dto.ModelInputRequest)
	if err := c.ShouldBindJSON(request); err != nil {
		bcode.ReturnError(c, bcode.ErrTaskBadRequest)
		return
	}

	if err := validate.Struct(request); err != nil {
		bcode.ReturnError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := t.Task.StartInput(ctx, request)
	if err != nil {
		bcode.ReturnError(c, err)
		return
	}

	logger.ApiLogger.Debug("[API] StartTaskInput accepted", "name", request.Name, "task_id", resp.TaskID)
	c.JSON(http.StatusOK, resp)
}

func (t *ModelQCoreServer) StartTaskOutput(c *gin.Context) {
	request := new(dto.ModelOutputRequest)
	if err := c.ShouldBindJSON(request); err != nil {
		bcode.ReturnError(c, bcode.ErrTaskBadRequest)
		return
	}

	if err := validate.Struct(request); err != nil {
		bcode.ReturnError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := t.Task.StartOutput(ctx, request)
	if err != nil {
		bcode.ReturnError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (t *ModelQCoreServer) StartTaskUpdate(c *gin.Context) {
	request := new(dto.TaskUpdateRequest)
	if err := c.ShouldBindJSON(request); err != nil {
		bcode.ReturnError(c, bcode.ErrTaskBadRequest)
		return
	}

	if err := validate.Struct(request); err != nil {
		bcode.ReturnError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := t.Task.StartUpdate(ctx, request)
	if err != nil {
		bcode.ReturnError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (t *ModelQCoreServer) StartTaskDelete(c *gin.Context) {
	request := new(dto.TaskDeleteRequest)
	if err := c.ShouldBindJSON(request); err != nil {
		bcode.ReturnError(c, bcode.ErrTaskBadRequest)
		return
	}

	if err := validate.Struct(request); err != nil {
		bcode.ReturnError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := t.Task.StartDelete(ctx, request)
	if err != nil {
		bcode.ReturnError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (t *ModelQCoreServer) StartTaskInputDB(c *gin.Context) {
	request := new(dto.ModelInputDBRequest)
	if err := c.ShouldBindJSON(request); err != nil {
		bcode.ReturnError(c, bcode.ErrTaskBadRequest)
		return
	}

	if err := validate.Struct(request); err != nil {
		bcode.ReturnError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := t.Task.StartInputDB(ctx, request)
	if err != nil {
		bcode.ReturnError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (t *ModelQCoreServer) StartTaskOutputDB(c *gin.Context) {
	request := new(dto.ModelOutputDBRequest)
	if err := c.ShouldBindJSON(request); err != nil {
		bcode.ReturnError(c, bcode.ErrTaskBadRequest)
		return
	}

	if err := validate.Struct(request); err != nil {
		bcode.ReturnError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := t.Task.StartOutputDB(ctx, request)
	if err != nil {
		bcode.ReturnError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (t *ModelQCoreServer) GetTaskStatus(c *gin.Context) {
	request := new(dto.GetTaskStatusRequest)
	if err := c.Bind(request); err != nil {
		bcode.ReturnError(c, bcode.ErrTaskBadRequest)
		return
	}

	if err := validate.Struct(request); err != nil {
		bcode.ReturnError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := t.Task.GetStatus(ctx, request)
	if err != nil {
		bcode.ReturnError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (t *ModelQCoreServer) CancelTask(c *gin.Context) {
	request := new(dto.CancelTaskRequest)
	if err := c.ShouldBindJSON(request); err != nil {
		bcode.ReturnError(c, bcode.ErrTaskBadRequest)
		return
	}

	if err := validate.Struct(request); err != nil {
		bcode.ReturnError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := t.Task.Cancel(ctx, request)
	if err != nil {
		bcode.ReturnError(c, err)
		return
	}

	logger.ApiLogger.Debug("[API] CancelTask done", "name", request.Name)
	c.JSON(http.StatusOK, resp)
}

func (t *ModelQCoreServer) ForgetTask(c *gin.Context) {
	request := new(dto.ForgetTaskRequest)
	if err := c.ShouldBindJSON(request); err != nil {
		bcode.ReturnError(c, bcode.ErrTaskBadRequest)
		return
	}

	if err := validate.Struct(request); err != nil {
		bcode.ReturnError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := t.Task.Forget(ctx, request)
	if err != nil {
		bcode.ReturnError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
