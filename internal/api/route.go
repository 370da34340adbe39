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
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intel/modelq/config"
	"github.com/intel/modelq/internal/constants"
	"github.com/intel/modelq/version"
)

func InjectRouter(e *ModelQCoreServer) {
	e.Router.Handle(http.MethodGet, "/", rootHandler)
	e.Router.Handle(http.MethodGet, "/health", e.GetHealth)
	e.Router.Handle(http.MethodGet, "/version", getVersion)

	r := e.Router.Group("/" + constants.AppName + "/" + version.SpecVersion)

	r.Handle(http.MethodGet, "/model", e.GetModels)
	r.Handle(http.MethodPost, "/model", e.CreateModel)
	r.Handle(http.MethodPut, "/model", e.UpdateModel)
	r.Handle(http.MethodDelete, "/model", e.DeleteModel)
	r.Handle(http.MethodPost, "/model/load", e.LoadModel)
	r.Handle(http.MethodPost, "/model/input", e.ModelInput)
	r.Handle(http.MethodPost, "/model/output", e.ModelOutput)
	r.Handle(http.MethodPost, "/model/input_db", e.ModelInputDB)
	r.Handle(http.MethodPost, "/model/output_db", e.ModelOutputDB)

	r.Handle(http.MethodPost, "/task/input", e.StartTaskInput)
	r.Handle(http.MethodPost, "/task/output", e.StartTaskOutput)
	r.Handle(http.MethodPost, "/task/update", e.StartTaskUpdate)
	r.Handle(http.MethodPost, "/task/delete", e.StartTaskDelete)
	r.Handle(http.MethodPost, "/task/input_db", e.StartTaskInputDB)
	r.Handle(http.MethodPost, "/task/output_db", e.StartTaskOutputDB)
	r.Handle(http.MethodGet, "/task", e.GetTaskStatus)
	r.Handle(http.MethodPost, "/task/cancel", e.CancelTask)
	r.Handle(http.MethodDelete, "/task", e.ForgetTask)
	r.Handle(http.MethodGet, "/task/events", e.TaskEvents)

	r.Handle(http.MethodGet, "/data", e.ReadDataTable)

	slog.Info("Server routes ready", "host", config.GlobalEnvironment.ApiHost)
}

func rootHandler(c *gin.Context) {
	c.String(http.StatusOK, version.ModelQDescription)
}

func getVersion(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]string{"version": version.ModelQVersion, "spec_version": version.SpecVersion})
}
