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

// Package api is the HTTP surface of the server. Handlers bind and validate
// DTOs, call the service layer and render bcode errors.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/intel/modelq/internal/manager"
	"github.com/intel/modelq/internal/server"
)

// ModelQCoreServer groups the router and the services behind it.
type ModelQCoreServer struct {
	Router *gin.Engine

	Model  server.Model
	Task   server.Task
	Data   server.Data
	Health server.Health

	WS *WebSocketManager
}

// NewModelQCoreServer creates the server shell. Register wires the services
// before the router is injected.
func NewModelQCoreServer() *ModelQCoreServer {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	return &ModelQCoreServer{
		Router: router,
		WS:     NewWebSocketManager(),
	}
}

// Register builds the service layer over the managers.
func (t *ModelQCoreServer) Register(models *manager.ModelsDBManager, bg *manager.ModelsDBBackgroundManager) {
	t.Model = server.NewModel(models)
	t.Task = server.NewTask(bg)
	t.Data = server.NewData()
	t.Health = server.NewHealth(models)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (t *ModelQCoreServer) Run(ctx context.Context, host string) error {
	srv := &http.Server{
		Addr:    host,
		Handler: t.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server", "host", host)
	t.WS.CloseAllConnections()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
