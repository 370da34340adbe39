//*****************************************************************************
// Copyright 2025 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/intel/modelq/config"
	"github.com/intel/modelq/internal/api"
	"github.com/intel/modelq/internal/broker"
	"github.com/intel/modelq/internal/constants"
	"github.com/intel/modelq/internal/datastore"
	"github.com/intel/modelq/internal/datastore/sqlite"
	"github.com/intel/modelq/internal/logger"
	"github.com/intel/modelq/internal/manager"
	"github.com/intel/modelq/internal/provider"
	"github.com/spf13/cobra"
)

// NewApiserverCommand creates the server management command
func NewApiserverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage " + constants.AppName + " server",
		Long:  "Manage " + constants.AppName + " server (start, stop, etc.)",
	}

	cmd.AddCommand(
		NewStartApiServerCommand(),
		NewStopApiServerCommand(),
	)

	return cmd
}

// NewStartApiServerCommand creates the start server command
func NewStartApiServerCommand() *cobra.Command {
	config.GlobalEnvironment = config.NewModelQEnvironment()
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the " + constants.AppName + " API server",
		Long:  "Start the " + constants.AppName + " API server in the foreground.",
		RunE: func(cmd *cobra.Command, args []string) error {
			isDebug, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}

			logLevel := config.LogLevelError
			if isDebug {
				logLevel = config.LogLevelDebug
			}

			config.GlobalEnvironment.LogLevel = logLevel
			config.GlobalEnvironment.Verbose = logLevel
			logger.InitLogger(logger.LogConfig{LogLevel: logLevel, LogPath: config.GlobalEnvironment.LogDir})
			config.GlobalEnvironment.SetSlogColor()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return Run(ctx)
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Enable debug mode")
	return cmd
}

// NewStopApiServerCommand creates the stop server command
func NewStopApiServerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop a running server.",
		Long:  "Stop a running server.",
		Args:  cobra.ExactArgs(0),
		RunE:  stopModelQServer,
	}
}

// stopModelQServer stops the ModelQ server via its pid file
func stopModelQServer(cmd *cobra.Command, args []string) error {
	files, err := filepath.Glob(filepath.Join(config.GlobalEnvironment.RootDir, "*.pid"))
	if err != nil {
		return fmt.Errorf("failed to list pid files: %v", err)
	}

	if len(files) == 0 {
		fmt.Println("No running processes found")
		return nil
	}

	for _, pidFile := range files {
		pidData, err := os.ReadFile(pidFile)
		if err != nil {
			fmt.Printf("Failed to read PID file %s: %v\n", pidFile, err)
			continue
		}

		pid, err := strconv.Atoi(strings.TrimSpace(string(pidData)))
		if err != nil {
			fmt.Printf("Invalid PID in file %s: %v\n", pidFile, err)
			continue
		}

		process, err := os.FindProcess(pid)
		if err != nil {
			fmt.Printf("Failed to find process with PID %d: %v\n", pid, err)
			continue
		}

		if err := process.Kill(); err != nil {
			if strings.Contains(err.Error(), "process already finished") {
				fmt.Printf("Process with PID %d is already stopped\n", pid)
			} else {
				fmt.Printf("Failed to kill process with PID %d: %v\n", pid, err)
				continue
			}
		} else {
			fmt.Printf("Successfully stopped process with PID %d\n", pid)
		}

		if err := os.Remove(pidFile); err != nil {
			fmt.Printf("Failed to remove PID file %s: %v\n", pidFile, err)
		}
	}

	return nil
}

// Run starts the ModelQ server
func Run(ctx context.Context) error {
	env := config.GlobalEnvironment

	// Initialize the datastore
	ds, err := sqlite.New(env.Datastore)
	if err != nil {
		slog.Error("[Init] Failed to load datastore", "error", err)
		return err
	}
	if err := ds.Init(); err != nil {
		slog.Error("[Init] Failed to migrate datastore", "error", err)
		return err
	}
	datastore.SetDefaultDatastore(ds)

	registry := provider.Default()

	// The broker workers run their own models manager so artifact access
	// stays coordinated through the file system, same as separate processes.
	workerModels, err := manager.NewModelsManager(env.ModelsDir, env.ModelSuffix, registry, ds)
	if err != nil {
		slog.Error("[Init] Failed to open models folder", "error", err)
		return err
	}

	brk, err := broker.NewInproc(ds, manager.NewTaskHandler(manager.NewModelsDBManager(workerModels)), broker.InprocOptions{
		Workers:    env.Workers,
		QueueDepth: env.QueueDepth,
		OrphanTTL:  env.OrphanTTL,
	})
	if err != nil {
		slog.Error("[Init] Failed to start task broker", "error", err)
		return err
	}
	defer brk.Close()

	serveModels, err := manager.NewModelsManager(env.ModelsDir, env.ModelSuffix, registry, ds)
	if err != nil {
		slog.Error("[Init] Failed to open models folder", "error", err)
		return err
	}

	modelQServer := api.NewModelQCoreServer()
	modelQServer.Register(manager.NewModelsDBManager(serveModels), manager.NewModelsDBBackgroundManager(brk))

	logger.LogicLogger.Info("start_app")

	api.InjectRouter(modelQServer)

	pidFile := filepath.Join(env.RootDir, constants.AppName+".pid")
	err = os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", os.Getpid())), 0o644)
	if err != nil {
		slog.Error("[Run] Failed to write pid file", "error", err)
		return err
	}
	defer os.Remove(pidFile)

	_, _ = color.New(color.FgHiGreen).Println("ModelQ starting on", env.ApiHost)

	// Run the server
	err = modelQServer.Run(ctx, env.ApiHost)
	if err != nil {
		slog.Error("[Run] Failed to run server", "error", err)
		return err
	}

	return nil
}
