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

package cli

import (
	"github.com/intel/modelq/cmd/cli/core/common"
	"github.com/intel/modelq/cmd/cli/core/model"
	"github.com/intel/modelq/cmd/cli/core/server"
	"github.com/intel/modelq/cmd/cli/core/task"
	"github.com/intel/modelq/internal/constants"
	"github.com/spf13/cobra"
)

// NewCommand creates the root ModelQ command with all subcommands
func NewCommand() *cobra.Command {
	cmds := &cobra.Command{
		Use:   constants.AppName,
		Short: "ModelQ - model lifecycle and background task service",
		Long: `ModelQ manages file-persisted train/predict models and runs long
operations on them through a background task queue, so API callers are
never blocked by training or batch prediction.

Common commands:
  modelq server start            Start the ModelQ server
  modelq create model <name>     Create a model
  modelq get models              List models
  modelq get task <model_name>   Show a model's task status

Use 'modelq <command> --help' for more information about a command.`,
	}

	cmds.AddCommand(
		// Server management
		server.NewApiserverCommand(),

		// Common commands
		common.NewVersionCommand(),

		// Resource management
		NewGetCommand(),
		NewCreateCommand(),
		NewDeleteCommand(),

		// Task management
		task.NewCancelTaskCommand(),
	)

	return cmds
}

// NewGetCommand creates the get command with subcommands
func NewGetCommand() *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Display resource information",
		Long:  "Display information about models and tasks managed by ModelQ.",
	}
	getCmd.AddCommand(
		model.NewListModelsCommand(),
		task.NewGetTaskCommand(),
	)

	return getCmd
}

// NewCreateCommand creates the create command with subcommands
func NewCreateCommand() *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create resources",
		Long:  "Create new models in ModelQ.",
	}
	createCmd.AddCommand(
		model.NewCreateModelCommand(),
	)

	return createCmd
}

// NewDeleteCommand creates the delete command with subcommands
func NewDeleteCommand() *cobra.Command {
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove resources",
		Long:  "Remove models from ModelQ. Use with caution as this operation cannot be undone.",
	}
	deleteCmd.AddCommand(
		model.NewDeleteModelCommand(),
	)

	return deleteCmd
}
