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

package task

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/intel/modelq/cmd/cli/core/common"
	"github.com/intel/modelq/config"
	"github.com/intel/modelq/internal/api/dto"
	"github.com/intel/modelq/internal/types"
	"github.com/intel/modelq/version"
	"github.com/spf13/cobra"
)

// NewGetTaskCommand creates the task status command
func NewGetTaskCommand() *cobra.Command {
	var wait bool

	getTaskCmd := &cobra.Command{
		Use:    "task <model_name>",
		Short:  "Show a model's latest task",
		Long:   `Show the state of the latest background task submitted for a model.`,
		Args:   cobra.ExactArgs(1),
		PreRun: common.CheckModelQServer,
		Run: func(cmd *cobra.Command, args []string) {
			resp := dto.GetTaskStatusResponse{}

			c := config.NewModelQClient()
			routerPath := fmt.Sprintf("/modelq/%s/task?name=%s", version.SpecVersion, url.QueryEscape(args[0]))

			fetch := func() error {
				return c.Client.Do(context.Background(), http.MethodGet, routerPath, nil, &resp)
			}

			var err error
			if wait {
				err = common.ShowProgressWithMessage("Waiting for task", func() error {
					for {
						if err := fetch(); err != nil {
							return err
						}
						if resp.Data == nil || types.TerminalTaskState(resp.Data.State) {
							return nil
						}
						time.Sleep(500 * time.Millisecond)
					}
				})
			} else {
				err = fetch()
			}
			if err != nil {
				fmt.Printf("\rGet task status failed: %s", err.Error())
				return
			}

			st := resp.Data
			if st == nil {
				fmt.Println("No task found")
				return
			}

			fmt.Printf("Task ID:   %s\n", st.TaskID)
			fmt.Printf("Model:     %s\n", st.ModelName)
			fmt.Printf("Operation: %s\n", st.Operation)
			fmt.Printf("State:     %s\n", st.State)
			if !st.StartedAt.IsZero() {
				fmt.Printf("Started:   %s\n", st.StartedAt.Format(time.RFC3339))
			}
			if st.Error != "" {
				fmt.Printf("Error:     %s\n", st.Error)
			}
		},
	}

	getTaskCmd.Flags().BoolVarP(&wait, "wait", "w", false, "Poll until the task reaches a terminal state")

	return getTaskCmd
}

// NewCancelTaskCommand creates the cancel task command
func NewCancelTaskCommand() *cobra.Command {
	cancelTaskCmd := &cobra.Command{
		Use:    "cancel <model_name>",
		Short:  "Cancel a model's running or queued task",
		Long:   `Cancel the latest background task submitted for a model.`,
		Args:   cobra.ExactArgs(1),
		PreRun: common.CheckModelQServer,
		Run: func(cmd *cobra.Command, args []string) {
			req := dto.CancelTaskRequest{Name: args[0]}
			resp := dto.CancelTaskResponse{}

			c := config.NewModelQClient()
			routerPath := fmt.Sprintf("/modelq/%s/task/cancel", version.SpecVersion)

			err := c.Client.Do(context.Background(), http.MethodPost, routerPath, req, &resp)
			if err != nil {
				fmt.Printf("\rCancel task failed: %s", err.Error())
				return
			}

			fmt.Println("Cancel requested.")
		},
	}

	return cancelTaskCmd
}
