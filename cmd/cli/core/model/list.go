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

package model

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/intel/modelq/cmd/cli/core/common"
	"github.com/intel/modelq/config"
	"github.com/intel/modelq/internal/api/dto"
	"github.com/intel/modelq/version"
	"github.com/spf13/cobra"
)

// NewListModelsCommand creates the list models command
func NewListModelsCommand() *cobra.Command {
	var name string

	listModelCmd := &cobra.Command{
		Use:    "models",
		Short:  "List models",
		Long:   `List models and their load state.`,
		PreRun: common.CheckModelQServer,
		Run: func(cmd *cobra.Command, args []string) {
			resp := dto.GetModelsResponse{}

			c := config.NewModelQClient()
			routerPath := fmt.Sprintf("/modelq/%s/model", version.SpecVersion)
			if name != "" {
				routerPath += "?name=" + url.QueryEscape(name)
			}

			err := c.Client.Do(context.Background(), http.MethodGet, routerPath, nil, &resp)
			if err != nil {
				fmt.Printf("\rGet model list failed: %s", err.Error())
				return
			}

			fmt.Printf("%-30s %-15s %-10s %-25s\n", "MODEL NAME", "TYPE", "LOADED", "LAST LOADED") // Table header

			for _, m := range resp.Data {
				lastLoaded := "-"
				if !m.LastLoaded.IsZero() {
					lastLoaded = m.LastLoaded.Format(time.RFC3339)
				}
				fmt.Printf("%-30s %-15s %-10t %-25s\n",
					m.Name,
					m.Type,
					m.Loaded,
					lastLoaded,
				)
			}
		},
	}

	listModelCmd.Flags().StringVarP(&name, "name", "n", "", "Only show the model with this name")

	return listModelCmd
}
