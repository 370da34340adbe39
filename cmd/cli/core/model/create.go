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

	"github.com/intel/modelq/cmd/cli/core/common"
	"github.com/intel/modelq/config"
	"github.com/intel/modelq/internal/api/dto"
	"github.com/intel/modelq/version"
	"github.com/spf13/cobra"
)

// NewCreateModelCommand creates the create model command
func NewCreateModelCommand() *cobra.Command {
	var (
		modelType string
		overwrite bool
	)

	createModelCmd := &cobra.Command{
		Use:    "model <model_name>",
		Short:  "Create a new model",
		Long:   `Create a new model with a fresh, untrained state.`,
		Args:   cobra.ExactArgs(1),
		PreRun: common.CheckModelQServer,
		Run: func(cmd *cobra.Command, args []string) {
			req := dto.CreateModelRequest{
				Name:      args[0],
				Type:      modelType,
				Overwrite: overwrite,
			}
			resp := dto.CreateModelResponse{}

			c := config.NewModelQClient()
			routerPath := fmt.Sprintf("/modelq/%s/model", version.SpecVersion)

			err := c.Client.Do(context.Background(), http.MethodPost, routerPath, req, &resp)
			if err != nil {
				fmt.Printf("\rCreate model failed: %s", err.Error())
				return
			}

			fmt.Printf("Model %s (%s) created.\n", resp.Name, resp.Type)
		},
	}

	createModelCmd.Flags().StringVarP(&modelType, "type", "t", "", "Registered model type, e.g: demo (required)")
	_ = createModelCmd.MarkFlagRequired("type")
	createModelCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing model of the same name")

	return createModelCmd
}
