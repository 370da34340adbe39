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

// NewDeleteModelCommand creates the delete model command
func NewDeleteModelCommand() *cobra.Command {
	deleteModelCmd := &cobra.Command{
		Use:    "model <model_name>",
		Short:  "Remove a model",
		Long:   `Remove a model, its artifact folder and its record.`,
		Args:   cobra.ExactArgs(1),
		PreRun: common.CheckModelQServer,
		Run: func(cmd *cobra.Command, args []string) {
			req := dto.DeleteModelRequest{Name: args[0]}
			resp := dto.DeleteModelResponse{}

			c := config.NewModelQClient()
			routerPath := fmt.Sprintf("/modelq/%s/model", version.SpecVersion)

			err := c.Client.Do(context.Background(), http.MethodDelete, routerPath, req, &resp)
			if err != nil {
				fmt.Printf("\rDelete model failed: %s", err.Error())
				return
			}

			fmt.Println("Delete model success!")
		},
	}

	return deleteModelCmd
}
