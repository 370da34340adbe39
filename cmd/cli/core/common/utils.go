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

package common

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/intel/modelq/config"
	"github.com/intel/modelq/internal/utils/progress"
	"github.com/spf13/cobra"
)

// IsServerRunning reports whether the ModelQ server answers its health endpoint
func IsServerRunning() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c := config.NewModelQClient()
	err := c.Client.Do(ctx, http.MethodGet, "/health", nil, nil)
	return err == nil
}

// CheckModelQServer checks if the ModelQ server is running
func CheckModelQServer(cmd *cobra.Command, args []string) {
	if !IsServerRunning() {
		fmt.Println("ModelQ server is not running, Please run 'modelq server start' first")
		os.Exit(1)
	}
}

// ShowProgressWithMessage shows a loading animation while fn runs
func ShowProgressWithMessage(message string, fn func() error) error {
	var wg sync.WaitGroup
	stopChan := make(chan struct{})

	wg.Add(1)
	go progress.ShowLoadingAnimation(stopChan, &wg, message)

	err := fn()

	close(stopChan)
	wg.Wait()

	return err
}
