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

package bcode

import "net/http"

var (
	TaskCode = NewBcode(http.StatusOK, 40000, "task interface call success")

	ErrTaskBadRequest = NewBcode(http.StatusBadRequest, 40001, "bad request")

	// ErrTaskConflict rejects a submission while a prior task for the same
	// model is still non-terminal. Busy models reject, they never queue.
	ErrTaskConflict = NewBcode(http.StatusConflict, 40002, "model instance still processing")

	ErrTaskNotFound = NewBcode(http.StatusNotFound, 40003, "model instance has not gone through any processing")

	ErrTaskNotCancellable = NewBcode(http.StatusBadRequest, 40004, "task is not processing")

	// ErrBroker covers submission/poll/revoke failures against the queue.
	ErrBroker = NewBcode(http.StatusBadGateway, 40005, "task broker unreachable")

	ErrUnknownOperation = NewBcode(http.StatusBadRequest, 40006, "unknown task operation")
)
