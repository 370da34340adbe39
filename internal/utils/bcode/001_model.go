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
	ModelCode = NewBcode(http.StatusOK, 30000, "model interface call success")

	ErrModelBadRequest = NewBcode(http.StatusBadRequest, 30001, "bad request")

	// ErrModelTypeUnknown rejects operations on a model type that was never
	// registered in the startup registry.
	ErrModelTypeUnknown = NewBcode(http.StatusBadRequest, 30002, "unknown model type")

	ErrModelIsExist = NewBcode(http.StatusConflict, 30003, "model instance already exists")

	ErrModelRecordNotFound = NewBcode(http.StatusNotFound, 30004, "model instance not exist")

	// ErrModelStorage covers artifact file I/O failures (read, write, delete).
	ErrModelStorage = NewBcode(http.StatusInternalServerError, 30005, "model artifact storage failed")

	// ErrModelCodec covers serialize/deserialize failures of the model state.
	ErrModelCodec = NewBcode(http.StatusInternalServerError, 30006, "model state encode/decode failed")

	ErrModelNotTrained = NewBcode(http.StatusBadRequest, 30007, "model instance has not been trained")

	ErrModelMetadata = NewBcode(http.StatusInternalServerError, 30008, "model metadata db operation failed")
)
