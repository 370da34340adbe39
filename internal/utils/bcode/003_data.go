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
	DataCode = NewBcode(http.StatusOK, 50000, "data interface call success")

	ErrDataBadRequest = NewBcode(http.StatusBadRequest, 50001, "bad request")

	ErrDataTableNotFound = NewBcode(http.StatusNotFound, 50002, "data table not exist")

	ErrDataRead = NewBcode(http.StatusInternalServerError, 50003, "data table read failed")

	// ErrDataReplace covers the transactional replace of an output table.
	ErrDataReplace = NewBcode(http.StatusInternalServerError, 50004, "data table replace failed")
)
