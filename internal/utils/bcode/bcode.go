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

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/intel/modelq/internal/logger"
)

// Error codes of ModelQ contain 5 digits: the first digit selects the area
// (3 model, 4 task, 5 data) and the last two digits number the error within
// the area. For example 30002 is the 02 error of the model area.

// SuccessCode a success code
var SuccessCode = NewBcode(http.StatusOK, http.StatusOK, "success")

// ErrServer an unexpected mistake.
var ErrServer = NewBcode(http.StatusInternalServerError, http.StatusInternalServerError, "The service has lapsed.")

// ErrNotFound the request resource is not found
var ErrNotFound = NewBcode(http.StatusNotFound, http.StatusNotFound, "404 Not Found")

// Bcode business error code
type Bcode struct {
	HTTPCode     int32  `json:"-"`
	BusinessCode int32  `json:"business_code"`
	Message      string `json:"message"`
}

func (b *Bcode) Error() string {
	switch {
	case b.Message != "":
		return b.Message
	default:
		return "something went wrong, please see the modelq server logs for details"
	}
}

// SetMessage set new message and return a new error instance
func (b *Bcode) SetMessage(message string) *Bcode {
	return &Bcode{
		HTTPCode:     b.HTTPCode,
		BusinessCode: b.BusinessCode,
		Message:      message,
	}
}

var bcodeMap map[int32]*Bcode

// NewBcode new error code
func NewBcode(httpCode, businessCode int32, message string) *Bcode {
	if bcodeMap == nil {
		bcodeMap = make(map[int32]*Bcode)
	}
	if _, exit := bcodeMap[businessCode]; exit {
		panic("error business code is exist")
	}
	bcode := &Bcode{HTTPCode: httpCode, BusinessCode: businessCode, Message: message}
	bcodeMap[businessCode] = bcode
	return bcode
}

// ReturnError Unified handling of all types of errors, generating a standard return structure.
func ReturnError(c *gin.Context, err error) {
	var bcode *Bcode
	if errors.As(err, &bcode) {
		c.JSON(int(bcode.HTTPCode), Bcode{
			HTTPCode:     bcode.HTTPCode,
			BusinessCode: bcode.BusinessCode,
			Message:      err.Error(),
		})
		return
	}

	var validErr validator.ValidationErrors
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, Bcode{
			HTTPCode:     http.StatusBadRequest,
			BusinessCode: http.StatusBadRequest,
			Message:      err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Bcode{
		HTTPCode:     http.StatusInternalServerError,
		BusinessCode: http.StatusInternalServerError,
		Message:      err.Error(),
	})
}

// WrapError wraps a Bcode error with the original error's message
// This preserves the error code while providing more context
// It also prevents error nesting if the original error is already a Bcode
func WrapError(bcodeErr *Bcode, originalErr error) error {
	if originalErr == nil {
		return bcodeErr
	}

	// Check if originalErr is already a Bcode error
	var existingBcode *Bcode
	if errors.As(originalErr, &existingBcode) {
		// Error is already a Bcode, don't nest errors
		return originalErr
	}

	return fmt.Errorf("%w: %v", bcodeErr, originalErr)
}

// LogAndReturnError logs the detailed error and returns it
// This is useful for server errors that should be logged but also returned to the client
func LogAndReturnError(bcodeErr *Bcode, originalErr error, logFields ...interface{}) error {
	if logger.LogicLogger != nil {
		if originalErr != nil {
			logger.LogicLogger.Error(bcodeErr.Message, append([]interface{}{"error", originalErr}, logFields...)...)
		} else {
			logger.LogicLogger.Error(bcodeErr.Message, logFields...)
		}
	}
	// Return the wrapped error so the client gets the context
	return WrapError(bcodeErr, originalErr)
}

// Is reports whether err carries the given business code.
func Is(err error, target *Bcode) bool {
	var b *Bcode
	if !errors.As(err, &b) {
		return false
	}
	return b.BusinessCode == target.BusinessCode
}
