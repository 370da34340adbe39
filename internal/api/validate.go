//*****************************************************************************
// Copyright 2025 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//*****************************************************************************

package api

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var modelNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

func init() {
	_ = validate.RegisterValidation("model_name", validateModelName)
}

// validateModelName keeps names safe to embed in filesystem paths.
func validateModelName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || strings.Contains(name, "..") {
		return false
	}
	return modelNamePattern.MatchString(name)
}
