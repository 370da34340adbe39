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

package constants

// Application information
const (
	AppName = "modelq"
)

// Network related
const (
	DefaultHTTPPort = "16799"
	DefaultHost     = "127.0.0.1"
)

// Model storage related
const (
	// DefaultModelSuffix is the file extension of serialized model artifacts.
	DefaultModelSuffix = ".model"

	// DefaultModelsDirName is the directory under the root dir that holds
	// one subfolder per model instance.
	DefaultModelsDirName = "models"
)

// Protocol constants
const (
	ProtocolHTTP  = "http"
	ProtocolHTTPS = "https"
)
