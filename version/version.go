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

package version

const ModelQVersion = "v0.1"

// SpecVersion is the API path version segment, e.g. /modelq/v0.1/model.
const SpecVersion = ModelQVersion

const ModelQName = "ModelQ"

const ModelQDescription = "ModelQ manages the lifecycle of file-persisted, pluggable train/predict models and runs long operations on them through a background task queue, so that API callers are never blocked by training or batch prediction."
