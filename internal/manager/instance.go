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

// Package manager implements the model lifecycle: the on-disk instance
// cache, the synchronous train/predict operations, the datastore-backed
// table variants and the background task orchestration on top of them.
package manager

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/intel/modelq/internal/provider"
	"github.com/intel/modelq/internal/utils/bcode"
)

// artifactEnvelope is the on-disk representation of a model instance.
// The type name lets a process decode an artifact it did not create.
type artifactEnvelope struct {
	Type  string `json:"type"`
	State []byte `json:"state"`
}

// ModelInstance is one cache entry. The deserialized state is owned by the
// entry and is valid only while lastLoaded is not older than the artifact
// file. All methods require the instance mutex held by the caller side
// methods, so concurrent operations on the same model serialize while
// operations on different models proceed in parallel.
type ModelInstance struct {
	mu sync.Mutex

	name     string
	path     string
	registry *provider.Registry

	typeName   string
	state      interface{}
	lastLoaded time.Time
}

func newModelInstance(name, path string, registry *provider.Registry) *ModelInstance {
	return &ModelInstance{name: name, path: path, registry: registry}
}

// stale reports whether the in-memory state must be reloaded. A missing
// in-memory state and an artifact newer than lastLoaded are both stale.
func (mi *ModelInstance) stale() (bool, error) {
	info, err := os.Stat(mi.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, bcode.WrapError(bcode.ErrModelRecordNotFound, err)
		}
		return false, bcode.WrapError(bcode.ErrModelStorage, err)
	}
	if mi.state == nil {
		return true, nil
	}
	return info.ModTime().After(mi.lastLoaded), nil
}

// load reads and decodes the artifact when stale or forced.
func (mi *ModelInstance) load(force bool) error {
	stale, err := mi.stale()
	if err != nil {
		return err
	}
	if !stale && !force {
		return nil
	}

	data, err := os.ReadFile(mi.path)
	if err != nil {
		if os.IsNotExist(err) {
			return bcode.WrapError(bcode.ErrModelRecordNotFound, err)
		}
		return bcode.WrapError(bcode.ErrModelStorage, err)
	}

	var env artifactEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return bcode.WrapError(bcode.ErrModelCodec, err)
	}
	p, err := mi.registry.Get(env.Type)
	if err != nil {
		return bcode.WrapError(bcode.ErrModelTypeUnknown, err)
	}
	state, err := p.Decode(env.State)
	if err != nil {
		return bcode.WrapError(bcode.ErrModelCodec, err)
	}

	mi.typeName = env.Type
	mi.state = state
	mi.lastLoaded = time.Now()
	return nil
}

// save encodes the state and writes the artifact atomically, then refreshes
// lastLoaded so the write does not immediately mark the entry stale.
func (mi *ModelInstance) save() error {
	p, err := mi.registry.Get(mi.typeName)
	if err != nil {
		return bcode.WrapError(bcode.ErrModelTypeUnknown, err)
	}
	encoded, err := p.Encode(mi.state)
	if err != nil {
		return bcode.WrapError(bcode.ErrModelCodec, err)
	}
	data, err := json.Marshal(artifactEnvelope{Type: mi.typeName, State: encoded})
	if err != nil {
		return bcode.WrapError(bcode.ErrModelCodec, err)
	}

	if err := writeFileAtomic(mi.path, data); err != nil {
		return bcode.WrapError(bcode.ErrModelStorage, err)
	}
	mi.lastLoaded = time.Now()
	return nil
}

// remove deletes the whole model directory, artifact included.
func (mi *ModelInstance) remove() error {
	if _, err := os.Stat(mi.path); err != nil {
		if os.IsNotExist(err) {
			return bcode.WrapError(bcode.ErrModelRecordNotFound, err)
		}
		return bcode.WrapError(bcode.ErrModelStorage, err)
	}
	if err := os.RemoveAll(filepath.Dir(mi.path)); err != nil {
		return bcode.WrapError(bcode.ErrModelStorage, err)
	}
	mi.state = nil
	mi.lastLoaded = time.Time{}
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path, so readers never observe a partial artifact.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".artifact-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// IsNotFound reports whether err maps to the model-not-found business code.
func IsNotFound(err error) bool {
	return bcode.Is(err, bcode.ErrModelRecordNotFound) || errors.Is(err, os.ErrNotExist)
}
