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

package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/intel/modelq/internal/datastore"
	"github.com/intel/modelq/internal/logger"
	"github.com/intel/modelq/internal/provider"
	"github.com/intel/modelq/internal/types"
	"github.com/intel/modelq/internal/utils/bcode"
)

var modelNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ModelInfo is a point-in-time snapshot of one cache entry. Loaded means
// the process holds a deserialized state; it says nothing about whether
// that state is still fresh on disk.
type ModelInfo struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Loaded     bool      `json:"loaded"`
	LastLoaded time.Time `json:"last_loaded,omitempty"`
}

// ModelMetadata is the user-editable descriptive part of a model record.
type ModelMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	Source      string `json:"source"`
}

// ModelsManager owns the instance cache for one process. Each process
// (server, workers) builds its own; the artifact mtime is the only
// cross-process coordination.
type ModelsManager struct {
	folder   string
	suffix   string
	registry *provider.Registry
	ds       datastore.Datastore

	mu        sync.RWMutex
	instances map[string]*ModelInstance
}

// NewModelsManager builds a manager over folder and scans it for existing
// artifacts. Scanned entries are registered unloaded; decoding happens on
// first use.
func NewModelsManager(folder, suffix string, registry *provider.Registry, ds datastore.Datastore) (*ModelsManager, error) {
	if err := os.MkdirAll(folder, 0o750); err != nil {
		return nil, bcode.WrapError(bcode.ErrModelStorage, err)
	}
	m := &ModelsManager{
		folder:    folder,
		suffix:    suffix,
		registry:  registry,
		ds:        ds,
		instances: make(map[string]*ModelInstance),
	}
	if err := m.scan(); err != nil {
		return nil, err
	}
	return m, nil
}

// scan pre-registers every model whose artifact exists under the folder.
func (m *ModelsManager) scan() error {
	entries, err := os.ReadDir(m.folder)
	if err != nil {
		return bcode.WrapError(bcode.ErrModelStorage, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := m.artifactPath(name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		m.instances[name] = newModelInstance(name, path, m.registry)
	}
	if logger.LogicLogger != nil {
		logger.LogicLogger.Info("[Model] scanned model folder", "folder", m.folder, "models", len(m.instances))
	}
	return nil
}

func (m *ModelsManager) artifactPath(name string) string {
	return filepath.Join(m.folder, name, name+m.suffix)
}

func (m *ModelsManager) validateName(name string) error {
	if !modelNameRe.MatchString(name) || strings.Contains(name, "..") {
		return bcode.WrapError(bcode.ErrModelBadRequest, fmt.Errorf("invalid model name %q", name))
	}
	return nil
}

// instance returns the cache entry for name, or NotFound when the model is
// neither cached nor present on disk. A model created by another process
// after our startup scan is picked up here.
func (m *ModelsManager) instance(name string) (*ModelInstance, error) {
	m.mu.RLock()
	mi, ok := m.instances[name]
	m.mu.RUnlock()
	if ok {
		return mi, nil
	}

	if err := m.validateName(name); err != nil {
		return nil, err
	}
	path := m.artifactPath(name)
	if _, err := os.Stat(path); err != nil {
		return nil, bcode.WrapError(bcode.ErrModelRecordNotFound, fmt.Errorf("model %s: %w", name, err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if mi, ok := m.instances[name]; ok {
		return mi, nil
	}
	mi = newModelInstance(name, path, m.registry)
	m.instances[name] = mi
	return mi, nil
}

// Create initializes a new model of the given type and writes its untrained
// artifact. The cache entry is registered but stays unloaded. Existing
// models are rejected unless overwrite is set.
func (m *ModelsManager) Create(ctx context.Context, name, modelType string, overwrite bool) error {
	if err := m.validateName(name); err != nil {
		return err
	}
	p, err := m.registry.Get(modelType)
	if err != nil {
		return bcode.WrapError(bcode.ErrModelTypeUnknown, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.artifactPath(name)
	if _, err := os.Stat(path); err == nil && !overwrite {
		return bcode.WrapError(bcode.ErrModelIsExist, fmt.Errorf("model %s already exists", name))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return bcode.WrapError(bcode.ErrModelStorage, err)
	}

	mi := newModelInstance(name, path, m.registry)
	mi.typeName = modelType
	mi.state = p.NewState()
	if err := mi.save(); err != nil {
		return err
	}
	// overwrite replaces any previously cached state
	m.instances[name] = mi

	if err := m.upsertRecord(ctx, name, modelType); err != nil {
		return err
	}
	if logger.LogicLogger != nil {
		logger.LogicLogger.Info("[Model] created model", "name", name, "type", modelType, "overwrite", overwrite)
	}
	return nil
}

func (m *ModelsManager) upsertRecord(ctx context.Context, name, modelType string) error {
	if m.ds == nil {
		return nil
	}
	rec := &types.ModelRecord{Name: name}
	err := m.ds.Get(ctx, rec)
	switch {
	case err == nil:
		rec.Model = modelType
		if err := m.ds.Put(ctx, rec); err != nil {
			return bcode.WrapError(bcode.ErrModelMetadata, err)
		}
	case errors.Is(err, datastore.ErrEntityInvalid):
		rec = &types.ModelRecord{Name: name, Model: modelType}
		if err := m.ds.Add(ctx, rec); err != nil {
			return bcode.WrapError(bcode.ErrModelMetadata, err)
		}
	default:
		return bcode.WrapError(bcode.ErrModelMetadata, err)
	}
	return nil
}

// Load forces or refreshes the in-memory state of a model.
func (m *ModelsManager) Load(ctx context.Context, name string, force bool) error {
	mi, err := m.instance(name)
	if err != nil {
		return err
	}
	mi.mu.Lock()
	defer mi.mu.Unlock()
	return mi.load(force)
}

// Input trains the model with rows and persists the new state. The artifact
// write refreshes lastLoaded, so other processes detect the change through
// the file mtime.
func (m *ModelsManager) Input(ctx context.Context, name string, rows []types.Row, options map[string]interface{}) error {
	mi, err := m.instance(name)
	if err != nil {
		return err
	}
	mi.mu.Lock()
	defer mi.mu.Unlock()

	if err := mi.load(false); err != nil {
		return err
	}
	p, err := m.registry.Get(mi.typeName)
	if err != nil {
		return bcode.WrapError(bcode.ErrModelTypeUnknown, err)
	}
	if err := p.Train(ctx, mi.state, rows, options); err != nil {
		// Train may have mutated the state before failing. Drop it so the
		// next access reloads the last persisted artifact.
		mi.state = nil
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return bcode.WrapError(bcode.ErrModelBadRequest, err)
	}
	if err := mi.save(); err != nil {
		mi.state = nil
		return err
	}
	return nil
}

// Output runs prediction over rows. The state is not modified and nothing
// is written back.
func (m *ModelsManager) Output(ctx context.Context, name string, rows []types.Row, options map[string]interface{}) ([]types.Row, error) {
	mi, err := m.instance(name)
	if err != nil {
		return nil, err
	}
	mi.mu.Lock()
	defer mi.mu.Unlock()

	if err := mi.load(false); err != nil {
		return nil, err
	}
	p, err := m.registry.Get(mi.typeName)
	if err != nil {
		return nil, bcode.WrapError(bcode.ErrModelTypeUnknown, err)
	}
	out, err := p.Predict(ctx, mi.state, rows, options)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, bcode.WrapError(bcode.ErrModelNotTrained, err)
	}
	return out, nil
}

// Update rewrites the descriptive metadata of a model. The artifact and the
// trained state are untouched.
func (m *ModelsManager) Update(ctx context.Context, name string, meta ModelMetadata) error {
	if _, err := m.instance(name); err != nil {
		return err
	}
	if m.ds == nil {
		return nil
	}
	rec := &types.ModelRecord{Name: name}
	if err := m.ds.Get(ctx, rec); err != nil {
		if errors.Is(err, datastore.ErrEntityInvalid) {
			return bcode.WrapError(bcode.ErrModelRecordNotFound, err)
		}
		return bcode.WrapError(bcode.ErrModelMetadata, err)
	}
	rec.Title = meta.Title
	rec.Description = meta.Description
	rec.Tags = meta.Tags
	rec.Source = meta.Source
	if err := m.ds.Put(ctx, rec); err != nil {
		return bcode.WrapError(bcode.ErrModelMetadata, err)
	}
	return nil
}

// Delete removes the artifact, evicts the cache entry and drops the
// metadata record. Deleting an already deleted model reports NotFound.
func (m *ModelsManager) Delete(ctx context.Context, name string) error {
	mi, err := m.instance(name)
	if err != nil {
		return err
	}
	mi.mu.Lock()
	removeErr := mi.remove()
	mi.mu.Unlock()

	m.mu.Lock()
	delete(m.instances, name)
	m.mu.Unlock()

	if removeErr != nil {
		return removeErr
	}
	if m.ds != nil {
		rec := &types.ModelRecord{Name: name}
		if err := m.ds.Delete(ctx, rec); err != nil && !errors.Is(err, datastore.ErrRecordNotExist) {
			return bcode.WrapError(bcode.ErrModelMetadata, err)
		}
	}
	if logger.LogicLogger != nil {
		logger.LogicLogger.Info("[Model] deleted model", "name", name)
	}
	return nil
}

// Get returns a snapshot of a cache entry without touching the disk state.
func (m *ModelsManager) Get(ctx context.Context, name string) (ModelInfo, error) {
	mi, err := m.instance(name)
	if err != nil {
		return ModelInfo{}, err
	}
	mi.mu.Lock()
	defer mi.mu.Unlock()
	info := ModelInfo{
		Name:       mi.name,
		Type:       mi.typeName,
		Loaded:     mi.state != nil,
		LastLoaded: mi.lastLoaded,
	}
	if info.Type == "" && m.ds != nil {
		rec := &types.ModelRecord{Name: name}
		if err := m.ds.Get(ctx, rec); err == nil {
			info.Type = rec.Model
		}
	}
	return info, nil
}

// List returns snapshots for every known model, sorted by name.
func (m *ModelsManager) List(ctx context.Context) ([]ModelInfo, error) {
	m.mu.RLock()
	names := make([]string, 0, len(m.instances))
	for name := range m.instances {
		names = append(names, name)
	}
	m.mu.RUnlock()
	sort.Strings(names)

	infos := make([]ModelInfo, 0, len(names))
	for _, name := range names {
		info, err := m.Get(ctx, name)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Record returns the metadata record of a model.
func (m *ModelsManager) Record(ctx context.Context, name string) (*types.ModelRecord, error) {
	if _, err := m.instance(name); err != nil {
		return nil, err
	}
	if m.ds == nil {
		return nil, bcode.WrapError(bcode.ErrModelMetadata, fmt.Errorf("no datastore configured"))
	}
	rec := &types.ModelRecord{Name: name}
	if err := m.ds.Get(ctx, rec); err != nil {
		if errors.Is(err, datastore.ErrEntityInvalid) {
			return nil, bcode.WrapError(bcode.ErrModelRecordNotFound, err)
		}
		return nil, bcode.WrapError(bcode.ErrModelMetadata, err)
	}
	return rec, nil
}
