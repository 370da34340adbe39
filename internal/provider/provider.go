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

// Package provider defines the model type contract and the registry of
// available model types. A provider implements the training and prediction
// behavior of one model type; instances created from it carry the trained
// state between calls.
package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/intel/modelq/internal/types"
)

// ModelProvider is the capability contract every model type implements.
// NewState returns a fresh, untrained state. Train folds rows into the state
// in place. Predict maps rows to output rows without mutating the state.
// Encode and Decode move the state to and from its on-disk representation.
type ModelProvider interface {
	// Name returns the model type name used at registration.
	Name() string

	// NewState returns an empty state for a freshly created model.
	NewState() interface{}

	// Train updates state with the given rows. Options are type-specific.
	Train(ctx context.Context, state interface{}, rows []types.Row, options map[string]interface{}) error

	// Predict returns output rows for the given input rows.
	Predict(ctx context.Context, state interface{}, rows []types.Row, options map[string]interface{}) ([]types.Row, error)

	// Encode serializes state for storage.
	Encode(state interface{}) ([]byte, error)

	// Decode deserializes state from storage.
	Decode(data []byte) (interface{}, error)
}

// Registry holds the model types available to a process. Registrations
// happen at startup before any manager is constructed, so lookups take
// only a read lock.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]ModelProvider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]ModelProvider)}
}

// Register adds a provider under its name. Registering the same name twice
// panics, mirroring how duplicate business codes are treated: both are
// programming errors that must surface immediately.
func (r *Registry) Register(p ModelProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := p.Name()
	if _, exists := r.providers[name]; exists {
		panic(fmt.Sprintf("model provider %s already registered", name))
	}
	r.providers[name] = p
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (ModelProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("model type not found: %s", name)
	}
	return p, nil
}

// List returns the registered model type names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns a registry with the built-in model types registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register(NewDemoProvider())
	return r
}
