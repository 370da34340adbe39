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
	"fmt"
	"sync"
	"time"

	"github.com/intel/modelq/internal/datastore"
	"github.com/intel/modelq/internal/types"
)

// fakeStore is an in-memory datastore for tests. Entities are kept per
// table keyed by their index; data tables are plain row slices.
type fakeStore struct {
	mu       sync.Mutex
	models   map[string]*types.ModelRecord
	taskRecs map[string]*types.TaskRecord
	tables   map[string][]types.Row
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		models:   make(map[string]*types.ModelRecord),
		taskRecs: make(map[string]*types.TaskRecord),
		tables:   make(map[string][]types.Row),
	}
}

func (f *fakeStore) Init() error { return nil }

func (f *fakeStore) key(entity datastore.Entity) (string, error) {
	switch e := entity.(type) {
	case *types.ModelRecord:
		return e.Name, nil
	case *types.TaskRecord:
		return e.TaskID, nil
	default:
		return "", fmt.Errorf("unexpected entity %T", entity)
	}
}

func (f *fakeStore) Add(ctx context.Context, entity datastore.Entity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, err := f.key(entity)
	if err != nil {
		return err
	}
	switch e := entity.(type) {
	case *types.ModelRecord:
		if _, ok := f.models[key]; ok {
			return datastore.ErrRecordExist
		}
		cp := *e
		f.models[key] = &cp
	case *types.TaskRecord:
		if _, ok := f.taskRecs[key]; ok {
			return datastore.ErrRecordExist
		}
		cp := *e
		f.taskRecs[key] = &cp
	}
	entity.SetCreateTime(time.Now())
	return nil
}

func (f *fakeStore) Put(ctx context.Context, entity datastore.Entity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, err := f.key(entity)
	if err != nil {
		return err
	}
	switch e := entity.(type) {
	case *types.ModelRecord:
		cp := *e
		cp.UpdatedAt = time.Now()
		f.models[key] = &cp
	case *types.TaskRecord:
		cp := *e
		cp.UpdatedAt = time.Now()
		f.taskRecs[key] = &cp
	}
	return nil
}

func (f *fakeStore) Get(ctx context.Context, entity datastore.Entity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, err := f.key(entity)
	if err != nil {
		return err
	}
	switch e := entity.(type) {
	case *types.ModelRecord:
		rec, ok := f.models[key]
		if !ok {
			return datastore.ErrEntityInvalid
		}
		*e = *rec
	case *types.TaskRecord:
		rec, ok := f.taskRecs[key]
		if !ok {
			return datastore.ErrEntityInvalid
		}
		*e = *rec
	}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, entity datastore.Entity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, err := f.key(entity)
	if err != nil {
		return err
	}
	switch entity.(type) {
	case *types.ModelRecord:
		if _, ok := f.models[key]; !ok {
			return datastore.ErrRecordNotExist
		}
		delete(f.models, key)
	case *types.TaskRecord:
		if _, ok := f.taskRecs[key]; !ok {
			return datastore.ErrRecordNotExist
		}
		delete(f.taskRecs, key)
	}
	return nil
}

func (f *fakeStore) List(ctx context.Context, entity datastore.Entity, options *datastore.ListOptions) ([]datastore.Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []datastore.Entity
	switch entity.(type) {
	case *types.ModelRecord:
		for _, rec := range f.models {
			cp := *rec
			list = append(list, &cp)
		}
	case *types.TaskRecord:
		for _, rec := range f.taskRecs {
			cp := *rec
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (f *fakeStore) IsExist(ctx context.Context, entity datastore.Entity) (bool, error) {
	err := f.Get(ctx, entity)
	if err == datastore.ErrEntityInvalid {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeStore) ReadDataTable(ctx context.Context, table string) ([]types.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows, ok := f.tables[table]
	if !ok {
		return nil, datastore.ErrTableNotExist
	}
	out := make([]types.Row, len(rows))
	copy(out, rows)
	return out, nil
}

func (f *fakeStore) ReplaceDataTable(ctx context.Context, table string, rows []types.Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]types.Row, len(rows))
	copy(cp, rows)
	f.tables[table] = cp
	return nil
}
