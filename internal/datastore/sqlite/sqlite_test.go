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

package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/intel/modelq/internal/datastore"
	"github.com/intel/modelq/internal/types"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	ds, err := New(filepath.Join(t.TempDir(), "modelq.db"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := ds.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	return ds
}

func TestModelRecordCRUD(t *testing.T) {
	ds := newTestStore(t)
	ctx := context.Background()

	rec := &types.ModelRecord{Name: "iris", Model: "demo", Title: "Iris classifier"}
	if err := ds.Add(ctx, rec); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := ds.Add(ctx, &types.ModelRecord{Name: "iris", Model: "demo"}); !errors.Is(err, datastore.ErrRecordExist) {
		t.Fatalf("Add() duplicate: got %v, want ErrRecordExist", err)
	}

	got := &types.ModelRecord{Name: "iris"}
	if err := ds.Get(ctx, got); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Title != "Iris classifier" || got.Model != "demo" {
		t.Fatalf("Get() returned %+v", got)
	}

	got.Description = "updated"
	if err := ds.Put(ctx, got); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	again := &types.ModelRecord{Name: "iris"}
	if err := ds.Get(ctx, again); err != nil {
		t.Fatalf("Get() after Put error: %v", err)
	}
	if again.Description != "updated" {
		t.Fatalf("Put() not persisted: %+v", again)
	}

	if err := ds.Delete(ctx, &types.ModelRecord{Name: "iris"}); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := ds.Get(ctx, &types.ModelRecord{Name: "iris"}); !errors.Is(err, datastore.ErrEntityInvalid) {
		t.Fatalf("Get() after delete: got %v, want ErrEntityInvalid", err)
	}
}

func TestList(t *testing.T) {
	ds := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if err := ds.Add(ctx, &types.ModelRecord{Name: name, Model: "demo"}); err != nil {
			t.Fatalf("Add(%s) error: %v", name, err)
		}
	}

	all, err := ds.List(ctx, &types.ModelRecord{}, nil)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d rows, want 3", len(all))
	}

	page, err := ds.List(ctx, &types.ModelRecord{}, &datastore.ListOptions{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("List() paged error: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("List() page 2 returned %d rows, want 1", len(page))
	}

	one, err := ds.List(ctx, &types.ModelRecord{Name: "b"}, nil)
	if err != nil {
		t.Fatalf("List() filtered error: %v", err)
	}
	if len(one) != 1 {
		t.Fatalf("List() filtered returned %d rows, want 1", len(one))
	}
}

func TestDataTableReplaceAndRead(t *testing.T) {
	ds := newTestStore(t)
	ctx := context.Background()

	if _, err := ds.ReadDataTable(ctx, "missing"); !errors.Is(err, datastore.ErrTableNotExist) {
		t.Fatalf("ReadDataTable() missing: got %v, want ErrTableNotExist", err)
	}

	rows := []types.Row{
		{"sepal_len": 5.1, "species": "setosa", "count": int64(3)},
		{"sepal_len": 6.2, "species": "virginica", "count": int64(1)},
	}
	if err := ds.ReplaceDataTable(ctx, "iris_data", rows); err != nil {
		t.Fatalf("ReplaceDataTable() error: %v", err)
	}

	got, err := ds.ReadDataTable(ctx, "iris_data")
	if err != nil {
		t.Fatalf("ReadDataTable() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadDataTable() returned %d rows, want 2", len(got))
	}

	// replace fully overwrites previous contents
	if err := ds.ReplaceDataTable(ctx, "iris_data", []types.Row{{"species": "versicolor"}}); err != nil {
		t.Fatalf("ReplaceDataTable() second error: %v", err)
	}
	got, err = ds.ReadDataTable(ctx, "iris_data")
	if err != nil {
		t.Fatalf("ReadDataTable() after replace error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ReadDataTable() after replace returned %d rows, want 1", len(got))
	}

	if err := ds.ReplaceDataTable(ctx, "bad name;", nil); err == nil {
		t.Fatal("ReplaceDataTable() accepted invalid table name")
	}
}

func TestTaskRecordIndex(t *testing.T) {
	ds := newTestStore(t)
	ctx := context.Background()

	rec := &types.TaskRecord{TaskID: "t-1", ModelName: "iris", Operation: types.OperationInput, State: types.TaskNotProcessed}
	if err := ds.Add(ctx, rec); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	got := &types.TaskRecord{TaskID: "t-1"}
	if err := ds.Get(ctx, got); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.ModelName != "iris" || got.State != types.TaskNotProcessed {
		t.Fatalf("Get() returned %+v", got)
	}
}
