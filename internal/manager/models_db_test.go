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
	"testing"

	"github.com/intel/modelq/internal/types"
	"github.com/intel/modelq/internal/utils/bcode"
)

func newTestDBManager(t *testing.T) (*ModelsDBManager, *fakeStore) {
	t.Helper()
	m, ds := newTestManager(t, t.TempDir())
	return NewModelsDBManager(m), ds
}

func TestInputDB(t *testing.T) {
	m, ds := newTestDBManager(t)
	ctx := context.Background()

	if err := m.Create(ctx, "iris", "demo", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	ds.tables["training"] = []types.Row{{"label": "a"}, {"label": "a"}, {"label": "b"}}

	if err := m.InputDB(ctx, "iris", "training", nil); err != nil {
		t.Fatalf("InputDB() error: %v", err)
	}
	out, err := m.Output(ctx, "iris", []types.Row{{"x": 1}}, nil)
	if err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if out[0]["prediction"] != "a" {
		t.Fatalf("Output() = %v", out[0])
	}

	if err := m.InputDB(ctx, "iris", "ghost", nil); !bcode.Is(err, bcode.ErrDataTableNotFound) {
		t.Fatalf("InputDB() missing table: got %v, want ErrDataTableNotFound", err)
	}
}

func TestOutputDBReplacesTable(t *testing.T) {
	m, ds := newTestDBManager(t)
	ctx := context.Background()

	if err := m.Create(ctx, "iris", "demo", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := m.Input(ctx, "iris", []types.Row{{"label": "setosa"}}, nil); err != nil {
		t.Fatalf("Input() error: %v", err)
	}
	ds.tables["in"] = []types.Row{{"x": 1}, {"x": 2}}
	ds.tables["out"] = []types.Row{{"stale": true}}

	if err := m.OutputDB(ctx, "iris", "in", "out", nil); err != nil {
		t.Fatalf("OutputDB() error: %v", err)
	}
	got := ds.tables["out"]
	if len(got) != 2 {
		t.Fatalf("OutputDB() wrote %d rows, want 2", len(got))
	}
	for _, row := range got {
		if row["prediction"] != "setosa" {
			t.Fatalf("OutputDB() row = %v", row)
		}
		if _, ok := row["stale"]; ok {
			t.Fatal("OutputDB() kept previous table contents")
		}
	}
}
