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
	"os"
	"testing"
	"time"

	"github.com/intel/modelq/internal/constants"
	"github.com/intel/modelq/internal/provider"
	"github.com/intel/modelq/internal/types"
	"github.com/intel/modelq/internal/utils/bcode"
)

func newTestManager(t *testing.T, folder string) (*ModelsManager, *fakeStore) {
	t.Helper()
	ds := newFakeStore()
	m, err := NewModelsManager(folder, constants.DefaultModelSuffix, provider.Default(), ds)
	if err != nil {
		t.Fatalf("NewModelsManager() error: %v", err)
	}
	return m, ds
}

func TestCreateAndOverwrite(t *testing.T) {
	m, _ := newTestManager(t, t.TempDir())
	ctx := context.Background()

	if err := m.Create(ctx, "iris", "demo", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := m.Create(ctx, "iris", "demo", false); !bcode.Is(err, bcode.ErrModelIsExist) {
		t.Fatalf("Create() duplicate: got %v, want ErrModelIsExist", err)
	}
	if err := m.Create(ctx, "iris", "demo", true); err != nil {
		t.Fatalf("Create() overwrite error: %v", err)
	}

	if err := m.Create(ctx, "iris2", "nope", false); !bcode.Is(err, bcode.ErrModelTypeUnknown) {
		t.Fatalf("Create() unknown type: got %v, want ErrModelTypeUnknown", err)
	}
	if err := m.Create(ctx, "../evil", "demo", false); !bcode.Is(err, bcode.ErrModelBadRequest) {
		t.Fatalf("Create() bad name: got %v, want ErrModelBadRequest", err)
	}
}

func TestOverwriteResetsState(t *testing.T) {
	m, _ := newTestManager(t, t.TempDir())
	ctx := context.Background()

	if err := m.Create(ctx, "iris", "demo", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := m.Input(ctx, "iris", []types.Row{{"label": "a"}}, nil); err != nil {
		t.Fatalf("Input() error: %v", err)
	}
	if err := m.Create(ctx, "iris", "demo", true); err != nil {
		t.Fatalf("Create() overwrite error: %v", err)
	}
	// overwritten model is untrained again
	if _, err := m.Output(ctx, "iris", []types.Row{{"x": 1}}, nil); err == nil {
		t.Fatal("Output() after overwrite should fail on untrained model")
	}
}

func TestFailedTrainDropsUnpersistedState(t *testing.T) {
	folder := t.TempDir()
	m, _ := newTestManager(t, folder)
	ctx := context.Background()

	if err := m.Create(ctx, "iris", "demo", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	// second row lacks the target column, so Train counts the first row and
	// then fails without the state ever reaching disk
	rows := []types.Row{{"label": "a"}, {"x": 1}}
	if err := m.Input(ctx, "iris", rows, nil); !bcode.Is(err, bcode.ErrModelBadRequest) {
		t.Fatalf("Input() with bad row: got %v, want ErrModelBadRequest", err)
	}

	// the manager that saw the failure must answer like a fresh one reading
	// the persisted artifact: untrained
	if _, err := m.Output(ctx, "iris", []types.Row{{"x": 1}}, nil); err == nil {
		t.Fatal("Output() after failed Input should fail on untrained model")
	}
	fresh, _ := newTestManager(t, folder)
	if _, err := fresh.Output(ctx, "iris", []types.Row{{"x": 1}}, nil); err == nil {
		t.Fatal("Output() on fresh manager should fail on untrained model")
	}
}

func TestLoadIsLazyAndDeduplicated(t *testing.T) {
	m, _ := newTestManager(t, t.TempDir())
	ctx := context.Background()

	if err := m.Create(ctx, "iris", "demo", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := m.Load(ctx, "iris", false); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	first, err := m.Get(ctx, "iris")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !first.Loaded {
		t.Fatal("Get() after Load reports unloaded")
	}

	// a fresh artifact is not re-read
	if err := m.Load(ctx, "iris", false); err != nil {
		t.Fatalf("Load() second error: %v", err)
	}
	second, err := m.Get(ctx, "iris")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !second.LastLoaded.Equal(first.LastLoaded) {
		t.Fatal("Load() re-read a fresh artifact")
	}

	// force always re-reads
	if err := m.Load(ctx, "iris", true); err != nil {
		t.Fatalf("Load() forced error: %v", err)
	}
	forced, err := m.Get(ctx, "iris")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !forced.LastLoaded.After(first.LastLoaded) {
		t.Fatal("Load(force) did not refresh lastLoaded")
	}
}

func TestStaleArtifactIsReloaded(t *testing.T) {
	folder := t.TempDir()
	m1, _ := newTestManager(t, folder)
	ctx := context.Background()

	if err := m1.Create(ctx, "iris", "demo", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := m1.Load(ctx, "iris", false); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// a second process trains the model behind our back
	m2, _ := newTestManager(t, folder)
	if err := m2.Input(ctx, "iris", []types.Row{{"label": "setosa"}}, nil); err != nil {
		t.Fatalf("Input() via second manager error: %v", err)
	}
	// make the artifact unambiguously newer than m1's load time
	path := m1.artifactPath("iris")
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("Chtimes() error: %v", err)
	}

	out, err := m1.Output(ctx, "iris", []types.Row{{"x": 1}}, nil)
	if err != nil {
		t.Fatalf("Output() after external train error: %v", err)
	}
	if out[0]["prediction"] != "setosa" {
		t.Fatalf("Output() did not pick up external training: %v", out[0])
	}
}

func TestTrainedStateSurvivesRestart(t *testing.T) {
	folder := t.TempDir()
	m1, _ := newTestManager(t, folder)
	ctx := context.Background()

	if err := m1.Create(ctx, "iris", "demo", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	rows := []types.Row{{"label": "a"}, {"label": "a"}, {"label": "b"}}
	if err := m1.Input(ctx, "iris", rows, nil); err != nil {
		t.Fatalf("Input() error: %v", err)
	}
	want, err := m1.Output(ctx, "iris", []types.Row{{"x": 1}}, nil)
	if err != nil {
		t.Fatalf("Output() error: %v", err)
	}

	// a fresh manager over the same folder decodes the same state
	m2, _ := newTestManager(t, folder)
	got, err := m2.Output(ctx, "iris", []types.Row{{"x": 1}}, nil)
	if err != nil {
		t.Fatalf("Output() after restart error: %v", err)
	}
	if got[0]["prediction"] != want[0]["prediction"] {
		t.Fatalf("Output() after restart = %v, want %v", got[0], want[0])
	}
}

func TestStartupScanRegistersExistingModels(t *testing.T) {
	folder := t.TempDir()
	m1, _ := newTestManager(t, folder)
	ctx := context.Background()
	if err := m1.Create(ctx, "iris", "demo", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	m2, _ := newTestManager(t, folder)
	infos, err := m2.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "iris" {
		t.Fatalf("List() after scan = %+v", infos)
	}
	if infos[0].Loaded {
		t.Fatal("scanned entry should stay unloaded")
	}
}

func TestDeleteEvictsAndSecondDeleteNotFound(t *testing.T) {
	m, ds := newTestManager(t, t.TempDir())
	ctx := context.Background()

	if err := m.Create(ctx, "iris", "demo", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := m.Delete(ctx, "iris"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok := ds.models["iris"]; ok {
		t.Fatal("Delete() left the metadata record behind")
	}
	if err := m.Delete(ctx, "iris"); !bcode.Is(err, bcode.ErrModelRecordNotFound) {
		t.Fatalf("Delete() second: got %v, want ErrModelRecordNotFound", err)
	}
	if _, err := m.Output(ctx, "iris", []types.Row{{"x": 1}}, nil); !bcode.Is(err, bcode.ErrModelRecordNotFound) {
		t.Fatalf("Output() after delete: got %v, want ErrModelRecordNotFound", err)
	}
}

func TestUpdateMetadata(t *testing.T) {
	m, _ := newTestManager(t, t.TempDir())
	ctx := context.Background()

	if err := m.Create(ctx, "iris", "demo", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	meta := ModelMetadata{Title: "Iris", Description: "classifier", Tags: "flowers", Source: "uci"}
	if err := m.Update(ctx, "iris", meta); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	rec, err := m.Record(ctx, "iris")
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if rec.Title != "Iris" || rec.Tags != "flowers" || rec.Model != "demo" {
		t.Fatalf("Record() = %+v", rec)
	}

	if err := m.Update(ctx, "ghost", meta); !bcode.Is(err, bcode.ErrModelRecordNotFound) {
		t.Fatalf("Update() unknown model: got %v, want ErrModelRecordNotFound", err)
	}
}

func TestEndToEndLifecycle(t *testing.T) {
	m, _ := newTestManager(t, t.TempDir())
	ctx := context.Background()

	if err := m.Create(ctx, "species", "demo", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	rows := []types.Row{{"label": "setosa"}, {"label": "setosa"}, {"label": "virginica"}}
	if err := m.Input(ctx, "species", rows, nil); err != nil {
		t.Fatalf("Input() error: %v", err)
	}
	info, err := m.Get(ctx, "species")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if info.Type != "demo" || !info.Loaded {
		t.Fatalf("Get() = %+v", info)
	}
	out, err := m.Output(ctx, "species", []types.Row{{"x": 1}}, nil)
	if err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if out[0]["prediction"] != "setosa" {
		t.Fatalf("Output() = %v", out[0])
	}
	if err := m.Delete(ctx, "species"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := m.Get(ctx, "species"); !bcode.Is(err, bcode.ErrModelRecordNotFound) {
		t.Fatalf("Get() after delete: got %v, want ErrModelRecordNotFound", err)
	}
}
