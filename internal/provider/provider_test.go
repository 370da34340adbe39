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

package provider

import (
	"context"
	"testing"

	"github.com/intel/modelq/internal/types"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(NewDemoProvider())

	if _, err := r.Get("demo"); err != nil {
		t.Fatalf("Get(demo) error: %v", err)
	}
	if _, err := r.Get("nope"); err == nil {
		t.Fatal("Get(nope) should fail")
	}
	if got := r.List(); len(got) != 1 || got[0] != "demo" {
		t.Fatalf("List() = %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("duplicate Register should panic")
		}
	}()
	r.Register(NewDemoProvider())
}

func TestDemoTrainPredict(t *testing.T) {
	p := NewDemoProvider()
	ctx := context.Background()
	state := p.NewState()

	rows := []types.Row{
		{"label": "setosa"},
		{"label": "setosa"},
		{"label": "virginica"},
	}
	if err := p.Train(ctx, state, rows, nil); err != nil {
		t.Fatalf("Train() error: %v", err)
	}

	out, err := p.Predict(ctx, state, []types.Row{{"x": 1}, {"x": 2}}, nil)
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Predict() returned %d rows, want 2", len(out))
	}
	for _, row := range out {
		if row["prediction"] != "setosa" {
			t.Fatalf("Predict() row = %v, want prediction setosa", row)
		}
	}
}

func TestDemoPredictUntrained(t *testing.T) {
	p := NewDemoProvider()
	if _, err := p.Predict(context.Background(), p.NewState(), []types.Row{{"x": 1}}, nil); err == nil {
		t.Fatal("Predict() on untrained state should fail")
	}
}

func TestDemoEncodeDecodeRoundTrip(t *testing.T) {
	p := NewDemoProvider()
	ctx := context.Background()
	state := p.NewState()
	if err := p.Train(ctx, state, []types.Row{{"species": "a"}}, map[string]interface{}{"target": "species"}); err != nil {
		t.Fatalf("Train() error: %v", err)
	}

	data, err := p.Encode(state)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	decoded, err := p.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	s, ok := decoded.(*DemoState)
	if !ok {
		t.Fatalf("Decode() returned %T", decoded)
	}
	if s.Target != "species" || s.Seen != 1 {
		t.Fatalf("Decode() state = %+v", s)
	}
}

func TestDemoTrainMissingTarget(t *testing.T) {
	p := NewDemoProvider()
	state := p.NewState()
	err := p.Train(context.Background(), state, []types.Row{{"other": 1}}, nil)
	if err == nil {
		t.Fatal("Train() should fail when target column is missing")
	}
}
