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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/intel/modelq/internal/types"
)

const demoTargetOption = "target"

// DemoState is the trained state of the demo model type. It counts the
// values seen in the target column and predicts the most frequent one.
type DemoState struct {
	Target string           `json:"target"`
	Counts map[string]int64 `json:"counts"`
	Seen   int64            `json:"seen"`
}

// DemoProvider is a small deterministic model type used for smoke testing
// the lifecycle without a real learning backend. It is a majority-class
// predictor over one column.
type DemoProvider struct{}

// NewDemoProvider creates the demo model type.
func NewDemoProvider() *DemoProvider {
	return &DemoProvider{}
}

func (p *DemoProvider) Name() string { return "demo" }

func (p *DemoProvider) NewState() interface{} {
	return &DemoState{Counts: make(map[string]int64)}
}

func demoState(state interface{}) (*DemoState, error) {
	s, ok := state.(*DemoState)
	if !ok {
		return nil, fmt.Errorf("unexpected demo model state type %T", state)
	}
	return s, nil
}

// Train counts target column values across rows. The target column defaults
// to "label" and can be set once through the "target" option; later calls
// accumulate into the same column.
func (p *DemoProvider) Train(ctx context.Context, state interface{}, rows []types.Row, options map[string]interface{}) error {
	s, err := demoState(state)
	if err != nil {
		return err
	}
	if s.Target == "" {
		s.Target = "label"
		if t, ok := options[demoTargetOption].(string); ok && t != "" {
			s.Target = t
		}
	}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, ok := row[s.Target]
		if !ok {
			return fmt.Errorf("row missing target column %q", s.Target)
		}
		s.Counts[fmt.Sprint(v)]++
		s.Seen++
	}
	return nil
}

// Predict returns one output row per input row carrying the majority value
// of the target column. Ties break toward the lexicographically smaller
// value so predictions are stable across runs.
func (p *DemoProvider) Predict(ctx context.Context, state interface{}, rows []types.Row, options map[string]interface{}) ([]types.Row, error) {
	s, err := demoState(state)
	if err != nil {
		return nil, err
	}
	if s.Seen == 0 {
		return nil, errors.New("demo model has no training data")
	}

	var best string
	var bestCount int64 = -1
	for v, c := range s.Counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}

	out := make([]types.Row, 0, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pred := types.Row{"prediction": best}
		for k, v := range row {
			pred[k] = v
		}
		out = append(out, pred)
	}
	return out, nil
}

func (p *DemoProvider) Encode(state interface{}) ([]byte, error) {
	s, err := demoState(state)
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

func (p *DemoProvider) Decode(data []byte) (interface{}, error) {
	s := &DemoState{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	if s.Counts == nil {
		s.Counts = make(map[string]int64)
	}
	return s, nil
}
