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

package types

import (
	"time"
)

const (
	// Database table names
	TableModel = "modelq_model"
	TableTask  = "modelq_task"
)

// ModelRecord is the sidecar metadata row for one model instance. The
// serialized artifact itself lives on disk; this row carries everything a
// catalog listing needs without deserializing the model.
type ModelRecord struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;unique;not null" json:"name"`
	Model       string    `gorm:"column:model;not null" json:"model"`
	Title       string    `gorm:"column:title;not null;default:''" json:"title"`
	Description string    `gorm:"column:description;not null;default:''" json:"description"`
	Tags        string    `gorm:"column:tags;not null;default:''" json:"tags"`
	Source      string    `gorm:"column:source;not null;default:''" json:"source"`
	CreatedAt   time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (t *ModelRecord) SetCreateTime(time time.Time) {
	t.CreatedAt = time
}

func (t *ModelRecord) SetUpdateTime(time time.Time) {
	t.UpdatedAt = time
}

func (t *ModelRecord) PrimaryKey() string {
	return "id"
}

func (t *ModelRecord) TableName() string {
	return TableModel
}

func (t *ModelRecord) Index() map[string]interface{} {
	index := make(map[string]interface{})
	if t.Name != "" {
		index["name"] = t.Name
	}

	return index
}

// TaskRecord is the persisted state of one background task. It doubles as
// the result backend: workers update it as they progress, and the
// orchestrator polls it while its cached state is non-terminal.
type TaskRecord struct {
	ID        int        `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID    string     `gorm:"column:task_id;unique;not null" json:"task_id"`
	ModelName string     `gorm:"column:model_name;not null" json:"model_name"`
	Operation string     `gorm:"column:operation;not null" json:"operation"`
	State     string     `gorm:"column:state;not null;default:not_processed" json:"state"`
	Args      string     `gorm:"column:args;not null;default:''" json:"-"`
	Result    string     `gorm:"column:result;not null;default:''" json:"result"`
	Message   string     `gorm:"column:message;not null;default:''" json:"message"`
	StartedAt *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (t *TaskRecord) SetCreateTime(time time.Time) {
	t.CreatedAt = time
}

func (t *TaskRecord) SetUpdateTime(time time.Time) {
	t.UpdatedAt = time
}

func (t *TaskRecord) PrimaryKey() string {
	return "id"
}

func (t *TaskRecord) TableName() string {
	return TableTask
}

func (t *TaskRecord) Index() map[string]interface{} {
	index := make(map[string]interface{})
	if t.TaskID != "" {
		index["task_id"] = t.TaskID
	}

	return index
}
