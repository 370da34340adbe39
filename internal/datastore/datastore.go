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

package datastore

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/intel/modelq/internal/types"
)

var (
	ErrNilEntity      = errors.New("entity is nil")
	ErrPrimaryEmpty   = errors.New("entity primary key is empty")
	ErrTableNameEmpty = errors.New("entity table name is empty")
	ErrRecordExist    = errors.New("record already exists")
	ErrRecordNotExist = errors.New("record does not exist")
	ErrEntityInvalid  = errors.New("entity is invalid")
	ErrTableNotExist  = errors.New("data table does not exist")
)

// Entity is one typed row bound to a table. Index returns the column/value
// pairs identifying the row for Get/Put/Delete lookups.
type Entity interface {
	TableName() string
	PrimaryKey() string
	Index() map[string]interface{}
	SetCreateTime(time time.Time)
	SetUpdateTime(time time.Time)
}

// ListOptions controls List pagination. Zero values mean no paging.
type ListOptions struct {
	Page     int
	PageSize int
}

// Datastore is the narrow persistence surface the managers depend on:
// entity CRUD for metadata/task records, plus whole-table read/replace for
// the DB-backed input/output variants. ReplaceDataTable must be atomic —
// readers never observe a partially written table.
type Datastore interface {
	Init() error

	Add(ctx context.Context, entity Entity) error
	Put(ctx context.Context, entity Entity) error
	Get(ctx context.Context, entity Entity) error
	Delete(ctx context.Context, entity Entity) error
	List(ctx context.Context, entity Entity, options *ListOptions) ([]Entity, error)
	IsExist(ctx context.Context, entity Entity) (bool, error)

	ReadDataTable(ctx context.Context, table string) ([]types.Row, error)
	ReplaceDataTable(ctx context.Context, table string, rows []types.Row) error
}

// NewEntity allocates a fresh zero value of the same concrete type as entity,
// for scanning List results into.
func NewEntity(entity Entity) (Entity, error) {
	if entity == nil {
		return nil, ErrNilEntity
	}
	t := reflect.TypeOf(entity)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	e, ok := reflect.New(t).Interface().(Entity)
	if !ok {
		return nil, ErrEntityInvalid
	}
	return e, nil
}

var defaultDatastore Datastore

// SetDefaultDatastore sets the process-wide datastore used by services.
func SetDefaultDatastore(ds Datastore) {
	defaultDatastore = ds
}

// GetDefaultDatastore returns the process-wide datastore.
func GetDefaultDatastore() Datastore {
	return defaultDatastore
}
