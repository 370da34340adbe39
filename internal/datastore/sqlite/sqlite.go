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
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/intel/modelq/internal/datastore"
	"github.com/intel/modelq/internal/types"
)

// SQLite is the gorm-backed datastore. It stores both the entity tables
// and the free-form data tables used by the DB model operations.
type SQLite struct {
	db     *gorm.DB
	dbPath string
}

// New opens (creating if necessary) the sqlite database at dbPath.
func New(dbPath string) (*SQLite, error) {
	if dbPath == "" {
		return nil, errors.New("sqlite: empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, err
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		f, err := os.Create(dbPath)
		if err != nil {
			return nil, err
		}
		_ = f.Close()
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &SQLite{db: db, dbPath: dbPath}, nil
}

// Init migrates the entity tables.
func (ds *SQLite) Init() error {
	return ds.db.AutoMigrate(
		&types.ModelRecord{},
		&types.TaskRecord{},
	)
}

func (ds *SQLite) checkEntity(entity datastore.Entity) error {
	if entity == nil {
		return datastore.ErrNilEntity
	}
	if entity.PrimaryKey() == "" {
		return datastore.ErrPrimaryEmpty
	}
	if entity.TableName() == "" {
		return datastore.ErrTableNameEmpty
	}
	return nil
}

// Add inserts the entity, failing when a row with the same index already exists.
func (ds *SQLite) Add(ctx context.Context, entity datastore.Entity) error {
	if err := ds.checkEntity(entity); err != nil {
		return err
	}
	exist, err := ds.IsExist(ctx, entity)
	if err != nil {
		return err
	}
	if exist {
		return datastore.ErrRecordExist
	}
	now := time.Now()
	entity.SetCreateTime(now)
	entity.SetUpdateTime(now)
	return ds.db.WithContext(ctx).Table(entity.TableName()).Create(entity).Error
}

// Put updates the entity identified by its index, inserting it when absent.
func (ds *SQLite) Put(ctx context.Context, entity datastore.Entity) error {
	if err := ds.checkEntity(entity); err != nil {
		return err
	}
	exist, err := ds.IsExist(ctx, entity)
	if err != nil {
		return err
	}
	if !exist {
		return ds.Add(ctx, entity)
	}
	entity.SetUpdateTime(time.Now())
	return ds.db.WithContext(ctx).Table(entity.TableName()).
		Where(entity.Index()).Save(entity).Error
}

// Get fills entity with the row matching its index. Returns
// datastore.ErrEntityInvalid when no such row exists.
func (ds *SQLite) Get(ctx context.Context, entity datastore.Entity) error {
	if err := ds.checkEntity(entity); err != nil {
		return err
	}
	err := ds.db.WithContext(ctx).Table(entity.TableName()).
		Where(entity.Index()).First(entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return datastore.ErrEntityInvalid
		}
		return err
	}
	return nil
}

// Delete removes the row matching the entity index.
func (ds *SQLite) Delete(ctx context.Context, entity datastore.Entity) error {
	if err := ds.checkEntity(entity); err != nil {
		return err
	}
	exist, err := ds.IsExist(ctx, entity)
	if err != nil {
		return err
	}
	if !exist {
		return datastore.ErrRecordNotExist
	}
	return ds.db.WithContext(ctx).Table(entity.TableName()).
		Where(entity.Index()).Delete(entity).Error
}

// List returns the rows matching the non-zero index fields of entity,
// paginated when options request it.
func (ds *SQLite) List(ctx context.Context, entity datastore.Entity, options *datastore.ListOptions) ([]datastore.Entity, error) {
	if entity == nil {
		return nil, datastore.ErrNilEntity
	}
	if entity.TableName() == "" {
		return nil, datastore.ErrTableNameEmpty
	}

	tx := ds.db.WithContext(ctx).Table(entity.TableName())
	if idx := entity.Index(); len(idx) > 0 {
		tx = tx.Where(idx)
	}
	if options != nil && options.Page > 0 && options.PageSize > 0 {
		tx = tx.Offset((options.Page - 1) * options.PageSize).Limit(options.PageSize)
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var list []datastore.Entity
	for rows.Next() {
		item, err := datastore.NewEntity(entity)
		if err != nil {
			return nil, err
		}
		if err := ds.db.ScanRows(rows, item); err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Count returns the number of rows matching the entity index.
func (ds *SQLite) Count(ctx context.Context, entity datastore.Entity) (int64, error) {
	if entity == nil {
		return 0, datastore.ErrNilEntity
	}
	if entity.TableName() == "" {
		return 0, datastore.ErrTableNameEmpty
	}
	var count int64
	tx := ds.db.WithContext(ctx).Table(entity.TableName())
	if idx := entity.Index(); len(idx) > 0 {
		tx = tx.Where(idx)
	}
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IsExist reports whether a row matching the entity index exists.
func (ds *SQLite) IsExist(ctx context.Context, entity datastore.Entity) (bool, error) {
	count, err := ds.Count(ctx, entity)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validDataTableName(name string) error {
	if !tableNameRe.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}

// ReadDataTable returns every row of the named data table. Returns
// datastore.ErrTableNotExist when the table has never been written.
func (ds *SQLite) ReadDataTable(ctx context.Context, table string) ([]types.Row, error) {
	if err := validDataTableName(table); err != nil {
		return nil, err
	}
	if !ds.db.WithContext(ctx).Migrator().HasTable(table) {
		return nil, datastore.ErrTableNotExist
	}

	var raw []map[string]interface{}
	if err := ds.db.WithContext(ctx).Table(table).Find(&raw).Error; err != nil {
		return nil, err
	}
	rows := make([]types.Row, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, types.Row(r))
	}
	return rows, nil
}

// ReplaceDataTable atomically replaces the named data table with rows. The
// table schema is inferred from the union of row keys. An empty rows slice
// drops the table contents but keeps the table absent, so a later read of a
// never-populated table still reports not found.
func (ds *SQLite) ReplaceDataTable(ctx context.Context, table string, rows []types.Row) error {
	if err := validDataTableName(table); err != nil {
		return err
	}
	columns := dataTableColumns(rows)

	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Migrator().HasTable(table) {
			if err := tx.Migrator().DropTable(table); err != nil {
				return err
			}
		}
		if len(columns) == 0 {
			return nil
		}

		defs := make([]string, 0, len(columns))
		for _, c := range columns {
			defs = append(defs, fmt.Sprintf("%q %s", c.name, c.sqlType))
		}
		ddl := fmt.Sprintf("CREATE TABLE %q (%s)", table, strings.Join(defs, ", "))
		if err := tx.Exec(ddl).Error; err != nil {
			return err
		}

		for _, row := range rows {
			insert := make(map[string]interface{}, len(row))
			for k, v := range row {
				insert[k] = v
			}
			if err := tx.Table(table).Create(insert).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type dataColumn struct {
	name    string
	sqlType string
}

func dataTableColumns(rows []types.Row) []dataColumn {
	seen := map[string]string{}
	var order []string
	for _, row := range rows {
		for k, v := range row {
			t := sqliteType(v)
			if prev, ok := seen[k]; !ok {
				seen[k] = t
				order = append(order, k)
			} else if prev != t {
				// mixed types fall back to TEXT affinity
				seen[k] = "TEXT"
			}
		}
	}
	sort.Strings(order)
	cols := make([]dataColumn, 0, len(order))
	for _, k := range order {
		cols = append(cols, dataColumn{name: k, sqlType: seen[k]})
	}
	return cols
}

func sqliteType(v interface{}) string {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		return "INTEGER"
	case float32, float64:
		return "REAL"
	default:
		return "TEXT"
	}
}
