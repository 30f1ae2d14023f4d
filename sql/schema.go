// Copyright 2026 Dolthub, Inc.
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

package sql

import (
	"fmt"
	"strings"

	"gopkg.in/src-d/go-vitess.v0/sqltypes"
	"gopkg.in/src-d/go-vitess.v0/vt/proto/query"
)

// Column is the metadata of a projected column of a shard result.
type Column struct {
	// Name is the column label.
	Name string
	// Type is the wire type reported by the shard, sqltypes.Null if unknown.
	Type query.Type
	// CaseSensitive reports whether textual values compare case-sensitively.
	CaseSensitive bool
	// Hidden marks a column the rewrite layer added, such as the SUM and COUNT
	// an AVG derives from. It is still part of every row.
	Hidden bool
}

// IsCaseSensitive returns whether the values of this column compare
// case-sensitively. Binary columns always do.
func (c *Column) IsCaseSensitive() bool {
	if sqltypes.IsBinary(c.Type) {
		return true
	}
	return c.CaseSensitive
}

// IsTextual returns whether the declared type of the column is textual or
// binary, and so can never hold a numeric aggregate.
func (c *Column) IsTextual() bool {
	return sqltypes.IsText(c.Type) || sqltypes.IsBinary(c.Type)
}

// Schema is the definition of a result set.
type Schema []*Column

// CheckCompatible returns ErrSchemaMismatch if other does not project the same
// columns, in the same order, as s. shard identifies the offending cursor.
func (s Schema) CheckCompatible(shard int, other Schema) error {
	if len(s) != len(other) {
		return ErrSchemaMismatch.New(shard, fmt.Sprintf("expected %d columns, got %d", len(s), len(other)))
	}

	for i, col := range s {
		if !strings.EqualFold(col.Name, other[i].Name) {
			return ErrSchemaMismatch.New(shard, fmt.Sprintf("column %d is %q, expected %q", i+1, other[i].Name, col.Name))
		}
	}

	return nil
}

// ColumnIndexMap maps a lower-cased column label to its 1-based position.
type ColumnIndexMap map[string]int

// NewColumnIndexMap builds the label index of a schema. Columns are visited
// from last to first so the lowest position wins for duplicate labels.
func NewColumnIndexMap(sch Schema) ColumnIndexMap {
	m := make(ColumnIndexMap, len(sch))
	for i := len(sch) - 1; i >= 0; i-- {
		m[strings.ToLower(sch[i].Name)] = i + 1
	}
	return m
}

// IndexOf returns the 1-based position of the column with the given label.
func (m ColumnIndexMap) IndexOf(name string) (int, error) {
	idx, ok := m[strings.ToLower(name)]
	if !ok {
		return 0, ErrColumnNotFound.New(name)
	}
	return idx, nil
}

// ResolveColumnIndexes builds the column index map from the first schema,
// after checking that every other schema projects the same columns.
func ResolveColumnIndexes(schemas ...Schema) (ColumnIndexMap, error) {
	if len(schemas) == 0 {
		return nil, ErrNoCursors.New()
	}

	for i := 1; i < len(schemas); i++ {
		if err := schemas[0].CheckCompatible(i, schemas[i]); err != nil {
			return nil, err
		}
	}

	return NewColumnIndexMap(schemas[0]), nil
}
