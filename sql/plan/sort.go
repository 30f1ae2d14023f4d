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

package plan

import (
	"fmt"
	"strings"

	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/dialect"
)

// SortOrder represents the order of the sort (ascending or descending).
type SortOrder byte

const (
	// Ascending order.
	Ascending SortOrder = 1
	// Descending order.
	Descending SortOrder = 2
)

func (s SortOrder) String() string {
	switch s {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return "invalid SortOrder"
	}
}

// NullOrdering represents how to order based on null values.
type NullOrdering byte

const (
	// NullsDefault lets the dialect decide where null values go.
	NullsDefault NullOrdering = iota
	// NullsFirst puts the null values before any other values.
	NullsFirst
	// NullsLast puts the null values after all other values.
	NullsLast
)

func (n NullOrdering) String() string {
	switch n {
	case NullsDefault:
		return ""
	case NullsFirst:
		return "NULLS FIRST"
	case NullsLast:
		return "NULLS LAST"
	default:
		return "invalid NullOrdering"
	}
}

// SortField is an ORDER BY or GROUP BY item of the bound statement.
type SortField struct {
	// Index is the 1-based position of the column in the projection. When
	// zero, the column is looked up by Name.
	Index int
	// Name is the column label.
	Name string
	// Order type.
	Order SortOrder
	// NullOrdering defining how nulls will be ordered.
	NullOrdering NullOrdering
}

// NewSortField returns an ascending sort field over the given 1-based column
// position, ordering nulls as the dialect does.
func NewSortField(index int) SortField {
	return SortField{Index: index, Order: Ascending}
}

// NewSortFieldByName returns an ascending sort field over the column with the
// given label.
func NewSortFieldByName(name string) SortField {
	return SortField{Name: name, Order: Ascending}
}

// Desc returns a copy of the field sorting in descending order.
func (f SortField) Desc() SortField {
	f.Order = Descending
	return f
}

// WithNullOrdering returns a copy of the field with an explicit null ordering.
func (f SortField) WithNullOrdering(n NullOrdering) SortField {
	f.NullOrdering = n
	return f
}

func (f SortField) String() string {
	var b strings.Builder
	if f.Index > 0 {
		fmt.Fprintf(&b, "%d", f.Index)
	} else {
		b.WriteString(f.Name)
	}
	order := f.Order
	if order == 0 {
		order = Ascending
	}
	fmt.Fprintf(&b, " %s", order)
	if f.NullOrdering != NullsDefault {
		fmt.Fprintf(&b, " %s", f.NullOrdering)
	}
	return b.String()
}

// Resolve returns a copy of the field with its column position looked up in
// the given index map and its null ordering made explicit for the dialect.
func (f SortField) Resolve(m sql.ColumnIndexMap, columns int, d dialect.Dialect) (SortField, error) {
	if f.Index == 0 {
		idx, err := m.IndexOf(f.Name)
		if err != nil {
			return f, err
		}
		f.Index = idx
	}

	if f.Index < 1 || f.Index > columns {
		return f, sql.ErrInvalidColumnIndex.New(f.Index, columns)
	}

	if f.Order == 0 {
		f.Order = Ascending
	}

	if f.NullOrdering == NullsDefault {
		// A dialect sorting nulls low puts them first when ascending.
		if d.NullsLow() == (f.Order == Ascending) {
			f.NullOrdering = NullsFirst
		} else {
			f.NullOrdering = NullsLast
		}
	}

	return f, nil
}

// SortFields is a sequence of ORDER BY or GROUP BY items.
type SortFields []SortField

// Resolve resolves every field. See SortField.Resolve.
func (fs SortFields) Resolve(m sql.ColumnIndexMap, columns int, d dialect.Dialect) (SortFields, error) {
	if len(fs) == 0 {
		return nil, nil
	}

	resolved := make(SortFields, len(fs))
	for i, f := range fs {
		r, err := f.Resolve(m, columns, d)
		if err != nil {
			return nil, err
		}
		resolved[i] = r
	}
	return resolved, nil
}

// HasPrefix reports whether prefix is a prefix of, or equal to, fs: the same
// columns in the same order, with the same directions and null orderings.
// Both sequences must be resolved.
func (fs SortFields) HasPrefix(prefix SortFields) bool {
	if len(prefix) > len(fs) {
		return false
	}

	for i, p := range prefix {
		f := fs[i]
		if f.Index != p.Index || f.Order != p.Order || f.NullOrdering != p.NullOrdering {
			return false
		}
	}
	return true
}

// Positions returns the 0-based row positions of the fields.
func (fs SortFields) Positions() []int {
	positions := make([]int, len(fs))
	for i, f := range fs {
		positions[i] = f.Index - 1
	}
	return positions
}

func (fs SortFields) String() string {
	fields := make([]string, len(fs))
	for i, f := range fs {
		fields[i] = f.String()
	}
	return strings.Join(fields, ", ")
}
