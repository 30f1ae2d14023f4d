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
	"sort"

	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/types"
)

// ErrUnableSort is thrown when something happens on sorting
var ErrUnableSort = errors.NewKind("unable to sort")

type compareField struct {
	pos           int
	desc          bool
	nullsFirst    bool
	caseSensitive bool
}

// RowComparator orders rows by a sequence of sort fields. The first field
// that tells two rows apart decides; rows equal on every field are order
// equivalent.
type RowComparator struct {
	fields []compareField
}

// NewRowComparator builds the comparator of the given resolved sort fields.
// Case sensitivity of textual values is taken from the schema.
func NewRowComparator(sch sql.Schema, fields SortFields) *RowComparator {
	c := &RowComparator{fields: make([]compareField, len(fields))}
	for i, f := range fields {
		pos := f.Index - 1
		caseSensitive := true
		if pos >= 0 && pos < len(sch) {
			caseSensitive = sch[pos].IsCaseSensitive()
		}

		nullsFirst := f.NullOrdering == NullsFirst
		if f.NullOrdering == NullsDefault {
			nullsFirst = f.Order != Descending
		}

		c.fields[i] = compareField{
			pos:           pos,
			desc:          f.Order == Descending,
			nullsFirst:    nullsFirst,
			caseSensitive: caseSensitive,
		}
	}
	return c
}

// Len returns the number of sort fields of the comparator.
func (c *RowComparator) Len() int {
	return len(c.fields)
}

// Prefix returns a comparator over the first n fields only.
func (c *RowComparator) Prefix(n int) *RowComparator {
	if n > len(c.fields) {
		n = len(c.fields)
	}
	return &RowComparator{fields: c.fields[:n]}
}

// Compare returns -1 if a sorts before b, 1 if it sorts after and 0 if they
// are order equivalent. Nulls are placed by the null ordering of each field
// whatever its direction.
func (c *RowComparator) Compare(a, b sql.Row) (int, error) {
	for _, f := range c.fields {
		if f.pos < 0 || f.pos >= len(a) || f.pos >= len(b) {
			return 0, sql.ErrInvalidColumnIndex.New(f.pos+1, len(a))
		}

		av, bv := a[f.pos], b[f.pos]
		if av == nil && bv == nil {
			continue
		} else if av == nil {
			if f.nullsFirst {
				return -1, nil
			}
			return 1, nil
		} else if bv == nil {
			if f.nullsFirst {
				return 1, nil
			}
			return -1, nil
		}

		cmp, err := types.Compare(av, bv, f.caseSensitive)
		if err != nil {
			return 0, err
		}

		if cmp != 0 {
			if f.desc {
				return -cmp, nil
			}
			return cmp, nil
		}
	}

	return 0, nil
}

// Sort sorts rows stably with the comparator.
func (c *RowComparator) Sort(rows []sql.Row) error {
	s := &sorter{cmp: c, rows: rows}
	sort.Stable(s)
	return s.lastError
}

type sorter struct {
	cmp       *RowComparator
	rows      []sql.Row
	lastError error
}

func (s *sorter) Len() int {
	return len(s.rows)
}

func (s *sorter) Swap(i, j int) {
	s.rows[i], s.rows[j] = s.rows[j], s.rows[i]
}

func (s *sorter) Less(i, j int) bool {
	if s.lastError != nil {
		return false
	}

	cmp, err := s.cmp.Compare(s.rows[i], s.rows[j])
	if err != nil {
		s.lastError = ErrUnableSort.Wrap(err)
		return false
	}
	return cmp < 0
}
