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

package aggregation

import (
	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/plan"
	"github.com/dolthub/go-shard-merge/sql/types"
)

// extremumBuffer keeps the greatest (MAX) or least (MIN) non-null value seen.
type extremumBuffer struct {
	pos           int
	kind          plan.AggregationKind
	caseSensitive bool
	value         interface{}
}

// Update implements the Buffer interface.
func (e *extremumBuffer) Update(row sql.Row) error {
	return e.fold(row[e.pos])
}

func (e *extremumBuffer) fold(v interface{}) error {
	if v == nil {
		return nil
	}

	if e.value == nil {
		e.value = v
		return nil
	}

	cmp, err := types.Compare(v, e.value, e.caseSensitive)
	if err != nil {
		return sql.ErrAggregationType.Wrap(err, v, v, e.kind, e.pos+1)
	}

	if (e.kind == plan.Max && cmp > 0) || (e.kind == plan.Min && cmp < 0) {
		e.value = v
	}
	return nil
}

// Merge implements the Buffer interface.
func (e *extremumBuffer) Merge(other Buffer) error {
	o, ok := other.(*extremumBuffer)
	if !ok || o.kind != e.kind {
		return mergeTypeError(e.kind, other)
	}
	return e.fold(o.value)
}

// Eval implements the Buffer interface.
func (e *extremumBuffer) Eval() (interface{}, error) {
	return e.value, nil
}
