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

// bitXorBuffer xors the partial results of every shard. Like MySQL, the
// result over no values is 0.
type bitXorBuffer struct {
	pos   int
	value uint64
}

// Update implements the Buffer interface.
func (b *bitXorBuffer) Update(row sql.Row) error {
	v := row[b.pos]
	if v == nil {
		return nil
	}

	if u, ok := v.(uint64); ok {
		b.value ^= u
		return nil
	}

	i, err := types.ToInt64(v)
	if err != nil {
		return sql.ErrAggregationType.Wrap(err, v, v, plan.BitXor, b.pos+1)
	}

	b.value ^= uint64(i)
	return nil
}

// Merge implements the Buffer interface.
func (b *bitXorBuffer) Merge(other Buffer) error {
	o, ok := other.(*bitXorBuffer)
	if !ok {
		return mergeTypeError(plan.BitXor, other)
	}
	b.value ^= o.value
	return nil
}

// Eval implements the Buffer interface.
func (b *bitXorBuffer) Eval() (interface{}, error) {
	return b.value, nil
}
