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
	"github.com/shopspring/decimal"

	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/hash"
	"github.com/dolthub/go-shard-merge/sql/plan"
	"github.com/dolthub/go-shard-merge/sql/types"
)

// sumBuffer adds up the partial sums of every shard with arbitrary
// precision. The sum of no values is null.
type sumBuffer struct {
	pos   int
	isnil bool
	sum   decimal.Decimal
}

// Update implements the Buffer interface.
func (s *sumBuffer) Update(row sql.Row) error {
	v := row[s.pos]
	if v == nil {
		return nil
	}

	d, err := types.ToDecimal(v)
	if err != nil {
		return sql.ErrAggregationType.Wrap(err, v, v, plan.Sum, s.pos+1)
	}

	s.add(d)
	return nil
}

func (s *sumBuffer) add(d decimal.Decimal) {
	if s.isnil {
		s.sum = decimal.Zero
		s.isnil = false
	}
	s.sum = s.sum.Add(d)
}

// Merge implements the Buffer interface.
func (s *sumBuffer) Merge(other Buffer) error {
	o, ok := other.(*sumBuffer)
	if !ok {
		return mergeTypeError(plan.Sum, other)
	}
	if !o.isnil {
		s.add(o.sum)
	}
	return nil
}

// Eval implements the Buffer interface.
func (s *sumBuffer) Eval() (interface{}, error) {
	if s.isnil {
		return nil, nil
	}
	return s.sum, nil
}

// sumDistinctBuffer adds up the distinct raw values of every shard.
type sumDistinctBuffer struct {
	pos           int
	caseSensitive bool
	values        map[uint64]decimal.Decimal
}

func newSumDistinctBuffer(pos int, caseSensitive bool) *sumDistinctBuffer {
	return &sumDistinctBuffer{
		pos:           pos,
		caseSensitive: caseSensitive,
		values:        make(map[uint64]decimal.Decimal),
	}
}

// Update implements the Buffer interface.
func (s *sumDistinctBuffer) Update(row sql.Row) error {
	v := row[s.pos]
	if v == nil {
		return nil
	}

	d, err := types.ToDecimal(v)
	if err != nil {
		return sql.ErrAggregationType.Wrap(err, v, v, "SUM(DISTINCT)", s.pos+1)
	}

	h, err := hash.HashValue(d, s.caseSensitive)
	if err != nil {
		return sql.ErrAggregationType.Wrap(err, v, v, "SUM(DISTINCT)", s.pos+1)
	}

	s.values[h] = d
	return nil
}

// Merge implements the Buffer interface.
func (s *sumDistinctBuffer) Merge(other Buffer) error {
	o, ok := other.(*sumDistinctBuffer)
	if !ok {
		return mergeTypeError(plan.Sum, other)
	}
	for k, v := range o.values {
		s.values[k] = v
	}
	return nil
}

// Eval implements the Buffer interface.
func (s *sumDistinctBuffer) Eval() (interface{}, error) {
	if len(s.values) == 0 {
		return nil, nil
	}

	sum := decimal.Zero
	for _, v := range s.values {
		sum = sum.Add(v)
	}
	return sum, nil
}
