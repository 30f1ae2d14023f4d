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
	"github.com/dolthub/go-shard-merge/sql/hash"
	"github.com/dolthub/go-shard-merge/sql/plan"
	"github.com/dolthub/go-shard-merge/sql/types"
)

// countBuffer adds up the partial counts of every shard.
type countBuffer struct {
	pos   int
	count int64
}

// Update implements the Buffer interface.
func (c *countBuffer) Update(row sql.Row) error {
	v := row[c.pos]
	if v == nil {
		return nil
	}

	n, err := types.ToInt64(v)
	if err != nil {
		return sql.ErrAggregationType.Wrap(err, v, v, plan.Count, c.pos+1)
	}

	c.count += n
	return nil
}

// Merge implements the Buffer interface.
func (c *countBuffer) Merge(other Buffer) error {
	o, ok := other.(*countBuffer)
	if !ok {
		return mergeTypeError(plan.Count, other)
	}
	c.count += o.count
	return nil
}

// Eval implements the Buffer interface.
func (c *countBuffer) Eval() (interface{}, error) {
	return c.count, nil
}

// countDistinctBuffer counts the distinct raw values of every shard.
type countDistinctBuffer struct {
	pos           int
	caseSensitive bool
	seen          map[uint64]struct{}
}

func newCountDistinctBuffer(pos int, caseSensitive bool) *countDistinctBuffer {
	return &countDistinctBuffer{
		pos:           pos,
		caseSensitive: caseSensitive,
		seen:          make(map[uint64]struct{}),
	}
}

// Update implements the Buffer interface.
func (c *countDistinctBuffer) Update(row sql.Row) error {
	v := row[c.pos]
	if v == nil {
		return nil
	}

	h, err := hash.HashValue(v, c.caseSensitive)
	if err != nil {
		return sql.ErrAggregationType.Wrap(err, v, v, "COUNT(DISTINCT)", c.pos+1)
	}

	c.seen[h] = struct{}{}
	return nil
}

// Merge implements the Buffer interface.
func (c *countDistinctBuffer) Merge(other Buffer) error {
	o, ok := other.(*countDistinctBuffer)
	if !ok {
		return mergeTypeError(plan.Count, other)
	}
	for k := range o.seen {
		c.seen[k] = struct{}{}
	}
	return nil
}

// Eval implements the Buffer interface.
func (c *countDistinctBuffer) Eval() (interface{}, error) {
	return int64(len(c.seen)), nil
}
