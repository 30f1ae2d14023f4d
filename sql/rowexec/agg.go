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

package rowexec

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/aggregation"
	"github.com/dolthub/go-shard-merge/sql/hash"
	"github.com/dolthub/go-shard-merge/sql/plan"
)

// groupedRow is a group being built: the first row seen for its key and the
// aggregation buffers folding every other row of the group.
type groupedRow struct {
	row     sql.Row
	buffers *aggregation.Buffers
}

// groupByMemoryIter drains every shard and groups the rows in memory. It is
// used when the shards are not sorted by the GROUP BY items. Memory grows
// with the number of distinct groups.
type groupByMemoryIter struct {
	sch       sql.Schema
	shards    []*shardCursor
	positions []int
	groupCmp  *plan.RowComparator
	sortCmp   *plan.RowComparator
	factory   *aggregation.Factory
	scalar    bool
	warnAt    int

	// groups is the arena of groups; keys maps a group key hash to the
	// groups in the arena with that hash.
	groups []groupedRow
	keys   map[uint64][]int

	computed bool
	rows     []sql.Row
	pos      int
	err      error
}

type groupByMemoryConfig struct {
	groupBy plan.SortFields
	// sortBy orders the groups, the GROUP BY items when empty.
	sortBy plan.SortFields
	warnAt int
}

func newGroupByMemoryIter(
	sch sql.Schema,
	shards []*shardCursor,
	factory *aggregation.Factory,
	cfg groupByMemoryConfig,
) *groupByMemoryIter {
	sortBy := cfg.sortBy
	if len(sortBy) == 0 {
		sortBy = cfg.groupBy
	}

	return &groupByMemoryIter{
		sch:       sch,
		shards:    shards,
		positions: cfg.groupBy.Positions(),
		groupCmp:  plan.NewRowComparator(sch, cfg.groupBy),
		sortCmp:   plan.NewRowComparator(sch, sortBy),
		factory:   factory,
		scalar:    len(cfg.groupBy) == 0,
		warnAt:    cfg.warnAt,
		keys:      make(map[uint64][]int),
	}
}

func (i *groupByMemoryIter) Schema() sql.Schema {
	return i.sch
}

func (i *groupByMemoryIter) Next(ctx *sql.Context) (sql.Row, error) {
	if i.err != nil {
		return nil, i.err
	}

	if !i.computed {
		if err := i.compute(ctx); err != nil {
			i.err = err
			return nil, err
		}
		i.computed = true
	}

	if i.pos >= len(i.rows) {
		return nil, io.EOF
	}

	row := i.rows[i.pos]
	i.rows[i.pos] = nil
	i.pos++
	return row, nil
}

func (i *groupByMemoryIter) compute(ctx *sql.Context) error {
	for _, s := range i.shards {
		for {
			row, err := s.Next(ctx)
			if err == io.EOF {
				break
			}

			if err != nil {
				return err
			}

			g, err := i.group(row)
			if err != nil {
				return err
			}

			if err := g.buffers.Update(row); err != nil {
				return err
			}
		}
	}

	// an aggregation without GROUP BY always returns one row
	if i.scalar && len(i.groups) == 0 {
		i.groups = append(i.groups, groupedRow{
			row:     make(sql.Row, len(i.sch)),
			buffers: i.factory.NewBuffers(),
		})
	}

	MemoryGroupsHistogram.Observe(float64(len(i.groups)))
	if i.warnAt > 0 && len(i.groups) > i.warnAt {
		ctx.GetLogger().WithFields(logrus.Fields{
			"groups":    len(i.groups),
			"threshold": i.warnAt,
		}).Warn("in-memory group by is holding a large number of groups")
	}

	i.rows = make([]sql.Row, len(i.groups))
	for j := range i.groups {
		out := i.groups[j].row.Copy()
		if err := i.groups[j].buffers.Finalize(out); err != nil {
			return err
		}
		i.rows[j] = out
	}
	i.groups = nil
	i.keys = nil

	return i.sortCmp.Sort(i.rows)
}

// group returns the group of the row, creating it if needed. Rows with the
// same key hash are told apart with the GROUP BY comparator.
func (i *groupByMemoryIter) group(row sql.Row) (*groupedRow, error) {
	key, err := hash.HashOf(i.sch, i.positions, row)
	if err != nil {
		return nil, err
	}

	for _, idx := range i.keys[key] {
		cmp, err := i.groupCmp.Compare(i.groups[idx].row, row)
		if err != nil {
			return nil, err
		}

		if cmp == 0 {
			return &i.groups[idx], nil
		}
	}

	i.groups = append(i.groups, groupedRow{
		row:     row,
		buffers: i.factory.NewBuffers(),
	})
	idx := len(i.groups) - 1
	i.keys[key] = append(i.keys[key], idx)
	return &i.groups[idx], nil
}

func (i *groupByMemoryIter) Close(ctx *sql.Context) error {
	i.groups = nil
	i.keys = nil
	i.rows = nil
	i.computed = true
	return closeShards(ctx, i.shards)
}
