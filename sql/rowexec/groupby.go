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

	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/aggregation"
	"github.com/dolthub/go-shard-merge/sql/plan"
)

// groupByStreamIter groups the output of an order-by merge whose ORDER BY
// starts with the GROUP BY items, so the rows of a group come one after the
// other. Only the group being built is held in memory.
type groupByStreamIter struct {
	child    *orderByStreamIter
	groupCmp *plan.RowComparator
	factory  *aggregation.Factory

	pending sql.Row
	done    bool
	err     error
}

func newGroupByStreamIter(child *orderByStreamIter, groupCmp *plan.RowComparator, factory *aggregation.Factory) *groupByStreamIter {
	return &groupByStreamIter{
		child:    child,
		groupCmp: groupCmp,
		factory:  factory,
	}
}

func (i *groupByStreamIter) Schema() sql.Schema {
	return i.child.Schema()
}

func (i *groupByStreamIter) Next(ctx *sql.Context) (sql.Row, error) {
	if i.err != nil {
		return nil, i.err
	}

	row, err := i.nextGroup(ctx)
	if err != nil && err != io.EOF {
		i.err = err
	}
	return row, err
}

func (i *groupByStreamIter) nextGroup(ctx *sql.Context) (sql.Row, error) {
	if i.pending == nil {
		if i.done {
			return nil, io.EOF
		}

		row, err := i.child.Next(ctx)
		if err == io.EOF {
			i.done = true
			return nil, io.EOF
		}

		if err != nil {
			return nil, err
		}
		i.pending = row
	}

	// the first row of the group supplies the non-aggregated columns
	group := i.pending
	i.pending = nil
	buffers := i.factory.NewBuffers()
	if err := buffers.Update(group); err != nil {
		return nil, err
	}

	for !i.done {
		row, err := i.child.Next(ctx)
		if err == io.EOF {
			i.done = true
			break
		}

		if err != nil {
			return nil, err
		}

		cmp, err := i.groupCmp.Compare(group, row)
		if err != nil {
			return nil, err
		}

		if cmp != 0 {
			i.pending = row
			break
		}

		if err := buffers.Update(row); err != nil {
			return nil, err
		}
	}

	out := group.Copy()
	if err := buffers.Finalize(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (i *groupByStreamIter) Close(ctx *sql.Context) error {
	i.pending = nil
	i.done = true
	return i.child.Close(ctx)
}
