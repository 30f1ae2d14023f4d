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
	"container/heap"
	"io"

	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/plan"
)

type mergeState byte

const (
	initializing mergeState = iota
	active
	exhausted
)

// queueEntry is the current row of one shard in the merge queue.
type queueEntry struct {
	row   sql.Row
	shard int
}

// orderByStreamIter is a k-way merge of shard results that are each sorted
// by the same ORDER BY. The queue holds at most one row per shard; a shard
// is dropped for good once exhausted.
type orderByStreamIter struct {
	sch    sql.Schema
	shards []*shardCursor
	cmp    *plan.RowComparator

	state mergeState
	queue []queueEntry
	err   error
}

func newOrderByStreamIter(sch sql.Schema, shards []*shardCursor, cmp *plan.RowComparator) *orderByStreamIter {
	return &orderByStreamIter{
		sch:    sch,
		shards: shards,
		cmp:    cmp,
		queue:  make([]queueEntry, 0, len(shards)),
	}
}

func (i *orderByStreamIter) Schema() sql.Schema {
	return i.sch
}

func (i *orderByStreamIter) init(ctx *sql.Context) error {
	for _, s := range i.shards {
		row, err := s.Next(ctx)
		if err == io.EOF {
			continue
		}

		if err != nil {
			return err
		}

		i.queue = append(i.queue, queueEntry{row: row, shard: s.id})
	}

	heap.Init(i)
	if i.err != nil {
		return i.err
	}

	i.state = active
	return nil
}

func (i *orderByStreamIter) Next(ctx *sql.Context) (sql.Row, error) {
	if i.err != nil {
		return nil, i.err
	}

	if i.state == initializing {
		if err := i.init(ctx); err != nil {
			i.err = err
			return nil, err
		}
	}

	if i.state == exhausted || len(i.queue) == 0 {
		i.state = exhausted
		return nil, io.EOF
	}

	top := &i.queue[0]
	row := top.row

	next, err := i.shards[top.shard].Next(ctx)
	if err == io.EOF {
		heap.Pop(i)
	} else if err != nil {
		i.err = err
		return nil, err
	} else {
		top.row = next
		heap.Fix(i, 0)
	}

	if i.err != nil {
		return nil, i.err
	}

	return row, nil
}

func (i *orderByStreamIter) Close(ctx *sql.Context) error {
	i.state = exhausted
	i.queue = nil
	return closeShards(ctx, i.shards)
}

func (i *orderByStreamIter) Len() int { return len(i.queue) }

// Less orders entries by the comparator, and rows equal under it by shard
// so the output does not depend on the order shards are read in.
func (i *orderByStreamIter) Less(a, b int) bool {
	cmp, err := i.cmp.Compare(i.queue[a].row, i.queue[b].row)
	if err != nil {
		if i.err == nil {
			i.err = err
		}
		return false
	}

	if cmp == 0 {
		return i.queue[a].shard < i.queue[b].shard
	}
	return cmp < 0
}

func (i *orderByStreamIter) Swap(a, b int) {
	i.queue[a], i.queue[b] = i.queue[b], i.queue[a]
}

func (i *orderByStreamIter) Push(x interface{}) {
	i.queue = append(i.queue, x.(queueEntry))
}

func (i *orderByStreamIter) Pop() interface{} {
	n := len(i.queue)
	e := i.queue[n-1]
	i.queue = i.queue[:n-1]
	return e
}
