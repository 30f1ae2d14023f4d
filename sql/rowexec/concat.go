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
)

// concatIter returns the rows of every shard, one shard after the other.
type concatIter struct {
	sch    sql.Schema
	shards []*shardCursor
	idx    int
	err    error
}

func newConcatIter(sch sql.Schema, shards []*shardCursor) *concatIter {
	return &concatIter{sch: sch, shards: shards}
}

func (i *concatIter) Schema() sql.Schema {
	return i.sch
}

func (i *concatIter) Next(ctx *sql.Context) (sql.Row, error) {
	if i.err != nil {
		return nil, i.err
	}

	for i.idx < len(i.shards) {
		row, err := i.shards[i.idx].Next(ctx)
		if err == io.EOF {
			i.idx++
			continue
		}

		if err != nil {
			i.err = err
			return nil, err
		}

		return row, nil
	}

	return nil, io.EOF
}

func (i *concatIter) Close(ctx *sql.Context) error {
	i.idx = len(i.shards)
	return closeShards(ctx, i.shards)
}
