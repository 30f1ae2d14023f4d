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

package shardmerge_test

import (
	"fmt"
	"io"

	shardmerge "github.com/dolthub/go-shard-merge"
	"github.com/dolthub/go-shard-merge/memory"
	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/plan"
)

func Example() {
	e := shardmerge.NewDefault()
	ctx := sql.NewEmptyContext()

	// SELECT name, COUNT(*) FROM mytable GROUP BY name ORDER BY name
	// was routed to two shards, each returning its own partial counts.
	stmt := &plan.SelectStatement{
		GroupBy:      plan.SortFields{plan.NewSortFieldByName("name")},
		OrderBy:      plan.SortFields{plan.NewSortFieldByName("name")},
		Aggregations: []*plan.AggregationSpec{plan.NewAggregation(plan.Count, 2)},
	}

	shards := createTestShards()
	r, err := e.Merge(ctx, stmt, memory.Cursors(shards...)...)
	checkIfError(err)

	// Iterate results and print them.
	for {
		ro, err := r.Next(ctx)
		if err == io.EOF {
			break
		}
		checkIfError(err)

		name := ro[0]
		count := ro[1]

		fmt.Println(name, count)
	}
	checkIfError(r.Close(ctx))

	// Output: Evil Bob 1
	// Jane Doe 1
	// John Doe 2
}

func checkIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func createTestShards() []*memory.Shard {
	sch := sql.Schema{
		{Name: "name"},
		{Name: "COUNT(*)"},
	}

	ds0 := memory.NewShard("ds_0", sch)
	checkIfError(ds0.Insert(
		sql.NewRow("Jane Doe", int64(1)),
		sql.NewRow("John Doe", int64(1)),
	))

	ds1 := memory.NewShard("ds_1", sch)
	checkIfError(ds1.Insert(
		sql.NewRow("Evil Bob", int64(1)),
		sql.NewRow("John Doe", int64(1)),
	))

	return []*memory.Shard{ds0, ds1}
}
