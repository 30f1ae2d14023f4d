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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-shard-merge/memory"
	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/dialect"
	"github.com/dolthub/go-shard-merge/sql/plan"
)

var twoColumns = sql.Schema{
	{Name: "col1"},
	{Name: "col2"},
}

func newShards(t *testing.T, sch sql.Schema, data ...[]sql.Row) []*memory.Shard {
	t.Helper()
	shards := make([]*memory.Shard, len(data))
	for i, rows := range data {
		s, err := memory.NewShardWithRows("ds_"+string(rune('0'+i)), sch, rows...)
		require.NoError(t, err)
		shards[i] = s
	}
	return shards
}

func mustMerge(t *testing.T, b *Builder, stmt *plan.SelectStatement, cursors ...sql.RowCursor) []sql.Row {
	t.Helper()
	ctx := sql.NewEmptyContext()
	c, err := b.Build(ctx, stmt, cursors...)
	require.NoError(t, err)
	rows, err := sql.CursorToRows(ctx, c)
	require.NoError(t, err)
	return rows
}

func TestSelectStrategy(t *testing.T) {
	asc := func(idx int) plan.SortField {
		return plan.SortField{Index: idx, Order: plan.Ascending, NullOrdering: plan.NullsFirst}
	}
	desc := func(idx int) plan.SortField {
		return plan.SortField{Index: idx, Order: plan.Descending, NullOrdering: plan.NullsLast}
	}
	count := []*plan.AggregationSpec{plan.NewAggregation(plan.Count, 3)}

	testCases := []struct {
		name     string
		stmt     *plan.SelectStatement
		shards   int
		expected Strategy
	}{
		{"single shard", &plan.SelectStatement{OrderBy: plan.SortFields{asc(1)}}, 1, Passthrough},
		{"single shard with count", &plan.SelectStatement{GroupBy: plan.SortFields{asc(1)}, Aggregations: count}, 1, Passthrough},
		{"single shard with avg", &plan.SelectStatement{Aggregations: []*plan.AggregationSpec{plan.NewAvg(1, 2, 3)}}, 1, GroupByMemory},
		{"single shard with distinct count", &plan.SelectStatement{Aggregations: []*plan.AggregationSpec{plan.NewDistinctAggregation(plan.Count, 1)}}, 1, GroupByMemory},
		{"no clauses", &plan.SelectStatement{}, 3, IteratorStream},
		{"order by", &plan.SelectStatement{OrderBy: plan.SortFields{desc(2)}}, 3, OrderByStream},
		{"group by equal to order by", &plan.SelectStatement{GroupBy: plan.SortFields{asc(1)}, OrderBy: plan.SortFields{asc(1)}, Aggregations: count}, 2, GroupByStream},
		{"group by prefix of order by", &plan.SelectStatement{GroupBy: plan.SortFields{asc(1)}, OrderBy: plan.SortFields{asc(1), desc(2)}}, 2, GroupByStream},
		{"group by longer than order by", &plan.SelectStatement{GroupBy: plan.SortFields{asc(1), asc(2)}, OrderBy: plan.SortFields{asc(1)}}, 2, GroupByMemory},
		{"group by on another column", &plan.SelectStatement{GroupBy: plan.SortFields{asc(1)}, OrderBy: plan.SortFields{asc(2)}}, 2, GroupByMemory},
		{"group by in another direction", &plan.SelectStatement{GroupBy: plan.SortFields{asc(1)}, OrderBy: plan.SortFields{desc(1)}}, 2, GroupByMemory},
		{"group by without order by", &plan.SelectStatement{GroupBy: plan.SortFields{asc(1)}}, 2, GroupByStream},
		{"group by without order by with count", &plan.SelectStatement{GroupBy: plan.SortFields{asc(1), desc(2)}, Aggregations: count}, 2, GroupByStream},
		{"aggregation without group by", &plan.SelectStatement{Aggregations: count, OrderBy: plan.SortFields{asc(1)}}, 2, GroupByMemory},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, SelectStrategy(tt.stmt, tt.shards))
		})
	}
}

func TestBuilderPlan(t *testing.T) {
	require := require.New(t)
	b := NewBuilder(dialect.MySQL)

	limit, err := plan.NewLimitPagination(1, 2)
	require.NoError(err)

	// SELECT DISTINCT col1, col2 ... ORDER BY col1, col2 streams
	p, err := b.Plan(&plan.SelectStatement{
		Distinct:   true,
		OrderBy:    plan.SortFields{plan.NewSortFieldByName("col1"), plan.NewSortFieldByName("col2")},
		Pagination: limit,
	}, twoColumns, twoColumns)
	require.NoError(err)
	require.Equal(GroupByStream, p.Strategy)
	require.Equal(plan.SortFields{
		{Index: 1, Order: plan.Ascending, NullOrdering: plan.NullsFirst},
		{Index: 2, Order: plan.Ascending, NullOrdering: plan.NullsFirst},
	}, p.Statement.GroupBy)
	require.True(p.Paginate)

	// without ORDER BY the shards are sorted by the synthetic GROUP BY
	p, err = b.Plan(&plan.SelectStatement{Distinct: true}, twoColumns, twoColumns)
	require.NoError(err)
	require.Equal(GroupByStream, p.Strategy)
	require.False(p.Paginate)

	// an ORDER BY not starting with the projection is grouped in memory
	p, err = b.Plan(&plan.SelectStatement{
		Distinct: true,
		OrderBy:  plan.SortFields{plan.NewSortFieldByName("col2")},
	}, twoColumns, twoColumns)
	require.NoError(err)
	require.Equal(GroupByMemory, p.Strategy)

	// a single shard already returns the page
	p, err = b.Plan(&plan.SelectStatement{Pagination: limit}, twoColumns)
	require.NoError(err)
	require.Equal(Passthrough, p.Strategy)
	require.False(p.Paginate)

	b.PaginationPushdown = func(int) bool { return false }
	p, err = b.Plan(&plan.SelectStatement{Pagination: limit}, twoColumns)
	require.NoError(err)
	require.True(p.Paginate)

	_, err = b.Plan(&plan.SelectStatement{OrderBy: plan.SortFields{plan.NewSortFieldByName("nope")}}, twoColumns)
	require.Error(err)
	require.True(sql.ErrColumnNotFound.Is(err))

	_, err = b.Plan(&plan.SelectStatement{}, twoColumns, sql.Schema{{Name: "col1"}})
	require.Error(err)
	require.True(sql.ErrSchemaMismatch.Is(err))
}

func TestRewriteDistinct(t *testing.T) {
	require := require.New(t)

	sch := sql.Schema{{Name: "a"}, {Name: "b"}, {Name: "h", Hidden: true}}
	stmt := &plan.SelectStatement{Distinct: true}

	rewritten, err := RewriteDistinct(stmt, sch, dialect.PostgreSQL)
	require.NoError(err)
	require.Equal(plan.SortFields{
		{Index: 1, Order: plan.Ascending, NullOrdering: plan.NullsLast},
		{Index: 2, Order: plan.Ascending, NullOrdering: plan.NullsLast},
	}, rewritten.GroupBy)
	require.Nil(stmt.GroupBy)
	require.Empty(rewritten.Aggregations)

	// explicit GROUP BY wins
	grouped := &plan.SelectStatement{Distinct: true, GroupBy: plan.SortFields{{Index: 2, Order: plan.Ascending}}}
	same, err := RewriteDistinct(grouped, sch, dialect.MySQL)
	require.NoError(err)
	require.Equal(grouped, same)
}

func TestBuildNoCursors(t *testing.T) {
	_, err := NewBuilder(dialect.MySQL).Build(sql.NewEmptyContext(), &plan.SelectStatement{})
	require.Error(t, err)
	require.True(t, sql.ErrNoCursors.Is(err))
}

func TestBuildFailureClosesInputs(t *testing.T) {
	require := require.New(t)

	shards := newShards(t, twoColumns,
		[]sql.Row{sql.NewRow(int64(1), "a")},
		[]sql.Row{sql.NewRow(int64(2), "b")},
	)
	other, err := memory.NewShardWithRows("ds_2", sql.Schema{{Name: "col1"}, {Name: "other"}})
	require.NoError(err)
	shards = append(shards, other)

	_, err = NewBuilder(dialect.MySQL).Build(sql.NewEmptyContext(), &plan.SelectStatement{}, memory.Cursors(shards...)...)
	require.Error(err)
	require.True(sql.ErrSchemaMismatch.Is(err))
	require.Contains(err.Error(), "shard 2")

	for _, s := range shards {
		require.Equal(0, s.OpenCursors(), s.Name())
	}
}
