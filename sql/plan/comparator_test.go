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

package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-shard-merge/sql"
)

func TestRowComparatorNullOrdering(t *testing.T) {
	sch := sql.Schema{{Name: "a"}}

	testCases := []struct {
		name  string
		field SortField
		// expected comparison of a null row against a non-null row
		expected int
	}{
		{"asc nulls first", SortField{Index: 1, Order: Ascending, NullOrdering: NullsFirst}, -1},
		{"desc nulls first", SortField{Index: 1, Order: Descending, NullOrdering: NullsFirst}, -1},
		{"asc nulls last", SortField{Index: 1, Order: Ascending, NullOrdering: NullsLast}, 1},
		{"desc nulls last", SortField{Index: 1, Order: Descending, NullOrdering: NullsLast}, 1},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			c := NewRowComparator(sch, SortFields{tt.field})

			for _, v := range []interface{}{int64(-1 << 62), int64(0), int64(1 << 62), "", "zzz"} {
				cmp, err := c.Compare(sql.NewRow(nil), sql.NewRow(v))
				require.NoError(err)
				require.Equal(tt.expected, cmp, "%v", v)

				cmp, err = c.Compare(sql.NewRow(v), sql.NewRow(nil))
				require.NoError(err)
				require.Equal(-tt.expected, cmp, "%v", v)
			}

			cmp, err := c.Compare(sql.NewRow(nil), sql.NewRow(nil))
			require.NoError(err)
			require.Equal(0, cmp)
		})
	}
}

func TestRowComparator(t *testing.T) {
	require := require.New(t)

	sch := sql.Schema{
		{Name: "name", CaseSensitive: false},
		{Name: "score"},
	}
	c := NewRowComparator(sch, SortFields{
		{Index: 1, Order: Ascending, NullOrdering: NullsFirst},
		{Index: 2, Order: Descending, NullOrdering: NullsLast},
	})
	require.Equal(2, c.Len())

	cmp, err := c.Compare(sql.NewRow("a", int64(1)), sql.NewRow("B", int64(1)))
	require.NoError(err)
	require.Equal(-1, cmp)

	cmp, err = c.Compare(sql.NewRow("A", int64(1)), sql.NewRow("a", int64(2)))
	require.NoError(err)
	require.Equal(1, cmp)

	cmp, err = c.Compare(sql.NewRow("A", int64(2)), sql.NewRow("a", 2.0))
	require.NoError(err)
	require.Equal(0, cmp)

	prefix := c.Prefix(1)
	require.Equal(1, prefix.Len())
	cmp, err = prefix.Compare(sql.NewRow("A", int64(1)), sql.NewRow("a", int64(2)))
	require.NoError(err)
	require.Equal(0, cmp)

	_, err = c.Compare(sql.NewRow("a", "x"), sql.NewRow("a", int64(1)))
	require.Error(err)
	require.True(sql.ErrUncomparableValues.Is(err))
}

func TestRowComparatorSort(t *testing.T) {
	require := require.New(t)

	sch := sql.Schema{{Name: "col1", CaseSensitive: true}, {Name: "col2"}}
	c := NewRowComparator(sch, SortFields{
		{Index: 2, Order: Ascending, NullOrdering: NullsFirst},
		{Index: 1, Order: Descending, NullOrdering: NullsLast},
	})

	rows := []sql.Row{
		sql.NewRow("c", nil),
		sql.NewRow("a", int32(3)),
		sql.NewRow("b", int32(3)),
		sql.NewRow("c", int32(1)),
		sql.NewRow(nil, int32(1)),
	}

	require.NoError(c.Sort(rows))
	require.Equal([]sql.Row{
		sql.NewRow("c", nil),
		sql.NewRow("c", int32(1)),
		sql.NewRow(nil, int32(1)),
		sql.NewRow("b", int32(3)),
		sql.NewRow("a", int32(3)),
	}, rows)

	bad := []sql.Row{sql.NewRow("a", "x"), sql.NewRow("a", int64(1))}
	err := c.Sort(bad)
	require.Error(err)
	require.True(ErrUnableSort.Is(err))
}
