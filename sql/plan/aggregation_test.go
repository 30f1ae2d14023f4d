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

func TestAggregationSpecResolve(t *testing.T) {
	require := require.New(t)

	sch := sql.Schema{
		{Name: "region"},
		{Name: "avg_price"},
		{Name: "AVG_DERIVED_SUM_0", Hidden: true},
		{Name: "AVG_DERIVED_COUNT_0", Hidden: true},
	}
	m := sql.NewColumnIndexMap(sch)

	avg := &AggregationSpec{
		Kind: Avg,
		Name: "avg_price",
		Derived: []*AggregationSpec{
			{Kind: Sum, Name: "avg_derived_sum_0"},
			{Kind: Count, Name: "avg_derived_count_0"},
		},
	}

	r, err := avg.Resolve(m, len(sch))
	require.NoError(err)
	require.Equal(2, r.Index)
	require.Equal(3, r.SumSpec().Index)
	require.Equal(4, r.CountSpec().Index)
	require.True(r.NeedsRewrite())

	// the input is left untouched
	require.Equal(0, avg.Index)
	require.Equal(0, avg.Derived[0].Index)

	_, err = (&AggregationSpec{Kind: Sum, Name: "missing"}).Resolve(m, len(sch))
	require.Error(err)
	require.True(sql.ErrColumnNotFound.Is(err))

	_, err = NewAggregation(Max, 5).Resolve(m, len(sch))
	require.Error(err)
	require.True(sql.ErrInvalidColumnIndex.Is(err))
}

func TestAggregationSpecValidate(t *testing.T) {
	testCases := []struct {
		name string
		spec *AggregationSpec
		ok   bool
	}{
		{"count", NewAggregation(Count, 1), true},
		{"avg", NewAvg(1, 2, 3), true},
		{"distinct avg", NewDistinctAvg(1, 2, 3), true},
		{"unknown kind", &AggregationSpec{Kind: 42, Index: 1}, false},
		{"sum with derived", &AggregationSpec{Kind: Sum, Index: 1, Derived: []*AggregationSpec{NewAggregation(Count, 2)}}, false},
		{"avg without derived", NewAggregation(Avg, 1), false},
		{"avg with two sums", &AggregationSpec{Kind: Avg, Index: 1, Derived: []*AggregationSpec{NewAggregation(Sum, 2), NewAggregation(Sum, 3)}}, false},
		{"avg with max", &AggregationSpec{Kind: Avg, Index: 1, Derived: []*AggregationSpec{NewAggregation(Sum, 2), NewAggregation(Max, 3)}}, false},
		{"avg with distinct mismatch", &AggregationSpec{Kind: Avg, Index: 1, Distinct: true, Derived: []*AggregationSpec{NewDistinctAggregation(Sum, 2), NewAggregation(Count, 3)}}, false},
		{
			"avg over different arguments",
			&AggregationSpec{Kind: Avg, Index: 1, Argument: "price", Derived: []*AggregationSpec{
				{Kind: Sum, Index: 2, Argument: "price"},
				{Kind: Count, Index: 3, Argument: "qty"},
			}},
			false,
		},
		{"avg sharing its column", NewAvg(1, 1, 2), false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			err := tt.spec.Validate()
			if tt.ok {
				require.NoError(err)
				return
			}
			require.Error(err)
			require.True(sql.ErrInvalidAggregation.Is(err) || sql.ErrUnsupportedAggregation.Is(err), err.Error())
		})
	}
}

func TestParseAggregationKind(t *testing.T) {
	require := require.New(t)

	k, err := ParseAggregationKind("bit_xor")
	require.NoError(err)
	require.Equal(BitXor, k)
	require.Equal("BIT_XOR", k.String())

	_, err = ParseAggregationKind("GROUP_CONCAT")
	require.Error(err)
	require.True(sql.ErrUnsupportedAggregation.Is(err))

	require.Equal("COUNT(DISTINCT #2)", NewDistinctAggregation(Count, 2).String())
	require.Equal("SUM(price)", (&AggregationSpec{Kind: Sum, Argument: "price"}).String())
}
