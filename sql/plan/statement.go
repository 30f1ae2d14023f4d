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
	"fmt"
	"strings"

	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/dialect"
)

// SelectStatement is the bound context of the logical SELECT whose shard
// results are merged. It is read-only for the life of the query.
type SelectStatement struct {
	OrderBy SortFields
	GroupBy SortFields
	// Aggregations lists the aggregated columns, with every AVG already
	// expanded into its hidden SUM and COUNT columns.
	Aggregations []*AggregationSpec
	// Distinct marks a SELECT DISTINCT projection.
	Distinct bool
	// Pagination is nil without LIMIT/OFFSET.
	Pagination *Pagination
}

// HasAggregations reports whether the projection has aggregated columns.
func (s *SelectStatement) HasAggregations() bool {
	return len(s.Aggregations) > 0
}

// EffectiveOrderBy returns the order the shard rows arrive in: the ORDER BY
// items, or the GROUP BY items when there is no ORDER BY, since a grouped
// shard query without ORDER BY is sent sorted by its GROUP BY items.
func (s *SelectStatement) EffectiveOrderBy() SortFields {
	if len(s.OrderBy) == 0 {
		return s.GroupBy
	}
	return s.OrderBy
}

// NeedsAggregationRewrite reports whether a shard result is not final even
// when a single shard takes part, as with an AVG derived from hidden columns
// or a DISTINCT aggregate.
func (s *SelectStatement) NeedsAggregationRewrite() bool {
	for _, a := range s.Aggregations {
		if a.NeedsRewrite() {
			return true
		}
	}
	return false
}

// Resolve returns a copy of the statement with every column reference looked
// up in the index map and null orderings made explicit for the dialect.
func (s *SelectStatement) Resolve(m sql.ColumnIndexMap, columns int, d dialect.Dialect) (*SelectStatement, error) {
	orderBy, err := s.OrderBy.Resolve(m, columns, d)
	if err != nil {
		return nil, err
	}

	groupBy, err := s.GroupBy.Resolve(m, columns, d)
	if err != nil {
		return nil, err
	}

	var aggregations []*AggregationSpec
	if len(s.Aggregations) > 0 {
		aggregations = make([]*AggregationSpec, len(s.Aggregations))
		for i, a := range s.Aggregations {
			r, err := a.Resolve(m, columns)
			if err != nil {
				return nil, err
			}
			aggregations[i] = r
		}
	}

	return &SelectStatement{
		OrderBy:      orderBy,
		GroupBy:      groupBy,
		Aggregations: aggregations,
		Distinct:     s.Distinct,
		Pagination:   s.Pagination,
	}, nil
}

func (s *SelectStatement) String() string {
	var parts []string
	if s.Distinct {
		parts = append(parts, "DISTINCT")
	}
	if len(s.Aggregations) > 0 {
		aggs := make([]string, len(s.Aggregations))
		for i, a := range s.Aggregations {
			aggs[i] = a.String()
		}
		parts = append(parts, strings.Join(aggs, ", "))
	}
	if len(s.GroupBy) > 0 {
		parts = append(parts, fmt.Sprintf("GROUP BY %s", s.GroupBy))
	}
	if len(s.OrderBy) > 0 {
		parts = append(parts, fmt.Sprintf("ORDER BY %s", s.OrderBy))
	}
	if s.Pagination != nil {
		parts = append(parts, s.Pagination.String())
	}
	return strings.Join(parts, " ")
}
