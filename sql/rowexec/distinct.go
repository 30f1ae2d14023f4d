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
	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/dialect"
	"github.com/dolthub/go-shard-merge/sql/plan"
)

// RewriteDistinct turns a resolved SELECT DISTINCT without GROUP BY and
// without aggregations into a GROUP BY over every projected column, in
// projection order and ascending. The statement is returned unchanged when
// it does not qualify. Hidden columns are not part of the key.
func RewriteDistinct(stmt *plan.SelectStatement, sch sql.Schema, d dialect.Dialect) (*plan.SelectStatement, error) {
	if !stmt.Distinct || len(stmt.GroupBy) > 0 || stmt.HasAggregations() {
		return stmt, nil
	}

	m := sql.NewColumnIndexMap(sch)
	var groupBy plan.SortFields
	for i, col := range sch {
		if col.Hidden {
			continue
		}
		groupBy = append(groupBy, plan.NewSortField(i+1))
	}

	resolved, err := groupBy.Resolve(m, len(sch), d)
	if err != nil {
		return nil, err
	}

	rewritten := *stmt
	rewritten.GroupBy = resolved
	return &rewritten, nil
}
