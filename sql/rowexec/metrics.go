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
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"

	"github.com/dolthub/go-shard-merge/sql"
)

var (
	// MergeCounter describes a metric that accumulates the number of merges
	// per strategy. Labels: "strategy".
	MergeCounter metrics.Counter = discard.NewCounter()

	// MergedRowsCounter describes a metric that accumulates the number of
	// rows returned by merged cursors. Labels: "strategy".
	MergedRowsCounter metrics.Counter = discard.NewCounter()

	// MemoryGroupsHistogram describes the number of groups held in memory by
	// each in-memory group-by merge.
	MemoryGroupsHistogram metrics.Histogram = discard.NewHistogram()
)

type meteredCursor struct {
	sql.RowCursor
	rows metrics.Counter
}

func newMeteredCursor(c sql.RowCursor, s Strategy) sql.RowCursor {
	return &meteredCursor{
		RowCursor: c,
		rows:      MergedRowsCounter.With("strategy", s.String()),
	}
}

func (c *meteredCursor) Next(ctx *sql.Context) (sql.Row, error) {
	row, err := c.RowCursor.Next(ctx)
	if err != nil {
		return nil, err
	}

	c.rows.Add(1)
	return row, nil
}
