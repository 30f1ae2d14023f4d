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

package aggregation

import (
	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/plan"
	"github.com/dolthub/go-shard-merge/sql/types"
)

// AvgScale is the number of decimal places of a merged AVG, rounded half up.
const AvgScale = 4

// avgBuffer derives an average from the SUM and COUNT buffers of its group.
// It holds no state of its own: the per-shard averages are never combined.
type avgBuffer struct {
	sum   Buffer
	count Buffer
}

// Update implements the Buffer interface.
func (a *avgBuffer) Update(sql.Row) error {
	return nil
}

// Merge implements the Buffer interface.
func (a *avgBuffer) Merge(other Buffer) error {
	if _, ok := other.(*avgBuffer); !ok {
		return mergeTypeError(plan.Avg, other)
	}
	return nil
}

// Eval implements the Buffer interface.
func (a *avgBuffer) Eval() (interface{}, error) {
	count, err := a.count.Eval()
	if err != nil {
		return nil, err
	}

	sum, err := a.sum.Eval()
	if err != nil {
		return nil, err
	}

	if count == nil || sum == nil {
		return nil, nil
	}

	c, err := types.ToDecimal(count)
	if err != nil {
		return nil, err
	}

	if c.IsZero() {
		return nil, nil
	}

	s, err := types.ToDecimal(sum)
	if err != nil {
		return nil, err
	}

	return s.DivRound(c, AvgScale), nil
}

var _ Buffer = (*avgBuffer)(nil)
