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
	"github.com/dolthub/go-shard-merge/sql/plan"
)

// paginationIter cuts the logical page out of a merged cursor. The offset
// rows are skipped when it is created, and once the page is complete it
// stops without reading another row from its child.
type paginationIter struct {
	child     sql.RowCursor
	remaining int64
	done      bool
}

func newPaginationIter(ctx *sql.Context, child sql.RowCursor, p *plan.Pagination) (*paginationIter, error) {
	if p.Offset < 0 || (p.RowCount < 0 && p.RowCount != plan.Unbounded) {
		return nil, sql.ErrInvalidPagination.New(p.String())
	}

	i := &paginationIter{child: child, remaining: p.RowCount}
	if p.RowCount == 0 {
		i.done = true
		return i, nil
	}

	for skipped := int64(0); skipped < p.Offset; skipped++ {
		_, err := child.Next(ctx)
		if err == io.EOF {
			i.done = true
			break
		}

		if err != nil {
			return nil, err
		}
	}

	return i, nil
}

func (i *paginationIter) Schema() sql.Schema {
	return i.child.Schema()
}

func (i *paginationIter) Next(ctx *sql.Context) (sql.Row, error) {
	if i.done || i.remaining == 0 {
		i.done = true
		return nil, io.EOF
	}

	row, err := i.child.Next(ctx)
	if err == io.EOF {
		i.done = true
		return nil, io.EOF
	}

	if err != nil {
		return nil, err
	}

	if i.remaining > 0 {
		i.remaining--
	}
	return row, nil
}

func (i *paginationIter) Close(ctx *sql.Context) error {
	i.done = true
	return i.child.Close(ctx)
}
