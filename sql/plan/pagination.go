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

	"github.com/dolthub/go-shard-merge/sql"
)

// Unbounded is the RowCount of a pagination without a row limit, and the
// end of a row number range without an upper bound.
const Unbounded int64 = -1

// Pagination is the logical page of the merged result: Offset rows are
// skipped and at most RowCount rows follow.
type Pagination struct {
	Offset   int64
	RowCount int64
}

// NewLimitPagination returns the page of a LIMIT rowCount OFFSET offset
// clause. A rowCount of Unbounded only skips the offset.
func NewLimitPagination(offset, rowCount int64) (*Pagination, error) {
	if offset < 0 {
		return nil, sql.ErrInvalidPagination.New(fmt.Sprintf("negative offset %d", offset))
	}

	if rowCount < 0 && rowCount != Unbounded {
		return nil, sql.ErrInvalidPagination.New(fmt.Sprintf("negative row count %d", rowCount))
	}

	return &Pagination{Offset: offset, RowCount: rowCount}, nil
}

// NewRowNumberPagination returns the page of a row number range such as
// ROWNUM > offset AND ROWNUM <= end. Row numbers start at 1. An open offset
// bound excludes the offset row itself; an end of Unbounded has no upper
// bound. A range that ends before it starts is an empty page.
func NewRowNumberPagination(offset int64, offsetBoundOpened bool, end int64, endInclusive bool) (*Pagination, error) {
	skip, err := rowNumberSkip(offset, offsetBoundOpened)
	if err != nil {
		return nil, err
	}

	if end == Unbounded {
		return &Pagination{Offset: skip, RowCount: Unbounded}, nil
	}

	if end < 0 {
		return nil, sql.ErrInvalidPagination.New(fmt.Sprintf("negative row number %d", end))
	}

	last := end
	if !endInclusive {
		last--
	}

	if last < skip {
		return &Pagination{Offset: skip, RowCount: 0}, nil
	}

	return &Pagination{Offset: skip, RowCount: last - skip}, nil
}

// NewTopPagination returns the page of a TOP top clause combined with a row
// number lower bound, as in SELECT TOP 10 ... WHERE ROW_NUMBER > 5. A top
// below the lower bound is an empty page.
func NewTopPagination(top, offset int64, offsetBoundOpened bool) (*Pagination, error) {
	if top < 0 {
		return nil, sql.ErrInvalidPagination.New(fmt.Sprintf("negative top %d", top))
	}

	skip, err := rowNumberSkip(offset, offsetBoundOpened)
	if err != nil {
		return nil, err
	}

	if top < skip {
		return &Pagination{Offset: skip, RowCount: 0}, nil
	}

	return &Pagination{Offset: skip, RowCount: top - skip}, nil
}

func rowNumberSkip(offset int64, opened bool) (int64, error) {
	if offset < 0 {
		return 0, sql.ErrInvalidPagination.New(fmt.Sprintf("negative row number %d", offset))
	}

	if opened {
		return offset, nil
	}

	if offset == 0 {
		return 0, nil
	}
	return offset - 1, nil
}

// IsUnbounded reports whether the page has no row limit.
func (p *Pagination) IsUnbounded() bool {
	return p.RowCount < 0
}

func (p *Pagination) String() string {
	if p.IsUnbounded() {
		return fmt.Sprintf("OFFSET %d", p.Offset)
	}
	return fmt.Sprintf("LIMIT %d OFFSET %d", p.RowCount, p.Offset)
}
