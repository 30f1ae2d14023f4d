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

package sql

import (
	"io"
)

// Closer is a node that can be closed.
type Closer interface {
	Close(*Context) error
}

// RowCursor is a forward-only, single pass cursor over rows. Shard results
// handed to the merge engine implement it, and so does every merged result,
// so a caller cannot tell a merged cursor from a single shard.
type RowCursor interface {
	// Schema returns the column metadata of the rows this cursor produces.
	Schema() Schema
	// Next retrieves the next row. It will return io.EOF if it's the last row,
	// and keeps returning io.EOF on every following call.
	Next(ctx *Context) (Row, error)
	Closer
}

// CursorToRows drains a cursor into a slice of rows and closes it.
func CursorToRows(ctx *Context, c RowCursor) ([]Row, error) {
	var rows []Row
	for {
		row, err := c.Next(ctx)
		if err == io.EOF {
			break
		}

		if err != nil {
			c.Close(ctx)
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, c.Close(ctx)
}

// RowsToCursor creates a RowCursor that iterates over the given rows.
func RowsToCursor(sch Schema, rows ...Row) RowCursor {
	return &sliceCursor{sch: sch, rows: rows}
}

type sliceCursor struct {
	sch  Schema
	rows []Row
	idx  int
}

func (i *sliceCursor) Schema() Schema {
	return i.sch
}

func (i *sliceCursor) Next(*Context) (Row, error) {
	if i.idx >= len(i.rows) {
		return nil, io.EOF
	}

	r := i.rows[i.idx]
	i.idx++
	return r.Copy(), nil
}

func (i *sliceCursor) Close(*Context) error {
	i.rows = nil
	return nil
}
