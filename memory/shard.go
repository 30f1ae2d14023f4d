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

// Package memory provides shard results held in memory. They stand in for
// the cursors of physical shards when embedding or testing the merge engine.
package memory

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dolthub/go-shard-merge/sql"
)

// Shard is the result of a query on one physical shard, held in memory.
type Shard struct {
	name   string
	schema sql.Schema
	rows   []sql.Row

	mu      sync.Mutex
	cursors []*Cursor
}

// NewShard creates an empty shard result with the given schema.
func NewShard(name string, schema sql.Schema) *Shard {
	return &Shard{name: name, schema: schema}
}

// NewShardWithRows creates a shard result holding the given rows.
func NewShardWithRows(name string, schema sql.Schema, rows ...sql.Row) (*Shard, error) {
	s := NewShard(name, schema)
	if err := s.Insert(rows...); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the name of the shard.
func (s *Shard) Name() string {
	return s.name
}

// Schema returns the schema of the shard result.
func (s *Shard) Schema() sql.Schema {
	return s.schema
}

// Insert appends rows to the shard result.
func (s *Shard) Insert(rows ...sql.Row) error {
	for _, row := range rows {
		if len(row) != len(s.schema) {
			return fmt.Errorf("insert into %s expected %d values, got %d", s.name, len(s.schema), len(row))
		}
		s.rows = append(s.rows, row.Copy())
	}
	return nil
}

// Len returns the number of rows of the shard result.
func (s *Shard) Len() int {
	return len(s.rows)
}

// Cursor opens a new cursor over the rows of the shard.
func (s *Shard) Cursor() *Cursor {
	c := &Cursor{shard: s, failAt: -1}
	s.mu.Lock()
	s.cursors = append(s.cursors, c)
	s.mu.Unlock()
	return c
}

// OpenCursors returns the number of cursors of the shard not closed yet.
func (s *Shard) OpenCursors() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var open int
	for _, c := range s.cursors {
		if !c.IsClosed() {
			open++
		}
	}
	return open
}

func (s *Shard) String() string {
	cols := make([]string, len(s.schema))
	for i, c := range s.schema {
		cols[i] = c.Name
	}
	return fmt.Sprintf("Shard(%s)[%s] %d rows", s.name, strings.Join(cols, ", "), len(s.rows))
}

// Cursor is a forward-only cursor over a Shard. It counts the rows read from
// it and can be made to fail, the way a shard connection drops.
type Cursor struct {
	shard *Shard
	idx   int

	mu       sync.Mutex
	reads    int
	closed   bool
	failAt   int
	failErr  error
	closeErr error
}

var _ sql.RowCursor = (*Cursor)(nil)

// FailAfter makes the cursor return err once n rows have been read.
func (c *Cursor) FailAfter(n int, err error) *Cursor {
	c.failAt = n
	c.failErr = err
	return c
}

// FailOnClose makes Close return err.
func (c *Cursor) FailOnClose(err error) *Cursor {
	c.closeErr = err
	return c
}

// Schema implements the sql.RowCursor interface.
func (c *Cursor) Schema() sql.Schema {
	return c.shard.schema
}

// Next implements the sql.RowCursor interface.
func (c *Cursor) Next(*sql.Context) (sql.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, io.EOF
	}

	if c.failAt >= 0 && c.reads >= c.failAt {
		return nil, c.failErr
	}

	if c.idx >= len(c.shard.rows) {
		return nil, io.EOF
	}

	row := c.shard.rows[c.idx].Copy()
	c.idx++
	c.reads++
	return row, nil
}

// Reads returns the number of rows read from the cursor.
func (c *Cursor) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// IsClosed returns whether the cursor was closed.
func (c *Cursor) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close implements the sql.RowCursor interface.
func (c *Cursor) Close(*sql.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return c.closeErr
}

// Cursors opens one cursor over every shard.
func Cursors(shards ...*Shard) []sql.RowCursor {
	cursors := make([]sql.RowCursor, len(shards))
	for i, s := range shards {
		cursors[i] = s.Cursor()
	}
	return cursors
}
