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

	"github.com/hashicorp/go-multierror"

	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/plan"
)

// shardCursor wraps the cursor of one shard. Read errors are wrapped with
// the shard id, and the cursor is closed as soon as it is exhausted.
type shardCursor struct {
	id       int
	cursor   sql.RowCursor
	verifier *orderVerifier

	done     bool
	closed   bool
	closeErr error
}

func newShardCursors(cursors []sql.RowCursor) []*shardCursor {
	shards := make([]*shardCursor, len(cursors))
	for i, c := range cursors {
		shards[i] = &shardCursor{id: i, cursor: c}
	}
	return shards
}

// verifyOrdering makes every shard check its rows arrive in the order of
// the given comparator.
func verifyOrdering(shards []*shardCursor, cmp *plan.RowComparator) {
	for _, s := range shards {
		s.verifier = &orderVerifier{shard: s.id, cmp: cmp}
	}
}

func (s *shardCursor) Schema() sql.Schema {
	return s.cursor.Schema()
}

func (s *shardCursor) Next(ctx *sql.Context) (sql.Row, error) {
	if s.done {
		return nil, io.EOF
	}

	row, err := s.cursor.Next(ctx)
	if err == io.EOF {
		s.done = true
		s.release(ctx)
		return nil, io.EOF
	}

	if err != nil {
		return nil, sql.ErrCursorIO.Wrap(err, s.id)
	}

	if s.verifier != nil {
		if err := s.verifier.check(row); err != nil {
			return nil, err
		}
	}

	return row, nil
}

func (s *shardCursor) release(ctx *sql.Context) {
	if s.closed {
		return
	}
	s.closed = true
	s.closeErr = s.cursor.Close(ctx)
	if s.closeErr != nil {
		ctx.GetLogger().WithField("shard", s.id).Warnf("unable to close exhausted shard cursor: %s", s.closeErr)
	}
}

func (s *shardCursor) Close(ctx *sql.Context) error {
	s.done = true
	if s.closed {
		err := s.closeErr
		s.closeErr = nil
		return err
	}
	s.closed = true
	return s.cursor.Close(ctx)
}

// closeShards closes every shard cursor, collecting all the errors.
func closeShards(ctx *sql.Context, shards []*shardCursor) error {
	var result error
	for _, s := range shards {
		if err := s.Close(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}

// closeCursors closes the given cursors, collecting all the errors.
func closeCursors(ctx *sql.Context, cursors []sql.RowCursor) error {
	var result error
	for _, c := range cursors {
		if err := c.Close(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}

// orderVerifier checks that consecutive rows of a shard never go backwards
// under the merge comparator.
type orderVerifier struct {
	shard int
	cmp   *plan.RowComparator
	prev  sql.Row
}

func (v *orderVerifier) check(row sql.Row) error {
	if v.prev != nil {
		cmp, err := v.cmp.Compare(v.prev, row)
		if err != nil {
			return err
		}

		if cmp > 0 {
			return sql.ErrUnorderedInput.New(v.shard, sql.FormatRow(row), sql.FormatRow(v.prev))
		}
	}
	v.prev = row
	return nil
}
