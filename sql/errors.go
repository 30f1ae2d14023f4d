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

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrSchemaMismatch is returned when the shard cursors taking part in a
	// merge disagree on their projected columns. It indicates a routing or
	// rewrite bug upstream and is never retried.
	ErrSchemaMismatch = errors.NewKind("shard %d schema mismatch: %s")

	// ErrCursorIO wraps an error returned by a shard cursor. The whole logical
	// query fails with it, no partial result is returned.
	ErrCursorIO = errors.NewKind("error reading from shard %d")

	// ErrAggregationType is returned when a value cannot be combined under the
	// aggregation declared for its column.
	ErrAggregationType = errors.NewKind("cannot aggregate value %v (%T) with %s in column %d")

	// ErrColumnNotFound is returned when an ORDER BY, GROUP BY or aggregation
	// item references a column label not present in the projection.
	ErrColumnNotFound = errors.NewKind("column %q could not be found in the projection")

	// ErrInvalidColumnIndex is returned when a column position is out of range.
	ErrInvalidColumnIndex = errors.NewKind("invalid column index %d, the projection has %d columns")

	// ErrInvalidAggregation is returned when an aggregation is malformed, such
	// as an AVG without its derived SUM and COUNT.
	ErrInvalidAggregation = errors.NewKind("invalid aggregation %s: %s")

	// ErrUnsupportedAggregation is returned for an unknown aggregation kind.
	ErrUnsupportedAggregation = errors.NewKind("unsupported aggregation: %s")

	// ErrNoCursors is returned when a merge is requested without any shard cursor.
	ErrNoCursors = errors.NewKind("no shard cursors to merge")

	// ErrInvalidPagination is returned for negative or inverted pagination bounds.
	ErrInvalidPagination = errors.NewKind("invalid pagination: %s")

	// ErrUnorderedInput is returned when ordering verification is enabled and
	// a shard produced rows out of the declared order.
	ErrUnorderedInput = errors.NewKind("shard %d is not ordered by the merge key: %s came after %s")

	// ErrUncomparableValues is returned when two values of unrelated types are compared.
	ErrUncomparableValues = errors.NewKind("cannot compare %v (%T) with %v (%T)")
)
