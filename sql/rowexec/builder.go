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
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/aggregation"
	"github.com/dolthub/go-shard-merge/sql/dialect"
	"github.com/dolthub/go-shard-merge/sql/plan"
)

// Strategy is the way the shard results of a query are merged.
type Strategy byte

const (
	// Passthrough returns the rows of the only shard as they are.
	Passthrough Strategy = iota
	// IteratorStream returns the rows of every shard one shard after the other.
	IteratorStream
	// OrderByStream is a k-way merge of shards sorted by the ORDER BY.
	OrderByStream
	// GroupByStream groups an OrderByStream whose ORDER BY starts with the
	// GROUP BY items.
	GroupByStream
	// GroupByMemory groups every row of every shard in memory.
	GroupByMemory
)

func (s Strategy) String() string {
	switch s {
	case Passthrough:
		return "Passthrough"
	case IteratorStream:
		return "IteratorStream"
	case OrderByStream:
		return "OrderByStream"
	case GroupByStream:
		return "GroupByStream"
	case GroupByMemory:
		return "GroupByMemory"
	default:
		return "invalid Strategy"
	}
}

// SelectStrategy decides how the shard results of a resolved statement are
// merged. A SELECT DISTINCT must have gone through RewriteDistinct first.
// The GROUP BY items are matched against the effective ORDER BY, so a GROUP BY
// without ORDER BY streams.
func SelectStrategy(stmt *plan.SelectStatement, shardCount int) Strategy {
	if shardCount == 1 && !stmt.NeedsAggregationRewrite() {
		return Passthrough
	}

	if stmt.HasAggregations() || len(stmt.GroupBy) > 0 {
		if len(stmt.GroupBy) == 0 {
			return GroupByMemory
		}

		if stmt.EffectiveOrderBy().HasPrefix(stmt.GroupBy) {
			return GroupByStream
		}
		return GroupByMemory
	}

	if len(stmt.OrderBy) > 0 {
		return OrderByStream
	}

	return IteratorStream
}

// Plan is the resolved merge of a statement over a set of shards.
type Plan struct {
	Strategy  Strategy
	Statement *plan.SelectStatement
	Schema    sql.Schema
	// Paginate is set when the page has to be cut from the merged rows.
	Paginate bool
}

// Builder builds the merged cursor of the shard results of a query.
type Builder struct {
	// Dialect of the shards.
	Dialect dialect.Dialect
	// VerifyOrdering makes the streaming merges check every shard returns
	// its rows sorted, failing with sql.ErrUnorderedInput otherwise.
	VerifyOrdering bool
	// MemoryGroupWarnThreshold is the number of groups above which an
	// in-memory group by logs a warning. Zero disables the warning.
	MemoryGroupWarnThreshold int
	// PaginationPushdown overrides Dialect.PaginationHandledByPushdown.
	PaginationPushdown func(shardCount int) bool
}

// NewBuilder returns a builder for shards of the given dialect.
func NewBuilder(d dialect.Dialect) *Builder {
	return &Builder{Dialect: d}
}

func (b *Builder) paginationHandledByPushdown(shardCount int) bool {
	if b.PaginationPushdown != nil {
		return b.PaginationPushdown(shardCount)
	}
	return b.Dialect.PaginationHandledByPushdown(shardCount)
}

// Plan resolves the statement against the shard schemas and selects the
// merge strategy.
func (b *Builder) Plan(stmt *plan.SelectStatement, schemas ...sql.Schema) (*Plan, error) {
	m, err := sql.ResolveColumnIndexes(schemas...)
	if err != nil {
		return nil, err
	}

	sch := schemas[0]
	resolved, err := stmt.Resolve(m, len(sch), b.Dialect)
	if err != nil {
		return nil, err
	}

	resolved, err = RewriteDistinct(resolved, sch, b.Dialect)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Strategy:  SelectStrategy(resolved, len(schemas)),
		Statement: resolved,
		Schema:    sch,
		Paginate:  resolved.Pagination != nil && !b.paginationHandledByPushdown(len(schemas)),
	}, nil
}

// Build returns the merged cursor of the given shard cursors. The merged
// cursor owns them: closing it closes every shard cursor. If Build fails,
// the shard cursors are closed before returning.
func (b *Builder) Build(ctx *sql.Context, stmt *plan.SelectStatement, cursors ...sql.RowCursor) (sql.RowCursor, error) {
	if len(cursors) == 0 {
		return nil, sql.ErrNoCursors.New()
	}

	schemas := make([]sql.Schema, len(cursors))
	for i, c := range cursors {
		schemas[i] = c.Schema()
	}

	p, err := b.Plan(stmt, schemas...)
	if err != nil {
		closeInputs(ctx, cursors)
		return nil, err
	}

	span, ctx := ctx.Span("rowexec." + p.Strategy.String())

	iter, err := b.build(ctx, p, newShardCursors(cursors))
	if err != nil {
		span.Finish()
		return nil, err
	}

	fields := logrus.Fields{
		"strategy":  p.Strategy.String(),
		"shards":    len(cursors),
		"paginated": p.Paginate,
	}
	if q := ctx.Query(); q != "" {
		fields["query"] = q
	}
	ctx.GetLogger().WithFields(fields).Debugf("merging shard results: %s", p.Statement)
	MergeCounter.With("strategy", p.Strategy.String()).Add(1)

	return sql.NewSpanCursor(span, newMeteredCursor(iter, p.Strategy)), nil
}

func (b *Builder) build(ctx *sql.Context, p *Plan, shards []*shardCursor) (sql.RowCursor, error) {
	stmt := p.Statement

	var factory *aggregation.Factory
	if p.Strategy == GroupByStream || p.Strategy == GroupByMemory {
		var err error
		factory, err = aggregation.NewFactory(stmt.Aggregations, p.Schema)
		if err != nil {
			closeShards(ctx, shards)
			return nil, err
		}
	}

	var iter sql.RowCursor
	switch p.Strategy {
	case Passthrough:
		iter = shards[0]
	case IteratorStream:
		iter = newConcatIter(p.Schema, shards)
	case OrderByStream, GroupByStream:
		cmp := plan.NewRowComparator(p.Schema, stmt.EffectiveOrderBy())
		if b.VerifyOrdering {
			verifyOrdering(shards, cmp)
		}

		orderBy := newOrderByStreamIter(p.Schema, shards, cmp)
		if p.Strategy == OrderByStream {
			iter = orderBy
		} else {
			iter = newGroupByStreamIter(orderBy, cmp.Prefix(len(stmt.GroupBy)), factory)
		}
	case GroupByMemory:
		iter = newGroupByMemoryIter(p.Schema, shards, factory, groupByMemoryConfig{
			groupBy: stmt.GroupBy,
			sortBy:  stmt.OrderBy,
			warnAt:  b.MemoryGroupWarnThreshold,
		})
	}

	if p.Paginate {
		paginated, err := newPaginationIter(ctx, iter, stmt.Pagination)
		if err != nil {
			iter.Close(ctx)
			return nil, err
		}
		iter = paginated
	}

	return iter, nil
}

func closeInputs(ctx *sql.Context, cursors []sql.RowCursor) {
	if err := closeCursors(ctx, cursors); err != nil {
		ctx.GetLogger().Warnf("unable to close shard cursors: %s", err)
	}
}
