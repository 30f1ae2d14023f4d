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

package shardmerge

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/plan"
	"github.com/dolthub/go-shard-merge/sql/rowexec"
)

// QueryIdLogField is the log field holding the id Merge gives every query,
// so the entries of one merge can be told apart.
const QueryIdLogField = "query_id"

var (
	// QueryCounter describes a metric that accumulates the number of merged
	// queries. Labels: "dialect".
	QueryCounter metrics.Counter = discard.NewCounter()

	// QueryErrorCounter describes a metric that accumulates the number of
	// queries whose merge could not be built. Labels: "dialect".
	QueryErrorCounter metrics.Counter = discard.NewCounter()
)

// Engine merges the results a logical query returned on every shard it was
// routed to.
type Engine struct {
	Config  *Config
	Builder *rowexec.Builder
}

// New creates a new Engine with the given configuration.
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d, err := cfg.ParsedDialect()
	if err != nil {
		return nil, err
	}

	b := rowexec.NewBuilder(d)
	b.VerifyOrdering = cfg.VerifyOrdering
	b.MemoryGroupWarnThreshold = cfg.MemoryGroupWarnThreshold

	return &Engine{Config: cfg, Builder: b}, nil
}

// NewDefault creates a new Engine for MySQL shards with the default
// configuration.
func NewDefault() *Engine {
	e, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return e
}

// Merge returns a single cursor over the results of the given shard cursors
// for the statement. The returned cursor owns the shard cursors.
func (e *Engine) Merge(
	ctx *sql.Context,
	stmt *plan.SelectStatement,
	cursors ...sql.RowCursor,
) (sql.RowCursor, error) {
	dialect := e.Builder.Dialect.String()
	ctx = ctx.WithLogFields(logrus.Fields{
		QueryIdLogField: uuid.NewV4().String(),
		"shards":        len(cursors),
	})

	QueryCounter.With("dialect", dialect).Add(1)

	c, err := e.Builder.Build(ctx, stmt, cursors...)
	if err != nil {
		QueryErrorCounter.With("dialect", dialect).Add(1)
		ctx.GetLogger().Errorf("unable to merge shard results: %s", err)
		return nil, err
	}

	return c, nil
}
