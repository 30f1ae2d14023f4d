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
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"
)

// NewSpanCursor creates a RowCursor that finishes the given span once the
// wrapped cursor is exhausted, fails, or is closed.
func NewSpanCursor(span opentracing.Span, c RowCursor) RowCursor {
	// untraced merges skip the timings
	if (span.Tracer() == opentracing.NoopTracer{}) {
		return c
	}

	return &spanCursor{
		span:   span,
		cursor: c,
	}
}

type spanCursor struct {
	span   opentracing.Span
	cursor RowCursor
	count  int
	max    time.Duration
	min    time.Duration
	total  time.Duration
	done   bool
}

func (i *spanCursor) updateTimings(start time.Time) {
	elapsed := time.Since(start)
	if i.max < elapsed {
		i.max = elapsed
	}

	if i.min > elapsed || i.min == 0 {
		i.min = elapsed
	}

	i.total += elapsed
}

func (i *spanCursor) Schema() Schema {
	return i.cursor.Schema()
}

func (i *spanCursor) Next(ctx *Context) (Row, error) {
	start := time.Now()

	row, err := i.cursor.Next(ctx)
	if err == io.EOF {
		if !i.done {
			i.finish()
		}
		return nil, err
	}

	if err != nil {
		if !i.done {
			i.finishWithError(err)
		}
		return nil, err
	}

	i.count++
	i.updateTimings(start)
	return row, nil
}

func (i *spanCursor) finish() {
	var avg time.Duration
	if i.count > 0 {
		avg = i.total / time.Duration(i.count)
	}

	i.span.FinishWithOptions(opentracing.FinishOptions{
		LogRecords: []opentracing.LogRecord{
			{
				Timestamp: time.Now(),
				Fields: []log.Field{
					log.Int("rows", i.count),
					log.String("total_time", i.total.String()),
					log.String("max_time", i.max.String()),
					log.String("min_time", i.min.String()),
					log.String("avg_time", avg.String()),
				},
			},
		},
	})
	i.done = true
}

func (i *spanCursor) finishWithError(err error) {
	i.span.FinishWithOptions(opentracing.FinishOptions{
		LogRecords: []opentracing.LogRecord{
			{
				Timestamp: time.Now(),
				Fields:    []log.Field{log.String("error", err.Error())},
			},
		},
	})
	i.done = true
}

func (i *spanCursor) Close(ctx *Context) error {
	if !i.done {
		i.finish()
	}
	return i.cursor.Close(ctx)
}
