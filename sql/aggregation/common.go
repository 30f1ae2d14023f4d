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

// Package aggregation combines the partial aggregates returned by every shard
// into the final value of each aggregated column.
package aggregation

import (
	"fmt"

	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/plan"
)

// Buffer is the running state of one aggregated column for one group.
// Folding rows in any order, or merging buffers in any order, yields the
// same final value.
type Buffer interface {
	// Update folds the value of the row into the buffer.
	Update(row sql.Row) error
	// Merge folds another buffer of the same aggregation into this one.
	Merge(other Buffer) error
	// Eval returns the final value.
	Eval() (interface{}, error)
}

type slot struct {
	spec *plan.AggregationSpec
	pos  int
}

// Factory creates the buffers of a set of resolved aggregations. It is built
// once per query and asked for new buffers once per group.
type Factory struct {
	slots []slot
	// avgs maps the slot of every AVG to the slots of its SUM and COUNT.
	avgs map[int][2]int
	sch  sql.Schema
}

// NewFactory checks the aggregations against the schema and returns a
// factory of their buffers. The derived SUM and COUNT of every AVG get their
// own slots.
func NewFactory(specs []*plan.AggregationSpec, sch sql.Schema) (*Factory, error) {
	f := &Factory{avgs: make(map[int][2]int), sch: sch}
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}

		if spec.Kind != plan.Avg {
			if err := f.add(spec); err != nil {
				return nil, err
			}
			continue
		}

		sumSlot, countSlot := len(f.slots), len(f.slots)+1
		if err := f.add(spec.SumSpec()); err != nil {
			return nil, err
		}
		if err := f.add(spec.CountSpec()); err != nil {
			return nil, err
		}

		avgSlot := len(f.slots)
		if err := f.add(spec); err != nil {
			return nil, err
		}
		f.avgs[avgSlot] = [2]int{sumSlot, countSlot}
	}
	return f, nil
}

func (f *Factory) add(spec *plan.AggregationSpec) error {
	pos := spec.Index - 1
	if pos < 0 || pos >= len(f.sch) {
		return sql.ErrInvalidColumnIndex.New(spec.Index, len(f.sch))
	}

	switch spec.Kind {
	case plan.Sum, plan.Avg, plan.BitXor:
		// partial sums are always numeric, raw DISTINCT values may be text
		if !spec.Distinct && f.sch[pos].IsTextual() {
			return sql.ErrInvalidAggregation.New(spec, fmt.Sprintf("column %d is of textual type %s", spec.Index, f.sch[pos].Type))
		}
	}

	if spec.Kind == plan.BitXor && spec.Distinct {
		return sql.ErrInvalidAggregation.New(spec, "DISTINCT is not supported")
	}

	f.slots = append(f.slots, slot{spec: spec, pos: pos})
	return nil
}

// Len returns the number of buffers of every group, derived ones included.
func (f *Factory) Len() int {
	return len(f.slots)
}

// NewBuffers returns fresh buffers for a new group.
func (f *Factory) NewBuffers() *Buffers {
	b := &Buffers{slots: f.slots, buffers: make([]Buffer, len(f.slots))}
	for i, s := range f.slots {
		if s.spec.Kind == plan.Avg {
			continue
		}
		b.buffers[i] = newBuffer(s.spec, s.pos, f.sch[s.pos].IsCaseSensitive())
	}

	for i, derived := range f.avgs {
		b.buffers[i] = &avgBuffer{
			sum:   b.buffers[derived[0]],
			count: b.buffers[derived[1]],
		}
	}
	return b
}

func newBuffer(spec *plan.AggregationSpec, pos int, caseSensitive bool) Buffer {
	switch spec.Kind {
	case plan.Count:
		if spec.Distinct {
			return newCountDistinctBuffer(pos, caseSensitive)
		}
		return &countBuffer{pos: pos}
	case plan.Sum:
		if spec.Distinct {
			return newSumDistinctBuffer(pos, caseSensitive)
		}
		return &sumBuffer{pos: pos, isnil: true}
	case plan.Max:
		return &extremumBuffer{pos: pos, kind: plan.Max, caseSensitive: caseSensitive}
	case plan.Min:
		return &extremumBuffer{pos: pos, kind: plan.Min, caseSensitive: caseSensitive}
	case plan.BitXor:
		return &bitXorBuffer{pos: pos}
	default:
		panic(fmt.Sprintf("unexpected aggregation kind %s", spec.Kind))
	}
}

// Buffers are the aggregation buffers of one group.
type Buffers struct {
	slots     []slot
	buffers   []Buffer
	finalized bool
}

// Update folds a shard row into every buffer. The AVG buffers are skipped,
// their SUM and COUNT are folded instead.
func (b *Buffers) Update(row sql.Row) error {
	for _, buf := range b.buffers {
		if err := buf.Update(row); err != nil {
			return err
		}
	}
	return nil
}

// Merge folds the buffers of the same group built from other rows.
func (b *Buffers) Merge(other *Buffers) error {
	if len(b.buffers) != len(other.buffers) {
		return fmt.Errorf("cannot merge %d aggregation buffers into %d", len(other.buffers), len(b.buffers))
	}

	for i, buf := range b.buffers {
		if err := buf.Merge(other.buffers[i]); err != nil {
			return err
		}
	}
	return nil
}

// Finalize writes the final value of every aggregation, derived ones
// included, into its column of row. Buffers are finalized exactly once; any
// later call fails.
func (b *Buffers) Finalize(row sql.Row) error {
	if b.finalized {
		return fmt.Errorf("aggregation buffers already finalized")
	}
	b.finalized = true

	for i, s := range b.slots {
		v, err := b.buffers[i].Eval()
		if err != nil {
			return err
		}

		if s.pos >= len(row) {
			return sql.ErrInvalidColumnIndex.New(s.pos+1, len(row))
		}
		row[s.pos] = v
	}
	return nil
}

func mergeTypeError(kind plan.AggregationKind, other Buffer) error {
	return sql.ErrInvalidAggregation.New(kind, fmt.Sprintf("cannot merge a %T buffer", other))
}
