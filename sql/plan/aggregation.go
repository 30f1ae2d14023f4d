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
	"strings"

	"github.com/dolthub/go-shard-merge/sql"
)

// AggregationKind is the aggregate function of a projected column.
type AggregationKind byte

const (
	// Count is COUNT(x) or COUNT(*).
	Count AggregationKind = iota + 1
	// Sum is SUM(x).
	Sum
	// Avg is AVG(x), derived from a hidden SUM and COUNT.
	Avg
	// Max is MAX(x).
	Max
	// Min is MIN(x).
	Min
	// BitXor is BIT_XOR(x).
	BitXor
)

var aggregationNames = map[AggregationKind]string{
	Count:  "COUNT",
	Sum:    "SUM",
	Avg:    "AVG",
	Max:    "MAX",
	Min:    "MIN",
	BitXor: "BIT_XOR",
}

func (k AggregationKind) String() string {
	if n, ok := aggregationNames[k]; ok {
		return n
	}
	return "invalid AggregationKind"
}

// ParseAggregationKind returns the kind with the given case-insensitive name.
func ParseAggregationKind(name string) (AggregationKind, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for k, n := range aggregationNames {
		if n == name {
			return k, nil
		}
	}
	return 0, sql.ErrUnsupportedAggregation.New(name)
}

// AggregationSpec describes an aggregated column of the projection. Each
// shard returns its partial aggregate in column Index; the merge combines
// the partials of every shard into the final value.
type AggregationSpec struct {
	Kind AggregationKind
	// Index is the 1-based position of the column holding the partial value.
	// When zero, the column is looked up by Name.
	Index int
	// Name is the column label.
	Name string
	// Argument is the text of the aggregated expression, such as "price".
	Argument string
	// Distinct marks COUNT(DISTINCT x) and the like. Shards return the raw
	// values of x instead of partial aggregates.
	Distinct bool
	// Derived holds the hidden SUM and COUNT columns of an AVG.
	Derived []*AggregationSpec
}

// NewAggregation returns an aggregation of the given kind over the partials
// at a 1-based column position.
func NewAggregation(kind AggregationKind, index int) *AggregationSpec {
	return &AggregationSpec{Kind: kind, Index: index}
}

// NewDistinctAggregation returns a DISTINCT aggregation of the given kind
// over the raw values at a 1-based column position.
func NewDistinctAggregation(kind AggregationKind, index int) *AggregationSpec {
	return &AggregationSpec{Kind: kind, Index: index, Distinct: true}
}

// NewAvg returns an AVG written to column index and derived from the hidden
// SUM and COUNT columns at sumIndex and countIndex.
func NewAvg(index, sumIndex, countIndex int) *AggregationSpec {
	return &AggregationSpec{
		Kind:  Avg,
		Index: index,
		Derived: []*AggregationSpec{
			NewAggregation(Sum, sumIndex),
			NewAggregation(Count, countIndex),
		},
	}
}

// NewDistinctAvg is the DISTINCT form of NewAvg.
func NewDistinctAvg(index, sumIndex, countIndex int) *AggregationSpec {
	return &AggregationSpec{
		Kind:     Avg,
		Index:    index,
		Distinct: true,
		Derived: []*AggregationSpec{
			NewDistinctAggregation(Sum, sumIndex),
			NewDistinctAggregation(Count, countIndex),
		},
	}
}

func (a *AggregationSpec) String() string {
	var col string
	switch {
	case a.Argument != "":
		col = a.Argument
	case a.Name != "":
		col = a.Name
	default:
		col = fmt.Sprintf("#%d", a.Index)
	}

	if a.Distinct {
		return fmt.Sprintf("%s(DISTINCT %s)", a.Kind, col)
	}
	return fmt.Sprintf("%s(%s)", a.Kind, col)
}

// Resolve returns a copy of the spec, and of its derived specs, with the
// column positions looked up in the index map. The result is validated.
func (a *AggregationSpec) Resolve(m sql.ColumnIndexMap, columns int) (*AggregationSpec, error) {
	r := *a
	if r.Index == 0 {
		idx, err := m.IndexOf(r.Name)
		if err != nil {
			return nil, err
		}
		r.Index = idx
	}

	if r.Index < 1 || r.Index > columns {
		return nil, sql.ErrInvalidColumnIndex.New(r.Index, columns)
	}

	if len(a.Derived) > 0 {
		r.Derived = make([]*AggregationSpec, len(a.Derived))
		for i, d := range a.Derived {
			rd, err := d.Resolve(m, columns)
			if err != nil {
				return nil, err
			}
			r.Derived[i] = rd
		}
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks the shape of the spec. An AVG must derive from exactly one
// SUM and one COUNT over the same argument and with the same DISTINCT flag;
// every other kind must not derive from anything.
func (a *AggregationSpec) Validate() error {
	if _, ok := aggregationNames[a.Kind]; !ok {
		return sql.ErrUnsupportedAggregation.New(a.Kind)
	}

	if a.Kind != Avg {
		if len(a.Derived) > 0 {
			return sql.ErrInvalidAggregation.New(a, "only AVG can derive from other aggregations")
		}
		return nil
	}

	if len(a.Derived) != 2 {
		return sql.ErrInvalidAggregation.New(a, fmt.Sprintf("expected a SUM and a COUNT to derive from, got %d aggregations", len(a.Derived)))
	}

	var sum, count int
	for _, d := range a.Derived {
		switch d.Kind {
		case Sum:
			sum++
		case Count:
			count++
		default:
			return sql.ErrInvalidAggregation.New(a, fmt.Sprintf("cannot derive from %s", d.Kind))
		}

		if d.Distinct != a.Distinct {
			return sql.ErrInvalidAggregation.New(a, fmt.Sprintf("DISTINCT does not match in %s", d))
		}

		if d.Argument != "" && a.Argument != "" && !strings.EqualFold(d.Argument, a.Argument) {
			return sql.ErrInvalidAggregation.New(a, fmt.Sprintf("%s aggregates a different argument", d))
		}

		if d.Index != 0 && d.Index == a.Index {
			return sql.ErrInvalidAggregation.New(a, fmt.Sprintf("%s shares the column of the AVG", d))
		}
	}

	if sum != 1 || count != 1 {
		return sql.ErrInvalidAggregation.New(a, "expected exactly one SUM and one COUNT to derive from")
	}
	return nil
}

// SumSpec returns the derived SUM of an AVG.
func (a *AggregationSpec) SumSpec() *AggregationSpec {
	return a.derivedOf(Sum)
}

// CountSpec returns the derived COUNT of an AVG.
func (a *AggregationSpec) CountSpec() *AggregationSpec {
	return a.derivedOf(Count)
}

func (a *AggregationSpec) derivedOf(kind AggregationKind) *AggregationSpec {
	for _, d := range a.Derived {
		if d.Kind == kind {
			return d
		}
	}
	return nil
}

// NeedsRewrite reports whether the value a shard returns for this
// aggregation is not already its final value on a single shard.
func (a *AggregationSpec) NeedsRewrite() bool {
	return a.Distinct || len(a.Derived) > 0
}
