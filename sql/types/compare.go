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

package types

import (
	"strings"
	"time"

	"github.com/dolthub/go-shard-merge/sql"
)

// CompareNulls compares two values, and returns true if either is null.
// The returned integer represents the ordering, with a rule that states nulls
// as being ordered before non-nulls.
func CompareNulls(a interface{}, b interface{}) (bool, int) {
	aIsNull := a == nil
	bIsNull := b == nil
	if aIsNull && bIsNull {
		return true, 0
	} else if aIsNull && !bIsNull {
		return true, -1
	} else if !aIsNull && bIsNull {
		return true, 1
	}
	return false, 0
}

// Compare compares two values by the natural ordering of their dynamic type:
// numbers numerically whatever their Go type, text byte-wise (or folded when
// caseSensitive is false), times chronologically and booleans false first.
// Nulls are ordered first.
func Compare(a, b interface{}, caseSensitive bool) (int, error) {
	if hasNulls, res := CompareNulls(a, b); hasNulls {
		return res, nil
	}

	switch av := a.(type) {
	case int64:
		if bv, ok := b.(int64); ok {
			return compareInt64(av, bv), nil
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return compareFloat64(av, bv), nil
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return compareTime(av, bv), nil
		}
		return 0, sql.ErrUncomparableValues.New(a, a, b, b)
	case bool:
		if bv, ok := b.(bool); ok {
			return compareBool(av, bv), nil
		}
	}

	if IsTextual(a) && IsTextual(b) {
		as, _ := ToText(a)
		bs, _ := ToText(b)
		return compareText(as, bs, caseSensitive), nil
	}

	if isNumeric(a) && isNumeric(b) {
		ad, err := ToDecimal(a)
		if err != nil {
			return 0, sql.ErrUncomparableValues.Wrap(err, a, a, b, b)
		}
		bd, err := ToDecimal(b)
		if err != nil {
			return 0, sql.ErrUncomparableValues.Wrap(err, a, a, b, b)
		}
		return ad.Cmp(bd), nil
	}

	return 0, sql.ErrUncomparableValues.New(a, a, b, b)
}

// isNumeric accepts textual values too, so a number compares with its
// textual representation the way MySQL coerces them.
func isNumeric(v interface{}) bool {
	if IsNumber(v) {
		return true
	}
	if _, ok := v.(bool); ok {
		return true
	}
	if IsTextual(v) {
		_, err := ToDecimal(v)
		return err == nil
	}
	return false
}

func compareInt64(a, b int64) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return +1
}

func compareFloat64(a, b float64) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return +1
}

func compareTime(a, b time.Time) int {
	if a.Equal(b) {
		return 0
	}
	if a.Before(b) {
		return -1
	}
	return +1
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return +1
}

func compareText(a, b string, caseSensitive bool) int {
	if !caseSensitive {
		a = strings.ToLower(a)
		b = strings.ToLower(b)
	}
	return strings.Compare(a, b)
}
