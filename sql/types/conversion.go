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
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"gopkg.in/src-d/go-errors.v1"
)

// ErrNotNumeric is returned when a value cannot be converted into a number.
var ErrNotNumeric = errors.NewKind("value %v (%T) is not numeric")

// IsNumber returns whether the value is of a Go numeric type, including
// decimal.Decimal.
func IsNumber(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, decimal.Decimal:
		return true
	default:
		return false
	}
}

// IsTextual returns whether the value is a string or a byte slice.
func IsTextual(v interface{}) bool {
	switch v.(type) {
	case string, []byte:
		return true
	default:
		return false
	}
}

// ToDecimal converts the given value into a decimal.Decimal without losing
// precision. Textual values are parsed.
func ToDecimal(v interface{}) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0), nil
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(n)), 0), nil
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		i, err := cast.ToInt64E(n)
		if err != nil {
			return decimal.Zero, ErrNotNumeric.Wrap(err, v, v)
		}
		return decimal.NewFromInt(i), nil
	case float32, float64:
		f, err := cast.ToFloat64E(n)
		if err != nil {
			return decimal.Zero, ErrNotNumeric.Wrap(err, v, v)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, ErrNotNumeric.New(v, v)
		}
		return decimal.NewFromFloat(f), nil
	case bool:
		if n {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, nil
	case string:
		return parseDecimal(v, n)
	case []byte:
		return parseDecimal(v, string(n))
	default:
		return decimal.Zero, ErrNotNumeric.New(v, v)
	}
}

func parseDecimal(orig interface{}, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrNotNumeric.Wrap(err, orig, orig)
	}
	return d, nil
}

// ToInt64 converts the given value into an int64. Decimal values are
// truncated.
func ToInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n.IntPart(), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, ErrNotNumeric.New(v, v)
		}
		return int64(n), nil
	case []byte:
		v = string(n)
	case string:
		v = strings.TrimSpace(n)
	case float32, float64:
		f := cast.ToFloat64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, ErrNotNumeric.New(v, v)
		}
		return int64(f), nil
	case nil:
		return 0, ErrNotNumeric.New(v, v)
	}

	i, err := cast.ToInt64E(v)
	if err != nil {
		return 0, ErrNotNumeric.Wrap(err, v, v)
	}
	return i, nil
}

// ToText returns the string form of a textual value.
func ToText(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}
