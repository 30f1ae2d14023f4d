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
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-shard-merge/sql"
)

func TestCompare(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		a, b          interface{}
		caseSensitive bool
		expected      int
	}{
		{"both null", nil, nil, true, 0},
		{"null first", nil, int64(1), true, -1},
		{"null last", int64(1), nil, true, 1},
		{"int64 less", int64(1), int64(2), true, -1},
		{"int64 equal", int64(7), int64(7), true, 0},
		{"mixed ints", int32(5), int64(3), true, 1},
		{"int and float", int64(2), 2.5, true, -1},
		{"uint64 above int64", uint64(1 << 63), int64(1), true, 1},
		{"decimal and int", decimal.RequireFromString("10.00"), int64(10), true, 0},
		{"float64", 1.5, 1.25, true, 1},
		{"string byte-wise", "B", "a", true, -1},
		{"string folded", "B", "a", false, 1},
		{"string folded equal", "Abc", "aBC", false, 0},
		{"bytes and string", []byte("abc"), "abd", true, -1},
		{"numeric string", "10", int64(9), true, 1},
		{"time", now, now.Add(time.Second), true, -1},
		{"time equal", now, now.In(time.FixedZone("x", 3600)), true, 0},
		{"bool", false, true, true, -1},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			cmp, err := Compare(tt.a, tt.b, tt.caseSensitive)
			require.NoError(err)
			require.Equal(tt.expected, cmp)
		})
	}
}

func TestCompareUncomparable(t *testing.T) {
	require := require.New(t)

	_, err := Compare("abc", int64(1), true)
	require.Error(err)
	require.True(sql.ErrUncomparableValues.Is(err))

	_, err = Compare(time.Now(), int64(1), true)
	require.Error(err)
	require.True(sql.ErrUncomparableValues.Is(err))
}

func TestToDecimal(t *testing.T) {
	testCases := []struct {
		name     string
		value    interface{}
		expected string
		err      bool
	}{
		{"int8", int8(-3), "-3", false},
		{"uint64", uint64(18446744073709551615), "18446744073709551615", false},
		{"float", 2.5, "2.5", false},
		{"string", " 12.50 ", "12.5", false},
		{"bytes", []byte("7"), "7", false},
		{"bool", true, "1", false},
		{"decimal", decimal.New(15, -1), "1.5", false},
		{"text", "abc", "", true},
		{"struct", struct{}{}, "", true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			d, err := ToDecimal(tt.value)
			if tt.err {
				require.Error(err)
				require.True(ErrNotNumeric.Is(err))
				return
			}
			require.NoError(err)
			require.True(decimal.RequireFromString(tt.expected).Equal(d), d.String())
		})
	}
}

func TestToInt64(t *testing.T) {
	require := require.New(t)

	for _, v := range []interface{}{int8(4), uint32(4), int64(4), "4", []byte("4"), decimal.NewFromInt(4), float64(4)} {
		i, err := ToInt64(v)
		require.NoError(err)
		require.Equal(int64(4), i)
	}

	_, err := ToInt64("four")
	require.Error(err)
	_, err = ToInt64(nil)
	require.Error(err)
}
