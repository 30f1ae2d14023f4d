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

package hash

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-shard-merge/sql"
)

func TestHashOf(t *testing.T) {
	require := require.New(t)

	sch := sql.Schema{
		{Name: "name", CaseSensitive: false},
		{Name: "amount", CaseSensitive: true},
		{Name: "code", CaseSensitive: true},
	}

	h1, err := HashOf(sch, []int{0, 1}, sql.NewRow("Foo", int64(10), "x"))
	require.NoError(err)
	h2, err := HashOf(sch, []int{0, 1}, sql.NewRow("fOO", decimal.RequireFromString("10.00"), "y"))
	require.NoError(err)
	require.Equal(h1, h2)

	h3, err := HashOf(sch, []int{0, 2}, sql.NewRow("foo", int64(10), "x"))
	require.NoError(err)
	h4, err := HashOf(sch, []int{0, 2}, sql.NewRow("foo", int64(10), "X"))
	require.NoError(err)
	require.NotEqual(h3, h4)

	// the separator keeps ("a", "bc") apart from ("ab", "c")
	h5, err := HashOf(sch, []int{1, 2}, sql.NewRow(nil, "a", "bc"))
	require.NoError(err)
	h6, err := HashOf(sch, []int{1, 2}, sql.NewRow(nil, "ab", "c"))
	require.NoError(err)
	require.NotEqual(h5, h6)
}

func TestHashValue(t *testing.T) {
	require := require.New(t)

	a, err := HashValue(int32(3), true)
	require.NoError(err)
	b, err := HashValue(3.0, true)
	require.NoError(err)
	require.Equal(a, b)

	c, err := HashValue(nil, true)
	require.NoError(err)
	d, err := HashValue("null", true)
	require.NoError(err)
	require.NotEqual(c, d)
}

func TestHashMatchesComparison(t *testing.T) {
	equal := []struct {
		name string
		a, b interface{}
	}{
		{"numeric text and int", "1", int64(1)},
		{"numeric bytes and uint", []byte("42"), uint8(42)},
		{"decimal text and float", "2.5", 2.5},
		{"negative text and int", "-7", int32(-7)},
		{"true and one", true, int64(1)},
		{"false and zero", false, 0},
		{"false and zero text", false, "0"},
	}

	for _, tt := range equal {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			a, err := HashValue(tt.a, true)
			require.NoError(err)
			b, err := HashValue(tt.b, true)
			require.NoError(err)
			require.Equal(a, b)
		})
	}

	distinct := []struct {
		name string
		a, b interface{}
	}{
		{"padded text", "01", "1"},
		{"text with spaces", " 1", "1"},
		{"true and two", true, int64(2)},
		{"word and bool", "true", true},
	}

	for _, tt := range distinct {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			a, err := HashValue(tt.a, false)
			require.NoError(err)
			b, err := HashValue(tt.b, false)
			require.NoError(err)
			require.NotEqual(a, b)
		})
	}
}
