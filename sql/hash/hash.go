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
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/mitchellh/hashstructure"

	"github.com/dolthub/go-shard-merge/sql"
	"github.com/dolthub/go-shard-merge/sql/types"
)

var digestPool = sync.Pool{
	New: func() any {
		return xxhash.New()
	},
}

// HashOf returns a hash of the values at the given 0-based positions of row.
// Values that compare as equal hash equally: numbers are hashed by their
// decimal representation and text of case-insensitive columns is folded.
func HashOf(sch sql.Schema, positions []int, row sql.Row) (uint64, error) {
	hash := digestPool.Get().(*xxhash.Digest)
	hash.Reset()
	defer digestPool.Put(hash)

	for i, pos := range positions {
		if i > 0 {
			// separate each value in the key with a nil byte
			if _, err := hash.Write([]byte{0}); err != nil {
				return 0, err
			}
		}

		caseSensitive := true
		if pos < len(sch) {
			caseSensitive = sch[pos].IsCaseSensitive()
		}

		if _, err := hash.WriteString(Normalize(row[pos], caseSensitive)); err != nil {
			return 0, err
		}
	}
	return hash.Sum64(), nil
}

// HashValue returns a hash of a single value, using the same normalization
// as HashOf.
func HashValue(v interface{}, caseSensitive bool) (uint64, error) {
	h, err := hashstructure.Hash(Normalize(v, caseSensitive), nil)
	if err != nil {
		return 0, fmt.Errorf("unable to hash value %v: %s", v, err)
	}
	return h, nil
}

// Normalize returns the canonical string form of a value for hashing.
// Booleans hash as 0 and 1. Text in canonical decimal form hashes as the
// number it spells, since text and numbers compare numerically; other text,
// such as "01", hashes as text because it only equals other text verbatim.
func Normalize(v interface{}, caseSensitive bool) string {
	switch val := v.(type) {
	case nil:
		return "\x00null"
	case string:
		return normalizeText(val, caseSensitive)
	case []byte:
		return normalizeText(string(val), caseSensitive)
	case time.Time:
		return "t" + val.UTC().Format(time.RFC3339Nano)
	case bool:
		if val {
			return "n1"
		}
		return "n0"
	}

	if types.IsNumber(v) {
		if d, err := types.ToDecimal(v); err == nil {
			return "n" + d.String()
		}
	}

	return fmt.Sprintf("v%v", v)
}

func normalizeText(s string, caseSensitive bool) string {
	if d, err := types.ToDecimal(s); err == nil && d.String() == s {
		return "n" + s
	}

	if !caseSensitive {
		return "s" + strings.ToLower(s)
	}
	return "s" + s
}
