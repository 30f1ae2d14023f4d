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

// Package dialect holds the per-database behaviour the merge engine depends
// on: how NULL sorts by default and when pagination was already applied by
// the shards.
package dialect

import (
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrUnknownDialect is returned when parsing an unsupported dialect name.
var ErrUnknownDialect = errors.NewKind("unknown dialect: %s")

// Dialect is a SQL dialect of the physical shards.
type Dialect byte

const (
	// MySQL dialect.
	MySQL Dialect = iota
	// MariaDB dialect.
	MariaDB
	// PostgreSQL dialect.
	PostgreSQL
	// OpenGauss dialect.
	OpenGauss
	// Oracle dialect.
	Oracle
	// SQLServer dialect.
	SQLServer
	// SQL92 is the generic dialect.
	SQL92
)

var names = map[Dialect]string{
	MySQL:      "mysql",
	MariaDB:    "mariadb",
	PostgreSQL: "postgresql",
	OpenGauss:  "opengauss",
	Oracle:     "oracle",
	SQLServer:  "sqlserver",
	SQL92:      "sql92",
}

func (d Dialect) String() string {
	if n, ok := names[d]; ok {
		return n
	}
	return "invalid Dialect"
}

// Parse returns the dialect with the given case-insensitive name.
func Parse(name string) (Dialect, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "postgres":
		return PostgreSQL, nil
	case "mssql":
		return SQLServer, nil
	}
	for d, n := range names {
		if n == name {
			return d, nil
		}
	}
	return 0, ErrUnknownDialect.New(name)
}

// NullsLow reports whether NULL sorts as the lowest value when an ORDER BY
// item does not say where nulls go.
func (d Dialect) NullsLow() bool {
	switch d {
	case PostgreSQL, OpenGauss, Oracle:
		return false
	default:
		return true
	}
}

// PaginationHandledByPushdown reports whether the LIMIT/OFFSET sent to each
// shard already yields the exact logical page. That only holds when a single
// shard takes part; otherwise every shard returns rows from the start of its
// own result and the page has to be cut after merging.
func (d Dialect) PaginationHandledByPushdown(shardCount int) bool {
	return shardCount <= 1
}
