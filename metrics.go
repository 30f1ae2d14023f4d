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
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dolthub/go-shard-merge/sql/rowexec"
)

const metricsNamespace = "shard_merge"

// RegisterPrometheusMetrics replaces the discarding metrics of the engine
// and of the merges with Prometheus ones registered in r.
func RegisterPrometheusMetrics(r prometheus.Registerer) error {
	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "engine",
		Name:      "queries_total",
		Help:      "Number of merged queries.",
	}, []string{"dialect"})
	queryErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "engine",
		Name:      "query_errors_total",
		Help:      "Number of queries whose merge could not be built.",
	}, []string{"dialect"})
	merges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "rowexec",
		Name:      "merges_total",
		Help:      "Number of merges per strategy.",
	}, []string{"strategy"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "rowexec",
		Name:      "merged_rows_total",
		Help:      "Number of rows returned by merged cursors.",
	}, []string{"strategy"})
	groups := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "rowexec",
		Name:      "memory_groups",
		Help:      "Number of groups held by in-memory group by merges.",
		Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
	}, nil)

	for _, c := range []prometheus.Collector{queries, queryErrors, merges, rows, groups} {
		if err := r.Register(c); err != nil {
			return err
		}
	}

	QueryCounter = kitprometheus.NewCounter(queries)
	QueryErrorCounter = kitprometheus.NewCounter(queryErrors)
	rowexec.MergeCounter = kitprometheus.NewCounter(merges)
	rowexec.MergedRowsCounter = kitprometheus.NewCounter(rows)
	rowexec.MemoryGroupsHistogram = kitprometheus.NewHistogram(groups)
	return nil
}
