// Package main compares two benchmark_history JSON files and exits non-zero
// when a metric regresses past the threshold.
//
//	go run ./bench/tools --base baseline.json --current latest.json
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/alexflint/go-arg"
	log "github.com/sirupsen/logrus"
)

type config struct {
	Base      string  `arg:"--base,required,env:BENCH_BASE,help:baseline results file"`
	Current   string  `arg:"--current,required,env:BENCH_CURRENT,help:current results file"`
	Output    string  `arg:"--output,help:comparison report path" default:"benchmark-comparison.json"`
	Threshold float64 `arg:"--threshold,help:percent change counted as significant" default:"5"`
}

// higherIsBetter reports whether an increase in the metric is an improvement.
// Rates are; latencies and tombstone counts are not.
func higherIsBetter(metric string) bool {
	return strings.HasSuffix(metric, "_rate") || strings.Contains(metric, "_rate_")
}

func loadSummary(path string) (BenchSummary, error) {
	var s BenchSummary
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

func compareMetric(name string, base, current, threshold float64) MetricComparison {
	mc := MetricComparison{Name: name, BaseValue: base, CurrentValue: current}
	if base != 0 {
		mc.PercentChange = (current - base) / base * 100
	}
	if higherIsBetter(name) {
		mc.IsRegression = mc.PercentChange < 0
	} else {
		mc.IsRegression = mc.PercentChange > 0
	}
	mc.IsSignificant = math.Abs(mc.PercentChange) >= threshold
	return mc
}

// compare matches results by name and compares every metric present in both.
func compare(base, current BenchSummary, threshold float64) ComparisonSummary {
	baseResults := make(map[string]BenchResult, len(base.Results))
	for _, r := range base.Results {
		baseResults[r.Name] = r
	}

	summary := ComparisonSummary{BaseCommit: base.CommitID, CurrentCommit: current.CommitID}
	for _, cur := range current.Results {
		old, ok := baseResults[cur.Name]
		if !ok {
			continue
		}

		bc := BenchmarkComparison{Name: cur.Name, Category: cur.Category}
		if old.NsPerOp != 0 && cur.NsPerOp != 0 {
			bc.MetricComparisons = append(bc.MetricComparisons, compareMetric("ns_per_op", old.NsPerOp, cur.NsPerOp, threshold))
		}
		for name, value := range cur.Metrics {
			if baseValue, ok := old.Metrics[name]; ok {
				bc.MetricComparisons = append(bc.MetricComparisons, compareMetric(name, baseValue, value, threshold))
			}
		}
		sort.Slice(bc.MetricComparisons, func(i, j int) bool {
			return bc.MetricComparisons[i].Name < bc.MetricComparisons[j].Name
		})

		for _, mc := range bc.MetricComparisons {
			if mc.IsRegression && mc.IsSignificant {
				bc.HasRegressions = true
			}
		}
		if bc.HasRegressions {
			summary.SignificantRegressions++
		}
		summary.BenchmarkComparisons = append(summary.BenchmarkComparisons, bc)
	}

	sort.SliceStable(summary.BenchmarkComparisons, func(i, j int) bool {
		return summary.BenchmarkComparisons[i].HasRegressions && !summary.BenchmarkComparisons[j].HasRegressions
	})
	summary.TotalBenchmarks = len(summary.BenchmarkComparisons)
	return summary
}

func main() {
	var cfg config
	arg.MustParse(&cfg)

	base, err := loadSummary(cfg.Base)
	if err != nil {
		log.WithError(err).Fatal("failed to load base results")
	}
	current, err := loadSummary(cfg.Current)
	if err != nil {
		log.WithError(err).Fatal("failed to load current results")
	}

	summary := compare(base, current, cfg.Threshold)
	for _, bc := range summary.BenchmarkComparisons {
		entry := log.WithFields(log.Fields{"benchmark": bc.Name, "category": bc.Category})
		for _, mc := range bc.MetricComparisons {
			fields := log.Fields{
				"metric":  mc.Name,
				"base":    mc.BaseValue,
				"current": mc.CurrentValue,
				"change":  fmt.Sprintf("%+.2f%%", mc.PercentChange),
			}
			if mc.IsRegression && mc.IsSignificant {
				entry.WithFields(fields).Warn("regression")
			} else {
				entry.WithFields(fields).Info("compared")
			}
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.WithError(err).Fatal("failed to encode comparison")
	}
	if err := os.WriteFile(cfg.Output, data, 0644); err != nil {
		log.WithError(err).Fatal("failed to write comparison")
	}
	log.WithField("path", cfg.Output).Info("comparison written")

	if summary.SignificantRegressions > 0 {
		log.WithField("regressions", summary.SignificantRegressions).Error("significant performance regressions detected")
		os.Exit(1)
	}
}
