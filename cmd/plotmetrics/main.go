// Command plotmetrics reads the simulator's metrics output and saves one
// surface image per metric.
package main

import (
	"log/slog"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/schedbench/config"
	"github.com/sarchlab/schedbench/metrics"
	"github.com/sarchlab/schedbench/record"
	"github.com/sarchlab/schedbench/util"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	slog.SetDefault(util.NewLogger(os.Stderr, util.ParseLevel(cfg.LogLevel)))

	table, report, err := cfg.Parser().ParseFile(cfg.MetricsFile)
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	metrics.WriteTable(os.Stdout, table, report)

	if !table.IsEmpty() {
		rec, name, err := record.Open(cfg.RecordDir, "metrics")
		if err != nil {
			slog.Warn("metrics not recorded", "err", err)
		} else {
			metrics.RecordTable(rec, table)
			slog.Info("metrics recorded", "db", name)
		}
	}

	results, err := cfg.Visualizer().RenderAll(table)
	if err != nil {
		atexit.Fatalf("rendering failed: %v", err)
	}

	for _, res := range results {
		if res.Skipped {
			util.Trace("SurfaceSkipped", "metric", res.Metric.Name(), "reason", res.Reason)
		}
	}

	atexit.Exit(0)
}
