// Command genworkload writes the scheduler test programs, links each one at
// its own offset and records the layout.
package main

import (
	"log/slog"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/schedbench/config"
	"github.com/sarchlab/schedbench/linker"
	"github.com/sarchlab/schedbench/record"
	"github.com/sarchlab/schedbench/util"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	slog.SetDefault(util.NewLogger(os.Stderr, util.ParseLevel(cfg.LogLevel)))

	programs, err := cfg.Generator().GenerateAll(cfg.Tiers)
	if err != nil {
		atexit.Fatalf("workload generation failed: %v", err)
	}

	offsets := cfg.Linker().LayoutAndCompile(programs)
	linker.WriteLayout(os.Stdout, offsets)

	rec, name, err := record.Open(cfg.RecordDir, "workload")
	if err != nil {
		slog.Warn("layout not recorded", "err", err)
		atexit.Exit(0)
	}

	linker.RecordLayout(rec, offsets)
	slog.Info("layout recorded", "db", name)

	atexit.Exit(0)
}
