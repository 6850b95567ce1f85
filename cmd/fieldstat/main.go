package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"magfield/internal/app"
	"magfield/internal/report"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	steps := flag.Int("steps", -1, "excitation steps to plot, -1 uses timestepping.max_steps")
	width := flag.Int("width", 72, "plot width")
	height := flag.Int("height", 10, "plot height")
	flag.Parse()

	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	session, err := app.Open(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	n := *steps
	if n < 0 {
		n = session.Scenario.Timestepping.MaxSteps
	}
	fmt.Println(report.Render(session.Sim, report.Options{
		Steps:      n,
		PlotWidth:  *width,
		PlotHeight: *height,
		ColorRange: session.Range.Value(),
	}))
}
