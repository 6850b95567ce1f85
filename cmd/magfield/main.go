//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"magfield/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	session, err := app.Open(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(session, cfg, logger)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("magfield - " + session.Sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
