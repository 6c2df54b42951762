package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/SumDumIdiut/The-Power-of-50/internal/game"
	"github.com/SumDumIdiut/The-Power-of-50/internal/logger"
)

func main() {
	var seed int64
	var logLevel, logFormat string
	flag.Int64Var(&seed, "seed", 0, "world seed (0 = random)")
	flag.StringVar(&logLevel, "log-level", "", "log level (default $LOG_LEVEL or info)")
	flag.StringVar(&logFormat, "log-format", "", "log format: text or json (default $LOG_FORMAT or text)")
	flag.Parse()

	log := logger.New(logLevel, logFormat)

	cfg := game.DefaultConfig()
	cfg.World.Seed = seed
	cfg.Log = log
	cfg.World.Log = log

	g, err := game.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("could not start game")
	}

	ebiten.SetWindowTitle("The Power of 50")
	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Fatal("game exited")
	}
}
