package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/polarity/common"
	"github.com/milk9111/polarity/logging"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "draw field radii, force arrows and status text")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "demo", "level name in levels/ (basename, .yaml optional)")
	logFile := flag.String("log", "", "also write JSON logs to this file")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	watch := flag.Bool("watch", false, "reload the level when its file changes on disk")
	flag.Parse()

	cfg := logging.DefaultConfig()
	cfg.Level = *logLevel
	cfg.File = *logFile
	logger, err := logging.New(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("polarity")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(*levelName, *debug, *watch, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.String("level", *levelName), zap.Error(err))
	}
	defer func() { _ = game.Close() }()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}
