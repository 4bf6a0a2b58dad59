package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hierscenes/common"
)

func main() {
	debug := flag.Bool("debug", false, "show the frame counter and FPS")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	sceneName := flag.String("scene", "", "scene file in scenes/ (overrides HIER_SCENE)")
	watch := flag.Bool("watch", false, "reload the scene when files under scenes/ change")
	flag.Parse()

	cfg, err := common.LoadConfig()
	log := common.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if *sceneName != "" {
		cfg.Scene = *sceneName
	}
	if *watch {
		cfg.Watch = true
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(common.Title)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowClosingHandled(true)

	game, err := NewGame(cfg, log, *debug)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
