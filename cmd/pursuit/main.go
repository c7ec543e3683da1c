package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/internal/scene"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/internal/view"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "config/scene.json", "scene configuration file")
	schemaFile := flag.String("schema", "config/scene.schema.json", "JSON schema of the configuration")
	flag.Parse()

	ctx := context.Background()
	logger := golog.DefaultLogger

	cfg, err := scene.LoadConfig(*configFile, *schemaFile)
	if err != nil {
		logger.Warnf("using default scene: %v", err)
		cfg = scene.DefaultConfig()
	}

	s, err := scene.New(cfg, scene.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}
	player, err := s.CreatePlayer(cfg.PlayerStart)
	if err != nil {
		log.Fatal(err)
	}
	missile, err := s.CreateAgent(cfg.MissileStart, cfg.Missile)
	if err != nil {
		log.Fatal(err)
	}
	if err := s.SetSeekTarget(missile, player, cfg.SeekWeight); err != nil {
		log.Fatal(err)
	}

	system, err := actor.NewActorSystem("Pursuit", actor.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}
	if err := system.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer system.Stop(ctx)

	game, err := view.NewGame(ctx, system, s, player, view.ModePursuit)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Pursuit: drag the player, the missile follows")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
