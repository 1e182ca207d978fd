package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/wayfarer/common"
	"github.com/milk9111/wayfarer/levels"
	"github.com/milk9111/wayfarer/store"
)

func main() {
	worldName := flag.String("world", levels.Default, "world to load (basename, .json optional)")
	debug := flag.Bool("debug", false, "draw paths and the companion trail, log session events")
	watch := flag.Bool("watch", false, "reload prefabs, scripts and worlds when they change on disk")
	autopilot := flag.String("autopilot", "", "tengo script in prefabs/scripts that issues clicks")
	fast := flag.Bool("fast", false, "double the leader's walking speed")
	storeKind := flag.String("store", envOr("WAYFARER_STORE", store.KindFile), "world store: file or postgres")
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "postgres connection string")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("wayfarer")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Options{
		World:     *worldName,
		Debug:     *debug,
		Watch:     *watch,
		Autopilot: *autopilot,
		Fast:      *fast,
		StoreKind: *storeKind,
		DSN:       *dsn,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
