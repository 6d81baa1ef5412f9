package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"
)

func main() {
	levelPath := flag.String("level", "", "level YAML file to open")
	watch := flag.Bool("watch", false, "reload the level when its directory changes")
	gridSize := flag.Int("grid", 64, "grid cell size for snapping")
	flag.Parse()

	if *levelPath == "" {
		log.Fatal("no level file; run with -level path/to/level.yaml")
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	}

	editor, err := NewEditor(*levelPath, *watch, *gridSize)
	if err != nil {
		log.Fatal(err)
	}
	defer editor.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("waypath editor")

	if err := ebiten.RunGame(editor); err != nil {
		log.Fatal(err)
	}
}
