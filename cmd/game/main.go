package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mossvale/shepherd-sense/internal/game"
)

func main() {
	var tuningPath string
	var seed int64
	flag.StringVar(&tuningPath, "tuning", "", "path to a tuning YAML file (optional)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	t := game.DefaultTuning()
	if tuningPath != "" {
		var err error
		t, err = game.LoadTuning(tuningPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ebiten.SetWindowTitle("Shepherd Sense")
	ebiten.SetWindowSize(1014, 880)
	if err := ebiten.RunGame(game.New(t, seed)); err != nil {
		log.Fatal(err)
	}
}
