package main

import (
	"flag"
	"log"
	"os"

	"chosenoffset.com/deepdive/internal/app"
	ebitenrender "chosenoffset.com/deepdive/internal/render/ebiten"
)

func main() {
	opts := app.NewOptions()
	fs := flag.NewFlagSet("deepdive", flag.ExitOnError)
	opts.Bind(fs)
	fs.Parse(os.Args[1:])

	logFile, err := app.OpenLog(opts.LogPath)
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()

	// Initialize the renderer backend (ebiten)
	backend := ebitenrender.NewBackend()

	if err := app.Run(opts, backend, "DeepDive - Planet 4546B"); err != nil {
		log.Fatal(err)
	}
}
