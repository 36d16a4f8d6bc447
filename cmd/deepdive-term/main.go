package main

import (
	"flag"
	"log"
	"os"
	"time"

	"chosenoffset.com/deepdive/internal/app"
	"chosenoffset.com/deepdive/internal/render/term"
)

func main() {
	opts := app.NewOptions()
	// The terminal owns stdout, so logs go to a file by default.
	opts.LogPath = "deepdive.log"
	opts.Width, opts.Height = 0, 0
	fs := flag.NewFlagSet("deepdive-term", flag.ExitOnError)
	opts.Bind(fs)
	fps := fs.Int("fps", 60, "frames per second")
	fs.Parse(os.Args[1:])

	logFile, err := app.OpenLog(opts.LogPath)
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()

	cfg := term.DefaultConfig()
	if *fps > 0 {
		cfg.FrameInterval = time.Second / time.Duration(*fps)
	}
	backend, err := term.NewBackend(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := app.Run(opts, backend, "DeepDive"); err != nil {
		log.Fatal(err)
	}
}
