package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/deepdive/internal/render/sprites"
)

func main() {
	dir := flag.String("out", "assets/sprites", "output directory")
	flag.Parse()

	fmt.Println("DeepDive Sprite Generator")
	fmt.Println("=========================")
	fmt.Println()

	written, err := sprites.GenerateAndSave(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Printf("  wrote %s\n", path)
	}

	fmt.Println()
	fmt.Println("Done! The game generates these at runtime; the PNGs are for inspection and editing.")
}
