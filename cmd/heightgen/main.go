// heightgen is a CLI utility for generating and inspecting terrain
// heightmaps usable with the geoview terrain viewer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/Faultbox/geoclip/internal/engine/heightfield"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`heightgen - terrain heightmap utility

Usage:
  heightgen <command> [options]

Commands:
  generate [options]   Generate a 16-bit grayscale PNG heightmap
  info <image>         Show heightmap statistics

Generate options:
  -out string      output path (default "terrain.png")
  -size int        image edge size in pixels (default 1024)
  -seed int        noise seed (default 1)
  -amplitude float height amplitude in world units (default 60)
  -octaves int     noise octave count (default 5)
  -world float     world extent one repetition covers (default 8192)

Examples:
  heightgen generate -seed 7 -size 2048 -out hills.png
  heightgen info hills.png`)
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	out := fs.String("out", "terrain.png", "output path")
	size := fs.Int("size", 1024, "image edge size in pixels")
	seed := fs.Int64("seed", 1, "noise seed")
	amplitude := fs.Float64("amplitude", 60, "height amplitude in world units")
	octaves := fs.Int("octaves", 5, "noise octave count")
	world := fs.Float64("world", 8192, "world extent one repetition covers")
	fs.Parse(args)

	if *size < 2 {
		fmt.Fprintln(os.Stderr, "Error: size must be at least 2")
		os.Exit(1)
	}

	src := heightfield.NewProcedural(*seed, float32(*amplitude))
	src.Octaves = *octaves

	step := float32(*world) / float32(*size)
	origin := -float32(*world) / 2
	heights := src.Region(*size, origin, origin, step)

	// Map [-amplitude, amplitude] onto the full 16-bit range.
	img := image.NewGray16(image.Rect(0, 0, *size, *size))
	scale := float32(0.5) / float32(*amplitude)
	for y := 0; y < *size; y++ {
		for x := 0; x < *size; x++ {
			v := heights[y**size+x]*scale + 0.5
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(v * 65535)})
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s: %dx%d px, seed %d, amplitude %.1f, world %.0f\n",
		*out, *size, *size, *seed, *amplitude, *world)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: heightgen info <image>")
		os.Exit(1)
	}

	src, err := heightfield.LoadImage(args[0], 256, 256, 1.0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	heights := src.Region(256, 0, 0, 1)
	min, max := heights[0], heights[0]
	var sum float64
	for _, h := range heights {
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
		sum += float64(h)
	}

	fmt.Printf("%s\n", args[0])
	fmt.Printf("  normalized min:  %.4f\n", min)
	fmt.Printf("  normalized max:  %.4f\n", max)
	fmt.Printf("  normalized mean: %.4f\n", sum/float64(len(heights)))
}
