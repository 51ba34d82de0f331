// Command galaxysnap renders one frame of the galaxy to a PNG file without
// opening a window.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"time"

	"galaxyview/config"
	"galaxyview/generator"
	"galaxyview/panel"
	"galaxyview/stargl"
	"galaxyview/viewer"
)

const defaultOutPath = "galaxy.png"

type options struct {
	config  string
	out     string
	width   int
	height  int
	scale   float64
	seed    uint64
	elapsed time.Duration
}

func main() {
	var o options
	flag.StringVar(&o.config, "config", "", "Preset TOML file.")
	flag.StringVar(&o.out, "out", defaultOutPath, "Output PNG path.")
	flag.IntVar(&o.width, "width", 0, "Image width in logical pixels (default from preset).")
	flag.IntVar(&o.height, "height", 0, "Image height in logical pixels (default from preset).")
	flag.Float64Var(&o.scale, "scale", 1, "Pixel ratio, capped at 2.")
	flag.Uint64Var(&o.seed, "seed", 1, "Random seed (0 = time based).")
	flag.DurationVar(&o.elapsed, "at", 0, "Scene time, which sets the orbit angle.")
	flag.Parse()

	if o.out == "" {
		fmt.Fprintln(os.Stderr, "error: -out is required")
		os.Exit(2)
	}

	if err := run(o); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(o options) error {
	cfg, err := config.Load(o.config)
	if err != nil {
		return err
	}
	if o.width > 0 {
		cfg.Window.Width = o.width
	}
	if o.height > 0 {
		cfg.Window.Height = o.height
	}
	galaxy, err := cfg.GalaxyParameters()
	if err != nil {
		return err
	}
	stars, err := cfg.StarFieldParameters()
	if err != nil {
		return err
	}
	panel.Clamp(&galaxy, &stars)

	v := viewer.New(viewer.Options{
		Logger:    slog.New(slog.DiscardHandler),
		Source:    generator.NewSource(o.seed),
		Galaxy:    galaxy,
		StarField: stars,
	})
	w, h := v.Resize(cfg.Window.Width, cfg.Window.Height, o.scale)
	v.Frame(o.elapsed, 0)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	v.Render(&stargl.RGBATarget{Buf: img.Pix, Stride: img.Stride, W: w, H: h})

	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("create %q: %w", o.out, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %q: %w", o.out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", o.out, err)
	}
	return nil
}
