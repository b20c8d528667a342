// Copyright 2026 The vectorcompat Authors. All rights reserved.

// Command vectorrender renders vector and animated vector definitions to
// image files.
//
// Options not given as flags are read from VECTOR_* environment variables,
// for example VECTOR_ERROR_MODE=strict or VECTOR_FLATTEN_TOLERANCE=0.1.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/raykov/vectorcompat"
)

var (
	source   = flag.String("in", "", "Vector, animated vector or raster image to render")
	dest     = flag.String("out", "out.png", "Output file; frames get a _NNN suffix")
	width    = flag.Int("width", 0, "Output width (default: intrinsic width)")
	height   = flag.Int("height", 0, "Output height (default: intrinsic height)")
	tint     = flag.String("tint", "", "Tint color, e.g. #ff0000")
	rtl      = flag.Bool("rtl", false, "Lay out right to left")
	frames   = flag.Int("frames", 0, "Number of animation frames to write (0: final frame only)")
	fps      = flag.Int("fps", 30, "Animation frame rate")
	debug    = flag.Bool("debug", false, "Log at debug level")
	realtime = flag.Bool("realtime", false, "Use wall clock frame times instead of exact 1/fps steps")
)

func main() {
	flag.Parse()
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	vectorcompat.SetLogger(logger)

	if *source == "" {
		flag.Usage()
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, logger); err != nil {
		logger.Error("render failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	opts, err := vectorcompat.LoadOptions("VECTOR")
	if err != nil {
		return fmt.Errorf("loading options: %w", err)
	}
	if *debug {
		opts.Debug = true
	}
	img, err := decodeFile(*source, opts)
	if err != nil {
		return err
	}
	w, h := img.IntrinsicSize()
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}
	img.SetBounds(image.Rect(0, 0, w, h))
	if err := configure(img); err != nil {
		return err
	}

	av, ok := img.(*vectorcompat.AnimatedVector)
	if !ok || *frames <= 0 {
		if ok {
			av.Stop()
		}
		return save(img, w, h, *dest, logger)
	}
	return renderFrames(ctx, av, w, h, logger)
}

func decodeFile(name string, opts vectorcompat.Options) (vectorcompat.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := vectorcompat.Decode(f, opts)
	if err != nil {
		// Animated vectors referencing other files need a resolver.
		if av, aerr := vectorcompat.ReadAnimatedVector(name, opts); aerr == nil {
			return av, nil
		}
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

func configure(img vectorcompat.Image) error {
	var d *vectorcompat.Drawable
	switch v := img.(type) {
	case *vectorcompat.Drawable:
		d = v
	case *vectorcompat.AnimatedVector:
		d = v.Drawable()
	default:
		return nil
	}
	if *tint != "" {
		c, err := vectorcompat.ParseColor(*tint)
		if err != nil {
			return fmt.Errorf("-tint: %w", err)
		}
		d.SetTint(&c)
	}
	if *rtl {
		d.SetLayoutDirection(vectorcompat.LayoutRTL)
	}
	return nil
}

func renderFrames(ctx context.Context, av *vectorcompat.AnimatedVector, w, h int, logger *slog.Logger) error {
	step := time.Second / time.Duration(max(*fps, 1))
	start := time.Now()
	n := 0
	clock := vectorcompat.FrameClock{}
	if !*realtime {
		clock.Now = func() time.Time { return start.Add(time.Duration(n) * step) }
	}
	av.Start(start)
	var saveErr error
	err := clock.Run(ctx, *fps, func(now time.Time) bool {
		running := av.Tick(now)
		if saveErr = save(av, w, h, frameName(*dest, n), logger); saveErr != nil {
			return false
		}
		n++
		return running && n < *frames
	})
	if saveErr != nil {
		return saveErr
	}
	return err
}

func frameName(dest string, n int) string {
	ext := filepath.Ext(dest)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(dest, ext), n, ext)
}

func save(img vectorcompat.Image, w, h int, name string, logger *slog.Logger) error {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Draw(vectorcompat.NewRasterCanvas(out))
	var res image.Image = out
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		// No alpha channel: flatten onto white.
		res = imaging.Overlay(imaging.New(w, h, color.White), out, image.Point{}, 1)
	}
	if err := imaging.Save(res, name); err != nil {
		return err
	}
	logger.Info("wrote image", slog.String("file", name), slog.Int("width", w), slog.Int("height", h))
	return nil
}
