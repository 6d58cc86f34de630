// Monkey Garden plays a looping banana-garden animation with a swinging
// monkey and records it to a VP9 WebM file.
//
// Hosts:
//
//	window       desktop window with a record button (R toggles, S snapshots, Esc quits)
//	framebuffer  Linux console; SIGUSR1 toggles recording
//	headless     renders offline: a fixed -duration export, or a -script session
//
// Recording requires an ffmpeg binary with libvpx-vp9.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phanxgames/garden"
	"github.com/phanxgames/garden/fbhost"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "monkeygarden:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "garden.yaml", "YAML config file; defaults apply when it does not exist")
	host := flag.String("host", "", "window, framebuffer or headless (overrides config)")
	out := flag.String("out", "", "output directory for recordings (overrides config)")
	duration := flag.Float64("duration", 12, "headless export length in seconds")
	scriptPath := flag.String("script", "", "JSON session script")
	debug := flag.Bool("debug", false, "log per-frame timings")
	flag.Parse()

	cfg, err := garden.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *out != "" {
		cfg.OutputDir = *out
	}
	if *debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	garden.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var script *garden.Script
	if *scriptPath != "" {
		if script, err = garden.ReadScript(*scriptPath); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Host {
	case garden.HostFramebuffer:
		return fbhost.Run(ctx, cfg, script)
	case garden.HostHeadless:
		var path string
		if script != nil {
			path, err = garden.RunHeadless(ctx, cfg, script)
		} else {
			path, err = garden.Export(ctx, cfg, *duration)
		}
		if path != "" {
			fmt.Println(path)
		}
		return err
	default:
		return garden.Run(cfg, script)
	}
}
