package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/swindow/swindow/app"
	"github.com/swindow/swindow/render"
	"github.com/swindow/swindow/window"
)

// editor is a small demo application: a tinted background with a few
// blended quads, driven by the shared frame loop.
type editor struct {
	render *render.Context
}

func (e *editor) Description() window.WindowDescription {
	// Size comes from the configuration.
	return window.WindowDescription{Title: "Editor"}
}

func (e *editor) OnEarlyInit() error { return nil }

func (e *editor) OnInit(w *window.Window) error {
	ctx, err := render.NewContext()
	if err != nil {
		return err
	}
	e.render = ctx

	slog.Info("OpenGL context ready",
		"vendor", ctx.Vendor(),
		"version", ctx.Version())

	ctx.SetClearColour(render.Colour{R: 0.25, G: 0.6, B: 0.75, A: 1})

	desc := w.GetWindowDescription()
	ctx.SetViewportSize(desc.Width, desc.Height)
	ctx.SetProjection(-4, 4, -3, 3)

	w.SetWindowResizeCallback(func(width, height int) {
		ctx.SetViewportSize(width, height)
	})
	w.SetWindowKeyCallback(func(code window.KeyCode, pressed bool) {
		slog.Debug("key event", "code", code, "pressed", pressed)
	})

	return nil
}

func (e *editor) OnTick() {
	e.render.Clear()

	e.render.DrawQuad(-1.5, 0, 1, render.Colour{R: 0.9, G: 0.3, B: 0.3, A: 1})
	e.render.DrawQuad(1.5, 0, 1, render.Colour{R: 0.3, G: 0.9, B: 0.3, A: 1})
	e.render.DrawQuad(0, 0, 1.5, render.Colour{R: 1, G: 1, B: 1, A: 0.25})
}

func (e *editor) OnDestroy()     {}
func (e *editor) OnLateDestroy() {}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to the configuration file")
	verbose := fs.Bool("verbose", false, "enable debug logging")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	window.SetLogger(logger)

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := app.Run(&editor{}, cfg); err != nil {
		log.Fatalf("run: %v", err)
	}
}
