// Package app runs a client application against a single window: it owns
// the window lifecycle, the context negotiation and the per-frame loop.
package app

import (
	"fmt"

	"github.com/swindow/swindow/window"
)

// App is implemented by the embedding application. Run drives the hooks in
// a fixed order: OnEarlyInit before the window exists, OnInit once the
// window and context are live, OnTick once per frame, OnDestroy before the
// window is torn down and OnLateDestroy after.
type App interface {
	// Description declares the requested window. Zero-value fields fall back
	// to the configuration.
	Description() window.WindowDescription

	OnEarlyInit() error
	OnInit(w *window.Window) error
	OnTick()
	OnDestroy()
	OnLateDestroy()
}

// frameLoop is the slice of the window the per-frame loop touches,
// extracted so the loop can be driven by a fake.
type frameLoop interface {
	GetIsRunning() bool
	SetIsRunning(value bool)
	PollEvents()
	GetIsKeyDown(code window.KeyCode) bool
	SwapBuffers()
}

// Run creates the window described by app and cfg, negotiates an OpenGL
// context per cfg and drives the frame loop until the window stops running.
// The window is destroyed before Run returns, even when init hooks fail
// after creation.
func Run(app App, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("app: invalid config: %w", err)
	}

	if err := app.OnEarlyInit(); err != nil {
		return fmt.Errorf("app: early init: %w", err)
	}

	w, err := window.Create(describeWindow(app, cfg))
	if err != nil {
		return fmt.Errorf("app: creating window: %w", err)
	}

	if err := w.CreateContext(cfg.GL.Major, cfg.GL.Minor, cfg.GL.Legacy); err != nil {
		w.Destroy()
		return fmt.Errorf("app: creating context: %w", err)
	}

	if err := app.OnInit(w); err != nil {
		w.Destroy()
		return fmt.Errorf("app: init: %w", err)
	}

	runLoop(w, app.OnTick)

	app.OnDestroy()
	w.Destroy()
	app.OnLateDestroy()
	return nil
}

// describeWindow merges the application's description over the configured
// defaults.
func describeWindow(app App, cfg Config) window.WindowDescription {
	desc := app.Description()
	if desc.Title == "" {
		desc.Title = cfg.Title
	}
	if desc.Width <= 0 {
		desc.Width = cfg.Width
	}
	if desc.Height <= 0 {
		desc.Height = cfg.Height
	}
	return desc
}

// runLoop polls, applies the Escape exit key, ticks the client and presents,
// once per frame, until the running flag clears. A frame that clears the
// flag still ticks and presents so the last frame is complete.
func runLoop(w frameLoop, tick func()) {
	for w.GetIsRunning() {
		w.PollEvents()

		if w.GetIsKeyDown(window.KeyCodeEscape) {
			w.SetIsRunning(false)
		}

		tick()

		w.SwapBuffers()
	}
}
