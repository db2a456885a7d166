package app

import (
	"reflect"
	"testing"

	"github.com/swindow/swindow/window"
)

// fakeLoop drives runLoop without a native window.
type fakeLoop struct {
	running bool
	escDown bool
	calls   []string
}

func (f *fakeLoop) GetIsRunning() bool { return f.running }

func (f *fakeLoop) SetIsRunning(value bool) {
	f.running = value
	f.calls = append(f.calls, "setRunning(false)")
}

func (f *fakeLoop) PollEvents() { f.calls = append(f.calls, "poll") }

func (f *fakeLoop) GetIsKeyDown(code window.KeyCode) bool {
	return code == window.KeyCodeEscape && f.escDown
}

func (f *fakeLoop) SwapBuffers() { f.calls = append(f.calls, "swap") }

func TestRunLoopOrdersPollTickSwap(t *testing.T) {
	loop := &fakeLoop{running: true}

	frames := 0
	runLoop(loop, func() {
		loop.calls = append(loop.calls, "tick")
		frames++
		if frames == 2 {
			loop.running = false
		}
	})

	want := []string{
		"poll", "tick", "swap",
		"poll", "tick", "swap",
	}
	if !reflect.DeepEqual(loop.calls, want) {
		t.Fatalf("calls = %v, want %v", loop.calls, want)
	}
}

func TestRunLoopEscapeStopsAfterFinishingTheFrame(t *testing.T) {
	loop := &fakeLoop{running: true, escDown: true}

	runLoop(loop, func() { loop.calls = append(loop.calls, "tick") })

	// The frame that observes Escape still ticks and presents.
	want := []string{"poll", "setRunning(false)", "tick", "swap"}
	if !reflect.DeepEqual(loop.calls, want) {
		t.Fatalf("calls = %v, want %v", loop.calls, want)
	}
}

func TestRunLoopDoesNothingWhenNotRunning(t *testing.T) {
	loop := &fakeLoop{running: false}

	runLoop(loop, func() { t.Fatal("tick must not run") })

	if len(loop.calls) != 0 {
		t.Fatalf("calls = %v, want none", loop.calls)
	}
}

type staticApp struct {
	desc window.WindowDescription
}

func (a staticApp) Description() window.WindowDescription { return a.desc }
func (staticApp) OnEarlyInit() error                      { return nil }
func (staticApp) OnInit(*window.Window) error             { return nil }
func (staticApp) OnTick()                                 {}
func (staticApp) OnDestroy()                              {}
func (staticApp) OnLateDestroy()                          {}

func TestDescribeWindowPrefersApplicationValues(t *testing.T) {
	cfg := DefaultConfig()
	app := staticApp{desc: window.WindowDescription{Title: "Editor", Width: 800, Height: 600}}

	desc := describeWindow(app, cfg)

	if desc.Title != "Editor" || desc.Width != 800 || desc.Height != 600 {
		t.Fatalf("desc = %+v", desc)
	}
}

func TestDescribeWindowFallsBackToConfig(t *testing.T) {
	cfg := DefaultConfig()
	desc := describeWindow(staticApp{}, cfg)

	if desc.Title != cfg.Title || desc.Width != cfg.Width || desc.Height != cfg.Height {
		t.Fatalf("desc = %+v, want config defaults %+v", desc, cfg)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0

	if err := Run(staticApp{}, cfg); err == nil {
		t.Fatal("Run must reject a non-positive window size")
	}
}
