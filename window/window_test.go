package window

import (
	"errors"
	"testing"
)

// fakeNative records backend calls so facade semantics can be tested
// without a display server.
type fakeNative struct {
	window         *Window
	createErr      error
	contextErr     error
	contextCurrent bool
	pollCalls      int
	swapCalls      int
	destroyCalls   int
	downKeys       map[KeyCode]bool
}

func (f *fakeNative) Create(w *Window) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.window = w
	return nil
}

func (f *fakeNative) Destroy() { f.destroyCalls++ }

func (f *fakeNative) PollEvents() { f.pollCalls++ }

func (f *fakeNative) RefreshScreen() { f.swapCalls++ }

func (f *fakeNative) CreateContext(major, minor int, legacy bool) error {
	if f.contextErr != nil {
		f.contextCurrent = false
		return f.contextErr
	}
	f.contextCurrent = true
	return nil
}

func (f *fakeNative) GetExternalAddress(string) uintptr { return 0 }

func (f *fakeNative) IsKeyDown(code KeyCode) bool { return f.downKeys[code] }

func (f *fakeNative) ConvertNativeKeyCodes(int) KeyCode { return KeyCodeUnknown }

func (f *fakeNative) GetNativeKeyCodes(KeyCode) int { return -1 }

func newTestWindow(t *testing.T) (*Window, *fakeNative) {
	t.Helper()
	native := &fakeNative{}
	w, err := create(WindowDescription{Title: "Test", Width: 640, Height: 480}, native)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return w, native
}

func TestCreateReturnsInitializedWindow(t *testing.T) {
	w, _ := newTestWindow(t)

	desc := w.GetWindowDescription()
	if desc.Title != "Test" || desc.Width != 640 || desc.Height != 480 {
		t.Fatalf("description = %+v, want {Test 640 480}", desc)
	}
	if !w.GetIsRunning() {
		t.Fatal("window should be running after Create")
	}
}

func TestCreateFailurePropagates(t *testing.T) {
	wantErr := errors.New("native create failed")
	w, err := create(WindowDescription{Title: "Test"}, &fakeNative{createErr: wantErr})
	if !errors.Is(err, wantErr) {
		t.Fatalf("create error = %v, want %v", err, wantErr)
	}
	if w != nil {
		t.Fatal("create should not return a window on failure")
	}
}

func TestPollEventsWithNothingPendingIsNoop(t *testing.T) {
	w, native := newTestWindow(t)

	w.PollEvents()
	w.PollEvents()

	if native.pollCalls != 2 {
		t.Fatalf("pollCalls = %d, want 2", native.pollCalls)
	}
	if !w.GetIsRunning() {
		t.Fatal("polling with no messages must not change the running state")
	}
	desc := w.GetWindowDescription()
	if desc.Width != 640 || desc.Height != 480 {
		t.Fatalf("description changed to %+v", desc)
	}
}

func TestPollEventsSkipsBackendWhenNotRunning(t *testing.T) {
	w, native := newTestWindow(t)
	w.SetIsRunning(false)

	w.PollEvents()

	if native.pollCalls != 0 {
		t.Fatalf("pollCalls = %d, want 0", native.pollCalls)
	}
}

func TestResizeUpdatesDescriptionThenInvokesCallback(t *testing.T) {
	w, _ := newTestWindow(t)

	var calls int
	var gotW, gotH int
	var descAtCallback WindowDescription
	w.SetWindowResizeCallback(func(width, height int) {
		calls++
		gotW, gotH = width, height
		descAtCallback = w.GetWindowDescription()
	})

	w.handleResize(800, 600)

	if calls != 1 {
		t.Fatalf("resize callback invoked %d times, want 1", calls)
	}
	if gotW != 800 || gotH != 600 {
		t.Fatalf("callback got (%d,%d), want (800,600)", gotW, gotH)
	}
	if descAtCallback.Width != 800 || descAtCallback.Height != 600 {
		t.Fatalf("description inside callback = %+v, want already updated", descAtCallback)
	}
	if desc := w.GetWindowDescription(); desc.Width != 800 || desc.Height != 600 {
		t.Fatalf("stored description = %+v, want (800,600)", desc)
	}
}

func TestResizeWithoutCallbackStillUpdatesDescription(t *testing.T) {
	w, _ := newTestWindow(t)

	w.handleResize(1024, 768)

	if desc := w.GetWindowDescription(); desc.Width != 1024 || desc.Height != 768 {
		t.Fatalf("description = %+v, want (1024,768)", desc)
	}
}

func TestCloseCallbackVeto(t *testing.T) {
	w, _ := newTestWindow(t)

	w.SetWindowCloseCallback(func() bool { return false })
	w.handleClose()
	if !w.GetIsRunning() {
		t.Fatal("close callback returning false must keep the window running")
	}

	w.SetWindowCloseCallback(func() bool { return true })
	w.handleClose()
	if w.GetIsRunning() {
		t.Fatal("close callback returning true must stop the window")
	}
}

func TestCloseWithoutCallbackStopsWindow(t *testing.T) {
	w, _ := newTestWindow(t)

	w.handleClose()

	if w.GetIsRunning() {
		t.Fatal("close with no callback must stop the window")
	}
}

func TestCallbackRegistrationReplacesPrevious(t *testing.T) {
	w, _ := newTestWindow(t)

	var first, second int
	w.SetWindowKeyCallback(func(KeyCode, bool) { first++ })
	w.SetWindowKeyCallback(func(KeyCode, bool) { second++ })

	w.handleKey(KeyCodeA, true)

	if first != 0 {
		t.Fatal("replaced callback must not be invoked")
	}
	if second != 1 {
		t.Fatalf("active callback invoked %d times, want 1", second)
	}
}

func TestInputDispatchWithoutCallbacksIsHarmless(t *testing.T) {
	w, _ := newTestWindow(t)

	// No callbacks registered; none of these may panic or change state.
	w.handleKey(KeyCodeUnknown, true)
	w.handleMouseButton(MouseButtonLeft, false)
	w.handleMouseMove(10, 20)
	w.handleCharacter('\b')

	if !w.GetIsRunning() {
		t.Fatal("input dispatch must not change the running state")
	}
}

func TestMouseAndCharacterDispatch(t *testing.T) {
	w, _ := newTestWindow(t)

	var gotButton MouseButton
	var gotPressed bool
	w.SetWindowMouseCallback(func(button MouseButton, pressed bool) {
		gotButton, gotPressed = button, pressed
	})
	var gotX, gotY int
	w.SetWindowMouseMoveCallback(func(x, y int) { gotX, gotY = x, y })
	var gotChar rune
	w.SetWindowCharacterCallback(func(character rune) { gotChar = character })

	w.handleMouseButton(MouseButtonRight, true)
	w.handleMouseMove(33, 44)
	w.handleCharacter('\b')

	if gotButton != MouseButtonRight || !gotPressed {
		t.Fatalf("mouse callback got (%d,%v)", gotButton, gotPressed)
	}
	if gotX != 33 || gotY != 44 {
		t.Fatalf("move callback got (%d,%d)", gotX, gotY)
	}
	if gotChar != '\b' {
		t.Fatalf("character callback got %q, want '\\b'", gotChar)
	}
}

func TestCreateContextFailureLeavesNoContextCurrent(t *testing.T) {
	native := &fakeNative{contextErr: errors.New("unsupported version")}
	w, err := create(WindowDescription{Title: "Test", Width: 640, Height: 480}, native)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := w.CreateContext(99, 9, false); err == nil {
		t.Fatal("CreateContext with an unsupported version must report failure")
	}
	if native.contextCurrent {
		t.Fatal("no context may be left current after a failed CreateContext")
	}
}

func TestCreateContextSuccess(t *testing.T) {
	w, native := newTestWindow(t)

	if err := w.CreateContext(4, 6, false); err != nil {
		t.Fatalf("CreateContext: %v", err)
	}
	if !native.contextCurrent {
		t.Fatal("context should be current after successful CreateContext")
	}
}

func TestDestroyStopsRunningAndReleasesBackend(t *testing.T) {
	w, native := newTestWindow(t)

	w.Destroy()

	if w.GetIsRunning() {
		t.Fatal("window must not be running after Destroy")
	}
	if native.destroyCalls != 1 {
		t.Fatalf("backend Destroy called %d times, want 1", native.destroyCalls)
	}
}

func TestGetIsKeyDownDelegatesToBackend(t *testing.T) {
	w, native := newTestWindow(t)
	native.downKeys = map[KeyCode]bool{KeyCodeEscape: true}

	if !w.GetIsKeyDown(KeyCodeEscape) {
		t.Fatal("expected Escape to be reported down")
	}
	if w.GetIsKeyDown(KeyCodeSpace) {
		t.Fatal("expected Space to be reported up")
	}
}

func TestSwapBuffersDelegatesToBackend(t *testing.T) {
	w, native := newTestWindow(t)

	w.SwapBuffers()

	if native.swapCalls != 1 {
		t.Fatalf("swapCalls = %d, want 1", native.swapCalls)
	}
}

func TestSetWindowSizeUpdatesDescriptionOnly(t *testing.T) {
	w, _ := newTestWindow(t)

	w.SetWindowSize(320, 240)

	if desc := w.GetWindowDescription(); desc.Width != 320 || desc.Height != 240 {
		t.Fatalf("description = %+v, want (320,240)", desc)
	}
	if desc := w.GetWindowDescription(); desc.Title != "Test" {
		t.Fatalf("title changed to %q", desc.Title)
	}
}
