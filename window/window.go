// Package window creates native operating-system windows, establishes an
// OpenGL context against them and translates native input events into a
// portable callback model.
//
// The package is single-threaded: one goroutine owns the window, the
// context and the message loop. PollEvents drains the queued native
// messages without blocking and invokes the registered callbacks
// synchronously on the calling goroutine.
package window

// WindowDescription declares the window's title and client-area size.
// After creation the size tracks native resize notifications.
type WindowDescription struct {
	Title  string
	Width  int
	Height int
}

// Callback types, one per event kind. Every slot is optional: an unset
// slot means no interest, not an error.
type (
	// WindowResizeCallback receives the new client-area size.
	WindowResizeCallback func(width, height int)

	// WindowCloseCallback is consulted when the user requests the window to
	// close. Returning true allows the close; returning false vetoes it and
	// the window stays open. If no callback is set the close is allowed.
	WindowCloseCallback func() bool

	// WindowKeyCallback receives a portable key code and whether the key
	// went down (true) or up (false).
	WindowKeyCallback func(code KeyCode, pressed bool)

	// WindowMouseCallback receives a mouse button and whether it went down.
	WindowMouseCallback func(button MouseButton, pressed bool)

	// WindowMouseMoveCallback receives the cursor position in client-space
	// coordinates.
	WindowMouseMoveCallback func(x, y int)

	// WindowCharacterCallback receives translated character input,
	// including '\b' for delete-backward.
	WindowCharacterCallback func(character rune)
)

// WindowCallbacks holds at most one registered handler per event kind.
type WindowCallbacks struct {
	Resize    WindowResizeCallback
	Close     WindowCloseCallback
	Key       WindowKeyCallback
	Mouse     WindowMouseCallback
	MouseMove WindowMouseMoveCallback
	Character WindowCharacterCallback
}

// nativeWindow is the per-platform backend. Exactly one build-tagged
// implementation is compiled per target; newNativeWindow selects it.
type nativeWindow interface {
	// Create makes the native window for w's description and associates the
	// native handle with this backend so the event dispatch entry point can
	// recover it.
	Create(w *Window) error

	// Destroy releases the context, the drawing surface and the native
	// handle. Must be called exactly once.
	Destroy()

	// PollEvents drains all pending native messages without blocking,
	// dispatching each through the translation path.
	PollEvents()

	// RefreshScreen presents the back buffer. Precondition: a context is
	// current on the calling thread.
	RefreshScreen()

	// CreateContext negotiates a pixel format and creates an OpenGL context
	// of the requested version, legacy or forward-compatible core profile.
	// On failure no context is left current.
	CreateContext(major, minor int, legacy bool) error

	// GetExternalAddress resolves a GL function pointer for the current
	// context, falling back to a direct driver-library lookup. Returns 0 on
	// total failure; never fatal.
	GetExternalAddress(name string) uintptr

	// IsKeyDown queries live OS key state, independent of the event stream.
	IsKeyDown(code KeyCode) bool

	// ConvertNativeKeyCodes and GetNativeKeyCodes are total: unmapped input
	// yields KeyCodeUnknown / -1.
	ConvertNativeKeyCodes(native int) KeyCode
	GetNativeKeyCodes(code KeyCode) int
}

// Window is the externally visible handle. It exclusively owns one native
// backend, the window description and the registered callbacks.
type Window struct {
	description WindowDescription
	callbacks   WindowCallbacks
	native      nativeWindow
	running     bool
}

// Create builds the native window for the given description and returns
// the initialized Window with its running flag set. On failure the backend
// has already surfaced a diagnostic; the caller must abort startup.
func Create(description WindowDescription) (*Window, error) {
	return create(description, newNativeWindow())
}

func create(description WindowDescription, native nativeWindow) (*Window, error) {
	w := &Window{description: description, native: native}
	if err := native.Create(w); err != nil {
		return nil, err
	}
	w.running = true
	Logger().Info("created window",
		"title", description.Title,
		"width", description.Width,
		"height", description.Height)
	return w, nil
}

// Destroy releases the graphics context and the native window. The window
// must not be used afterwards; Destroy must be called exactly once.
func (w *Window) Destroy() {
	w.running = false
	w.native.Destroy()
	Logger().Info("destroyed window", "title", w.description.Title)
}

// GetIsRunning reports whether the window is still running.
func (w *Window) GetIsRunning() bool { return w.running }

// SetIsRunning sets the running state. The embedding application clears it
// on its own exit conditions.
func (w *Window) SetIsRunning(value bool) { w.running = value }

// CreateContext creates an OpenGL context for the window. The default
// request is a modern forward-compatible core profile; pass legacy to get
// a pre-3.x context. On failure no context is current and the caller must
// not issue draw calls.
func (w *Window) CreateContext(major, minor int, legacy bool) error {
	return w.native.CreateContext(major, minor, legacy)
}

// PollEvents drains pending native messages, invoking the registered
// callbacks synchronously. It returns promptly when nothing is queued.
func (w *Window) PollEvents() {
	if !w.running {
		return
	}
	w.native.PollEvents()
}

// SwapBuffers presents the back buffer. Precondition: a context is current
// on the calling thread (CreateContext succeeded and Destroy has not run).
func (w *Window) SwapBuffers() {
	w.native.RefreshScreen()
}

// GetProcAddress resolves a GL function pointer for the current context.
// Returns 0 if the name cannot be resolved.
func (w *Window) GetProcAddress(name string) uintptr {
	return w.native.GetExternalAddress(name)
}

// GetIsKeyDown reports live key state at call time, regardless of whether
// a key event was dispatched this frame.
func (w *Window) GetIsKeyDown(code KeyCode) bool {
	return w.native.IsKeyDown(code)
}

// SetWindowSize updates the stored description. It does not resize the
// native window; it is the bookkeeping half of the resize path.
func (w *Window) SetWindowSize(width, height int) {
	w.description.Width = width
	w.description.Height = height
}

// GetWindowDescription returns the current window description.
func (w *Window) GetWindowDescription() WindowDescription { return w.description }

// GetWindowCallbacks returns the registered callback set.
func (w *Window) GetWindowCallbacks() WindowCallbacks { return w.callbacks }

// Callback registration. Each setter replaces any previous registration;
// last writer wins.

func (w *Window) SetWindowResizeCallback(callback WindowResizeCallback) {
	w.callbacks.Resize = callback
}

func (w *Window) SetWindowCloseCallback(callback WindowCloseCallback) {
	w.callbacks.Close = callback
}

func (w *Window) SetWindowKeyCallback(callback WindowKeyCallback) {
	w.callbacks.Key = callback
}

func (w *Window) SetWindowMouseCallback(callback WindowMouseCallback) {
	w.callbacks.Mouse = callback
}

func (w *Window) SetWindowMouseMoveCallback(callback WindowMouseMoveCallback) {
	w.callbacks.MouseMove = callback
}

func (w *Window) SetWindowCharacterCallback(callback WindowCharacterCallback) {
	w.callbacks.Character = callback
}

// Dispatch helpers, called from the platform event-translation path. They
// run re-entrantly on the goroutine that called PollEvents.

// handleResize updates the stored description first so any code running
// inside the callback observes the new size.
func (w *Window) handleResize(width, height int) {
	w.SetWindowSize(width, height)
	if cb := w.callbacks.Resize; cb != nil {
		cb(width, height)
	}
}

// handleClose applies the close-veto contract: a registered callback gates
// the running flag, no callback means the close is allowed.
func (w *Window) handleClose() {
	if cb := w.callbacks.Close; cb != nil {
		if cb() {
			w.running = false
		}
		return
	}
	w.running = false
}

func (w *Window) handleKey(code KeyCode, pressed bool) {
	if cb := w.callbacks.Key; cb != nil {
		cb(code, pressed)
	}
}

func (w *Window) handleMouseButton(button MouseButton, pressed bool) {
	if cb := w.callbacks.Mouse; cb != nil {
		cb(button, pressed)
	}
}

func (w *Window) handleMouseMove(x, y int) {
	if cb := w.callbacks.MouseMove; cb != nil {
		cb(x, y)
	}
}

func (w *Window) handleCharacter(character rune) {
	if cb := w.callbacks.Character; cb != nil {
		cb(character)
	}
}

// markNotRunning is the destroy-notification path: the native window is
// already gone, so only the flag is cleared.
func (w *Window) markNotRunning() { w.running = false }
