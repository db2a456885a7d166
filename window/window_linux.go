//go:build linux

package window

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

const (
	glxRGBA         = 4
	glxDoubleBuffer = 5
	glxDepthSize    = 12
	glxNone         = 0

	// GLX_ARB_create_context attributes.
	glxContextMajorVersionArb         = 0x2091
	glxContextMinorVersionArb         = 0x2092
	glxContextFlagsArb                = 0x2094
	glxContextProfileMaskArb          = 0x9126
	glxContextCoreProfileBitArb       = 0x0001
	glxContextForwardCompatibleBitArb = 0x0002

	inputOutput = 1

	exposureMask        = 1 << 15
	structureNotifyMask = 1 << 17
	keyPressMask        = 1 << 0
	keyReleaseMask      = 1 << 1
	buttonPressMask     = 1 << 2
	buttonReleaseMask   = 1 << 3
	pointerMotionMask   = 1 << 6

	keyPress        = 2
	keyRelease      = 3
	buttonPress     = 4
	buttonRelease   = 5
	motionNotify    = 6
	destroyNotify   = 17
	configureNotify = 22
	clientMessage   = 33
)

type xVisualInfo struct {
	Visual       uintptr
	VisualID     uint
	Screen       int32
	Depth        int32
	Class        int32
	RedMask      uint64
	GreenMask    uint64
	BlueMask     uint64
	ColormapSize int32
	BitsPerRGB   int32
	MapEntries   int32
	pad          int32
}

type xSetWindowAttributes struct {
	BackgroundPixmap uintptr
	BackgroundPixel  uint64
	BorderPixmap     uint64
	BorderPixel      uint64
	BitGravity       int32
	WinGravity       int32
	BackingStore     int32
	BackingPlanes    uint64
	BackingPixel     uint64
	SaveUnder        int32
	EventMask        int64
	DoNotPropagate   int64
	OverrideRedirect int32
	Colormap         uintptr
	Cursor           uintptr
}

// Event layouts mirror the 64-bit Xlib structures.

type xKeyEvent struct {
	Type       int32
	_          int32
	Serial     uint64
	SendEvent  int32
	_          int32
	Display    uintptr
	Window     uintptr
	Root       uintptr
	Subwindow  uintptr
	Time       uint64
	X, Y       int32
	XRoot      int32
	YRoot      int32
	State      uint32
	Keycode    uint32
	SameScreen int32
}

type xButtonEvent struct {
	Type       int32
	_          int32
	Serial     uint64
	SendEvent  int32
	_          int32
	Display    uintptr
	Window     uintptr
	Root       uintptr
	Subwindow  uintptr
	Time       uint64
	X, Y       int32
	XRoot      int32
	YRoot      int32
	State      uint32
	Button     uint32
	SameScreen int32
}

type xMotionEvent struct {
	Type       int32
	_          int32
	Serial     uint64
	SendEvent  int32
	_          int32
	Display    uintptr
	Window     uintptr
	Root       uintptr
	Subwindow  uintptr
	Time       uint64
	X, Y       int32
	XRoot      int32
	YRoot      int32
	State      uint32
	IsHint     byte
	_          [3]byte
	SameScreen int32
}

type xConfigureEvent struct {
	Type             int32
	_                int32
	Serial           uint64
	SendEvent        int32
	_                int32
	Display          uintptr
	Event            uintptr
	Window           uintptr
	X, Y             int32
	Width, Height    int32
	BorderWidth      int32
	_                int32
	Above            uintptr
	OverrideRedirect int32
}

type xClientMessageEvent struct {
	Type        int32
	Serial      uint64
	SendEvent   int32
	Display     uintptr
	Window      uintptr
	MessageType uintptr
	Format      int32
	Data        [5]uint64
}

var (
	x11lib uintptr
	gllib  uintptr

	xOpenDisplay      func(*byte) uintptr
	xDefaultScreen    func(uintptr) int32
	xRootWindow       func(uintptr, int32) uintptr
	xCreateColormap   func(uintptr, uintptr, uintptr, int32) uintptr
	xCreateWindow     func(uintptr, uintptr, int32, int32, uint32, uint32, uint32, int32, uint32, uintptr, uint64, unsafe.Pointer) uintptr
	xMapWindow        func(uintptr, uintptr) int32
	xStoreName        func(uintptr, uintptr, *byte) int32
	xInternAtom       func(uintptr, *byte, int32) uintptr
	xSetWMProtocols   func(uintptr, uintptr, *uintptr, int32) int32
	xSelectInput      func(uintptr, uintptr, int64)
	xPending          func(uintptr) int32
	xNextEvent        func(uintptr, unsafe.Pointer)
	xDestroyWindow    func(uintptr, uintptr) int32
	xCloseDisplay     func(uintptr) int32
	xLookupKeysym     func(unsafe.Pointer, int32) uintptr
	xLookupString     func(unsafe.Pointer, *byte, int32, *uintptr, uintptr) int32
	xKeysymToKeycode  func(uintptr, uintptr) byte
	xQueryKeymap      func(uintptr, *byte) int32
	xFree             func(unsafe.Pointer) int32

	glxChooseVisual      func(uintptr, int32, *int32) *xVisualInfo
	glxChooseFBConfig    func(uintptr, int32, *int32, *int32) *uintptr
	glxCreateContext     func(uintptr, *xVisualInfo, uintptr, int32) uintptr
	glxMakeCurrent       func(uintptr, uintptr, uintptr) int32
	glxSwapBuffers       func(uintptr, uintptr)
	glxDestroyContext    func(uintptr, uintptr)
	glxGetProcAddressARB func(*byte) uintptr
)

// x11Windows maps each X window id to its owning backend so the event
// loop can recover the instance. Populated on create, erased on destroy;
// events for unknown ids are dropped on the floor the way a foreign
// handle's messages go to the default handler. Not thread-safe beyond
// single-threaded use.
var x11Windows = map[uintptr]*x11NativeWindow{}

// x11NativeWindow owns the display connection, the X window and the GLX
// context. One instance per Window.
type x11NativeWindow struct {
	window   *Window
	display  uintptr
	screen   int32
	handle   uintptr
	visual   *xVisualInfo
	ctx      uintptr
	wmDelete uintptr
}

func newNativeWindow() nativeWindow {
	return &x11NativeWindow{}
}

func (n *x11NativeWindow) Create(w *Window) error {
	runtime.LockOSThread()
	if err := ensureLibs(); err != nil {
		runtime.UnlockOSThread()
		alertf("Window Creation Failed", "%v", err)
		return err
	}

	n.window = w
	desc := w.GetWindowDescription()

	dpy := xOpenDisplay(nil)
	if dpy == 0 {
		runtime.UnlockOSThread()
		err := errors.New("XOpenDisplay failed")
		alertf("Window Creation Failed", "%v", err)
		return err
	}
	n.display = dpy
	n.screen = xDefaultScreen(dpy)
	root := xRootWindow(dpy, n.screen)

	// The visual has to be chosen before the window exists; the GLX
	// context created later must use the same visual.
	attrs := []int32{glxRGBA, glxDoubleBuffer, glxDepthSize, 24, glxNone}
	visual := glxChooseVisual(dpy, n.screen, &attrs[0])
	if visual == nil {
		xCloseDisplay(dpy)
		n.display = 0
		runtime.UnlockOSThread()
		err := errors.New("glXChooseVisual failed")
		alertf("Window Creation Failed", "%v", err)
		return err
	}
	n.visual = visual

	cmap := xCreateColormap(dpy, root, visual.Visual, 0)

	var swa xSetWindowAttributes
	swa.Colormap = cmap
	swa.EventMask = exposureMask | structureNotifyMask |
		keyPressMask | keyReleaseMask |
		buttonPressMask | buttonReleaseMask | pointerMotionMask

	const (
		cwBorderPixel = 1 << 3
		cwEventMask   = 1 << 11
		cwColormap    = 1 << 13
	)

	win := xCreateWindow(
		dpy, root,
		0, 0,
		uint32(desc.Width), uint32(desc.Height),
		0,
		visual.Depth,
		inputOutput,
		visual.Visual,
		cwBorderPixel|cwColormap|cwEventMask,
		unsafe.Pointer(&swa),
	)
	if win == 0 {
		xCloseDisplay(dpy)
		n.display = 0
		runtime.UnlockOSThread()
		err := errors.New("XCreateWindow failed")
		alertf("Window Creation Failed", "%v", err)
		return err
	}
	n.handle = win
	x11Windows[win] = n

	xSelectInput(dpy, win, swa.EventMask)

	titleBytes := append([]byte(desc.Title), 0)
	xStoreName(dpy, win, &titleBytes[0])
	xMapWindow(dpy, win)

	n.wmDelete = xInternAtom(dpy, cString("WM_DELETE_WINDOW"), 0)
	xSetWMProtocols(dpy, win, &n.wmDelete, 1)

	return nil
}

func (n *x11NativeWindow) Destroy() {
	if n.ctx != 0 {
		glxMakeCurrent(n.display, 0, 0)
		glxDestroyContext(n.display, n.ctx)
		n.ctx = 0
	}
	if n.handle != 0 {
		delete(x11Windows, n.handle)
		xDestroyWindow(n.display, n.handle)
		n.handle = 0
	}
	if n.display != 0 {
		xCloseDisplay(n.display)
		n.display = 0
	}
	runtime.UnlockOSThread()
}

func (n *x11NativeWindow) PollEvents() {
	for xPending(n.display) > 0 {
		var ev [192]byte
		xNextEvent(n.display, unsafe.Pointer(&ev[0]))
		n.translateEvent(&ev)
	}
}

// translateEvent maps one X event onto the owning Window's callbacks. The
// owner is recovered through the window-id registry; events for ids
// outside it (a window mid-teardown) are ignored.
func (n *x11NativeWindow) translateEvent(ev *[192]byte) {
	etype := *(*int32)(unsafe.Pointer(&ev[0]))

	switch etype {
	case configureNotify:
		ce := (*xConfigureEvent)(unsafe.Pointer(&ev[0]))
		owner, ok := x11Windows[ce.Window]
		if !ok {
			return
		}
		desc := owner.window.GetWindowDescription()
		// ConfigureNotify also fires for moves; only real size changes
		// reach the resize path.
		if int(ce.Width) != desc.Width || int(ce.Height) != desc.Height {
			owner.window.handleResize(int(ce.Width), int(ce.Height))
		}

	case keyPress, keyRelease:
		ke := (*xKeyEvent)(unsafe.Pointer(&ev[0]))
		owner, ok := x11Windows[ke.Window]
		if !ok {
			return
		}
		keysym := xLookupKeysym(unsafe.Pointer(ke), 0)
		code := owner.ConvertNativeKeyCodes(int(keysym))
		owner.window.handleKey(code, etype == keyPress)

		if etype == keyPress {
			var buf [8]byte
			var sym uintptr
			count := xLookupString(unsafe.Pointer(ke), &buf[0], int32(len(buf)), &sym, 0)
			for _, b := range buf[:count] {
				// '\b' passes through so text consumers can delete backward.
				if b >= 0x20 || b == '\b' {
					owner.window.handleCharacter(rune(b))
				}
			}
		}

	case buttonPress, buttonRelease:
		be := (*xButtonEvent)(unsafe.Pointer(&ev[0]))
		owner, ok := x11Windows[be.Window]
		if !ok {
			return
		}
		var button MouseButton
		switch be.Button {
		case 1:
			button = MouseButtonLeft
		case 3:
			button = MouseButtonRight
		default:
			return
		}
		owner.window.handleMouseButton(button, etype == buttonPress)

	case motionNotify:
		me := (*xMotionEvent)(unsafe.Pointer(&ev[0]))
		owner, ok := x11Windows[me.Window]
		if !ok {
			return
		}
		owner.window.handleMouseMove(int(me.X), int(me.Y))

	case clientMessage:
		cm := (*xClientMessageEvent)(unsafe.Pointer(&ev[0]))
		owner, ok := x11Windows[cm.Window]
		if !ok {
			return
		}
		if cm.Format == 32 && cm.Data[0] == uint64(owner.wmDelete) {
			owner.window.handleClose()
		}

	case destroyNotify:
		ce := (*xConfigureEvent)(unsafe.Pointer(&ev[0]))
		if owner, ok := x11Windows[ce.Window]; ok {
			delete(x11Windows, ce.Window)
			owner.window.markNotRunning()
		}
	}
}

func (n *x11NativeWindow) RefreshScreen() {
	if n.display != 0 && n.handle != 0 {
		glxSwapBuffers(n.display, n.handle)
	}
}

func (n *x11NativeWindow) CreateContext(major, minor int, legacy bool) error {
	if legacy {
		ctx := glxCreateContext(n.display, n.visual, 0, 1)
		if ctx == 0 {
			err := errors.New("glXCreateContext failed")
			alertf("Context Creation Failed", "%v", err)
			return err
		}
		if glxMakeCurrent(n.display, n.handle, ctx) == 0 {
			glxDestroyContext(n.display, ctx)
			err := errors.New("glXMakeCurrent failed")
			alertf("Context Creation Failed", "%v", err)
			return err
		}
		n.ctx = ctx
		Logger().Info("created OpenGL context", "legacy", true)
		return nil
	}

	// Throwaway context so the extension entry point resolves against a
	// live GL connection, mirroring the WGL bootstrap.
	tempCtx := glxCreateContext(n.display, n.visual, 0, 1)
	if tempCtx == 0 {
		err := errors.New("glXCreateContext (temp) failed")
		alertf("Context Creation Failed", "%v", err)
		return err
	}
	glxMakeCurrent(n.display, n.handle, tempCtx)

	createContextAttribs := n.GetExternalAddress("glXCreateContextAttribsARB")
	if createContextAttribs == 0 {
		glxMakeCurrent(n.display, 0, 0)
		glxDestroyContext(n.display, tempCtx)
		err := errors.New("glXCreateContextAttribsARB is not available")
		alertf("Context Creation Failed", "%v", err)
		return err
	}

	var count int32
	configs := glxChooseFBConfig(n.display, n.screen, nil, &count)
	if configs == nil || count == 0 {
		glxMakeCurrent(n.display, 0, 0)
		glxDestroyContext(n.display, tempCtx)
		err := errors.New("glXChooseFBConfig returned no configs")
		alertf("Context Creation Failed", "%v", err)
		return err
	}
	config := *configs
	xFree(unsafe.Pointer(configs))

	attribs := []int32{
		glxContextMajorVersionArb, int32(major),
		glxContextMinorVersionArb, int32(minor),
		glxContextProfileMaskArb, glxContextCoreProfileBitArb,
		glxContextFlagsArb, glxContextForwardCompatibleBitArb,
		glxNone,
	}
	ctx, _, _ := purego.SyscallN(
		createContextAttribs,
		n.display,
		config,
		0, // share context
		1, // direct rendering
		uintptr(unsafe.Pointer(&attribs[0])),
	)

	glxMakeCurrent(n.display, 0, 0)
	glxDestroyContext(n.display, tempCtx)

	if ctx == 0 {
		err := fmt.Errorf("creating OpenGL %d.%d core context failed", major, minor)
		alertf("Context Creation Failed", "%v", err)
		return err
	}
	if glxMakeCurrent(n.display, n.handle, ctx) == 0 {
		glxDestroyContext(n.display, ctx)
		err := errors.New("glXMakeCurrent failed")
		alertf("Context Creation Failed", "%v", err)
		return err
	}

	n.ctx = ctx
	Logger().Info("created OpenGL context",
		"major", major, "minor", minor, "legacy", false)
	return nil
}

func (n *x11NativeWindow) GetExternalAddress(name string) uintptr {
	if addr := glxGetProcAddressARB(cString(name)); addr != 0 {
		return addr
	}
	// Core entry points may only be visible as direct libGL exports.
	addr, err := purego.Dlsym(gllib, name)
	if err != nil {
		return 0
	}
	return addr
}

func (n *x11NativeWindow) IsKeyDown(code KeyCode) bool {
	native := n.GetNativeKeyCodes(code)
	if native < 0 || n.display == 0 {
		return false
	}
	kc := xKeysymToKeycode(n.display, uintptr(native))
	if kc == 0 {
		return false
	}
	var keys [32]byte
	xQueryKeymap(n.display, &keys[0])
	return keys[kc/8]&(1<<(kc%8)) != 0
}

func (n *x11NativeWindow) ConvertNativeKeyCodes(native int) KeyCode {
	return convertNativeKeyCode(native)
}

func (n *x11NativeWindow) GetNativeKeyCodes(code KeyCode) int {
	return nativeKeyCode(code)
}

func ensureLibs() error {
	var err error
	if x11lib == 0 {
		x11lib, err = purego.Dlopen("libX11.so.6", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			return err
		}
		registerX11()
	}
	if gllib == 0 {
		gllib, err = purego.Dlopen("libGL.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			return err
		}
		registerGLX()
	}
	return nil
}

func registerX11() {
	purego.RegisterLibFunc(&xOpenDisplay, x11lib, "XOpenDisplay")
	purego.RegisterLibFunc(&xDefaultScreen, x11lib, "XDefaultScreen")
	purego.RegisterLibFunc(&xRootWindow, x11lib, "XRootWindow")
	purego.RegisterLibFunc(&xCreateColormap, x11lib, "XCreateColormap")
	purego.RegisterLibFunc(&xCreateWindow, x11lib, "XCreateWindow")
	purego.RegisterLibFunc(&xMapWindow, x11lib, "XMapWindow")
	purego.RegisterLibFunc(&xStoreName, x11lib, "XStoreName")
	purego.RegisterLibFunc(&xInternAtom, x11lib, "XInternAtom")
	purego.RegisterLibFunc(&xSetWMProtocols, x11lib, "XSetWMProtocols")
	purego.RegisterLibFunc(&xSelectInput, x11lib, "XSelectInput")
	purego.RegisterLibFunc(&xPending, x11lib, "XPending")
	purego.RegisterLibFunc(&xNextEvent, x11lib, "XNextEvent")
	purego.RegisterLibFunc(&xDestroyWindow, x11lib, "XDestroyWindow")
	purego.RegisterLibFunc(&xCloseDisplay, x11lib, "XCloseDisplay")
	purego.RegisterLibFunc(&xLookupKeysym, x11lib, "XLookupKeysym")
	purego.RegisterLibFunc(&xLookupString, x11lib, "XLookupString")
	purego.RegisterLibFunc(&xKeysymToKeycode, x11lib, "XKeysymToKeycode")
	purego.RegisterLibFunc(&xQueryKeymap, x11lib, "XQueryKeymap")
	purego.RegisterLibFunc(&xFree, x11lib, "XFree")
}

func registerGLX() {
	purego.RegisterLibFunc(&glxChooseVisual, gllib, "glXChooseVisual")
	purego.RegisterLibFunc(&glxChooseFBConfig, gllib, "glXChooseFBConfig")
	purego.RegisterLibFunc(&glxCreateContext, gllib, "glXCreateContext")
	purego.RegisterLibFunc(&glxMakeCurrent, gllib, "glXMakeCurrent")
	purego.RegisterLibFunc(&glxSwapBuffers, gllib, "glXSwapBuffers")
	purego.RegisterLibFunc(&glxDestroyContext, gllib, "glXDestroyContext")
	purego.RegisterLibFunc(&glxGetProcAddressARB, gllib, "glXGetProcAddressARB")
}

func cString(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}
