//go:build windows

package window

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	csHRedraw = 0x0002
	csVRedraw = 0x0001

	wsOverlappedWindow = 0x00CF0000
	swShow             = 5

	wmSize        = 0x0005
	wmClose       = 0x0010
	wmDestroy     = 0x0002
	wmKeyDown     = 0x0100
	wmKeyUp       = 0x0101
	wmChar        = 0x0102
	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	pmRemove      = 0x0001

	pfdTypeRGBA      = 0
	pfdMainPlane     = 0
	pfdDrawToWindow  = 0x00000004
	pfdSupportOpenGL = 0x00000020
	pfdDoubleBuffer  = 0x00000001

	cwUseDefault = 0x80000000

	// GetAsyncKeyState: high-order bit set while the key is down.
	keyDownMask = 0x8000

	// WGL_ARB_create_context attributes.
	wglContextMajorVersionArb         = 0x2091
	wglContextMinorVersionArb         = 0x2092
	wglContextFlagsArb                = 0x2094
	wglContextProfileMaskArb          = 0x9126
	wglContextCoreProfileBitArb       = 0x0001
	wglContextForwardCompatibleBitArb = 0x0002
)

type (
	hwnd  = windows.Handle
	hdc   = windows.Handle
	hglrc = windows.Handle
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         windows.Handle
	hCursor       windows.Handle
	hbrBackground windows.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       windows.Handle
}

type winMsg struct {
	hwnd     hwnd
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       winPoint
	lPrivate uint32
}

type winPoint struct {
	x int32
	y int32
}

type winRect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

// Mirrors PIXELFORMATDESCRIPTOR (must be 40 bytes).
type pixelFormatDescriptor struct {
	nSize           uint16
	nVersion        uint16
	dwFlags         uint32
	iPixelType      byte
	cColorBits      byte
	cRedBits        byte
	cRedShift       byte
	cGreenBits      byte
	cGreenShift     byte
	cBlueBits       byte
	cBlueShift      byte
	cAlphaBits      byte
	cAlphaShift     byte
	cAccumBits      byte
	cAccumRedBits   byte
	cAccumGreenBits byte
	cAccumBlueBits  byte
	cAccumAlphaBits byte
	cDepthBits      byte
	cStencilBits    byte
	cAuxBuffers     byte
	iLayerType      byte
	bReserved       byte
	dwLayerMask     uint32
	dwVisibleMask   uint32
	dwDamageMask    uint32
}

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	opengl32 = windows.NewLazySystemDLL("opengl32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClassEx  = user32.NewProc("RegisterClassExW")
	procUnregisterClass  = user32.NewProc("UnregisterClassW")
	procCreateWindowEx   = user32.NewProc("CreateWindowExW")
	procDefWindowProc    = user32.NewProc("DefWindowProcW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procShowWindow       = user32.NewProc("ShowWindow")
	procUpdateWindow     = user32.NewProc("UpdateWindow")
	procAdjustWindowRect = user32.NewProc("AdjustWindowRect")
	procPeekMessage      = user32.NewProc("PeekMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessage  = user32.NewProc("DispatchMessageW")
	procPostQuitMessage  = user32.NewProc("PostQuitMessage")
	procGetDC            = user32.NewProc("GetDC")
	procReleaseDC        = user32.NewProc("ReleaseDC")
	procLoadCursor       = user32.NewProc("LoadCursorW")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")

	procChoosePixelFormat   = gdi32.NewProc("ChoosePixelFormat")
	procDescribePixelFormat = gdi32.NewProc("DescribePixelFormat")
	procGetPixelFormat      = gdi32.NewProc("GetPixelFormat")
	procSetPixelFormat      = gdi32.NewProc("SetPixelFormat")
	procSwapBuffers         = gdi32.NewProc("SwapBuffers")

	procWglCreateContext  = opengl32.NewProc("wglCreateContext")
	procWglMakeCurrent    = opengl32.NewProc("wglMakeCurrent")
	procWglDeleteContext  = opengl32.NewProc("wglDeleteContext")
	procWglGetProcAddress = opengl32.NewProc("wglGetProcAddress")

	procGetModuleHandle = kernel32.NewProc("GetModuleHandleW")
	procSetLastError    = kernel32.NewProc("SetLastError")
	procGetLastError    = kernel32.NewProc("GetLastError")
)

var (
	// Unique per-process so two processes embedding the library never race
	// on the class name.
	windowClassName = fmt.Sprintf("SwindowWindowClass_%d", os.Getpid())
	windowClass     = syscall.StringToUTF16Ptr(windowClassName)

	// classRefs counts live windows of the class: the class is registered
	// when the first window is created and unregistered when the last one
	// is destroyed. Not thread-safe beyond single-threaded use.
	classRefs int

	// activeWindows maps each native handle to its owning backend so the
	// shared wndProc can recover the instance. Populated right after
	// CreateWindowEx, erased on destroy; messages for handles outside the
	// map go to the default handler.
	activeWindows = map[hwnd]*win32NativeWindow{}

	wndProcCallback = windows.NewCallback(wndProc)
)

func lastError() syscall.Errno {
	e, _, _ := procGetLastError.Call()
	return syscall.Errno(e)
}

func clearLastError() {
	procSetLastError.Call(0)
}

func winErr(op string) error {
	e := lastError()
	if e == 0 {
		return fmt.Errorf("%s failed", op)
	}
	return fmt.Errorf("%s failed: %w", op, e)
}

// win32NativeWindow owns the Win32 window handle, its device context and
// the WGL context. One instance per Window.
type win32NativeWindow struct {
	window   *Window
	hwnd     hwnd
	hdc      hdc
	ctx      hglrc
	instance windows.Handle
}

func newNativeWindow() nativeWindow {
	return &win32NativeWindow{}
}

func (n *win32NativeWindow) Create(w *Window) error {
	runtime.LockOSThread()

	n.window = w
	n.instance = moduleHandle()

	if err := retainWindowClass(); err != nil {
		runtime.UnlockOSThread()
		alertf("Window Creation Failed", "%v", err)
		return err
	}

	desc := w.GetWindowDescription()

	// The description gives the client-area size; grow the outer rect so
	// the client area comes out as requested.
	r := winRect{right: int32(desc.Width), bottom: int32(desc.Height)}
	procAdjustWindowRect.Call(
		uintptr(unsafe.Pointer(&r)),
		wsOverlappedWindow,
		0,
	)

	titlePtr, _ := windows.UTF16PtrFromString(desc.Title)

	clearLastError()
	ret, _, _ := procCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(windowClass)),
		uintptr(unsafe.Pointer(titlePtr)),
		wsOverlappedWindow,
		cwUseDefault,
		cwUseDefault,
		uintptr(r.right-r.left),
		uintptr(r.bottom-r.top),
		0,
		0,
		uintptr(n.instance),
		0,
	)
	if ret == 0 {
		err := winErr("CreateWindowExW")
		releaseWindowClass()
		runtime.UnlockOSThread()
		alertf("Window Creation Failed", "%v", err)
		return err
	}
	n.hwnd = hwnd(ret)

	// Messages sent during CreateWindowEx arrive before this insertion and
	// are handled by the default handler.
	activeWindows[n.hwnd] = n

	clearLastError()
	dcRet, _, _ := procGetDC.Call(uintptr(n.hwnd))
	if dcRet == 0 {
		err := winErr("GetDC")
		delete(activeWindows, n.hwnd)
		procDestroyWindow.Call(uintptr(n.hwnd))
		releaseWindowClass()
		runtime.UnlockOSThread()
		alertf("Window Creation Failed", "%v", err)
		return err
	}
	n.hdc = hdc(dcRet)

	procShowWindow.Call(uintptr(n.hwnd), swShow)
	procUpdateWindow.Call(uintptr(n.hwnd))

	return nil
}

func (n *win32NativeWindow) Destroy() {
	if n.ctx != 0 {
		procWglMakeCurrent.Call(0, 0)
		procWglDeleteContext.Call(uintptr(n.ctx))
		n.ctx = 0
	}
	if n.hdc != 0 && n.hwnd != 0 {
		procReleaseDC.Call(uintptr(n.hwnd), uintptr(n.hdc))
		n.hdc = 0
	}
	if n.hwnd != 0 {
		delete(activeWindows, n.hwnd)
		procDestroyWindow.Call(uintptr(n.hwnd))
		n.hwnd = 0
		releaseWindowClass()
	}
	runtime.UnlockOSThread()
}

func (n *win32NativeWindow) PollEvents() {
	var m winMsg
	for {
		ret, _, _ := procPeekMessage.Call(
			uintptr(unsafe.Pointer(&m)),
			0,
			0,
			0,
			pmRemove,
		)
		if ret == 0 {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
}

func (n *win32NativeWindow) RefreshScreen() {
	if n.hdc != 0 {
		procSwapBuffers.Call(uintptr(n.hdc))
	}
}

func (n *win32NativeWindow) CreateContext(major, minor int, legacy bool) error {
	if unsafe.Sizeof(pixelFormatDescriptor{}) != 40 {
		return fmt.Errorf(
			"PIXELFORMATDESCRIPTOR size mismatch: got %d, want 40",
			unsafe.Sizeof(pixelFormatDescriptor{}),
		)
	}

	if _, _, err := chooseAndSetPixelFormat(n.hdc); err != nil {
		alertf("Context Creation Failed", "%v", err)
		return err
	}

	// Throwaway context: wglGetProcAddress only resolves extension entry
	// points while some context is current.
	clearLastError()
	tempCtx, _, _ := procWglCreateContext.Call(uintptr(n.hdc))
	if tempCtx == 0 {
		err := winErr("wglCreateContext (temp)")
		alertf("Context Creation Failed", "%v", err)
		return err
	}
	clearLastError()
	if ret, _, _ := procWglMakeCurrent.Call(uintptr(n.hdc), tempCtx); ret == 0 {
		err := winErr("wglMakeCurrent (temp)")
		procWglDeleteContext.Call(tempCtx)
		alertf("Context Creation Failed", "%v", err)
		return err
	}

	createContextAttribs := n.GetExternalAddress("wglCreateContextAttribsARB")
	if createContextAttribs == 0 {
		procWglMakeCurrent.Call(0, 0)
		procWglDeleteContext.Call(tempCtx)
		err := errors.New("wglCreateContextAttribsARB is not available")
		alertf("Context Creation Failed", "%v", err)
		return err
	}

	var ctx uintptr
	if legacy {
		clearLastError()
		ctx, _, _ = procWglCreateContext.Call(uintptr(n.hdc))
	} else {
		attribs := []int32{
			wglContextMajorVersionArb, int32(major),
			wglContextMinorVersionArb, int32(minor),
			wglContextProfileMaskArb, wglContextCoreProfileBitArb,
			wglContextFlagsArb, wglContextForwardCompatibleBitArb,
			0,
		}
		clearLastError()
		ctx, _, _ = syscall.SyscallN(
			createContextAttribs,
			uintptr(n.hdc),
			0, // share context
			uintptr(unsafe.Pointer(&attribs[0])),
		)
	}

	procWglMakeCurrent.Call(0, 0)
	procWglDeleteContext.Call(tempCtx)

	if ctx == 0 {
		err := fmt.Errorf("creating OpenGL %d.%d context (legacy=%v): %w",
			major, minor, legacy, winErr("wglCreateContext"))
		alertf("Context Creation Failed", "%v", err)
		return err
	}

	clearLastError()
	if ret, _, _ := procWglMakeCurrent.Call(uintptr(n.hdc), ctx); ret == 0 {
		err := winErr("wglMakeCurrent")
		procWglDeleteContext.Call(ctx)
		alertf("Context Creation Failed", "%v", err)
		return err
	}

	n.ctx = hglrc(ctx)
	Logger().Info("created OpenGL context",
		"major", major, "minor", minor, "legacy", legacy)
	return nil
}

func (n *win32NativeWindow) GetExternalAddress(name string) uintptr {
	procName := append([]byte(name), 0)
	addr, _, _ := procWglGetProcAddress.Call(uintptr(unsafe.Pointer(&procName[0])))
	// wglGetProcAddress reports failure as 0, 1, 2, 3 or -1.
	if addr > 3 && addr != ^uintptr(0) {
		return addr
	}
	// Core 1.x entry points live in opengl32.dll itself.
	p := opengl32.NewProc(name)
	if p.Find() != nil {
		return 0
	}
	return p.Addr()
}

func (n *win32NativeWindow) IsKeyDown(code KeyCode) bool {
	native := n.GetNativeKeyCodes(code)
	if native < 0 {
		return false
	}
	state, _, _ := procGetAsyncKeyState.Call(uintptr(native))
	return state&keyDownMask != 0
}

func (n *win32NativeWindow) ConvertNativeKeyCodes(native int) KeyCode {
	return convertNativeKeyCode(native)
}

func (n *win32NativeWindow) GetNativeKeyCodes(code KeyCode) int {
	return nativeKeyCode(code)
}

func retainWindowClass() error {
	if classRefs > 0 {
		classRefs++
		return nil
	}

	wc := wndClassEx{
		cbSize:        uint32(unsafe.Sizeof(wndClassEx{})),
		style:         csHRedraw | csVRedraw,
		lpfnWndProc:   wndProcCallback,
		hInstance:     moduleHandle(),
		hCursor:       loadCursor(),
		lpszClassName: windowClass,
	}

	clearLastError()
	ret, _, _ := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc)))
	if ret == 0 {
		return winErr("RegisterClassExW")
	}
	classRefs = 1
	return nil
}

func releaseWindowClass() {
	if classRefs == 0 {
		return
	}
	classRefs--
	if classRefs == 0 {
		procUnregisterClass.Call(
			uintptr(unsafe.Pointer(windowClass)),
			uintptr(moduleHandle()),
		)
	}
}

func chooseAndSetPixelFormat(dc hdc) (int32, pixelFormatDescriptor, error) {
	desired := pixelFormatDescriptor{
		nSize:        uint16(unsafe.Sizeof(pixelFormatDescriptor{})),
		nVersion:     1,
		dwFlags:      pfdDrawToWindow | pfdSupportOpenGL | pfdDoubleBuffer,
		iPixelType:   pfdTypeRGBA,
		cColorBits:   32,
		cDepthBits:   24,
		cStencilBits: 8,
		iLayerType:   pfdMainPlane,
	}

	// Prefer ChoosePixelFormat; then set using the *described* PFD for
	// that index.
	clearLastError()
	pf, _, _ := procChoosePixelFormat.Call(
		uintptr(dc),
		uintptr(unsafe.Pointer(&desired)),
	)
	if pf == 0 {
		return 0, pixelFormatDescriptor{}, winErr("ChoosePixelFormat")
	}

	var chosen pixelFormatDescriptor
	clearLastError()
	r, _, _ := procDescribePixelFormat.Call(
		uintptr(dc),
		pf,
		uintptr(unsafe.Sizeof(chosen)),
		uintptr(unsafe.Pointer(&chosen)),
	)
	if r == 0 {
		return 0, pixelFormatDescriptor{}, winErr("DescribePixelFormat")
	}

	const requiredFlags = pfdDrawToWindow | pfdSupportOpenGL | pfdDoubleBuffer
	if (chosen.dwFlags&requiredFlags) != requiredFlags ||
		chosen.iPixelType != pfdTypeRGBA ||
		chosen.cColorBits < 24 {
		// Fallback: strict enumeration to find a usable OpenGL format.
		return enumAndSetPixelFormat(dc, desired)
	}

	clearLastError()
	ok, _, _ := procSetPixelFormat.Call(
		uintptr(dc),
		pf,
		uintptr(unsafe.Pointer(&chosen)),
	)
	if ok == 0 {
		return 0, pixelFormatDescriptor{}, fmt.Errorf(
			"SetPixelFormat failed for index %d: %w",
			pf,
			winErr("SetPixelFormat"),
		)
	}

	clearLastError()
	got, _, _ := procGetPixelFormat.Call(uintptr(dc))
	if got == 0 {
		return 0, pixelFormatDescriptor{}, errors.New(
			"GetPixelFormat returned 0 after SetPixelFormat",
		)
	}
	if got != pf {
		return 0, pixelFormatDescriptor{}, fmt.Errorf(
			"GetPixelFormat mismatch: got=%d want=%d",
			got,
			pf,
		)
	}

	return int32(pf), chosen, nil
}

func enumAndSetPixelFormat(
	dc hdc,
	desired pixelFormatDescriptor,
) (int32, pixelFormatDescriptor, error) {
	var pfd pixelFormatDescriptor

	clearLastError()
	maxFormats, _, _ := procDescribePixelFormat.Call(
		uintptr(dc),
		1,
		uintptr(unsafe.Sizeof(pfd)),
		uintptr(unsafe.Pointer(&pfd)),
	)
	if maxFormats == 0 {
		return 0, pixelFormatDescriptor{}, winErr("DescribePixelFormat(count)")
	}

	var chosenFormat uintptr
	var chosenPFD pixelFormatDescriptor

	for i := uintptr(1); i <= maxFormats; i++ {
		clearLastError()
		ret, _, _ := procDescribePixelFormat.Call(
			uintptr(dc),
			i,
			uintptr(unsafe.Sizeof(pfd)),
			uintptr(unsafe.Pointer(&pfd)),
		)
		if ret == 0 {
			continue
		}

		const requiredFlags = pfdDrawToWindow | pfdSupportOpenGL | pfdDoubleBuffer
		if (pfd.dwFlags & requiredFlags) != requiredFlags {
			continue
		}
		if pfd.iPixelType != pfdTypeRGBA {
			continue
		}
		if pfd.cColorBits < desired.cColorBits {
			continue
		}
		if pfd.cDepthBits < desired.cDepthBits {
			continue
		}
		if pfd.cStencilBits < desired.cStencilBits {
			continue
		}
		if pfd.iLayerType != pfdMainPlane {
			continue
		}

		chosenFormat = i
		chosenPFD = pfd
		break
	}

	if chosenFormat == 0 {
		return 0, pixelFormatDescriptor{}, errors.New(
			"failed to find a suitable OpenGL pixel format",
		)
	}

	clearLastError()
	ok, _, _ := procSetPixelFormat.Call(
		uintptr(dc),
		chosenFormat,
		uintptr(unsafe.Pointer(&chosenPFD)),
	)
	if ok == 0 {
		return 0, pixelFormatDescriptor{}, winErr("SetPixelFormat(enum)")
	}

	return int32(chosenFormat), chosenPFD, nil
}

// wndProc receives every message for every window of the class. It
// recovers the owning backend through the handle registry; messages that
// predate registration, or that belong to a foreign handle, fall through
// to the default handler.
func wndProc(wnd, message, wParam, lParam uintptr) uintptr {
	n, ok := activeWindows[hwnd(wnd)]
	if !ok || n.window == nil {
		ret, _, _ := procDefWindowProc.Call(wnd, message, wParam, lParam)
		return ret
	}

	switch message {
	case wmSize:
		width := int(uint16(lParam))
		height := int(uint16(lParam >> 16))
		n.window.handleResize(width, height)

	case wmChar:
		// Backspace arrives as the control character '\b' and is forwarded
		// as-is so text consumers can delete backward.
		n.window.handleCharacter(rune(wParam))

	case wmKeyDown, wmKeyUp:
		code := n.ConvertNativeKeyCodes(int(wParam))
		n.window.handleKey(code, message == wmKeyDown)

	case wmLButtonDown, wmLButtonUp:
		n.window.handleMouseButton(MouseButtonLeft, message == wmLButtonDown)

	case wmRButtonDown, wmRButtonUp:
		n.window.handleMouseButton(MouseButtonRight, message == wmRButtonDown)

	case wmMouseMove:
		x := int(int16(uint16(lParam)))
		y := int(int16(uint16(lParam >> 16)))
		n.window.handleMouseMove(x, y)

	case wmClose:
		// The close callback may veto; the native window is only destroyed
		// by an explicit Destroy.
		n.window.handleClose()
		return 0

	case wmDestroy:
		delete(activeWindows, hwnd(wnd))
		n.window.markNotRunning()
		procPostQuitMessage.Call(0)
		return 0
	}

	ret, _, _ := procDefWindowProc.Call(wnd, message, wParam, lParam)
	return ret
}

func loadCursor() windows.Handle {
	const idcArrow = 32512
	ret, _, _ := procLoadCursor.Call(0, uintptr(idcArrow))
	return windows.Handle(ret)
}

func moduleHandle() windows.Handle {
	h, _, _ := procGetModuleHandle.Call(0)
	return windows.Handle(h)
}
