// Package gl loads the fixed-function OpenGL entry points used by the
// render package from the platform's driver library.
package gl

import "unsafe"

const (
	// ColorBufferBit is a mask used with Clear to clear the color buffer.
	ColorBufferBit = 0x00004000
	// DepthBufferBit is a mask used with Clear to clear the depth buffer.
	DepthBufferBit = 0x00000100

	// Blending capability and factors.
	Blend            = 0x0BE2
	SrcAlpha         = 0x0302
	OneMinusSrcAlpha = 0x0303

	// Quads is the legacy primitive type for drawing quadrilaterals.
	Quads = 0x0007

	// Projection selects the projection matrix stack for MatrixMode.
	Projection = 0x1701
	// ModelView selects the model-view matrix stack for MatrixMode.
	ModelView = 0x1700

	// GetString parameters.
	//
	// Vendor returns the company responsible for the GL implementation.
	Vendor = 0x1F00
	// Version returns the GL version string of the current context.
	Version = 0x1F02
)

// OpenGL describes the subset of OpenGL entry points used by this module.
//
// Implementations typically wrap platform-specific GL bindings. All methods
// operate on the context that is current for the calling thread; calling them
// with no context current is undefined.
type OpenGL interface {
	// ClearColor sets the clear color used by Clear when clearing the color buffer.
	ClearColor(r, g, b, a float32)

	// Clear clears buffers to preset values (e.g., ColorBufferBit).
	Clear(mask uint32)

	// Viewport sets the affine transformation of x and y from normalized device
	// coordinates to window coordinates.
	Viewport(x, y, width, height int32)

	// Enable enables a server-side GL capability (e.g., Blend).
	Enable(cap uint32)

	// Disable disables a server-side GL capability.
	Disable(cap uint32)

	// BlendFunc specifies the pixel arithmetic for blending (e.g., SrcAlpha and
	// OneMinusSrcAlpha).
	BlendFunc(sfactor, dfactor uint32)

	// MatrixMode sets which matrix stack is the target for subsequent matrix
	// operations (e.g., Projection or ModelView).
	MatrixMode(mode uint32)

	// LoadIdentity replaces the current matrix with the identity matrix.
	LoadIdentity()

	// Ortho multiplies the current matrix by an orthographic projection matrix.
	Ortho(left, right, bottom, top, zNear, zFar float64)

	// PushMatrix pushes the current matrix onto the active matrix stack.
	PushMatrix()

	// PopMatrix pops the active matrix stack, restoring the previous matrix.
	PopMatrix()

	// Translatef multiplies the current matrix by a translation matrix.
	Translatef(x, y, z float32)

	// Scalef multiplies the current matrix by a general scaling matrix.
	Scalef(x, y, z float32)

	// Color4f sets the current color.
	Color4f(r, g, b, a float32)

	// Begin begins specifying vertices for a primitive or a group of like
	// primitives.
	//
	// This is part of OpenGL's legacy immediate mode API.
	Begin(mode uint32)

	// End marks the end of vertex specification started by Begin.
	End()

	// Vertex3f specifies a vertex.
	Vertex3f(x, y, z float32)

	// GetString returns a string describing a GL property for the current context.
	//
	// Common names are Vendor and Version.
	// If the name is not recognized or no context is current, implementations may
	// return the empty string.
	GetString(name uint32) string
}

func gostring(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var bytes []byte
	for p := ptr; *p != 0; p = (*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(p)) + 1)) {
		bytes = append(bytes, *p)
	}
	return string(bytes)
}
