// Package render provides a small fixed-function 2D drawing layer on top of
// the OpenGL context owned by a window.
package render

import (
	"fmt"

	"github.com/swindow/swindow/internal/gl"
)

// Colour is an RGBA colour with components in [0, 1].
type Colour struct {
	R, G, B, A float32
}

// ColourWhite is the default quad colour.
var ColourWhite = Colour{R: 1, G: 1, B: 1, A: 1}

// Context issues fixed-function GL commands against whichever GL context is
// current on the calling thread. Create one after the window's context has
// been created and made current.
type Context struct {
	gl          gl.OpenGL
	clearColour Colour
}

// NewContext loads the platform GL library and returns a drawing context.
func NewContext() (*Context, error) {
	opengl, err := gl.Load()
	if err != nil {
		return nil, fmt.Errorf("render: loading OpenGL: %w", err)
	}
	return newContext(opengl), nil
}

func newContext(opengl gl.OpenGL) *Context {
	return &Context{
		gl:          opengl,
		clearColour: Colour{R: 0, G: 0, B: 0, A: 1},
	}
}

// Vendor reports the GL_VENDOR string of the current context.
func (c *Context) Vendor() string {
	return c.gl.GetString(gl.Vendor)
}

// Version reports the GL_VERSION string of the current context.
func (c *Context) Version() string {
	return c.gl.GetString(gl.Version)
}

// SetViewportSize matches the GL viewport to the window's client area. Call
// it from the window resize callback.
func (c *Context) SetViewportSize(width, height int) {
	c.gl.Viewport(0, 0, int32(width), int32(height))
}

// SetClearColour sets the colour used by Clear.
func (c *Context) SetClearColour(colour Colour) {
	c.clearColour = colour
}

// Clear clears the colour and depth buffers at the start of a frame.
func (c *Context) Clear() {
	c.gl.Clear(gl.ColorBufferBit | gl.DepthBufferBit)
	c.gl.ClearColor(c.clearColour.R, c.clearColour.G, c.clearColour.B, c.clearColour.A)
}

// SetProjection replaces the projection matrix with an orthographic
// projection covering the given ranges and resets the model-view matrix.
func (c *Context) SetProjection(left, right, bottom, top float64) {
	c.gl.MatrixMode(gl.Projection)
	c.gl.LoadIdentity()
	c.gl.Ortho(left, right, bottom, top, -1, 1)
	c.gl.MatrixMode(gl.ModelView)
	c.gl.LoadIdentity()
}

// DrawQuad draws a unit quad centred on (x, y), scaled uniformly and filled
// with the given colour. Alpha blending is enabled for the duration of the
// draw so translucent colours composite over earlier output.
func (c *Context) DrawQuad(x, y, scale float32, colour Colour) {
	c.gl.Enable(gl.Blend)
	c.gl.BlendFunc(gl.SrcAlpha, gl.OneMinusSrcAlpha)

	c.gl.PushMatrix()
	c.gl.Translatef(x, y, 0)
	c.gl.Scalef(scale, scale, 1)

	c.gl.Color4f(colour.R, colour.G, colour.B, colour.A)

	c.gl.Begin(gl.Quads)
	c.gl.Vertex3f(-1, -1, 0)
	c.gl.Vertex3f(1, -1, 0)
	c.gl.Vertex3f(1, 1, 0)
	c.gl.Vertex3f(-1, 1, 0)
	c.gl.End()

	c.gl.PopMatrix()

	c.gl.Disable(gl.Blend)
}
