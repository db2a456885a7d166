//go:build windows

package gl

import (
	"math"
	"unsafe"

	"golang.org/x/sys/windows"
)

type openGL struct {
	clearColor   *windows.LazyProc
	clear        *windows.LazyProc
	viewport     *windows.LazyProc
	enable       *windows.LazyProc
	disable      *windows.LazyProc
	blendFunc    *windows.LazyProc
	matrixMode   *windows.LazyProc
	loadIdentity *windows.LazyProc
	ortho        *windows.LazyProc
	pushMatrix   *windows.LazyProc
	popMatrix    *windows.LazyProc
	translatef   *windows.LazyProc
	scalef       *windows.LazyProc
	color4f      *windows.LazyProc
	begin        *windows.LazyProc
	end          *windows.LazyProc
	vertex3f     *windows.LazyProc
	getString    *windows.LazyProc
}

func (gl *openGL) ClearColor(r, g, b, a float32) {
	gl.clearColor.Call(f32(r), f32(g), f32(b), f32(a))
}

func (gl *openGL) Clear(mask uint32) {
	gl.clear.Call(uintptr(mask))
}

func (gl *openGL) Viewport(x, y, width, height int32) {
	gl.viewport.Call(uintptr(x), uintptr(y), uintptr(width), uintptr(height))
}

func (gl *openGL) Enable(cap uint32) {
	gl.enable.Call(uintptr(cap))
}

func (gl *openGL) Disable(cap uint32) {
	gl.disable.Call(uintptr(cap))
}

func (gl *openGL) BlendFunc(sfactor, dfactor uint32) {
	gl.blendFunc.Call(uintptr(sfactor), uintptr(dfactor))
}

func (gl *openGL) MatrixMode(mode uint32) {
	gl.matrixMode.Call(uintptr(mode))
}

func (gl *openGL) LoadIdentity() {
	gl.loadIdentity.Call()
}

func (gl *openGL) Ortho(left, right, bottom, top, zNear, zFar float64) {
	gl.ortho.Call(f64(left), f64(right), f64(bottom), f64(top), f64(zNear), f64(zFar))
}

func (gl *openGL) PushMatrix() {
	gl.pushMatrix.Call()
}

func (gl *openGL) PopMatrix() {
	gl.popMatrix.Call()
}

func (gl *openGL) Translatef(x, y, z float32) {
	gl.translatef.Call(f32(x), f32(y), f32(z))
}

func (gl *openGL) Scalef(x, y, z float32) {
	gl.scalef.Call(f32(x), f32(y), f32(z))
}

func (gl *openGL) Color4f(r, g, b, a float32) {
	gl.color4f.Call(f32(r), f32(g), f32(b), f32(a))
}

func (gl *openGL) Begin(mode uint32) {
	gl.begin.Call(uintptr(mode))
}

func (gl *openGL) End() {
	gl.end.Call()
}

func (gl *openGL) Vertex3f(x, y, z float32) {
	gl.vertex3f.Call(f32(x), f32(y), f32(z))
}

func (gl *openGL) GetString(name uint32) string {
	ptr, _, _ := gl.getString.Call(uintptr(name))
	return gostring((*byte)(unsafe.Pointer(ptr)))
}

func Load() (OpenGL, error) {
	opengl32 := windows.NewLazySystemDLL("opengl32.dll")
	gl := &openGL{
		clearColor:   opengl32.NewProc("glClearColor"),
		clear:        opengl32.NewProc("glClear"),
		viewport:     opengl32.NewProc("glViewport"),
		enable:       opengl32.NewProc("glEnable"),
		disable:      opengl32.NewProc("glDisable"),
		blendFunc:    opengl32.NewProc("glBlendFunc"),
		matrixMode:   opengl32.NewProc("glMatrixMode"),
		loadIdentity: opengl32.NewProc("glLoadIdentity"),
		ortho:        opengl32.NewProc("glOrtho"),
		pushMatrix:   opengl32.NewProc("glPushMatrix"),
		popMatrix:    opengl32.NewProc("glPopMatrix"),
		translatef:   opengl32.NewProc("glTranslatef"),
		scalef:       opengl32.NewProc("glScalef"),
		color4f:      opengl32.NewProc("glColor4f"),
		begin:        opengl32.NewProc("glBegin"),
		end:          opengl32.NewProc("glEnd"),
		vertex3f:     opengl32.NewProc("glVertex3f"),
		getString:    opengl32.NewProc("glGetString"),
	}
	return gl, nil
}

func f32(v float32) uintptr {
	return uintptr(math.Float32bits(v))
}

func f64(v float64) uintptr {
	return uintptr(math.Float64bits(v))
}
