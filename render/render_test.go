package render

import (
	"fmt"
	"reflect"
	"testing"
)

// recordingGL captures every GL call in order so drawing sequences can be
// asserted without a real context.
type recordingGL struct {
	calls   []string
	strings map[uint32]string
}

func (r *recordingGL) record(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingGL) ClearColor(red, g, b, a float32) { r.record("ClearColor(%v,%v,%v,%v)", red, g, b, a) }
func (r *recordingGL) Clear(mask uint32)               { r.record("Clear(%#x)", mask) }
func (r *recordingGL) Viewport(x, y, w, h int32)       { r.record("Viewport(%d,%d,%d,%d)", x, y, w, h) }
func (r *recordingGL) Enable(cap uint32)               { r.record("Enable(%#x)", cap) }
func (r *recordingGL) Disable(cap uint32)              { r.record("Disable(%#x)", cap) }
func (r *recordingGL) BlendFunc(s, d uint32)           { r.record("BlendFunc(%#x,%#x)", s, d) }
func (r *recordingGL) MatrixMode(mode uint32)          { r.record("MatrixMode(%#x)", mode) }
func (r *recordingGL) LoadIdentity()                   { r.record("LoadIdentity()") }
func (r *recordingGL) Ortho(l, rt, b, t, n, f float64) {
	r.record("Ortho(%v,%v,%v,%v,%v,%v)", l, rt, b, t, n, f)
}
func (r *recordingGL) PushMatrix()                  { r.record("PushMatrix()") }
func (r *recordingGL) PopMatrix()                   { r.record("PopMatrix()") }
func (r *recordingGL) Translatef(x, y, z float32)   { r.record("Translatef(%v,%v,%v)", x, y, z) }
func (r *recordingGL) Scalef(x, y, z float32)       { r.record("Scalef(%v,%v,%v)", x, y, z) }
func (r *recordingGL) Color4f(red, g, b, a float32) { r.record("Color4f(%v,%v,%v,%v)", red, g, b, a) }
func (r *recordingGL) Begin(mode uint32)            { r.record("Begin(%#x)", mode) }
func (r *recordingGL) End()                         { r.record("End()") }
func (r *recordingGL) Vertex3f(x, y, z float32)     { r.record("Vertex3f(%v,%v,%v)", x, y, z) }
func (r *recordingGL) GetString(name uint32) string { return r.strings[name] }

func TestClearUsesConfiguredColour(t *testing.T) {
	fake := &recordingGL{}
	ctx := newContext(fake)

	ctx.SetClearColour(Colour{R: 0.25, G: 0.6, B: 0.75, A: 1})
	ctx.Clear()

	want := []string{
		"Clear(0x4100)",
		"ClearColor(0.25,0.6,0.75,1)",
	}
	if !reflect.DeepEqual(fake.calls, want) {
		t.Fatalf("calls = %v, want %v", fake.calls, want)
	}
}

func TestClearDefaultsToOpaqueBlack(t *testing.T) {
	fake := &recordingGL{}
	ctx := newContext(fake)

	ctx.Clear()

	if got := fake.calls[1]; got != "ClearColor(0,0,0,1)" {
		t.Fatalf("clear colour call = %q", got)
	}
}

func TestSetViewportSizeCoversClientArea(t *testing.T) {
	fake := &recordingGL{}
	ctx := newContext(fake)

	ctx.SetViewportSize(1270, 720)

	want := []string{"Viewport(0,0,1270,720)"}
	if !reflect.DeepEqual(fake.calls, want) {
		t.Fatalf("calls = %v, want %v", fake.calls, want)
	}
}

func TestSetProjectionResetsBothStacks(t *testing.T) {
	fake := &recordingGL{}
	ctx := newContext(fake)

	ctx.SetProjection(-2, 2, -1.5, 1.5)

	want := []string{
		"MatrixMode(0x1701)",
		"LoadIdentity()",
		"Ortho(-2,2,-1.5,1.5,-1,1)",
		"MatrixMode(0x1700)",
		"LoadIdentity()",
	}
	if !reflect.DeepEqual(fake.calls, want) {
		t.Fatalf("calls = %v, want %v", fake.calls, want)
	}
}

func TestDrawQuadSequence(t *testing.T) {
	fake := &recordingGL{}
	ctx := newContext(fake)

	ctx.DrawQuad(0.5, -0.25, 2, Colour{R: 1, G: 0, B: 0, A: 0.25})

	want := []string{
		"Enable(0xbe2)",
		"BlendFunc(0x302,0x303)",
		"PushMatrix()",
		"Translatef(0.5,-0.25,0)",
		"Scalef(2,2,1)",
		"Color4f(1,0,0,0.25)",
		"Begin(0x7)",
		"Vertex3f(-1,-1,0)",
		"Vertex3f(1,-1,0)",
		"Vertex3f(1,1,0)",
		"Vertex3f(-1,1,0)",
		"End()",
		"PopMatrix()",
		"Disable(0xbe2)",
	}
	if !reflect.DeepEqual(fake.calls, want) {
		t.Fatalf("calls = %v, want %v", fake.calls, want)
	}
}

func TestDrawQuadRestoresMatrixAndBlendState(t *testing.T) {
	fake := &recordingGL{}
	ctx := newContext(fake)

	ctx.DrawQuad(0, 0, 1, ColourWhite)
	ctx.DrawQuad(0, 0, 1, ColourWhite)

	var pushes, pops, enables, disables int
	for _, call := range fake.calls {
		switch call {
		case "PushMatrix()":
			pushes++
		case "PopMatrix()":
			pops++
		case "Enable(0xbe2)":
			enables++
		case "Disable(0xbe2)":
			disables++
		}
	}
	if pushes != pops {
		t.Fatalf("pushes = %d, pops = %d", pushes, pops)
	}
	if enables != disables {
		t.Fatalf("blend enables = %d, disables = %d", enables, disables)
	}
}

func TestVendorAndVersionReportDriverStrings(t *testing.T) {
	fake := &recordingGL{strings: map[uint32]string{
		0x1F00: "Test Vendor",
		0x1F02: "4.6.0 Test",
	}}
	ctx := newContext(fake)

	if got := ctx.Vendor(); got != "Test Vendor" {
		t.Errorf("Vendor() = %q", got)
	}
	if got := ctx.Version(); got != "4.6.0 Test" {
		t.Errorf("Version() = %q", got)
	}
}
