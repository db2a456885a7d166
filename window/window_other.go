//go:build !windows && !linux

package window

import "errors"

var errUnsupported = errors.New("window: no native backend for this platform")

// stubNativeWindow stands in on platforms without a native backend so the
// package still compiles; every creation attempt fails.
type stubNativeWindow struct{}

func newNativeWindow() nativeWindow { return stubNativeWindow{} }

func (stubNativeWindow) Create(*Window) error    { return errUnsupported }
func (stubNativeWindow) Destroy()                {}
func (stubNativeWindow) PollEvents()             {}
func (stubNativeWindow) RefreshScreen()          {}
func (stubNativeWindow) CreateContext(major, minor int, legacy bool) error {
	return errUnsupported
}
func (stubNativeWindow) GetExternalAddress(string) uintptr     { return 0 }
func (stubNativeWindow) IsKeyDown(KeyCode) bool                { return false }
func (stubNativeWindow) ConvertNativeKeyCodes(int) KeyCode     { return KeyCodeUnknown }
func (stubNativeWindow) GetNativeKeyCodes(KeyCode) int         { return -1 }
