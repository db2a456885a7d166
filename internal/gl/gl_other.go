//go:build !windows && !linux

package gl

import "errors"

// Load fails on platforms without a GL loader.
func Load() (OpenGL, error) {
	return nil, errors.New("gl: no OpenGL loader for this platform")
}
