//go:build !darwin

package macos

// The macOS backend is only compiled on darwin; other platforms rely on the
// X11 and Wayland providers registering themselves. This file keeps the
// package importable everywhere.
