//go:build (!darwin && !linux) || !cgo || test

package clipboard

import "errors"

// Init reports that no clipboard backend is available in this build.
func Init() error {
	return errors.New("clipboard not supported in this build configuration")
}

// Read returns no data (stub implementation).
func Read(format Format) []byte {
	return nil
}

// Write drops the data (stub implementation).
func Write(format Format, data []byte) {}

// Format represents clipboard data format
type Format int

const (
	// FmtText is the text format
	FmtText Format = 0
	// FmtImage is the image format
	FmtImage Format = 1
)
