package camera

import (
	"errors"

	"gocv.io/x/gocv"
)

// ErrNoFrame reports that the device produced no usable frame this read.
var ErrNoFrame = errors.New("camera: no frame available")

// Camera defines the interface for video frame capture implementations
type Camera interface {
	// Read captures one BGR frame. The caller owns the returned Mat and
	// must Close it.
	Read() (gocv.Mat, error)

	// Close releases the capture device
	Close() error
}
