package camera

import (
	"fmt"

	"gocv.io/x/gocv"
)

type Webcam struct {
	capture *gocv.VideoCapture
	device  int
}

// Ensure Webcam implements Camera interface
var _ Camera = (*Webcam)(nil)

func OpenWebcam(device int) (*Webcam, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open video device %d: %w", device, err)
	}
	return &Webcam{capture: capture, device: device}, nil
}

func (w *Webcam) Read() (gocv.Mat, error) {
	frame := gocv.NewMat()
	if ok := w.capture.Read(&frame); !ok || frame.Empty() {
		frame.Close()
		return gocv.Mat{}, ErrNoFrame
	}
	return frame, nil
}

func (w *Webcam) Close() error {
	return w.capture.Close()
}
