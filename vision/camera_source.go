package vision

import (
	"github.com/d1nch8g/visynth/camera"
)

// CameraSource samples feature snapshots from a live camera.
type CameraSource struct {
	camera    camera.Camera
	extractor *Extractor
}

// Ensure CameraSource implements Source interface
var _ Source = (*CameraSource)(nil)

func NewCameraSource(cam camera.Camera, extractor *Extractor) *CameraSource {
	return &CameraSource{camera: cam, extractor: extractor}
}

func (s *CameraSource) Sample() (Snapshot, error) {
	frame, err := s.camera.Read()
	if err != nil {
		return Snapshot{}, err
	}
	defer frame.Close()
	return s.extractor.Extract(frame)
}

func (s *CameraSource) Close() error {
	if err := s.extractor.Close(); err != nil {
		s.camera.Close()
		return err
	}
	return s.camera.Close()
}
