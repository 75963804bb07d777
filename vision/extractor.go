package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

const (
	// warmth is a ratio of channel means; the observed useful range is
	// remapped onto 0..1
	warmthInputLow  = 0.2
	warmthInputHigh = 0.9
	warmthEpsilon   = 1e-6

	cannyLowThreshold  = 60
	cannyHighThreshold = 180

	adaptiveBlockSize = 11
	adaptiveConstant  = 3
)

// Extractor turns a raw BGR frame into a feature Snapshot. It downsamples
// internally, so frames of arbitrary resolution are accepted.
type Extractor struct {
	size   image.Point
	kernel gocv.Mat
}

func NewExtractor(analysisSize int) *Extractor {
	if analysisSize <= 0 {
		analysisSize = 160
	}
	return &Extractor{
		size:   image.Pt(analysisSize, analysisSize),
		kernel: gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3)),
	}
}

func (e *Extractor) Extract(frame gocv.Mat) (Snapshot, error) {
	if frame.Empty() {
		return Snapshot{}, fmt.Errorf("cannot analyze an empty frame")
	}

	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(frame, &small, e.size, 0, 0, gocv.InterpolationArea)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(small, &gray, gocv.ColorBGRToGray)

	snap := Snapshot{
		Brightness: gray.Mean().Val1 / 255.0,
		Warmth:     e.warmth(small),
		Texture:    e.texture(gray),
		Objects:    e.objects(gray),
	}
	return snap, nil
}

func (e *Extractor) warmth(bgr gocv.Mat) float64 {
	channels := gocv.Split(bgr)
	defer func() {
		for i := range channels {
			channels[i].Close()
		}
	}()
	if len(channels) < 3 {
		return 0
	}
	blue := channels[0].Mean().Val1
	green := channels[1].Mean().Val1
	red := channels[2].Mean().Val1
	ratio := red / (green + blue + warmthEpsilon)
	return clamp01(remap(ratio, warmthInputLow, warmthInputHigh))
}

func (e *Extractor) texture(gray gocv.Mat) float64 {
	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, cannyLowThreshold, cannyHighThreshold)
	total := e.size.X * e.size.Y
	return float64(gocv.CountNonZero(edges)) / float64(total)
}

func (e *Extractor) objects(gray gocv.Mat) int {
	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.AdaptiveThreshold(gray, &thresh, 255, gocv.AdaptiveThresholdMean, gocv.ThresholdBinaryInv, adaptiveBlockSize, adaptiveConstant)

	opened := gocv.NewMat()
	defer opened.Close()
	gocv.MorphologyEx(thresh, &opened, gocv.MorphOpen, e.kernel)

	contours := gocv.FindContours(opened, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	return contours.Size()
}

func (e *Extractor) Close() error {
	return e.kernel.Close()
}

// remap shifts v from the lo..hi input range onto 0..1, unclamped.
func remap(v, lo, hi float64) float64 {
	return (v - lo) / (hi - lo)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
