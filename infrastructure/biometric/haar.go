package biometric

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
	"veriface.io/infrastructure/logger"
)

// FaceDetector locates face bounding boxes in a decoded frame.
type FaceDetector interface {
	DetectFaces(img gocv.Mat) []image.Rectangle
}

// HaarDetector is a frontal-face Haar cascade loaded once at start up and
// shared across requests. OpenCV cascade detection is not re-entrant, so
// calls are serialised.
type HaarDetector struct {
	cascade gocv.CascadeClassifier
	mutex   sync.Mutex
}

func NewHaarDetector() (*HaarDetector, error) {
	cascade := gocv.NewCascadeClassifier()

	paths := []string{
		os.Getenv("HAAR_CASCADE_PATH"),
		"/usr/share/opencv4/haarcascades/haarcascade_frontalface_default.xml",
		"/usr/local/share/opencv4/haarcascades/haarcascade_frontalface_default.xml",
		"models/haarcascade_frontalface_default.xml",
	}

	loaded := false
	for _, path := range paths {
		if path == "" {
			continue
		}
		if cascade.Load(path) {
			logger.Info("face cascade loaded", logger.LoggerOptions{
				Key:  "path",
				Data: path,
			})
			loaded = true
			break
		}
	}
	if !loaded {
		cascade.Close()
		return nil, fmt.Errorf("failed to load frontal face cascade classifier")
	}

	return &HaarDetector{cascade: cascade}, nil
}

func (d *HaarDetector) DetectFaces(img gocv.Mat) []image.Rectangle {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.cascade.DetectMultiScaleWithParams(
		img, 1.1, 4, 0,
		image.Pt(30, 30), image.Pt(0, 0),
	)
}

func (d *HaarDetector) Close() {
	d.cascade.Close()
}

func largestFace(faces []image.Rectangle) image.Rectangle {
	largest := faces[0]
	for _, face := range faces[1:] {
		if face.Dx()*face.Dy() > largest.Dx()*largest.Dy() {
			largest = face
		}
	}
	return largest
}
