package biometric

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
)

const (
	// frameStride bounds analysis cost; only every fifth frame is screened.
	frameStride = 5

	defaultFrameWorkers = 4
)

// AnalyzeVideo screens a video file frame by frame and aggregates the
// analyzable results. Frame analysis is independent per frame and fans out
// over a bounded worker pool; aggregation is a pure reduction independent of
// completion order.
func (d *DeepfakeDetector) AnalyzeVideo(path string, workers int) (*types.VideoAnalysis, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open video file", types.ErrImageRead)
	}
	defer capture.Close()

	if workers <= 0 {
		workers = defaultFrameWorkers
	}

	jobs := make(chan gocv.Mat, workers)
	var (
		wg       sync.WaitGroup
		mutex    sync.Mutex
		analyzed []types.FrameAnalysis
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for frame := range jobs {
				result, err := d.analyzeFrame(frame)
				frame.Close()
				if err != nil {
					// frames yielding no analyzable result are
					// discarded, not scored
					continue
				}
				mutex.Lock()
				analyzed = append(analyzed, *result)
				mutex.Unlock()
			}
		}()
	}

	frame := gocv.NewMat()
	defer frame.Close()
	frameCount := 0
	for capture.Read(&frame) {
		if frame.Empty() {
			continue
		}
		if frameCount%frameStride == 0 {
			jobs <- frame.Clone()
		}
		frameCount++
	}
	close(jobs)
	wg.Wait()

	logger.Info("video frame analysis complete", logger.LoggerOptions{
		Key:  "framesRead",
		Data: frameCount,
	}, logger.LoggerOptions{
		Key:  "framesAnalyzed",
		Data: len(analyzed),
	})

	return AggregateFrames(analyzed)
}

// AggregateFrames reduces per-frame results to a video-level analysis: the
// unweighted mean of frame probabilities and the concatenation of every
// frame's analysis points. Zero analyzable frames is a terminal error, never
// a zero score.
func AggregateFrames(frames []types.FrameAnalysis) (*types.VideoAnalysis, error) {
	if len(frames) == 0 {
		return nil, types.ErrNoValidFrames
	}

	total := 0.0
	points := []types.AnalysisPoint{}
	for _, frame := range frames {
		total += frame.DeepfakeProbability
		points = append(points, frame.AnalysisPoints...)
	}

	return &types.VideoAnalysis{
		FramesAnalyzed:      len(frames),
		DeepfakeProbability: total / float64(len(frames)),
		AnalysisPoints:      points,
	}, nil
}
