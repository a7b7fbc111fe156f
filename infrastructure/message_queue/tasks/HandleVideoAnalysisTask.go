package queue_tasks

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"veriface.io/application/repository"
	"veriface.io/application/utils"
	"veriface.io/entities"
	"veriface.io/infrastructure/biometric"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/database/repository/cache"
	"veriface.io/infrastructure/env"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/media_store"
	mq_types "veriface.io/infrastructure/message_queue/types"
)

var HandleVideoAnalysisTaskName mq_types.Queues = "analyze_video"

type VideoAnalysisPayload struct {
	ReportID      string
	VideoAssetRef string
}

// HandleVideoAnalysisTask screens an uploaded video for manipulation
// artifacts and records the outcome on the pending report.
func HandleVideoAnalysisTask(ctx context.Context, t *asynq.Task) error {
	var payload VideoAnalysisPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling video analysis payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}

	path := media_store.Store.AbsolutePath(payload.VideoAssetRef)
	analysis, err := biometric.Screen.AnalyzeVideo(path, env.GetInt("VIDEO_ANALYSIS_WORKERS", 4))
	if err != nil {
		if errors.Is(err, types.ErrNoValidFrames) {
			return failReport(payload.ReportID, "no analyzable frames found in the video", err)
		}
		return failReport(payload.ReportID, "video could not be processed", err)
	}

	completedAt := time.Now()
	_, err = repository.ReportRepo().UpdatePartialByFilter(map[string]interface{}{
		"reportID": payload.ReportID,
	}, map[string]interface{}{
		"status":              entities.ReportComplete,
		"framesAnalyzed":      analysis.FramesAnalyzed,
		"deepfakeProbability": analysis.DeepfakeProbability,
		"analysisPoints":      analysis.AnalysisPoints,
		"completedAt":         completedAt,
	})
	if err != nil {
		return err
	}
	cache.Cache.DeleteOne(reportCacheKey(payload.ReportID))

	logger.Info("video analysis report complete", logger.LoggerOptions{
		Key:  "reportID",
		Data: payload.ReportID,
	}, logger.LoggerOptions{
		Key:  "framesAnalyzed",
		Data: analysis.FramesAnalyzed,
	}, logger.LoggerOptions{
		Key:  "deepfakeProbability",
		Data: analysis.DeepfakeProbability,
	})
	return nil
}

func failReport(reportID string, reason string, cause error) error {
	logger.Error("video analysis failed", logger.LoggerOptions{
		Key:  "reportID",
		Data: reportID,
	}, logger.LoggerOptions{
		Key:  "reason",
		Data: reason,
	}, logger.LoggerOptions{
		Key:  "error",
		Data: cause,
	})
	completedAt := time.Now()
	_, err := repository.ReportRepo().UpdatePartialByFilter(map[string]interface{}{
		"reportID": reportID,
	}, map[string]interface{}{
		"status":        entities.ReportFailed,
		"failureReason": utils.GetStringPointer(reason),
		"completedAt":   completedAt,
	})
	if err != nil {
		return err
	}
	cache.Cache.DeleteOne(reportCacheKey(reportID))
	// terminal outcome recorded; do not retry the task
	return nil
}

func reportCacheKey(reportID string) string {
	return "report-" + reportID
}
