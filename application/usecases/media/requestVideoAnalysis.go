package media_usecases

import (
	"context"
	"encoding/json"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/repository"
	"veriface.io/application/utils"
	"veriface.io/entities"
	"veriface.io/infrastructure/media_store"
	messagequeue "veriface.io/infrastructure/message_queue"
	queue_tasks "veriface.io/infrastructure/message_queue/tasks"
	mq_types "veriface.io/infrastructure/message_queue/types"
)

// RequestVideoAnalysisUseCase stores the uploaded video, records a pending
// report and queues the frame screen. The heavy analysis never runs on the
// request path.
func RequestVideoAnalysisUseCase(ctx any, video []byte, extension string, requestedBy string) (*entities.AuthenticityReport, error) {
	if extension == "" {
		extension = "mp4"
	}

	assetRef, err := media_store.Store.Save("videos", video, extension)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}

	report, err := repository.ReportRepo().CreateOne(context.TODO(), entities.AuthenticityReport{
		ReportID:      utils.GenerateULIDString(),
		RequestedBy:   requestedBy,
		VideoAssetRef: assetRef,
		Status:        entities.ReportPending,
	})
	if err != nil {
		media_store.Store.Delete(assetRef)
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}

	payload, err := json.Marshal(queue_tasks.VideoAnalysisPayload{
		ReportID:      report.ReportID,
		VideoAssetRef: assetRef,
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleVideoAnalysisTaskName,
		Payload:  payload,
		Priority: mq_types.Medium,
		MaxRetry: 3,
	})
	return report, nil
}
