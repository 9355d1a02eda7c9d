package worker

const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerQueueFull = "Worker queue full, job dropped"

	ErrMsgJobPanicked = "job panicked"
)
