package scheduler

const (
	LogMsgJobScheduled = "Scheduled job"
	LogMsgJobSkipped   = "Skipped scheduled job run, worker queue full"
)
