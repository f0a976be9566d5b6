package events

import "github.com/linkedscout/linkedscout/internal/domain/models"

var JobsFoundTopic = "JobsFoundEvent"

type JobsFound struct {
	AlertName string
	Result    models.RunResult
}
