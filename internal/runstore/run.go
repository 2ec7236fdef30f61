package runstore

import "time"

// Status is the lifecycle state of a pipeline run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID             string
	Source         string
	OutputDir      string
	TargetLanguage string
	Status         Status
	Stage          string
	ErrorMessage   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
