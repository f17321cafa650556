package domain

import "time"

// JobKind enumerates the units of work the queue knows how to run.
type JobKind string

const (
	JobKindYouTubeUpload JobKind = "youtube_upload"
)

// JobStatus enumerates job lifecycle states. Status transitions are owned by
// the queue and the worker; enqueuing callers only ever see the identifier.
type JobStatus string

const (
	JobStatusQueued   JobStatus = "queued"
	JobStatusRunning  JobStatus = "running"
	JobStatusFinished JobStatus = "finished"
	JobStatusFailed   JobStatus = "failed"
)

// Job is a durable unit of work. The payload is immutable once enqueued.
type Job struct {
	ID           string
	Kind         JobKind
	Payload      []byte
	Status       JobStatus
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UploadJobPayload is the argument tuple for a youtube_upload job.
type UploadJobPayload struct {
	VideoPath   string `json:"video_path"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
