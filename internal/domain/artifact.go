package domain

import "time"

// ArtifactType tags a catalog entry with the kind of media it points to. The
// tag is purely descriptive; nothing in the system branches on it.
type ArtifactType string

const (
	ArtifactTypeVideo ArtifactType = "video"
	ArtifactTypeImage ArtifactType = "image"
)

// Artifact is one row of the media catalog: a file produced or ingested by
// the service. The catalog is append-only; records are never updated or
// deleted, and the same file path may appear more than once.
type Artifact struct {
	ID         string
	FilePath   string
	FileType   ArtifactType
	UploadTime time.Time
}
