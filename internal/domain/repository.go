package domain

import "context"

// ArtifactRepository persists catalog entries. Implementations must be
// append-only: Create is the only mutation.
type ArtifactRepository interface {
	Create(ctx context.Context, artifact *Artifact) error
	List(ctx context.Context) ([]Artifact, error)
}
