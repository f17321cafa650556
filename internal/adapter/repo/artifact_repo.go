package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"videoforge/internal/domain"
)

// ArtifactRepositoryPG implements domain.ArtifactRepository using PostgreSQL.
// The table is append-only; no update or delete statement exists here.
type ArtifactRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewArtifactRepository constructs a new artifact repository instance.
func NewArtifactRepository(pool *pgxpool.Pool) *ArtifactRepositoryPG {
	return &ArtifactRepositoryPG{pool: pool}
}

// Create inserts a catalog record. The id and upload time are assigned here
// when the caller leaves them zero. The file path is not checked for
// existence; the catalog records what callers claim was produced.
func (r *ArtifactRepositoryPG) Create(ctx context.Context, artifact *domain.Artifact) error {
	if artifact.ID == "" {
		artifact.ID = uuid.NewString()
	}
	if artifact.UploadTime.IsZero() {
		artifact.UploadTime = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, `
INSERT INTO artifacts (id, file_path, file_type, upload_time)
VALUES ($1, $2, $3, $4);
`, artifact.ID, artifact.FilePath, artifact.FileType, artifact.UploadTime)
	return err
}

// List returns every catalog record, oldest first.
func (r *ArtifactRepositoryPG) List(ctx context.Context) ([]domain.Artifact, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, file_path, file_type, upload_time
FROM artifacts
ORDER BY upload_time ASC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []domain.Artifact
	for rows.Next() {
		var a domain.Artifact
		if err := rows.Scan(&a.ID, &a.FilePath, &a.FileType, &a.UploadTime); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

var _ domain.ArtifactRepository = (*ArtifactRepositoryPG)(nil)
