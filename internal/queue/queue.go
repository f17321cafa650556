package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"videoforge/internal/domain"
)

// ErrNoJob is returned by Claim when no queued work is available.
var ErrNoJob = errors.New("queue: no job available")

// DB is the slice of pgx the queue needs. *pgxpool.Pool satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// JobHandle is what an enqueuing caller gets back: a stable identifier that
// can later be resolved to execution status via GetByID.
type JobHandle struct {
	ID string
}

// Queue is a durable job queue backed by the jobs table. Work enqueued here
// survives a crash of the enqueuing process; workers claim jobs with
// SKIP LOCKED, so each job is delivered to exactly one worker.
type Queue struct {
	db     DB
	logger zerolog.Logger
}

// New constructs a queue over the given database handle.
func New(db DB, logger zerolog.Logger) *Queue {
	return &Queue{db: db, logger: logger}
}

// Enqueue durably records a work item and returns its handle immediately.
// The work is never executed on the calling goroutine. A database failure
// surfaces as domain.ErrQueueUnavailable.
func (q *Queue) Enqueue(ctx context.Context, kind domain.JobKind, payload any) (JobHandle, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return JobHandle{}, fmt.Errorf("queue: encode payload: %w", err)
	}

	id := uuid.NewString()
	_, err = q.db.Exec(ctx, `
INSERT INTO jobs (id, kind, payload, status)
VALUES ($1, $2, $3, $4);
`, id, kind, body, domain.JobStatusQueued)
	if err != nil {
		return JobHandle{}, fmt.Errorf("%w: %v", domain.ErrQueueUnavailable, err)
	}

	q.logger.Info().Str("job_id", id).Str("kind", string(kind)).Msg("queue: job enqueued")
	return JobHandle{ID: id}, nil
}

// Claim atomically takes the oldest queued job and marks it running. The
// SKIP LOCKED clause lets concurrent workers compete without blocking or
// double-claiming.
func (q *Queue) Claim(ctx context.Context) (*domain.Job, error) {
	row := q.db.QueryRow(ctx, `
WITH next_job AS (
    SELECT id
    FROM jobs
    WHERE status = 'queued'
    ORDER BY created_at ASC
    FOR UPDATE SKIP LOCKED
    LIMIT 1
)
UPDATE jobs
SET status = 'running', updated_at = now()
WHERE id IN (SELECT id FROM next_job)
RETURNING id, kind, payload, status, created_at, updated_at;
`)

	var job domain.Job
	if err := row.Scan(&job.ID, &job.Kind, &job.Payload, &job.Status, &job.CreatedAt, &job.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoJob
		}
		return nil, fmt.Errorf("queue: claim job: %w", err)
	}
	// Payload bytes come from the driver's buffer; detach them.
	job.Payload = append([]byte(nil), job.Payload...)
	return &job, nil
}

// MarkFinished records a successful terminal state.
func (q *Queue) MarkFinished(ctx context.Context, jobID string) error {
	return q.setStatus(ctx, jobID, domain.JobStatusFinished, "")
}

// MarkFailed records a failed terminal state with the failure message.
func (q *Queue) MarkFailed(ctx context.Context, jobID, message string) error {
	return q.setStatus(ctx, jobID, domain.JobStatusFailed, message)
}

func (q *Queue) setStatus(ctx context.Context, jobID string, status domain.JobStatus, message string) error {
	_, err := q.db.Exec(ctx, `
UPDATE jobs
SET status = $2, error_message = $3, updated_at = now()
WHERE id = $1;
`, jobID, status, message)
	if err != nil {
		return fmt.Errorf("queue: update job status: %w", err)
	}
	return nil
}

// GetByID resolves a job handle to its current state.
func (q *Queue) GetByID(ctx context.Context, jobID string) (*domain.Job, error) {
	row := q.db.QueryRow(ctx, `
SELECT id, kind, payload, status, error_message, created_at, updated_at
FROM jobs
WHERE id = $1;
`, jobID)

	var job domain.Job
	if err := row.Scan(&job.ID, &job.Kind, &job.Payload, &job.Status, &job.ErrorMessage, &job.CreatedAt, &job.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("queue: get job: %w", err)
	}
	return &job, nil
}
