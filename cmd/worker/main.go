package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"videoforge/internal/domain"
	"videoforge/internal/infra"
	"videoforge/internal/queue"
	"videoforge/internal/youtube"
)

type uploadWorker struct {
	ctx          context.Context
	queue        *queue.Queue
	uploader     *youtube.Uploader
	logger       infra.Logger
	pollInterval time.Duration
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	creds := &youtube.FileCredentials{
		ClientSecretFile: cfg.YouTubeClientSecretFile,
		TokenFile:        cfg.YouTubeTokenFile,
	}

	worker := &uploadWorker{
		ctx:          ctx,
		queue:        queue.New(pool, logger),
		uploader:     youtube.NewUploader(creds, logger),
		logger:       logger,
		pollInterval: cfg.WorkerPollInterval,
	}

	if err := worker.Run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

// Run polls the queue until the context is cancelled. Claim errors are logged
// and retried after the poll interval; a single bad job never stops the loop.
func (w *uploadWorker) Run() error {
	w.logger.Info().Msg("worker: started")
	for {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		job, err := w.queue.Claim(w.ctx)
		if err != nil {
			if !errors.Is(err, queue.ErrNoJob) {
				w.logger.Error().Err(err).Msg("worker: failed to claim job")
			}
			w.wait()
			continue
		}

		w.handleJob(job)
	}
}

// wait pauses for one poll interval but returns early on shutdown.
func (w *uploadWorker) wait() {
	t := time.NewTimer(w.pollInterval)
	defer t.Stop()
	select {
	case <-w.ctx.Done():
	case <-t.C:
	}
}

func (w *uploadWorker) handleJob(job *domain.Job) {
	w.logger.Info().Str("job_id", job.ID).Str("kind", string(job.Kind)).Msg("worker: picked job")

	if err := w.dispatch(job); err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: job failed")
		if markErr := w.queue.MarkFailed(w.ctx, job.ID, err.Error()); markErr != nil {
			w.logger.Error().Err(markErr).Str("job_id", job.ID).Msg("worker: update status failed")
		}
		return
	}

	if err := w.queue.MarkFinished(w.ctx, job.ID); err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: update status failed")
	}
}

func (w *uploadWorker) dispatch(job *domain.Job) error {
	switch job.Kind {
	case domain.JobKindYouTubeUpload:
		return w.processUpload(job)
	default:
		return fmt.Errorf("unsupported job kind %q", job.Kind)
	}
}

func (w *uploadWorker) processUpload(job *domain.Job) error {
	var payload domain.UploadJobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("decode upload payload: %w", err)
	}
	if payload.VideoPath == "" {
		return fmt.Errorf("upload payload missing video path")
	}

	videoID, err := w.uploader.Upload(w.ctx, payload.VideoPath, payload.Title, payload.Description)
	if err != nil {
		return err
	}

	w.logger.Info().
		Str("job_id", job.ID).
		Str("video_id", videoID).
		Msg("worker: upload finished")
	return nil
}
