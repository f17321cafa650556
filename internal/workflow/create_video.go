package workflow

import (
	"context"

	"github.com/rs/zerolog"

	"videoforge/internal/domain"
	"videoforge/internal/media"
	"videoforge/internal/providers/imagegen"
	"videoforge/internal/queue"
)

// The generated image is composited along the bottom edge at this height,
// matching the historical layout.
const overlayImageHeight = 100

// Renderer is the slice of the media adapter the workflow drives.
type Renderer interface {
	Render(ctx context.Context, clip media.Clip, outputPath, codec string) error
}

// Enqueuer hands work to the durable job queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, kind domain.JobKind, payload any) (queue.JobHandle, error)
}

// Orchestrator runs the composite create-video use case: generate an image,
// compose and render, record the artifacts, optionally schedule the upload.
type Orchestrator struct {
	images    imagegen.Generator
	renderer  Renderer
	artifacts domain.ArtifactRepository
	jobs      Enqueuer
	logger    zerolog.Logger
}

// NewOrchestrator wires the workflow's collaborators.
func NewOrchestrator(images imagegen.Generator, renderer Renderer, artifacts domain.ArtifactRepository, jobs Enqueuer, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		images:    images,
		renderer:  renderer,
		artifacts: artifacts,
		jobs:      jobs,
		logger:    logger,
	}
}

// CreateVideoRequest carries one resolved request variant: Upload says
// whether a YouTube job should be scheduled after the render.
type CreateVideoRequest struct {
	VideoPath        string
	Text             string
	ImageDescription string
	AudioPath        string
	OutputPath       string
	TextPosition     media.Position

	Upload            bool
	UploadTitle       string
	UploadDescription string
}

// CreateVideoResult reports what the workflow produced.
type CreateVideoResult struct {
	OutputPath string
	ImagePath  string
	JobID      string
}

// CreateVideo executes the workflow as a single straight-line pass. A failure
// at any step aborts the request and nothing already done is undone: a
// generated image left on disk after a render failure, or a rendered file
// left uncataloged after a store failure, is an accepted orphan. An enqueue
// failure is fatal to the whole request even though the render and the
// catalog writes already succeeded.
func (o *Orchestrator) CreateVideo(ctx context.Context, req CreateVideoRequest) (*CreateVideoResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	imagePath, err := o.images.Generate(ctx, req.ImageDescription)
	if err != nil {
		return nil, err
	}
	o.logger.Info().Str("image", imagePath).Msg("workflow: image generated")

	clip := media.NewClip(req.VideoPath).
		OverlayText(req.Text, req.TextPosition, 0).
		OverlayImage(imagePath, media.AnchorPosition(media.AnchorBottom), 0, overlayImageHeight).
		WithAudio(req.AudioPath)

	if err := o.renderer.Render(ctx, clip, req.OutputPath, media.DefaultCodec); err != nil {
		return nil, err
	}
	o.logger.Info().Str("output", req.OutputPath).Msg("workflow: video rendered")

	if err := o.artifacts.Create(ctx, &domain.Artifact{FilePath: req.OutputPath, FileType: domain.ArtifactTypeVideo}); err != nil {
		return nil, err
	}
	if err := o.artifacts.Create(ctx, &domain.Artifact{FilePath: imagePath, FileType: domain.ArtifactTypeImage}); err != nil {
		return nil, err
	}

	result := &CreateVideoResult{OutputPath: req.OutputPath, ImagePath: imagePath}

	if req.Upload {
		handle, err := o.jobs.Enqueue(ctx, domain.JobKindYouTubeUpload, domain.UploadJobPayload{
			VideoPath:   req.OutputPath,
			Title:       req.UploadTitle,
			Description: req.UploadDescription,
		})
		if err != nil {
			return nil, err
		}
		result.JobID = handle.ID
		o.logger.Info().Str("job_id", handle.ID).Msg("workflow: upload scheduled")
	}

	return result, nil
}

func validate(req CreateVideoRequest) error {
	if req.VideoPath == "" || req.Text == "" || req.ImageDescription == "" ||
		req.AudioPath == "" || req.OutputPath == "" {
		return domain.ErrMissingParameter
	}
	if req.Upload && (req.UploadTitle == "" || req.UploadDescription == "") {
		return domain.ErrMissingParameter
	}
	return nil
}
