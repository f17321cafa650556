package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"videoforge/internal/domain"
	"videoforge/internal/media"
	"videoforge/internal/queue"
	"videoforge/internal/storage"
	"videoforge/internal/workflow"
)

// MediaEngine is the slice of the composition adapter the handlers call.
type MediaEngine interface {
	Render(ctx context.Context, clip media.Clip, outputPath, codec string) error
	Concatenate(ctx context.Context, paths []string, outputPath string) error
	FirstFrame(ctx context.Context, videoPath string) ([]byte, error)
	Duration(ctx context.Context, path string) (float64, error)
}

// Flow runs the composite create-video use case.
type Flow interface {
	CreateVideo(ctx context.Context, req workflow.CreateVideoRequest) (*workflow.CreateVideoResult, error)
}

// Enqueuer schedules background work.
type Enqueuer interface {
	Enqueue(ctx context.Context, kind domain.JobKind, payload any) (queue.JobHandle, error)
}

// App bundles every collaborator the HTTP handlers need.
type App struct {
	Logger    zerolog.Logger
	Media     MediaEngine
	Artifacts domain.ArtifactRepository
	Workflow  Flow
	Jobs      Enqueuer
	Store     *storage.MediaStore
}

const msgMissingParams = "Missing required parameters"

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// clientError reports a 400 with the given message.
func (a *App) clientError(w http.ResponseWriter, msg string) {
	a.json(w, http.StatusBadRequest, map[string]any{"error": msg})
}

// fail maps an error from a lower layer to a response. Missing-parameter
// errors are the client's fault; everything else is a 500 with the message
// passed through verbatim.
func (a *App) fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, domain.ErrMissingParameter) {
		code = http.StatusBadRequest
	}
	a.Logger.Error().Err(err).Int("status", code).Msg("request failed")
	a.json(w, code, map[string]any{"error": err.Error()})
}
