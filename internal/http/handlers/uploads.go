package handlers

import (
	"encoding/json"
	"net/http"

	"videoforge/internal/domain"
)

const maxUploadMemory = 32 << 20

// UploadVideo ingests a multipart video file into the media directory and
// records it in the catalog under its original filename.
func (a *App) UploadVideo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		a.clientError(w, "No video file provided")
		return
	}
	file, header, err := r.FormFile("video")
	if err != nil {
		a.clientError(w, "No video file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		a.clientError(w, "No selected file")
		return
	}

	path, err := a.Store.Save(header.Filename, file)
	if err != nil {
		a.fail(w, err)
		return
	}

	if err := a.Artifacts.Create(r.Context(), &domain.Artifact{
		FilePath: path,
		FileType: domain.ArtifactTypeVideo,
	}); err != nil {
		a.fail(w, err)
		return
	}

	// Best effort: an unprobeable file is still stored and cataloged.
	evt := a.Logger.Info().Str("video_path", path)
	if duration, err := a.Media.Duration(r.Context(), path); err == nil {
		evt = evt.Float64("duration_seconds", duration)
	}
	evt.Msg("video ingested")

	a.json(w, http.StatusOK, map[string]any{
		"message":    "Video uploaded successfully",
		"video_path": path,
	})
}

// LoadFrame returns the first frame of a video as PNG bytes.
func (a *App) LoadFrame(w http.ResponseWriter, r *http.Request) {
	videoPath := r.URL.Query().Get("video_path")
	if videoPath == "" {
		a.clientError(w, "Missing video path")
		return
	}

	frame, err := a.Media.FirstFrame(r.Context(), videoPath)
	if err != nil {
		a.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(frame)
}

type uploadToYouTubeRequest struct {
	VideoPath          string `json:"video_path"`
	YouTubeTitle       string `json:"youtube_title"`
	YouTubeDescription string `json:"youtube_description"`
}

// UploadToYouTube schedules an asynchronous upload job and returns its
// identifier. The upload itself runs in the worker process; this handler
// returns as soon as the job is durably recorded.
func (a *App) UploadToYouTube(w http.ResponseWriter, r *http.Request) {
	var req uploadToYouTubeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.clientError(w, "invalid payload")
		return
	}
	if req.VideoPath == "" || req.YouTubeTitle == "" || req.YouTubeDescription == "" {
		a.clientError(w, msgMissingParams)
		return
	}

	handle, err := a.Jobs.Enqueue(r.Context(), domain.JobKindYouTubeUpload, domain.UploadJobPayload{
		VideoPath:   req.VideoPath,
		Title:       req.YouTubeTitle,
		Description: req.YouTubeDescription,
	})
	if err != nil {
		a.fail(w, err)
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"message": "Upload to YouTube started",
		"job_id":  handle.ID,
	})
}
