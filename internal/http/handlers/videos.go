package handlers

import (
	"encoding/json"
	"net/http"

	"videoforge/internal/domain"
	"videoforge/internal/media"
	"videoforge/internal/workflow"
)

type addTextRequest struct {
	VideoPath  string `json:"video_path"`
	Text       string `json:"text"`
	OutputPath string `json:"output_path"`
}

// AddText burns a centered caption into a video and writes the result to the
// requested output path.
func (a *App) AddText(w http.ResponseWriter, r *http.Request) {
	var req addTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.clientError(w, "invalid payload")
		return
	}
	if req.VideoPath == "" || req.Text == "" || req.OutputPath == "" {
		a.clientError(w, msgMissingParams)
		return
	}

	clip := media.NewClip(req.VideoPath).
		OverlayText(req.Text, media.AnchorPosition(media.AnchorCenter), 0)
	if err := a.Media.Render(r.Context(), clip, req.OutputPath, media.DefaultCodec); err != nil {
		a.fail(w, err)
		return
	}

	a.json(w, http.StatusOK, map[string]any{"message": "Text added to video successfully"})
}

type saveVideoRequest struct {
	VideoPath    string          `json:"video_path"`
	Text         string          `json:"text"`
	TextPosition *media.Position `json:"text_position"`
	OutputPath   string          `json:"output_path"`
}

// SaveVideo renders a positioned caption onto a video and records the output
// in the catalog.
func (a *App) SaveVideo(w http.ResponseWriter, r *http.Request) {
	var req saveVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.clientError(w, "invalid payload")
		return
	}
	if req.VideoPath == "" || req.Text == "" || req.TextPosition == nil || req.OutputPath == "" {
		a.clientError(w, msgMissingParams)
		return
	}

	clip := media.NewClip(req.VideoPath).
		OverlayText(req.Text, *req.TextPosition, 0)
	if err := a.Media.Render(r.Context(), clip, req.OutputPath, media.DefaultCodec); err != nil {
		a.fail(w, err)
		return
	}

	if err := a.Artifacts.Create(r.Context(), &domain.Artifact{
		FilePath: req.OutputPath,
		FileType: domain.ArtifactTypeVideo,
	}); err != nil {
		a.fail(w, err)
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"message":    "Video saved successfully",
		"video_path": req.OutputPath,
	})
}

type createVideoRequest struct {
	VideoPath        string          `json:"video_path"`
	Text             string          `json:"text"`
	ImageDescription string          `json:"image_description"`
	AudioPath        string          `json:"audio_path"`
	OutputPath       string          `json:"output_path"`
	TextPosition     *media.Position `json:"text_position"`

	UserID             string `json:"user_id"`
	YouTubeTitle       string `json:"youtube_title"`
	YouTubeDescription string `json:"youtube_description"`
}

// CreateVideo runs the full composition workflow. The request comes in two
// variants: with youtube_title and youtube_description an upload job is
// scheduled after the render, otherwise user_id is required and no upload
// happens. Which variant applies is decided by field presence.
func (a *App) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var req createVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.clientError(w, "invalid payload")
		return
	}
	if req.VideoPath == "" || req.Text == "" || req.ImageDescription == "" ||
		req.AudioPath == "" || req.OutputPath == "" || req.TextPosition == nil {
		a.clientError(w, msgMissingParams)
		return
	}
	upload := req.YouTubeTitle != "" && req.YouTubeDescription != ""
	if !upload && req.UserID == "" {
		a.clientError(w, msgMissingParams)
		return
	}

	res, err := a.Workflow.CreateVideo(r.Context(), workflow.CreateVideoRequest{
		VideoPath:         req.VideoPath,
		Text:              req.Text,
		ImageDescription:  req.ImageDescription,
		AudioPath:         req.AudioPath,
		OutputPath:        req.OutputPath,
		TextPosition:      *req.TextPosition,
		Upload:            upload,
		UploadTitle:       req.YouTubeTitle,
		UploadDescription: req.YouTubeDescription,
	})
	if err != nil {
		a.fail(w, err)
		return
	}

	resp := map[string]any{"message": "Video created successfully"}
	if res.JobID != "" {
		resp["job_id"] = res.JobID
	}
	a.json(w, http.StatusOK, resp)
}

type concatenateRequest struct {
	VideoPaths []string `json:"video_paths"`
	OutputPath string   `json:"output_path"`
}

// ConcatenateVideos joins the listed clips in order. An empty or missing list
// is rejected here; the adapter is never invoked for it.
func (a *App) ConcatenateVideos(w http.ResponseWriter, r *http.Request) {
	var req concatenateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.clientError(w, "invalid payload")
		return
	}
	if len(req.VideoPaths) == 0 || req.OutputPath == "" {
		a.clientError(w, msgMissingParams)
		return
	}

	if err := a.Media.Concatenate(r.Context(), req.VideoPaths, req.OutputPath); err != nil {
		a.fail(w, err)
		return
	}

	a.json(w, http.StatusOK, map[string]any{"message": "Videos concatenated successfully"})
}
