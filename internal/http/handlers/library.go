package handlers

import (
	"net/http"
	"time"
)

type artifactResponse struct {
	ID         string    `json:"id"`
	FilePath   string    `json:"file_path"`
	FileType   string    `json:"file_type"`
	UploadTime time.Time `json:"upload_time"`
}

// Library lists every catalog record, oldest first, as a bare JSON array.
func (a *App) Library(w http.ResponseWriter, r *http.Request) {
	artifacts, err := a.Artifacts.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}

	items := make([]artifactResponse, 0, len(artifacts))
	for _, art := range artifacts {
		items = append(items, artifactResponse{
			ID:         art.ID,
			FilePath:   art.FilePath,
			FileType:   string(art.FileType),
			UploadTime: art.UploadTime,
		})
	}
	a.json(w, http.StatusOK, items)
}
