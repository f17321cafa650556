package handlers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"videoforge/internal/domain"
	"videoforge/internal/storage"
)

func multipartVideo(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadVideo_SavesAndCatalogs(t *testing.T) {
	app, m, arts, _, _ := newTestApp()
	m.duration = 5.5
	store, err := storage.NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	app.Store = store

	body, contentType := multipartVideo(t, "video", "clip.mp4", "fake-mp4-bytes")
	req := httptest.NewRequest("POST", "/api/upload_video", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	app.UploadVideo(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	resp := decodeBody(t, rr)
	if resp["message"] != "Video uploaded successfully" {
		t.Fatalf("message = %q", resp["message"])
	}

	path, _ := resp["video_path"].(string)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "fake-mp4-bytes" {
		t.Fatalf("stored content = %q", data)
	}

	if len(arts.created) != 1 {
		t.Fatalf("artifacts = %#v", arts.created)
	}
	if arts.created[0].FileType != domain.ArtifactTypeVideo || arts.created[0].FilePath != path {
		t.Fatalf("unexpected artifact: %#v", arts.created[0])
	}
	if m.durationCalls != 1 || m.durationPath != path {
		t.Fatalf("duration probe calls = %d path = %q", m.durationCalls, m.durationPath)
	}
}

func TestUploadVideo_UnprobeableFileStillStored(t *testing.T) {
	app, m, arts, _, _ := newTestApp()
	m.durationErr = errors.New("moov atom not found")
	store, err := storage.NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	app.Store = store

	body, contentType := multipartVideo(t, "video", "clip.mp4", "x")
	req := httptest.NewRequest("POST", "/api/upload_video", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	app.UploadVideo(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if len(arts.created) != 1 {
		t.Fatalf("artifacts = %#v", arts.created)
	}
}

func TestUploadVideo_MissingFile(t *testing.T) {
	app, _, arts, _, _ := newTestApp()

	body, contentType := multipartVideo(t, "other", "clip.mp4", "x")
	req := httptest.NewRequest("POST", "/api/upload_video", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	app.UploadVideo(rr, req)

	if rr.Code != 400 {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if got := decodeBody(t, rr)["error"]; got != "No video file provided" {
		t.Fatalf("error = %q", got)
	}
	if len(arts.created) != 0 {
		t.Fatal("artifact recorded without a file")
	}
}

func TestUploadVideo_EmptyFilename(t *testing.T) {
	app, _, _, _, _ := newTestApp()

	body, contentType := multipartVideo(t, "video", "", "x")
	req := httptest.NewRequest("POST", "/api/upload_video", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	app.UploadVideo(rr, req)

	if rr.Code != 400 {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if got := decodeBody(t, rr)["error"]; got != "No selected file" {
		t.Fatalf("error = %q", got)
	}
}

func TestLoadFrame_ReturnsPNG(t *testing.T) {
	app, m, _, _, _ := newTestApp()
	m.frame = []byte{0x89, 'P', 'N', 'G'}

	req := httptest.NewRequest("GET", "/api/load_frame?video_path=uploads/in.mp4", nil)
	rr := httptest.NewRecorder()

	app.LoadFrame(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	if !bytes.Equal(rr.Body.Bytes(), m.frame) {
		t.Fatalf("body = %v", rr.Body.Bytes())
	}
}

func TestLoadFrame_MissingPath(t *testing.T) {
	app, _, _, _, _ := newTestApp()

	req := httptest.NewRequest("GET", "/api/load_frame", nil)
	rr := httptest.NewRecorder()

	app.LoadFrame(rr, req)

	if rr.Code != 400 {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if got := decodeBody(t, rr)["error"]; got != "Missing video path" {
		t.Fatalf("error = %q", got)
	}
}

func TestUploadToYouTube_Enqueues(t *testing.T) {
	app, _, _, _, jobs := newTestApp()

	req := httptest.NewRequest("POST", "/api/upload_to_youtube", strings.NewReader(
		`{"video_path":"uploads/out.mp4","youtube_title":"demo","youtube_description":"a demo"}`))
	rr := httptest.NewRecorder()

	app.UploadToYouTube(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	resp := decodeBody(t, rr)
	if resp["message"] != "Upload to YouTube started" || resp["job_id"] != "job-1" {
		t.Fatalf("unexpected body: %#v", resp)
	}

	if jobs.calls != 1 || jobs.kind != domain.JobKindYouTubeUpload {
		t.Fatalf("enqueue calls = %d kind = %q", jobs.calls, jobs.kind)
	}
	payload, ok := jobs.payload.(domain.UploadJobPayload)
	if !ok {
		t.Fatalf("payload type %T", jobs.payload)
	}
	if payload.VideoPath != "uploads/out.mp4" || payload.Title != "demo" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestUploadToYouTube_MissingFieldsSkipQueue(t *testing.T) {
	app, _, _, _, jobs := newTestApp()

	req := httptest.NewRequest("POST", "/api/upload_to_youtube", strings.NewReader(
		`{"video_path":"uploads/out.mp4","youtube_title":"demo"}`))
	rr := httptest.NewRecorder()

	app.UploadToYouTube(rr, req)

	if rr.Code != 400 {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if jobs.calls != 0 {
		t.Fatal("enqueue called on a rejected request")
	}
}

func TestUploadToYouTube_QueueUnavailable(t *testing.T) {
	app, _, _, _, jobs := newTestApp()
	jobs.err = domain.ErrQueueUnavailable

	req := httptest.NewRequest("POST", "/api/upload_to_youtube", strings.NewReader(
		`{"video_path":"uploads/out.mp4","youtube_title":"demo","youtube_description":"a demo"}`))
	rr := httptest.NewRecorder()

	app.UploadToYouTube(rr, req)

	if rr.Code != 500 {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}
