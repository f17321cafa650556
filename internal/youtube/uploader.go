package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// Fixed metadata policy for every upload. Only title and description vary.
const (
	categoryID    = "22"
	privacyStatus = "private"
)

var defaultTags = []string{"test"}

// CredentialSource yields an authenticated HTTP client for the YouTube API.
// How the credentials come to exist (interactive consent, a provisioned
// token file) is outside this package's concern.
type CredentialSource interface {
	Client(ctx context.Context) (*http.Client, error)
}

// FileCredentials builds clients from an OAuth client-secret file plus a
// previously stored token. There is no interactive flow here: a worker
// process cannot prompt, so the token must be provisioned out of band.
type FileCredentials struct {
	ClientSecretFile string
	TokenFile        string
}

// Client fulfils CredentialSource.
func (c *FileCredentials) Client(ctx context.Context) (*http.Client, error) {
	secret, err := os.ReadFile(c.ClientSecretFile)
	if err != nil {
		return nil, fmt.Errorf("youtube: read client secret: %w", err)
	}
	cfg, err := google.ConfigFromJSON(secret, yt.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("youtube: parse client secret: %w", err)
	}

	raw, err := os.ReadFile(c.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("youtube: read token (provision %s via the oauth consent flow first): %w", c.TokenFile, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("youtube: parse token: %w", err)
	}

	return cfg.Client(ctx, &token), nil
}

// Uploader submits videos to YouTube with a chunked, resumable upload.
type Uploader struct {
	creds     CredentialSource
	logger    zerolog.Logger
	chunkSize int
}

// NewUploader constructs an uploader over the given credential source.
func NewUploader(creds CredentialSource, logger zerolog.Logger) *Uploader {
	return &Uploader{
		creds:     creds,
		logger:    logger,
		chunkSize: googleapi.DefaultUploadChunkSize,
	}
}

// Upload sends the file at videoPath to YouTube and returns the created
// video's identifier. Progress observations are logged only; they change no
// state. There is no idempotency key tying a render to an upload, so a retry
// after partial success can create a duplicate remote video.
func (u *Uploader) Upload(ctx context.Context, videoPath, title, description string) (string, error) {
	client, err := u.creds.Client(ctx)
	if err != nil {
		return "", err
	}
	svc, err := yt.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", fmt.Errorf("youtube: build service: %w", err)
	}

	f, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("youtube: open video: %w", err)
	}
	defer f.Close()

	call := svc.Videos.Insert([]string{"snippet", "status"}, buildVideo(title, description))
	call.Media(f, googleapi.ChunkSize(u.chunkSize))
	call.ProgressUpdater(func(current, total int64) {
		if total > 0 {
			u.logger.Info().
				Str("video_path", videoPath).
				Int64("uploaded", current).
				Int64("total", total).
				Msgf("youtube: uploaded %d%%", current*100/total)
		}
	})

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("youtube: upload: %w", err)
	}

	u.logger.Info().Str("video_id", resp.Id).Str("video_path", videoPath).Msg("youtube: upload complete")
	return resp.Id, nil
}

func buildVideo(title, description string) *yt.Video {
	return &yt.Video{
		Snippet: &yt.VideoSnippet{
			CategoryId:  categoryID,
			Title:       title,
			Description: description,
			Tags:        defaultTags,
		},
		Status: &yt.VideoStatus{
			PrivacyStatus: privacyStatus,
		},
	}
}
