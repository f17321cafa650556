package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"videoforge/internal/domain"
	"videoforge/internal/storage"
)

// Fixed generation policy: one candidate, standard quality, 512x512.
const (
	imageSize    = "512x512"
	imageQuality = "standard"
)

// OpenAI generates images through the OpenAI images endpoint, downloads the
// returned URL synchronously, and persists the bytes as a PNG under the media
// store. A single provider error aborts the caller; there is no retry.
type OpenAI struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	store      *storage.MediaStore
	logger     zerolog.Logger
}

// NewOpenAI constructs the adapter. An empty baseURL targets the public API.
func NewOpenAI(apiKey, baseURL, model string, httpClient *http.Client, store *storage.MediaStore, logger zerolog.Logger) *OpenAI {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "dall-e-3"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	return &OpenAI{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
		store:      store,
		logger:     logger,
	}
}

type generateRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type generateResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate fulfils the Generator interface.
func (g *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	url, err := g.requestImage(ctx, prompt)
	if err != nil {
		return "", err
	}

	img, err := g.download(ctx, url)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("screenshot_%s.png", uuid.NewString())
	path, err := g.store.Path(name)
	if err != nil {
		return "", err
	}
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("save generated image: %w", err)
	}

	g.logger.Info().Str("path", path).Msg("imagegen: image persisted")
	return path, nil
}

func (g *OpenAI) requestImage(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:   g.model,
		Prompt:  prompt,
		N:       1,
		Size:    imageSize,
		Quality: imageQuality,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", domain.ErrGeneration, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrGeneration, err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrGeneration, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if decoded.Error != nil && decoded.Error.Message != "" {
			msg = decoded.Error.Message
		}
		return "", fmt.Errorf("%w: %s", domain.ErrGeneration, msg)
	}
	if len(decoded.Data) == 0 || decoded.Data[0].URL == "" {
		return "", fmt.Errorf("%w: provider returned no candidates", domain.ErrGeneration)
	}
	return decoded.Data[0].URL, nil
}

func (g *OpenAI) download(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDownload, err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDownload, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", domain.ErrDownload, resp.Status)
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", domain.ErrDownload, err)
	}
	return img, nil
}
