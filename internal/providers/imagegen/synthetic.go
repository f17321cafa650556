package imagegen

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/fogleman/gg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"videoforge/internal/storage"
)

// Synthetic draws a placeholder image locally instead of calling a remote
// provider. It is used when no API key is configured, so development
// environments can exercise the full create-video flow offline.
type Synthetic struct {
	store  *storage.MediaStore
	logger zerolog.Logger
}

// NewSynthetic constructs the placeholder generator.
func NewSynthetic(store *storage.MediaStore, logger zerolog.Logger) *Synthetic {
	return &Synthetic{store: store, logger: logger}
}

// Generate renders the prompt text on a flat background whose color is
// derived from the prompt, so distinct prompts are visually distinct.
func (g *Synthetic) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	const side = 512
	dc := gg.NewContext(side, side)

	r, gr, b := promptColor(prompt)
	dc.SetRGB(r, gr, b)
	dc.Clear()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringWrapped(prompt, side/2, side/2, 0.5, 0.5, side-40, 1.5, gg.AlignCenter)

	name := fmt.Sprintf("screenshot_%s.png", uuid.NewString())
	path, err := g.store.Path(name)
	if err != nil {
		return "", err
	}
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save placeholder image: %w", err)
	}

	g.logger.Debug().Str("path", path).Msg("imagegen: synthetic image persisted")
	return path, nil
}

func promptColor(prompt string) (float64, float64, float64) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	v := h.Sum32()
	r := float64(v&0xff) / 512
	g := float64((v>>8)&0xff) / 512
	b := float64((v>>16)&0xff) / 512
	return 0.15 + r, 0.15 + g, 0.15 + b
}
