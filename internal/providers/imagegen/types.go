package imagegen

import "context"

// Generator produces one image for a text prompt and persists it under the
// shared media directory, returning the local file path.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
