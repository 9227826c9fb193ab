package inference

//go:generate mockgen -source=inference.go -destination=mocks/inference_mock.go -package=mocks Client

import (
	"context"
	"errors"
)

// Client sends one prompt plus one inline image to a multimodal model and
// returns the model's text. Calls are independent; no conversation state is kept.
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt string, image []byte, mime string) (string, error)
}

var ErrEmptyResponse = errors.New("inference: empty response")
