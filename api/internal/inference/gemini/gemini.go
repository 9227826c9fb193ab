package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"palmyst/api/internal/inference"
)

type Engine struct {
	Model string

	client      *genai.Client
	temperature float32
}

// New opens a Gemini client. The client is safe for concurrent use and is
// shared by every request; Close releases it at shutdown.
func New(ctx context.Context, apiKey, model string) (*Engine, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Engine{
		Model:       strings.TrimSpace(model),
		client:      cl,
		temperature: 0.4,
	}, nil
}

func (e *Engine) Name() string { return "gemini" }

func (e *Engine) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

func (e *Engine) Generate(ctx context.Context, prompt string, image []byte, mime string) (string, error) {
	m := e.client.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.SetTemperature(e.temperature)

	resp, err := m.GenerateContent(ctx, parts(prompt, image, mime)...)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", e.Model, err)
	}
	txt := responseText(resp)
	if strings.TrimSpace(txt) == "" {
		return "", inference.ErrEmptyResponse
	}
	return txt, nil
}

func parts(prompt string, image []byte, mime string) []genai.Part {
	ps := []genai.Part{genai.Text(prompt)}
	if len(image) > 0 {
		ps = append(ps, &genai.Blob{MIMEType: mime, Data: image})
	}
	return ps
}

// responseText joins the text parts of the first candidate that has content.
// Non-text parts are skipped.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil || len(c.Content.Parts) == 0 {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		return b.String()
	}
	return ""
}
