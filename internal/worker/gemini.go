package worker

import (
	"alfaaz/internal/config"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/imroc/req/v3"
	"github.com/tidwall/gjson"
)

type GeminiGenerator struct {
	client *req.Client
	model  string
}

func NewGeminiGenerator(cfg config.Gemini) *GeminiGenerator {
	c := req.C().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &GeminiGenerator{client: c, model: cfg.Model}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

// Generate returns the text of the first candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if apiKey == "" {
		return "", errors.New("API Key missing")
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", apiKey).
		SetBodyJsonMarshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}).
		Post("/models/" + url.PathEscape(g.model) + ":generateContent")
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	body := resp.Bytes()
	if resp.IsErrorState() {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("generate content: %s", msg)
	}

	parts := gjson.GetBytes(body, "candidates.0.content.parts.#.text").Array()
	if len(parts) == 0 {
		reason := gjson.GetBytes(body, "promptFeedback.blockReason").String()
		if reason != "" {
			return "", fmt.Errorf("generate content: prompt blocked: %s", reason)
		}
		return "", errors.New("generate content: response has no candidates")
	}

	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.String())
	}
	return sb.String(), nil
}
