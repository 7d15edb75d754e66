package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medguide/api/internal/llm"
	"medguide/api/internal/util"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Engine talks to the Gemini API for both text and vision completions.
type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// Complete sends a text prompt and returns the raw completion.
func (e *Engine) Complete(ctx context.Context, prompt string) (llm.Completion, error) {
	if e.APIKey == "" {
		return llm.Completion{}, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return llm.Completion{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return llm.Completion{}, fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return llm.Completion{}, err
	}
	txt := firstText(resp)
	if txt == "" {
		return llm.Completion{}, fmt.Errorf("gemini: empty response")
	}
	return llm.Completion{Text: txt, Tokens: totalTokens(resp)}, nil
}

// CompleteImage sends image bytes plus a prompt and returns the raw completion.
func (e *Engine) CompleteImage(ctx context.Context, image []byte, prompt string) (llm.Completion, error) {
	if e.APIKey == "" {
		return llm.Completion{}, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return llm.Completion{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return llm.Completion{}, fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}

	parts := []genai.Part{
		genai.Text(prompt),
		&genai.Blob{MIMEType: util.SniffImageMIME(image), Data: image},
	}
	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return llm.Completion{}, err
	}
	txt := firstText(resp)
	if txt == "" {
		return llm.Completion{}, fmt.Errorf("gemini: empty response")
	}
	return llm.Completion{Text: txt, Tokens: totalTokens(resp)}, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func totalTokens(resp *genai.GenerateContentResponse) int {
	if resp == nil || resp.UsageMetadata == nil {
		return 0
	}
	return int(resp.UsageMetadata.TotalTokenCount)
}

func ptrFloat32(v float32) *float32 { return &v }
