package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "gemini-3-flash-preview"

// ErrMissingAPIKey indicates the Gemini backend was selected without a key.
var ErrMissingAPIKey = errors.New("provider: gemini API key is required")

// contentGenerator is the slice of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Verify GenAIProvider satisfies Generator at compile time.
var _ Generator = (*GenAIProvider)(nil)

// GenAIProvider generates text with the Gemini API.
type GenAIProvider struct {
	models  contentGenerator
	model   string
	timeout time.Duration
}

// GenAIOption configures a GenAIProvider.
type GenAIOption func(*GenAIProvider)

// WithModel overrides the Gemini model name.
func WithModel(model string) GenAIOption {
	return func(p *GenAIProvider) {
		if m := strings.TrimSpace(model); m != "" {
			p.model = m
		}
	}
}

// WithGenAITimeout bounds each request.
func WithGenAITimeout(d time.Duration) GenAIOption {
	return func(p *GenAIProvider) { p.timeout = d }
}

// NewGenAIProvider creates a Gemini-backed provider for apiKey.
func NewGenAIProvider(ctx context.Context, apiKey string, opts ...GenAIOption) (*GenAIProvider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &ProviderError{Provider: "gemini", Err: err}
	}
	return newGenAIProvider(client.Models, opts...), nil
}

func newGenAIProvider(models contentGenerator, opts ...GenAIOption) *GenAIProvider {
	p := &GenAIProvider{
		models:  models,
		model:   DefaultGeminiModel,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns "gemini".
func (p *GenAIProvider) Name() string { return "gemini" }

// Model returns the configured model name.
func (p *GenAIProvider) Model() string { return p.model }

// Generate sends prompt as a single user turn and returns the response text.
func (p *GenAIProvider) Generate(ctx context.Context, prompt string, opts GenerateOptions) (Result, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(opts.Temperature),
	}
	if opts.MaxOutputTokens > 0 {
		config.MaxOutputTokens = opts.MaxOutputTokens
	}

	resp, err := p.models.GenerateContent(ctx, p.model, genai.Text(prompt), config)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return Result{}, &TimeoutError{Provider: "gemini", Duration: p.timeout}
		}
		return Result{}, &ProviderError{Provider: "gemini", Err: err}
	}

	return Result{
		Text:     CleanOutput(resp.Text()),
		Duration: time.Since(start),
	}, nil
}
