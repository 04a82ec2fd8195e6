// Package provider abstracts generative text backends behind a common interface.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// GenerateOptions tunes a single generation request.
// Backends that cannot honor an option ignore it.
type GenerateOptions struct {
	Temperature     float32
	MaxOutputTokens int32 // 0 means backend default
}

// Result holds the raw output from a generation.
type Result struct {
	Text     string
	Duration time.Duration
}

// Verify MockProvider satisfies Generator at compile time.
var _ Generator = (*MockProvider)(nil)

// MockProvider is a test double for any Generator consumer.
type MockProvider struct {
	NameVal      string
	GenerateFunc func(ctx context.Context, prompt string, opts GenerateOptions) (Result, error)
}

// Name returns the configured provider name.
func (m *MockProvider) Name() string { return m.NameVal }

// Generate delegates to GenerateFunc, returning a zero Result if GenerateFunc is nil.
func (m *MockProvider) Generate(ctx context.Context, prompt string, opts GenerateOptions) (Result, error) {
	if m.GenerateFunc == nil {
		return Result{}, nil
	}
	return m.GenerateFunc(ctx, prompt, opts)
}

// ErrNoBackend is returned by the "none" provider for every request.
var ErrNoBackend = errors.New("provider: no generation backend configured")

// NoneProvider is a Generator that always fails, so callers fall back.
type NoneProvider struct{}

// Name returns "none".
func (NoneProvider) Name() string { return "none" }

// Generate returns ErrNoBackend.
func (NoneProvider) Generate(context.Context, string, GenerateOptions) (Result, error) {
	return Result{}, ErrNoBackend
}

// CleanOutput strips markdown code fence lines and surrounding whitespace
// from model output. Models asked for "ONLY the tagline" still sometimes
// wrap it in a fence.
func CleanOutput(output string) string {
	var kept []string
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// ProviderError wraps an error from a specific provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider: %s: %s", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// TimeoutError indicates a generation exceeded its time limit.
type TimeoutError struct {
	Provider string
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("provider: %s: timed out after %s", e.Provider, e.Duration)
}
