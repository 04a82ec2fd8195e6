package provider

import (
	"context"
	"time"
)

// ClaudePreset returns the built-in CommandConfig for Claude Code.
func ClaudePreset() CommandConfig {
	return CommandConfig{
		Name:       "claude",
		Binary:     "claude",
		PromptFlag: "-p",
	}
}

// KiroPreset returns the built-in CommandConfig for Kiro CLI.
func KiroPreset() CommandConfig {
	return CommandConfig{
		Name:      "kiro",
		Binary:    "kiro-cli",
		Args:      []string{"chat", "--no-interactive", "--wrap", "never"},
		StripANSI: true,
	}
}

// GeminiCLIPreset returns the built-in CommandConfig for the Gemini CLI.
func GeminiCLIPreset() CommandConfig {
	return CommandConfig{
		Name:       "gemini-cli",
		Binary:     "gemini",
		PromptFlag: "-p",
	}
}

// BuiltinOptions carries the settings built-in providers need.
type BuiltinOptions struct {
	Timeout time.Duration
	Model   string
	APIKey  string
}

// RegisterBuiltins registers the built-in providers on the given registry.
func RegisterBuiltins(reg *Registry, opts BuiltinOptions) {
	reg.Register("gemini", "Gemini API ("+modelOrDefault(opts.Model)+")", func() (Generator, error) {
		return NewGenAIProvider(context.Background(), opts.APIKey,
			WithModel(opts.Model),
			WithGenAITimeout(opts.Timeout),
		)
	})
	for _, preset := range []CommandConfig{ClaudePreset(), KiroPreset(), GeminiCLIPreset()} {
		reg.Register(preset.Name, "runs the "+preset.Binary+" CLI", func() (Generator, error) {
			return NewCLIProvider(preset, WithTimeout(opts.Timeout)), nil
		})
	}
	reg.Register("none", "offline, every suggestion uses its fallback", func() (Generator, error) {
		return NoneProvider{}, nil
	})
}

func modelOrDefault(model string) string {
	if model == "" {
		return DefaultGeminiModel
	}
	return model
}
