package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// defaultTimeout bounds a CLI generation when WithTimeout is not given.
const defaultTimeout = 30 * time.Second

// CommandConfig describes how to ask an AI CLI for a one-shot answer.
type CommandConfig struct {
	Name       string   // registry name, also used in errors
	Binary     string   // executable looked up on PATH
	Args       []string // fixed leading arguments, subcommand first
	PromptFlag string   // flag preceding the prompt; empty passes it last
	StripANSI  bool     // CLI colors its output even when piped
}

// argv returns the full argument list for prompt.
func (c CommandConfig) argv(prompt string) []string {
	args := make([]string, 0, len(c.Args)+2)
	args = append(args, c.Args...)
	if c.PromptFlag != "" {
		args = append(args, c.PromptFlag)
	}
	return append(args, prompt)
}

var _ Generator = (*CLIProvider)(nil)

// CLIProvider generates suggestions by running an AI CLI as a subprocess.
// Temperature and token limits cannot be passed to these tools, so
// GenerateOptions is ignored.
type CLIProvider struct {
	config  CommandConfig
	timeout time.Duration
	command func(ctx context.Context, prompt string) *exec.Cmd
}

// Option configures a CLIProvider.
type Option func(*CLIProvider)

// WithTimeout bounds each Generate call. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(p *CLIProvider) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewCLIProvider returns a provider that runs cfg.Binary.
func NewCLIProvider(cfg CommandConfig, opts ...Option) *CLIProvider {
	p := &CLIProvider{config: cfg, timeout: defaultTimeout}
	p.command = func(ctx context.Context, prompt string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, p.config.Binary, p.config.argv(prompt)...)
		cmd.WaitDelay = time.Second
		return cmd
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the configured provider name.
func (p *CLIProvider) Name() string { return p.config.Name }

// Generate runs the CLI once and returns its answer with fences and
// escape codes removed.
func (p *CLIProvider) Generate(ctx context.Context, prompt string, _ GenerateOptions) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := p.command(ctx, prompt)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return Result{}, p.failure(ctx, err, stderr.String())
	}
	return Result{Text: p.answer(stdout.String()), Duration: time.Since(start)}, nil
}

// failure maps a failed run to TimeoutError or ProviderError. Only the
// last stderr line is kept; CLIs print banners and progress before it.
func (p *CLIProvider) failure(ctx context.Context, err error, stderr string) error {
	if errors.Is(err, exec.ErrNotFound) {
		return &ProviderError{
			Provider: p.config.Name,
			Err:      fmt.Errorf("%s is not installed: %w", p.config.Binary, err),
		}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Provider: p.config.Name, Duration: p.timeout}
	}
	if msg := lastLine(stderr); msg != "" {
		err = fmt.Errorf("%w: %s", err, msg)
	}
	return &ProviderError{Provider: p.config.Name, Err: err}
}

func (p *CLIProvider) answer(stdout string) string {
	if p.config.StripANSI {
		stdout = stripANSI(stdout)
	}
	return CleanOutput(stdout)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
