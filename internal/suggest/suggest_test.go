package suggest

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	cardsmith "github.com/smileynet/cardsmith"
	"github.com/smileynet/cardsmith/internal/prompt"
	"github.com/smileynet/cardsmith/internal/provider"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func reply(text string, err error) *provider.MockProvider {
	return &provider.MockProvider{
		NameVal: "mock",
		GenerateFunc: func(context.Context, string, provider.GenerateOptions) (provider.Result, error) {
			return provider.Result{Text: text}, err
		},
	}
}

func newGateway(gen provider.Generator) *Gateway {
	return New(gen, prompt.NewLoader(cardsmith.Prompts), zap.NewNop())
}

func TestSuggestTagline(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
		want string
	}{
		{"answer is trimmed", "  Designing tomorrow, today.\n", nil, "Designing tomorrow, today."},
		{"transport error falls back", "", errors.New("network down"), FailedTagline},
		{"empty answer falls back", "", nil, EmptyTagline},
		{"whitespace answer falls back", " \n\t ", nil, EmptyTagline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGateway(reply(tt.text, tt.err))
			if got := g.SuggestTagline(context.Background(), "Ana", "Engineer", "Acme"); got != tt.want {
				t.Errorf("SuggestTagline() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuggestTagline_Request(t *testing.T) {
	// Given a generator that records its request
	var gotPrompt string
	var gotOpts provider.GenerateOptions
	gen := &provider.MockProvider{
		NameVal: "mock",
		GenerateFunc: func(_ context.Context, p string, opts provider.GenerateOptions) (provider.Result, error) {
			gotPrompt, gotOpts = p, opts
			return provider.Result{Text: "ok"}, nil
		},
	}

	// When a tagline is requested
	newGateway(gen).SuggestTagline(context.Background(), "Alex Sterling", "Senior Product Designer", "Lumina Tech")

	// Then the prompt names the person and the options are the tagline tuning
	for _, want := range []string{"Alex Sterling", "Senior Product Designer", "Lumina Tech"} {
		if !strings.Contains(gotPrompt, want) {
			t.Errorf("prompt %q missing %q", gotPrompt, want)
		}
	}
	if gotOpts.Temperature != 0.7 || gotOpts.MaxOutputTokens != 50 {
		t.Errorf("opts = %+v, want temperature 0.7 and 50 tokens", gotOpts)
	}
}

func TestSuggestThemeColor(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
		want string
	}{
		{"lowercase hex", "#10b981", nil, "#10b981"},
		{"case preserved", "#ABCDEF", nil, "#ABCDEF"},
		{"surrounding whitespace", "  #ec4899\n", nil, "#ec4899"},
		{"color name", "blue", nil, FallbackColor},
		{"bad digit", "#12G456", nil, FallbackColor},
		{"short form", "#abc", nil, FallbackColor},
		{"empty", "", nil, FallbackColor},
		{"sentence around code", "Try #3b82f6 for this.", nil, FallbackColor},
		{"error", "", errors.New("quota"), FallbackColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGateway(reply(tt.text, tt.err))
			if got := g.SuggestThemeColor(context.Background(), "Engineer"); got != tt.want {
				t.Errorf("SuggestThemeColor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuggestThemeColor_Request(t *testing.T) {
	var gotPrompt string
	var gotOpts provider.GenerateOptions
	gen := &provider.MockProvider{
		GenerateFunc: func(_ context.Context, p string, opts provider.GenerateOptions) (provider.Result, error) {
			gotPrompt, gotOpts = p, opts
			return provider.Result{Text: "#000000"}, nil
		},
	}

	newGateway(gen).SuggestThemeColor(context.Background(), "Marketing Lead")

	if !strings.Contains(gotPrompt, "profession: Marketing Lead.") {
		t.Errorf("prompt = %q", gotPrompt)
	}
	if gotOpts.Temperature != 0.2 || gotOpts.MaxOutputTokens != 0 {
		t.Errorf("opts = %+v, want temperature 0.2 and default tokens", gotOpts)
	}
}

func TestGateway_NilGeneratorFallsBack(t *testing.T) {
	// Given a gateway without a backend
	g := newGateway(nil)

	// Then both suggestions use the failure fallbacks
	if got := g.SuggestTagline(context.Background(), "", "", ""); got != FailedTagline {
		t.Errorf("SuggestTagline() = %q, want %q", got, FailedTagline)
	}
	if got := g.SuggestThemeColor(context.Background(), ""); got != FallbackColor {
		t.Errorf("SuggestThemeColor() = %q, want %q", got, FallbackColor)
	}
	if g.Provider() != "none" {
		t.Errorf("Provider() = %q, want none", g.Provider())
	}
}

func TestGateway_NoneProviderFallsBack(t *testing.T) {
	g := newGateway(provider.NoneProvider{})
	if got := g.SuggestTagline(context.Background(), "Ana", "Dev", "Acme"); got != FailedTagline {
		t.Errorf("SuggestTagline() = %q, want %q", got, FailedTagline)
	}
}

func TestGateway_PromptErrorFallsBack(t *testing.T) {
	// Given a prompt source missing every template
	called := false
	gen := &provider.MockProvider{
		GenerateFunc: func(context.Context, string, provider.GenerateOptions) (provider.Result, error) {
			called = true
			return provider.Result{Text: "#000000"}, nil
		},
	}
	g := New(gen, prompt.NewLoader(emptyFS{}), nil)

	// Then the backend is never called and fallbacks apply
	if got := g.SuggestThemeColor(context.Background(), "Dev"); got != FallbackColor {
		t.Errorf("SuggestThemeColor() = %q", got)
	}
	if called {
		t.Error("generator should not be called without a prompt")
	}
}

func TestGateway_LogsFailuresWithProvider(t *testing.T) {
	// Given a gateway logging into an observer
	core, logs := observer.New(zapcore.WarnLevel)
	g := New(reply("", errors.New("boom")), prompt.NewLoader(cardsmith.Prompts), zap.New(core))

	// When a suggestion fails
	g.SuggestTagline(context.Background(), "Ana", "Dev", "Acme")

	// Then one warning names the provider and the cause
	entries := logs.TakeAll()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["provider"] != "mock" {
		t.Errorf("provider field = %v, want mock", fields["provider"])
	}
	if fields["error"] != "boom" {
		t.Errorf("error field = %v, want boom", fields["error"])
	}
}

func TestGateway_ConcurrentRequests(t *testing.T) {
	// Given a backend that answers both prompts after a short delay
	var mu sync.Mutex
	calls := 0
	gen := &provider.MockProvider{
		NameVal: "mock",
		GenerateFunc: func(ctx context.Context, p string, _ provider.GenerateOptions) (provider.Result, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			select {
			case <-time.After(10 * time.Millisecond):
			case <-ctx.Done():
				return provider.Result{}, ctx.Err()
			}
			if strings.Contains(p, "hexadecimal") {
				return provider.Result{Text: "#f59e0b"}, nil
			}
			return provider.Result{Text: "Shipping joy."}, nil
		},
	}
	g := newGateway(gen)

	// When both suggestions run at once
	var tagline, color string
	var eg errgroup.Group
	eg.Go(func() error {
		tagline = g.SuggestTagline(context.Background(), "Ana", "Dev", "Acme")
		return nil
	})
	eg.Go(func() error {
		color = g.SuggestThemeColor(context.Background(), "Dev")
		return nil
	})
	if err := eg.Wait(); err != nil {
		t.Fatal(err)
	}

	// Then each resolves independently
	if tagline != "Shipping joy." || color != "#f59e0b" {
		t.Errorf("got tagline %q color %q", tagline, color)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestGateway_CancelledContextFallsBack(t *testing.T) {
	gen := &provider.MockProvider{
		GenerateFunc: func(ctx context.Context, _ string, _ provider.GenerateOptions) (provider.Result, error) {
			<-ctx.Done()
			return provider.Result{}, ctx.Err()
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := newGateway(gen).SuggestTagline(ctx, "Ana", "Dev", "Acme"); got != FailedTagline {
		t.Errorf("SuggestTagline() = %q, want %q", got, FailedTagline)
	}
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
