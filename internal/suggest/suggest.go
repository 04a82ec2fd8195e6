// Package suggest asks a generation backend for taglines and theme colors,
// degrading to fixed fallbacks whenever the backend cannot help.
package suggest

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/cardsmith/internal/contact"
	"github.com/smileynet/cardsmith/internal/prompt"
	"github.com/smileynet/cardsmith/internal/provider"
)

// Fallback values returned instead of errors.
const (
	// FailedTagline replaces a tagline when the backend call fails.
	FailedTagline = "Innovating excellence in every pixel."
	// EmptyTagline replaces a tagline when the backend answers with nothing.
	EmptyTagline = "Empowering innovation through excellence."
	// FallbackColor replaces any theme color that is not a #RRGGBB code.
	FallbackColor = contact.DefaultThemeColor
)

var (
	taglineOptions = provider.GenerateOptions{Temperature: 0.7, MaxOutputTokens: 50}
	colorOptions   = provider.GenerateOptions{Temperature: 0.2}
)

var errNoGenerator = errors.New("suggest: no generator configured")

// Composer renders a named prompt template.
type Composer interface {
	Compose(name string, ctx prompt.Context) (string, error)
}

// Gateway turns record fields into suggestion requests.
// It is safe for concurrent use if its Generator is.
type Gateway struct {
	gen     provider.Generator
	prompts Composer
	log     *zap.Logger
}

// New creates a Gateway. A nil gen makes every request fall back.
func New(gen provider.Generator, prompts Composer, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{gen: gen, prompts: prompts, log: log}
}

// Provider returns the backend name, or "none" without a backend.
func (g *Gateway) Provider() string {
	if g.gen == nil {
		return "none"
	}
	return g.gen.Name()
}

// SuggestTagline returns a one-line tagline for the person. It never fails.
func (g *Gateway) SuggestTagline(ctx context.Context, fullName, role, company string) string {
	text, err := g.generate(ctx, prompt.Tagline, prompt.Context{
		FullName: fullName,
		Role:     role,
		Company:  company,
	}, taglineOptions)
	if err != nil {
		g.log.Warn("Tagline suggestion failed",
			zap.String("provider", g.Provider()),
			zap.Error(err))
		return FailedTagline
	}
	if text == "" {
		g.log.Warn("Tagline suggestion was empty", zap.String("provider", g.Provider()))
		return EmptyTagline
	}
	return text
}

// SuggestThemeColor returns a #RRGGBB color for the profession. The
// backend's casing is kept; anything that is not a hex code becomes
// FallbackColor.
func (g *Gateway) SuggestThemeColor(ctx context.Context, profession string) string {
	text, err := g.generate(ctx, prompt.ThemeColor, prompt.Context{Profession: profession}, colorOptions)
	if err != nil {
		g.log.Warn("Theme color suggestion failed",
			zap.String("provider", g.Provider()),
			zap.Error(err))
		return FallbackColor
	}
	if !contact.IsHexColor(text) {
		g.log.Warn("Theme color suggestion was not a hex code",
			zap.String("provider", g.Provider()),
			zap.String("answer", text))
		return FallbackColor
	}
	return text
}

func (g *Gateway) generate(ctx context.Context, name string, pc prompt.Context, opts provider.GenerateOptions) (string, error) {
	if g.gen == nil {
		return "", errNoGenerator
	}
	p, err := g.prompts.Compose(name, pc)
	if err != nil {
		return "", err
	}
	res, err := g.gen.Generate(ctx, p, opts)
	if err != nil {
		return "", err
	}
	g.log.Debug("Suggestion generated",
		zap.String("provider", g.gen.Name()),
		zap.String("prompt", name),
		zap.Duration("duration", res.Duration))
	return strings.TrimSpace(res.Text), nil
}
