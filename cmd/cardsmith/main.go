package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	cardsmith "github.com/smileynet/cardsmith"
	"github.com/smileynet/cardsmith/internal/card"
	"github.com/smileynet/cardsmith/internal/config"
	"github.com/smileynet/cardsmith/internal/contact"
	"github.com/smileynet/cardsmith/internal/editor"
	"github.com/smileynet/cardsmith/internal/export"
	"github.com/smileynet/cardsmith/internal/logging"
	"github.com/smileynet/cardsmith/internal/prompt"
	"github.com/smileynet/cardsmith/internal/provider"
	"github.com/smileynet/cardsmith/internal/suggest"
	"github.com/smileynet/cardsmith/internal/vcard"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for cardsmith.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Edit    EditCmd          `cmd:"" help:"Edit a card interactively."`
	Show    ShowCmd          `cmd:"" help:"Print the card preview."`
	Export  ExportCmd        `cmd:"" help:"Write the card as a vCard file."`
	Suggest SuggestCmd       `cmd:"" help:"Ask the suggestion backend for a tagline or theme color."`
}

// RecordFlags selects the record a command works on.
type RecordFlags struct {
	From string `help:"Read the record from a YAML file instead of the sample card." short:"f" type:"path"`
}

func (f RecordFlags) load() (contact.Record, error) {
	if f.From == "" {
		return contact.Default(), nil
	}
	return contact.LoadFile(f.From)
}

// --- Setup ---

// app carries what every command needs after setup.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

// loadConfig loads .env, then layered config from user and project paths
// with env overrides.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	home, _ := os.UserHomeDir()
	cfg, err := config.LoadLayered(config.Paths(home, ".")...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads and validates config and builds the logger. Interactive
// commands log to the configured file so the terminal stays clean.
func setup(interactive bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := logging.Options{Level: cfg.Log.Level}
	if interactive {
		opts.File = cfg.Log.File
	}
	log, err := logging.New(opts)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

// mode returns the preview mode from config, forced dark by the flag.
func (a *app) mode(dark bool) card.Mode {
	if dark {
		return card.Dark
	}
	m, _ := card.ParseMode(a.cfg.Card.Mode)
	return m
}

// gateway builds the suggestion gateway for the configured provider. A
// backend that cannot start for lack of a key degrades to fallbacks.
func (a *app) gateway(providerName string) (*suggest.Gateway, error) {
	if providerName == "" {
		providerName = a.cfg.Runtime.Provider
	}

	reg := provider.NewRegistry()
	provider.RegisterBuiltins(reg, provider.BuiltinOptions{
		Timeout: a.cfg.Runtime.Timeout,
		Model:   a.cfg.Runtime.Model,
		APIKey:  a.cfg.Runtime.APIKey,
	})

	gen, err := reg.NewProvider(providerName)
	switch {
	case errors.Is(err, provider.ErrMissingAPIKey):
		a.log.Warn("No API key configured, suggestions will use fallbacks",
			zap.String("provider", providerName))
		gen = nil
	case err != nil:
		return nil, err
	default:
		summary, _ := reg.Summary(providerName)
		a.log.Debug("Suggestion backend ready",
			zap.String("provider", gen.Name()),
			zap.String("summary", summary))
	}

	prompts := prompt.NewLoader(cardsmith.OverlayFS(filepath.Join(".cardsmith", "prompts"), cardsmith.Prompts))
	return suggest.New(gen, prompts, a.log), nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// --- Edit command ---

// EditCmd opens the interactive editor.
type EditCmd struct {
	RecordFlags `embed:""`
	Dark     bool   `help:"Start the preview in dark mode."`
	Provider string `help:"Suggestion backend (gemini, claude, kiro, gemini-cli, none). Defaults to runtime.provider."`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the editor.
func (e *EditCmd) Run() error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("edit: requires a terminal (TTY)")
	}

	a, err := setup(true)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	defer a.close()

	r, err := e.load()
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	gw, err := a.gateway(e.Provider)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}

	m := editor.NewModel(editor.Config{
		Record:    r,
		Mode:      a.mode(e.Dark),
		Suggester: gw,
		Exporter:  export.NewSaver(a.cfg.Export.Dir),
		Timeout:   a.cfg.Runtime.Timeout,
		Logger:    a.log,
	})
	a.log.Info("Editor started", zap.String("provider", gw.Provider()))

	prog := tea.NewProgram(m, tea.WithAltScreen())
	return e.run(true, prog)
}

// run executes the tea program, enabling testable wiring.
func (e *EditCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("edit: requires a terminal (TTY)")
	}
	if _, err := prog.Run(); err != nil {
		return &runtimeError{fmt.Errorf("edit: %w", err)}
	}
	return nil
}

// --- Show command ---

// ShowCmd prints the card preview.
type ShowCmd struct {
	RecordFlags `embed:""`
	Dark  bool `help:"Render in dark mode."`
	Plain bool `help:"Force plain text output even if stdout is a TTY."`
	Watch bool `help:"Re-render whenever the --from file changes."`
}

// Run executes the show command.
func (s *ShowCmd) Run() error {
	a, err := setup(false)
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	defer a.close()

	plain := s.Plain || !isTerminal(os.Stdout)
	if !s.Watch {
		return s.run(os.Stdout, a.mode(s.Dark), plain)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return s.watch(ctx, os.Stdout, a.mode(s.Dark), plain, a.log)
}

// run prints the card once.
func (s *ShowCmd) run(w io.Writer, mode card.Mode, plain bool) error {
	r, err := s.load()
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	printCard(w, r, mode, plain)
	return nil
}

func printCard(w io.Writer, r contact.Record, mode card.Mode, plain bool) {
	v := card.Project(r, mode)
	if plain {
		_, _ = fmt.Fprint(w, card.RenderPlain(v))
		return
	}
	_, _ = fmt.Fprintln(w, card.Render(v, card.DefaultWidth))
}

// --- Export command ---

// ExportCmd writes the record as a vCard.
type ExportCmd struct {
	RecordFlags `embed:""`
	Out    string `help:"Directory to write into. Defaults to export.dir." short:"o" type:"path"`
	Stdout bool   `help:"Write the vCard to stdout instead of a file."`
}

// cardSaver abstracts export.Saver for testing.
type cardSaver interface {
	Save(r contact.Record) (string, error)
}

// Run executes the export command.
func (x *ExportCmd) Run() error {
	a, err := setup(false)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer a.close()

	dir := a.cfg.Export.Dir
	if x.Out != "" {
		dir = x.Out
	}
	return x.run(os.Stdout, export.NewSaver(dir), a.log)
}

// run exports with the given saver, enabling testable wiring.
func (x *ExportCmd) run(w io.Writer, saver cardSaver, log *zap.Logger) error {
	r, err := x.load()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for _, issue := range contact.Lint(r) {
		log.Warn("Record issue", zap.String("field", issue.Field), zap.String("issue", issue.Message))
	}

	if x.Stdout {
		_, err := w.Write(vcard.Encode(r))
		return err
	}

	path, err := saver.Save(r)
	if err != nil {
		return &runtimeError{err}
	}
	log.Info("Card exported", zap.String("path", path))
	_, _ = fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

// --- Suggest command ---

// SuggestCmd prints backend suggestions for the record.
type SuggestCmd struct {
	RecordFlags `embed:""`
	Kind     string `arg:"" enum:"tagline,color,both" help:"What to suggest: tagline, color or both."`
	Provider string `help:"Suggestion backend (gemini, claude, kiro, gemini-cli, none). Defaults to runtime.provider."`
}

// Run executes the suggest command.
func (c *SuggestCmd) Run() error {
	a, err := setup(false)
	if err != nil {
		return fmt.Errorf("suggest: %w", err)
	}
	defer a.close()

	gw, err := a.gateway(c.Provider)
	if err != nil {
		return fmt.Errorf("suggest: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return c.run(ctx, os.Stdout, gw)
}

// run asks s for the requested suggestions. For "both" the two requests
// run concurrently.
func (c *SuggestCmd) run(ctx context.Context, w io.Writer, s editor.Suggester) error {
	r, err := c.load()
	if err != nil {
		return fmt.Errorf("suggest: %w", err)
	}

	var tagline, color string
	g, ctx := errgroup.WithContext(ctx)
	if c.Kind != "color" {
		g.Go(func() error {
			tagline = s.SuggestTagline(ctx, r.FullName, r.Designation, r.Company)
			return nil
		})
	}
	if c.Kind != "tagline" {
		g.Go(func() error {
			color = s.SuggestThemeColor(ctx, r.Designation)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	switch c.Kind {
	case "tagline":
		_, _ = fmt.Fprintln(w, tagline)
	case "color":
		_, _ = fmt.Fprintln(w, color)
	default:
		_, _ = fmt.Fprintf(w, "tagline: %s\ncolor:   %s\n", tagline, color)
	}
	return nil
}

// --- Exit codes ---

// Exit codes returned by main.
const (
	exitSuccess = 0
	exitRuntime = 1
	exitSetup   = 2
)

// runtimeError marks a failure after setup succeeded, e.g. a write error.
type runtimeError struct {
	err error
}

func (e *runtimeError) Error() string { return e.err.Error() }
func (e *runtimeError) Unwrap() error { return e.err }

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var re *runtimeError
	if errors.As(err, &re) {
		return exitRuntime
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cardsmith"),
		kong.Description("Design a digital business card, get suggestions, export a vCard."),
		kong.UsageOnError(),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
