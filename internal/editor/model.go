package editor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/smileynet/cardsmith/internal/card"
	"github.com/smileynet/cardsmith/internal/contact"
)

// defaultTimeout bounds a suggestion request when Config leaves it unset.
const defaultTimeout = 30 * time.Second

// Config wires a Model to its collaborators.
type Config struct {
	Record    contact.Record
	Mode      card.Mode
	Suggester Suggester // nil disables suggestions
	Exporter  Exporter  // nil disables export
	Timeout   time.Duration
	Logger    *zap.Logger
}

// Model is the root Bubble Tea model for the editor.
//
// All record changes happen in Update, so the record needs no lock.
// Suggestion requests run as commands; each action owns one busy slot and a
// second request for a busy action is ignored. Responses overwrite the field
// even if it was edited while the request was in flight.
type Model struct {
	record contact.Record
	issues []contact.Issue
	mode   card.Mode

	names  []string
	inputs []textinput.Model
	focus  int

	busy    [actionCount]bool
	spinner spinner.Model
	status  string

	suggester Suggester
	exporter  Exporter
	timeout   time.Duration
	log       *zap.Logger

	keys   editorKeys
	help   help.Model
	width  int
	height int
}

// NewModel creates an editor over cfg.Record with the first field focused.
func NewModel(cfg Config) Model {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = busyStyle

	m := Model{
		record:    cfg.Record,
		mode:      cfg.Mode,
		names:     contact.FieldNames(),
		spinner:   s,
		suggester: cfg.Suggester,
		exporter:  cfg.Exporter,
		timeout:   cfg.Timeout,
		log:       cfg.Logger,
		keys:      EditorKeyMap(),
		help:      help.New(),
	}
	m.inputs = make([]textinput.Model, len(m.names))
	for i, name := range m.names {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldLabel(name)
		m.inputs[i] = ti
	}
	m.syncInputs()
	m.inputs[0].Focus()
	m.issues = contact.Lint(m.record)
	return m
}

// Record returns the current record.
func (m Model) Record() contact.Record { return m.record }

// Mode returns the preview color scheme.
func (m Model) Mode() card.Mode { return m.mode }

// Busy reports whether a request for a is in flight.
func (m Model) Busy(a Action) bool { return m.busy[a] }

// Generating reports whether any suggestion request is in flight.
func (m Model) Generating() bool {
	for _, b := range m.busy {
		if b {
			return true
		}
	}
	return false
}

// Status returns the last status line message.
func (m Model) Status() string { return m.status }

// Focused returns the name of the focused field.
func (m Model) Focused() string { return m.names[m.focus] }

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		formWidth, _ := columnWidths(msg.Width)
		for i := range m.inputs {
			m.inputs[i].Width = max(formWidth-labelWidth-2, 1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SuggestionMsg:
		return m.applySuggestion(msg), nil

	case ExportedMsg:
		if msg.Err != nil {
			m.log.Error("Export failed", zap.Error(msg.Err))
			m.status = "Export failed: " + msg.Err.Error()
		} else {
			m.log.Info("Card exported", zap.String("path", msg.Path))
			m.status = "Saved " + msg.Path
		}
		return m, nil

	case spinner.TickMsg:
		if !m.Generating() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// handleKey routes bound keys; anything else edits the focused field.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1), nil
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1), nil
	case key.Matches(msg, m.keys.Tagline):
		return m.request(ActionTagline)
	case key.Matches(msg, m.keys.Color):
		return m.request(ActionThemeColor)
	case key.Matches(msg, m.keys.Preset):
		color := contact.ProfessionTheme(m.record.Designation)
		m = m.setField(contact.FieldThemeColor, color)
		m.status = "Theme color set to " + color
		return m, nil
	case key.Matches(msg, m.keys.Export):
		return m, m.export()
	case key.Matches(msg, m.keys.Mode):
		m.mode = m.mode.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input and records any edit.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m = m.setField(m.names[m.focus], after)
	}
	return m, cmd
}

// setField applies one edit and keeps the input and lint results in step.
func (m Model) setField(name, value string) Model {
	r, err := contact.SetField(m.record, name, value)
	if err != nil {
		m.log.Error("Rejected field edit", zap.String("field", name), zap.Error(err))
		return m
	}
	m.record = r
	for i, n := range m.names {
		if n == name && m.inputs[i].Value() != value {
			m.inputs[i].SetValue(value)
		}
	}
	m.issues = contact.Lint(m.record)
	return m
}

func (m *Model) syncInputs() {
	for i, name := range m.names {
		v, _ := contact.Field(m.record, name)
		m.inputs[i].SetValue(v)
	}
}

func (m Model) moveFocus(delta int) Model {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

// request starts a suggestion for a unless one is already in flight.
func (m Model) request(a Action) (tea.Model, tea.Cmd) {
	if m.suggester == nil {
		m.status = "Suggestions are not configured"
		return m, nil
	}
	if m.busy[a] {
		return m, nil
	}
	wasIdle := !m.Generating()
	m.busy[a] = true
	m.status = fmt.Sprintf("Suggesting %s…", a)
	m.log.Debug("Suggestion requested", zap.Stringer("action", a))

	cmd := m.suggest(a)
	if wasIdle {
		return m, tea.Batch(cmd, m.spinner.Tick)
	}
	return m, cmd
}

// suggest builds the command for a, reading the record as it is now.
func (m Model) suggest(a Action) tea.Cmd {
	r, s, timeout := m.record, m.suggester, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if a == ActionThemeColor {
			return SuggestionMsg{Action: a, Value: s.SuggestThemeColor(ctx, r.Designation)}
		}
		return SuggestionMsg{Action: a, Value: s.SuggestTagline(ctx, r.FullName, r.Designation, r.Company)}
	}
}

// applySuggestion writes a resolved suggestion and frees only its slot.
func (m Model) applySuggestion(msg SuggestionMsg) Model {
	if msg.Action < 0 || msg.Action >= actionCount {
		return m
	}
	m.busy[msg.Action] = false
	m = m.setField(msg.Action.field(), msg.Value)
	m.status = fmt.Sprintf("Applied %s suggestion", msg.Action)
	return m
}

func (m Model) export() tea.Cmd {
	if m.exporter == nil {
		return nil
	}
	r, e := m.record, m.exporter
	return func() tea.Msg {
		path, err := e.Save(r)
		return ExportedMsg{Path: path, Err: err}
	}
}

// View renders the form beside the card preview, with status and help below.
func (m Model) View() string {
	formWidth, previewWidth := columnWidths(m.width)

	var form strings.Builder
	for i, name := range m.names {
		ls := labelStyle
		if i == m.focus {
			ls = focusedLabelStyle
		}
		line := ls.Render(fieldLabel(name)) + m.inputs[i].View()
		if m.fieldBusy(name) {
			line += " " + m.spinner.View()
		}
		form.WriteString(line + "\n")
	}
	for _, issue := range m.issues {
		form.WriteString(issueStyle.Render("! "+issue.String()) + "\n")
	}

	body := lipgloss.NewStyle().Width(formWidth).Render(form.String())
	if previewWidth > 0 {
		preview := card.Render(card.Project(m.record, m.mode), previewWidth)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", preview)
	}

	status := m.status
	if m.Generating() {
		status = m.spinner.View() + " " + status
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		statusStyle.Render(status),
		m.help.View(m.keys),
	)
}

func (m Model) fieldBusy(name string) bool {
	for a := Action(0); a < actionCount; a++ {
		if m.busy[a] && a.field() == name {
			return true
		}
	}
	return false
}
