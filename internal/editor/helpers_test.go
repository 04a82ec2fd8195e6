package editor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/cardsmith/internal/contact"
)

// stubSuggester returns fixed values and records what it was asked.
type stubSuggester struct {
	mu          sync.Mutex
	tagline     string
	color       string
	taglineArgs []string
	profession  string
	calls       int
}

func (s *stubSuggester) SuggestTagline(_ context.Context, fullName, role, company string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.taglineArgs = []string{fullName, role, company}
	return s.tagline
}

func (s *stubSuggester) SuggestThemeColor(_ context.Context, profession string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.profession = profession
	return s.color
}

// stubExporter records the last saved record.
type stubExporter struct {
	saved *contact.Record
	path  string
	err   error
}

func (e *stubExporter) Save(r contact.Record) (string, error) {
	e.saved = &r
	return e.path, e.err
}

var errDiskFull = errors.New("disk full")

func newTestModel(r contact.Record, s Suggester, e Exporter) Model {
	return NewModel(Config{Record: r, Suggester: s, Exporter: e})
}

// send applies msg and returns the updated Model and command.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// execBatch executes a tea.Cmd, handling both single commands and batch
// commands. Spinner ticks are skipped.
func execBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			if c != nil {
				result := c()
				if _, isTick := result.(spinner.TickMsg); !isTick {
					msgs = append(msgs, result)
				}
			}
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// only returns the single message of type T in msgs.
func only[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	var found []T
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			found = append(found, v)
		}
	}
	if len(found) != 1 {
		t.Fatalf("got %d messages of type %T in %v, want 1", len(found), *new(T), msgs)
	}
	return found[0]
}

func containsText(s, sub string) bool {
	return strings.Contains(s, sub)
}
