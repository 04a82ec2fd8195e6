package editor

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/google/go-cmp/cmp"

	"github.com/smileynet/cardsmith/internal/card"
	"github.com/smileynet/cardsmith/internal/contact"
)

func TestNewModel_Defaults(t *testing.T) {
	m := newTestModel(contact.Default(), nil, nil)

	if m.Focused() != contact.FieldFullName {
		t.Errorf("Focused() = %q, want %q", m.Focused(), contact.FieldFullName)
	}
	if m.Mode() != card.Light {
		t.Errorf("Mode() = %v, want light", m.Mode())
	}
	if m.Generating() {
		t.Error("a new model should not be generating")
	}
	if m.inputs[0].Value() != "Alex Sterling" {
		t.Errorf("fullName input = %q", m.inputs[0].Value())
	}
	if len(m.inputs) != len(contact.FieldNames()) {
		t.Errorf("got %d inputs, want one per field", len(m.inputs))
	}
}

func TestModel_TypingEditsOnlyFocusedField(t *testing.T) {
	// Given an empty record with the full name focused
	m := newTestModel(contact.Record{}, nil, nil)

	// When text is typed
	m = typeText(t, m, "Ana")

	// Then only fullName changes
	want := contact.Record{FullName: "Ana"}
	if diff := cmp.Diff(want, m.Record()); diff != "" {
		t.Errorf("Record() mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_TypingIntoSocialField(t *testing.T) {
	m := newTestModel(contact.Record{}, nil, nil)

	// Shift+tab wraps from the first field to the last (website).
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Focused() != contact.SocialField(contact.SocialWebsite) {
		t.Fatalf("Focused() = %q, want website", m.Focused())
	}
	m = typeText(t, m, "ana.dev")

	if m.Record().Socials.Website != "ana.dev" {
		t.Errorf("Website = %q", m.Record().Socials.Website)
	}
	if m.Record().Socials.GitHub != "" || m.Record().FullName != "" {
		t.Errorf("other fields changed: %+v", m.Record())
	}
}

func TestModel_FocusMovement(t *testing.T) {
	m := newTestModel(contact.Default(), nil, nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Focused() != contact.FieldDesignation {
		t.Errorf("after tab: Focused() = %q", m.Focused())
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Focused() != contact.FieldCompany {
		t.Errorf("after down: Focused() = %q", m.Focused())
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Focused() != contact.FieldDesignation {
		t.Errorf("after up: Focused() = %q", m.Focused())
	}
	if !m.inputs[1].Focused() || m.inputs[0].Focused() {
		t.Error("exactly the focused input should have the cursor")
	}
}

func TestModel_RequestTagline(t *testing.T) {
	// Given a suggester with a canned tagline
	s := &stubSuggester{tagline: "Shipping joy daily."}
	m := newTestModel(contact.Default(), s, nil)

	// When ctrl+t is pressed
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})

	// Then the tagline slot is busy until the result arrives
	if !m.Busy(ActionTagline) || !m.Generating() {
		t.Fatal("tagline should be busy after ctrl+t")
	}
	msg := only[SuggestionMsg](t, execBatch(t, cmd))
	if msg.Action != ActionTagline || msg.Value != "Shipping joy daily." {
		t.Errorf("SuggestionMsg = %+v", msg)
	}
	if diff := cmp.Diff([]string{"Alex Sterling", "Principal UI/UX Designer", "Visionary Tech Solutions"}, s.taglineArgs); diff != "" {
		t.Errorf("tagline args mismatch (-want +got):\n%s", diff)
	}

	// And applying it writes the tagline and frees the slot
	m, _ = send(t, m, msg)
	if m.Record().Tagline != "Shipping joy daily." {
		t.Errorf("Tagline = %q", m.Record().Tagline)
	}
	if m.Generating() {
		t.Error("no request should be in flight")
	}
}

func TestModel_RequestThemeColorUsesDesignation(t *testing.T) {
	s := &stubSuggester{color: "#ec4899"}
	m := newTestModel(contact.Record{Designation: "Product Designer"}, s, nil)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	msg := only[SuggestionMsg](t, execBatch(t, cmd))
	m, _ = send(t, m, msg)

	if s.profession != "Product Designer" {
		t.Errorf("profession = %q, want the designation", s.profession)
	}
	if m.Record().ThemeColor != "#ec4899" {
		t.Errorf("ThemeColor = %q", m.Record().ThemeColor)
	}
	if v := m.inputs[3].Value(); v != "#ec4899" {
		t.Errorf("theme color input = %q, want synced", v)
	}
}

func TestModel_BusySlotsAreIndependent(t *testing.T) {
	// Given both requests in flight
	s := &stubSuggester{tagline: "T", color: "#000000"}
	m := newTestModel(contact.Default(), s, nil)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	if !m.Busy(ActionTagline) || !m.Busy(ActionThemeColor) {
		t.Fatal("both actions should be busy")
	}

	// When the tagline resolves first
	m, _ = send(t, m, SuggestionMsg{Action: ActionTagline, Value: "T"})

	// Then the color request is still reported busy
	if m.Busy(ActionTagline) {
		t.Error("tagline slot should be free")
	}
	if !m.Busy(ActionThemeColor) || !m.Generating() {
		t.Error("color slot should still be busy")
	}

	// And once the color resolves nothing is in flight
	m, _ = send(t, m, SuggestionMsg{Action: ActionThemeColor, Value: "#000000"})
	if m.Generating() {
		t.Error("Generating() should be false after both resolve")
	}
}

func TestModel_SecondRequestWhileBusyIsIgnored(t *testing.T) {
	s := &stubSuggester{tagline: "T"}
	m := newTestModel(contact.Default(), s, nil)

	m, first := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m, second := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})

	if first == nil {
		t.Fatal("first request should return a command")
	}
	if second != nil {
		t.Error("second request for a busy action should be ignored")
	}
	execBatch(t, first)
	if s.calls != 1 {
		t.Errorf("calls = %d, want 1", s.calls)
	}
}

func TestModel_LateSuggestionOverwritesEdit(t *testing.T) {
	// Given a tagline request in flight
	s := &stubSuggester{tagline: "From the backend."}
	m := newTestModel(contact.Default(), s, nil)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	msg := only[SuggestionMsg](t, execBatch(t, cmd))

	// When the user edits the tagline meanwhile
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Focused() != contact.FieldTagline {
		t.Fatalf("Focused() = %q, want tagline", m.Focused())
	}
	m = typeText(t, m, "!")

	// Then the late response still wins
	m, _ = send(t, m, msg)
	if m.Record().Tagline != "From the backend." {
		t.Errorf("Tagline = %q, want the suggestion", m.Record().Tagline)
	}
}

func TestModel_NoSuggester(t *testing.T) {
	m := newTestModel(contact.Default(), nil, nil)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})

	if cmd != nil || m.Generating() {
		t.Error("no request should start without a suggester")
	}
	if !containsText(m.Status(), "not configured") {
		t.Errorf("Status() = %q", m.Status())
	}
}

func TestModel_ProfessionPreset(t *testing.T) {
	m := newTestModel(contact.Record{Designation: "Senior Developer", ThemeColor: "#ffffff"}, nil, nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})

	if m.Record().ThemeColor != "#0f172a" {
		t.Errorf("ThemeColor = %q, want developer preset", m.Record().ThemeColor)
	}
}

func TestModel_ToggleMode(t *testing.T) {
	m := newTestModel(contact.Default(), nil, nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.Mode() != card.Dark {
		t.Errorf("Mode() = %v, want dark", m.Mode())
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.Mode() != card.Light {
		t.Errorf("Mode() = %v, want light", m.Mode())
	}
}

func TestModel_Export(t *testing.T) {
	t.Run("saves the current record", func(t *testing.T) {
		e := &stubExporter{path: "out/Ana_contact.vcf"}
		m := newTestModel(contact.Record{}, nil, e)
		m = typeText(t, m, "Ana")

		m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
		msg := only[ExportedMsg](t, execBatch(t, cmd))
		m, _ = send(t, m, msg)

		if e.saved == nil || e.saved.FullName != "Ana" {
			t.Errorf("saved = %+v", e.saved)
		}
		if m.Status() != "Saved out/Ana_contact.vcf" {
			t.Errorf("Status() = %q", m.Status())
		}
	})

	t.Run("failure is reported in the status line", func(t *testing.T) {
		m := newTestModel(contact.Default(), nil, &stubExporter{err: errDiskFull})

		_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
		m, _ = send(t, m, only[ExportedMsg](t, execBatch(t, cmd)))

		if m.Status() != "Export failed: disk full" {
			t.Errorf("Status() = %q", m.Status())
		}
	})

	t.Run("no exporter is a no-op", func(t *testing.T) {
		m := newTestModel(contact.Default(), nil, nil)
		if _, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS}); cmd != nil {
			t.Error("ctrl+s without an exporter should do nothing")
		}
	})
}

func TestModel_QuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m := newTestModel(contact.Default(), nil, nil)
		_, cmd := send(t, m, k)
		if cmd == nil {
			t.Fatalf("%s should return a quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s produced a non-quit command", k)
		}
	}
}

func TestModel_ViewShowsFormPreviewAndIssues(t *testing.T) {
	// Given a record with a bad email and a sized window
	r := contact.Default()
	r.Email = "nope"
	m := newTestModel(r, nil, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()

	for _, want := range []string{"Full name", "LinkedIn", "Alex Sterling", "email:", "esc"} {
		if !containsText(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_Teatest_SuggestAndQuit(t *testing.T) {
	s := &stubSuggester{tagline: "Built with care.", color: "#8b5cf6"}
	m := newTestModel(contact.Default(), s, nil)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlT})
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlG})
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return containsText(string(b), "Applied tagline") && containsText(string(b), "Applied theme color")
	}, teatest.WithDuration(2*time.Second))
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if final.Record().ThemeColor != "#8b5cf6" {
		t.Errorf("ThemeColor = %q", final.Record().ThemeColor)
	}
	if final.Record().Tagline != "Built with care." {
		t.Errorf("Tagline = %q", final.Record().Tagline)
	}
}
