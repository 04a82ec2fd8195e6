// Package editor implements the interactive card editor: a form over the
// contact record, a live card preview, and background suggestion requests.
package editor

import (
	"context"

	"github.com/smileynet/cardsmith/internal/contact"
)

// Action names a background request that has its own busy slot.
type Action int

const (
	ActionTagline Action = iota
	ActionThemeColor

	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionTagline:
		return "tagline"
	case ActionThemeColor:
		return "theme color"
	}
	return "unknown"
}

// field returns the record field an action's result is written to.
func (a Action) field() string {
	if a == ActionThemeColor {
		return contact.FieldThemeColor
	}
	return contact.FieldTagline
}

// --- Consumer-side interfaces ---

// Suggester produces field suggestions. Implementations never fail; they
// return fallback values instead.
type Suggester interface {
	SuggestTagline(ctx context.Context, fullName, role, company string) string
	SuggestThemeColor(ctx context.Context, profession string) string
}

// Exporter writes the record somewhere durable and reports where.
type Exporter interface {
	Save(r contact.Record) (string, error)
}

// --- tea.Msg types ---

// SuggestionMsg carries a resolved suggestion for one action.
type SuggestionMsg struct {
	Action Action
	Value  string
}

// ExportedMsg carries the result of an Exporter.Save() call.
type ExportedMsg struct {
	Path string
	Err  error
}
