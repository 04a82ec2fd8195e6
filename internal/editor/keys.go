package editor

import "github.com/charmbracelet/bubbles/key"

// editorKeys holds the editor's key bindings. Everything not bound here is
// typed into the focused field.
type editorKeys struct {
	Next    key.Binding
	Prev    key.Binding
	Tagline key.Binding
	Color   key.Binding
	Preset  key.Binding
	Export  key.Binding
	Mode    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns the bindings for the help bar.
func (k editorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Tagline, k.Color, k.Export, k.Mode, k.Help, k.Quit}
}

// FullHelp returns the bindings grouped for expanded help.
func (k editorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Tagline, k.Color, k.Preset},
		{k.Export, k.Mode},
		{k.Help, k.Quit},
	}
}

// EditorKeyMap returns the key bindings for the editor.
func EditorKeyMap() editorKeys {
	return editorKeys{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous field"),
		),
		Tagline: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "suggest tagline"),
		),
		Color: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "suggest color"),
		),
		Preset: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "profession color"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "export vCard"),
		),
		Mode: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "light/dark"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}
