package card

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultWidth is used when Render is given no width.
const DefaultWidth = 48

type palette struct {
	text, muted, subtle, border lipgloss.Color
}

// Card surface colors per mode. The accent comes from the record.
var palettes = map[Mode]palette{
	Light: {text: "#0f172a", muted: "#475569", subtle: "#94a3b8", border: "#e2e8f0"},
	Dark:  {text: "#ffffff", muted: "#94a3b8", subtle: "#64748b", border: "#1e293b"},
}

// Render draws the card as a bordered lipgloss box at most width cells wide.
func Render(v View, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	p := palettes[v.Mode]
	accent := lipgloss.Color(v.Accent)
	inner := width - 4 // border plus horizontal padding

	banner := lipgloss.NewStyle().Foreground(accent).Render(strings.Repeat("▀", max(inner, 0)))
	name := lipgloss.NewStyle().Bold(true).Foreground(p.text).Width(inner).Render(v.Name)
	headline := lipgloss.NewStyle().Foreground(accent).Bold(true).Width(inner).Render(v.Headline)

	lines := []string{banner, name, headline}
	if v.Tagline != "" {
		lines = append(lines, lipgloss.NewStyle().Italic(true).Foreground(p.muted).Width(inner).Render(v.Tagline))
	}
	lines = append(lines, "")

	label := lipgloss.NewStyle().Foreground(accent).Width(5)
	value := lipgloss.NewStyle().Foreground(p.text).Width(max(inner-5, 1))
	row := func(l, val string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, label.Render(l), value.Render(val))
	}
	lines = append(lines, row("tel", v.Phone), row("mail", v.Email))
	if v.ShowVisitSite() {
		lines = append(lines, row("web", v.Website))
	}

	if len(v.Socials) > 0 {
		labels := make([]string, len(v.Socials))
		for i, s := range v.Socials {
			labels[i] = s.Label
		}
		rule := lipgloss.NewStyle().Foreground(p.border).Render(strings.Repeat("─", max(inner, 0)))
		icons := lipgloss.NewStyle().Bold(true).Foreground(p.subtle).Width(inner).Align(lipgloss.Center).
			Render(strings.Join(labels, "   "))
		lines = append(lines, rule, icons)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// RenderPlain lists the card as uncolored text, one field per line.
func RenderPlain(v View) string {
	var b strings.Builder
	b.WriteString(v.Name + "\n")
	b.WriteString(v.Headline + "\n")
	if v.Tagline != "" {
		b.WriteString(v.Tagline + "\n")
	}
	b.WriteString("\n")
	b.WriteString("Phone:   " + v.Phone + "\n")
	b.WriteString("Email:   " + v.Email + "\n")
	if v.ShowVisitSite() {
		b.WriteString("Website: " + v.WebsiteURL + "\n")
	}
	for _, s := range v.Socials {
		b.WriteString(s.Label + ":      " + s.URL + "\n")
	}
	if v.ProfileImage != "" {
		b.WriteString("Photo:   " + v.ProfileImage + "\n")
	}
	b.WriteString("Theme:   " + v.Accent + " (" + v.Mode.String() + ")\n")
	return b.String()
}
