package editor

import "github.com/charmbracelet/lipgloss"

// minFormWidth is the narrowest the form column gets.
const minFormWidth = 36

// labelWidth fits the longest field label.
const labelWidth = 14

var (
	labelStyle = lipgloss.NewStyle().
			Width(labelWidth).
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	focusedLabelStyle = labelStyle.
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	busyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "11"})

	issueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})
)

// columnWidths splits the terminal between the form and the card preview.
// The form gets half (at least minFormWidth); the card gets the rest.
func columnWidths(total int) (form, preview int) {
	if total <= 0 {
		return minFormWidth, 0
	}
	form = max(total/2, minFormWidth)
	preview = max(total-form-1, 0)
	return form, preview
}
