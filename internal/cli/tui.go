package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// PageModel - Batch render progress
// =============================================================================

// pageResultMsg reports the outcome of rendering one palette document.
type pageResultMsg struct {
	name string
	err  error
}

// pageDoneMsg signals that every document has been processed.
type pageDoneMsg struct{}

// pageModel is the bubbletea model that tracks batch render progress.
type pageModel struct {
	total    int
	done     int
	failed   int
	current  string
	errs     []string
	finished bool
	aborted  bool
}

// newPageModel creates a progress model for total documents.
func newPageModel(total int) pageModel {
	return pageModel{total: total}
}

func (m pageModel) Init() tea.Cmd {
	return nil
}

func (m pageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case pageResultMsg:
		m.done++
		m.current = msg.name
		if msg.err != nil {
			m.failed++
			m.errs = append(m.errs, fmt.Sprintf("%s: %v", msg.name, msg.err))
		}
	case pageDoneMsg:
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

// barWidth is the character width of the progress bar.
const barWidth = 30

func (m pageModel) View() string {
	if m.finished {
		return ""
	}

	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rendering palettes"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q: abort"))
	b.WriteString("\n\n")

	filled := 0
	if m.total > 0 {
		filled = m.done * barWidth / m.total
	}
	bar := StyleHighlight.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", barWidth-filled))
	b.WriteString("  " + bar)
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d", m.done, m.total)))
	b.WriteString("\n")

	if m.current != "" {
		b.WriteString("  " + StyleValue.Render(m.current) + "\n")
	}

	if m.failed > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(colorRed).
			Render(fmt.Sprintf("  %d failed", m.failed)))
		b.WriteString("\n")
	}

	return b.String()
}
