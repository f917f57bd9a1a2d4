package console

import (
	"github.com/vocalq/dialctl/internal/engine"
)

// RenderStatusReport renders a one-shot status panel for non-interactive
// commands: the detailed snapshot view boxed and sized to the current
// terminal. Lipgloss drops the styling when stdout is not a terminal, so
// piped output stays plain.
func RenderStatusReport(status *engine.Status) string {
	boxWidth := GetTerminalWidth() - 4
	if boxWidth > 72 {
		boxWidth = 72
	}

	return StatusBoxStyle.Width(boxWidth).Render(status.FormatDetailed())
}
