package components

import (
	"fmt"
	"strings"

	"storyforge/pkg/app/styles"
	"storyforge/pkg/assembler"
)

// GenerationProgress renders the asset assembly progress bar. Dropping
// updates only makes the bar jump; the pipeline does not depend on it.
type GenerationProgress struct {
	current assembler.Progress
	active  bool
	width   int
}

func NewGenerationProgress(width int) *GenerationProgress {
	return &GenerationProgress{width: width}
}

func (g *GenerationProgress) Update(p assembler.Progress) {
	// Keep the counter monotonic even if updates arrive reordered
	if p.Completed >= g.current.Completed {
		g.current = p
	}
	g.active = g.current.Completed < g.current.Total
}

func (g *GenerationProgress) Reset() {
	g.current = assembler.Progress{}
	g.active = false
}

func (g *GenerationProgress) Active() bool {
	return g.active
}

func (g *GenerationProgress) Completed() int {
	return g.current.Completed
}

func (g *GenerationProgress) View() string {
	if g.current.Total == 0 {
		return ""
	}

	label := fmt.Sprintf("Illustrating and narrating pages (%d/%d)", g.current.Completed, g.current.Total)
	bar := renderProgressBar(g.current.Completed, g.current.Total, g.width-4)

	status := styles.StatusGenerating
	if g.current.Completed == g.current.Total {
		status = styles.StatusComplete
		label = fmt.Sprintf("All %d pages assembled", g.current.Total)
	}

	return status.Render(label) + "\n" + bar
}

func renderProgressBar(current, total, width int) string {
	if width < 4 {
		width = 4
	}
	if total <= 0 {
		total = 1
	}

	filled := width * current / total
	if filled > width {
		filled = width
	}

	bar := styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
	return bar
}
