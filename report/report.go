// Package report renders harness results for terminal output.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/c0deZ3R0/go-conflict-kit/harness"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

// RenderSummary renders a one-line view of a suite summary.
func RenderSummary(s harness.Summary) string {
	counts := fmt.Sprintf("%d/%d passed", s.Passed, s.Total)
	if s.Failed > 0 {
		counts = failStyle.Render(fmt.Sprintf("%s, %d failed", counts, s.Failed))
	} else {
		counts = passStyle.Render(counts)
	}
	return fmt.Sprintf("%-24s %s %s", s.Suite, counts, dimStyle.Render(s.Duration.String()))
}

// RenderAggregate renders the final box summarizing all suite runs,
// including overall totals and the success rate to one decimal place.
func RenderAggregate(suites []harness.Summary) string {
	var total, passed, failed int
	lines := []string{titleStyle.Render("Conflict Resolution Test Results"), ""}

	for _, s := range suites {
		lines = append(lines, RenderSummary(s))
		total += s.Total
		passed += s.Passed
		failed += s.Failed
	}

	rate := 0.0
	if total > 0 {
		rate = float64(passed) * 100 / float64(total)
	}

	lines = append(lines, "",
		fmt.Sprintf("Total: %d  Passed: %d  Failed: %d", total, passed, failed),
	)
	rateLine := fmt.Sprintf("Success rate: %.1f%%", rate)
	if failed > 0 {
		rateLine = failStyle.Render(rateLine)
	} else {
		rateLine = passStyle.Render(rateLine)
	}
	lines = append(lines, rateLine)

	return boxStyle.Render(strings.Join(lines, "\n"))
}
