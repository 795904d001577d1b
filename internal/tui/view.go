package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/reflex/internal/style"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	out := m.flex.Render()
	cfg := m.flex.Config()
	active := m.flex.Active()
	declared := m.flex.Flags().BreakpointSet()

	sections := []string{
		titleStyle.Render("reflex • " + out.ClassName),
		fmt.Sprintf("viewport %s", formatWidth(m.viewport.Width())),
	}

	sections = append(sections, sectionStyle.Render("Breakpoints"))
	var rows []string
	for _, name := range cfg.BreakpointNames() {
		marker := inactiveStyle.Render("○")
		if slices.Contains(active, name) {
			marker = activeStyle.Render("●")
		}
		label := name
		if slices.Contains(declared, name) {
			label += "*"
		}
		rows = append(rows, fmt.Sprintf(" %s %-8s %s", marker, label, cfg.Breakpoints[name]))
	}
	sections = append(sections, strings.Join(rows, "\n"))

	sections = append(sections, sectionStyle.Render("Display"), " "+DisplayBadge(out.Style[style.KeyDisplay]))

	sections = append(sections, sectionStyle.Render("Declarations"))
	var decls []string
	for _, decl := range style.Declarations(out.Style) {
		decls = append(decls, fmt.Sprintf(" %s: %s", propertyStyle.Render(decl.Property), decl.Value))
	}
	sections = append(sections, strings.Join(decls, "\n"))

	if len(m.events.entries) > 0 {
		sections = append(sections, sectionStyle.Render("Changes"), " "+strings.Join(m.events.entries, "\n "))
	}

	sections = append(sections, helpStyle.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// DisplayBadge renders a display value with its colour.
func DisplayBadge(display any) string {
	value := fmt.Sprint(display)
	if value == style.DisplayBlock {
		return blockStyle.Render(value)
	}
	return flexStyle.Render(value)
}
