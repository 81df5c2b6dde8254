// Package tui implements interactive review of a rename plan.
// Individual renames can be ticked off before the plan is applied.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kzhao9/renamekit/rename"
)

type (
	planItem struct {
		action      rename.Action
		highlighted bool
		drop        bool
	}

	PlanModel struct {
		help    help.Model
		renamer *rename.Renamer
		report  *rename.Report
		err     error
		items   []*planItem
		index   int
		working bool
		done    bool
	}

	appliedMsg struct {
		report *rename.Report
		err    error
	}

	navModeKeyMap struct{}

	applyButtonKeyMap struct{}
)

var (
	keys = struct {
		up    key.Binding
		down  key.Binding
		tick  key.Binding
		apply key.Binding
		help  key.Binding
		quit  key.Binding
	}{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		tick: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "tick/untick"),
		),
		apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "apply"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
	}

	palette = struct {
		magenta lipgloss.Color
		green   lipgloss.Color
	}{
		magenta: lipgloss.Color("212"),
		green:   lipgloss.Color("78"),
	}

	highlightedStyle = getStyle(false, true)
)

func getStyle(dropped, highlighted bool) lipgloss.Style {
	style := lipgloss.NewStyle()

	style = style.Strikethrough(dropped)

	if highlighted {
		style = style.Foreground(palette.magenta)
	}

	return style
}

func (navModeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.help, keys.quit}
}

func (navModeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.up, keys.down, keys.tick},
		{keys.help, keys.quit},
	}
}

func (applyButtonKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.help, keys.quit}
}

func (applyButtonKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.up, keys.down, keys.apply},
		{keys.help, keys.quit},
	}
}

func (pi *planItem) toggleTick() {
	pi.drop = !pi.drop
}

func (pi *planItem) View() string {
	var b strings.Builder

	style := getStyle(pi.drop, pi.highlighted)

	if pi.highlighted {
		b.WriteString(highlightedStyle.Render("> "))
	} else {
		b.WriteString("  ")
	}

	b.WriteString(style.Render(fmt.Sprintf("%s -> %s", pi.action.Source, pi.action.Dest)))

	return b.String()
}

func InitialPlanModel(renamer *rename.Renamer, plan []rename.Action) PlanModel {
	m := PlanModel{
		renamer: renamer,
		items:   make([]*planItem, len(plan)),
		help:    help.New(),
	}

	for i := range plan {
		m.items[i] = &planItem{action: plan[i]}
	}

	if len(m.items) > 0 {
		m.items[0].highlighted = true
	}

	return m
}

func (m PlanModel) kept() []rename.Action {
	actions := make([]rename.Action, 0, len(m.items))

	for i := range m.items {
		if !m.items[i].drop {
			actions = append(actions, m.items[i].action)
		}
	}

	return actions
}

func (m PlanModel) applyCmd() tea.Msg {
	actions, err := m.renamer.Apply(context.Background(), m.kept())

	return appliedMsg{report: rename.NewReport(m.renamer, false, actions), err: err}
}

// Report returns the outcome of the run, once there is one.
func (m PlanModel) Report() (*rename.Report, error) {
	if !m.done {
		return nil, nil
	}

	return m.report, m.err
}

func (m PlanModel) Init() tea.Cmd {
	return nil
}

func (m *PlanModel) navModeUpdate(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.up) && m.index > 0:
		if m.index < len(m.items) {
			m.items[m.index].highlighted = false
		}

		m.index--
		m.items[m.index].highlighted = true
	case key.Matches(msg, keys.down) && m.index < len(m.items):
		m.items[m.index].highlighted = false

		m.index++
		if m.index < len(m.items) {
			m.items[m.index].highlighted = true
		}
	case key.Matches(msg, keys.tick) && m.index < len(m.items):
		m.items[m.index].toggleTick()
	default:
	}
}

func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

		return m, nil
	case appliedMsg:
		m.working = false
		m.done = true
		m.report = msg.report
		m.err = msg.err

		return m, tea.Quit
	case tea.KeyMsg:
		if m.working {
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case m.index == len(m.items) && key.Matches(msg, keys.apply):
			m.working = true

			return m, m.applyCmd
		case key.Matches(msg, keys.help):
			m.help.ShowAll = !m.help.ShowAll

			return m, nil
		default:
			m.navModeUpdate(msg)

			return m, nil
		}
	}

	return m, nil
}

func (m PlanModel) View() string {
	if m.working {
		return lipgloss.NewStyle().Foreground(palette.green).Render("Renaming ...") + "\n"
	}

	if m.done {
		return ""
	}

	var b strings.Builder

	rule := m.renamer.Rule()

	b.WriteString(fmt.Sprintf("Planned renames, %s -> %s. Untick what should stay.\n\n", rule.From, rule.To))

	for i := range m.items {
		b.WriteString(m.items[i].View())
		b.WriteRune('\n')
	}

	b.WriteRune('\n')

	style := getStyle(false, m.index == len(m.items))

	if m.index == len(m.items) {
		b.WriteString(highlightedStyle.Render("> "))
	} else {
		b.WriteString("  ")
	}

	b.WriteString(style.Render(fmt.Sprintf("[ Apply %d rename(s) ]", len(m.kept()))))

	b.WriteString("\n\n")

	if m.index == len(m.items) {
		b.WriteString(m.help.View(applyButtonKeyMap{}))
	} else {
		b.WriteString(m.help.View(navModeKeyMap{}))
	}

	b.WriteRune('\n')

	return b.String()
}
