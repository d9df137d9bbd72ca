package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rokucommunity/release-dashboard/pkg/status"
)

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	detailTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	detailBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// maxDetailChanges caps the commits listed in the detail panel.
const maxDetailChanges = 10

// =============================================================================
// DashboardModel - Interactive release dashboard
// =============================================================================

// statusesMsg carries the result of a collection.
type statusesMsg struct {
	statuses []*status.ProjectStatus
	err      error
}

// CollectFunc gathers statuses for the dashboard.
type CollectFunc func(ctx context.Context) ([]*status.ProjectStatus, error)

// DashboardModel is the bubbletea model for the interactive dashboard.
type DashboardModel struct {
	Statuses     []*status.ProjectStatus
	Cursor       int
	Offset       int
	Height       int
	ShowDetail   bool
	OnlyOutdated bool
	Loading      bool
	Err          error

	ctx     context.Context
	collect CollectFunc
	all     []*status.ProjectStatus
}

// NewDashboardModel creates a dashboard that loads statuses with collect.
func NewDashboardModel(ctx context.Context, collect CollectFunc) DashboardModel {
	return DashboardModel{
		Height:  15,
		Loading: true,
		ctx:     ctx,
		collect: collect,
	}
}

func (m DashboardModel) load() tea.Msg {
	statuses, err := m.collect(m.ctx)
	return statusesMsg{statuses: statuses, err: err}
}

func (m DashboardModel) Init() tea.Cmd {
	return m.load
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusesMsg:
		m.Loading = false
		m.Err = msg.err
		if msg.err == nil {
			m.all = msg.statuses
			m.applyFilter()
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Statuses)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.ShowDetail = !m.ShowDetail
		case "o":
			m.OnlyOutdated = !m.OnlyOutdated
			m.applyFilter()
		case "r":
			if !m.Loading {
				m.Loading = true
				return m, m.load
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-14, 5)
	}
	return m, nil
}

// applyFilter rebuilds the visible list and keeps the cursor in range.
func (m *DashboardModel) applyFilter() {
	m.Statuses = filterStatuses(m.all, "", m.OnlyOutdated)
	if m.Cursor >= len(m.Statuses) {
		m.Cursor = max(len(m.Statuses)-1, 0)
	}
	if m.Offset > m.Cursor {
		m.Offset = m.Cursor
	}
}

// Selected returns the status under the cursor, or nil.
func (m DashboardModel) Selected() *status.ProjectStatus {
	if m.Cursor < 0 || m.Cursor >= len(m.Statuses) {
		return nil
	}
	return m.Statuses[m.Cursor]
}

func (m DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("RokuCommunity Releases"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  o outdated only  r refresh  q quit"))
	b.WriteString("\n\n")

	switch {
	case m.Loading && m.all == nil:
		b.WriteString(StyleDim.Render("Fetching release data..."))
		return b.String()
	case m.Err != nil:
		b.WriteString(StyleError.Render("Error: " + m.Err.Error()))
		return b.String()
	case len(m.Statuses) == 0:
		b.WriteString(StyleSuccess.Render("Nothing to release."))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Statuses))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Statuses[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		row := statusRow(s)
		rows = append(rows, append([]string{cursor}, row[:5]...))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Project", "Version", "Release", "Unreleased").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Statuses) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 2 {
				base = base.Inherit(stateStyle(m.Statuses[idx].State))
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	upToDate, updates, failed := summary(m.Statuses)
	footer := fmt.Sprintf("  [%d/%d]  %d up to date · %d need a release · %d failed",
		m.Cursor+1, len(m.Statuses), upToDate, updates, failed)
	if m.Loading {
		footer += "  refreshing..."
	}
	b.WriteString(listDimStyle.Render(footer))

	if m.ShowDetail {
		if s := m.Selected(); s != nil {
			b.WriteString("\n")
			b.WriteString(detailBoxStyle.Render(detailView(s)))
		}
	}
	return b.String()
}

// detailView describes one project's dependencies and unreleased changes.
func detailView(s *status.ProjectStatus) string {
	var b strings.Builder
	b.WriteString(detailTitle.Render(s.Key()))
	b.WriteString("  " + StyleLink.Render(s.Project.RepoURL()))
	b.WriteString("\n")

	if s.Err != nil {
		b.WriteString(StyleError.Render(s.Error))
		return b.String()
	}
	if s.LatestRelease == nil {
		b.WriteString(StyleWarning.Render("never released"))
		b.WriteString("\n")
	}

	if len(s.Dependencies) > 0 {
		b.WriteString("\n" + StyleDim.Render("Dependencies") + "\n")
		for _, d := range s.Dependencies {
			released := d.ReleasedWith
			if released == "" {
				released = "—"
			}
			line := fmt.Sprintf("%-32s %-12s %s %s", d.Key, released, iconArrow, d.Latest)
			if d.Outdated {
				b.WriteString(StyleWarning.Render(line))
			} else {
				b.WriteString(line)
			}
			b.WriteString("\n")
		}
	}

	if len(s.Changes) > 0 {
		b.WriteString("\n" + StyleDim.Render(fmt.Sprintf("Unreleased commits (%d)", s.AheadBy)) + "\n")
		for i, ch := range s.Changes {
			if i == maxDetailChanges {
				b.WriteString(StyleDim.Render(fmt.Sprintf("… %d more", len(s.Changes)-maxDetailChanges)))
				b.WriteString("\n")
				break
			}
			sha := ch.SHA
			if len(sha) > 7 {
				sha = sha[:7]
			}
			b.WriteString(StyleDim.Render(sha) + " " + ch.Summary + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
