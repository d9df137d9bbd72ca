package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rokucommunity/release-dashboard/pkg/status"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failures.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Release State
// =============================================================================

// stateIcon returns a colored marker for a release state.
func stateIcon(s status.State) string {
	switch s {
	case status.StateUpToDate:
		return styleIconSuccess.Render(iconSuccess)
	case status.StateUpdateRequired:
		return styleIconWarning.Render(iconWarning)
	case status.StateError:
		return styleIconError.Render(iconError)
	default:
		return styleIconInfo.Render("?")
	}
}

// stateStyle returns the text style for a release state.
func stateStyle(s status.State) lipgloss.Style {
	switch s {
	case status.StateUpToDate:
		return StyleSuccess
	case status.StateUpdateRequired:
		return StyleWarning
	case status.StateError:
		return StyleError
	default:
		return StyleDim
	}
}

// outdatedDeps lists the outdated dependencies of s as "name a → b".
func outdatedDeps(s *status.ProjectStatus) []string {
	var out []string
	for _, d := range s.Dependencies {
		if d.Outdated {
			out = append(out, fmt.Sprintf("%s %s %s %s", d.Name, d.ReleasedWith, iconArrow, d.Latest))
		}
	}
	return out
}

// statusRow is the table row for one project.
func statusRow(s *status.ProjectStatus) []string {
	release := "—"
	if s.LatestRelease != nil {
		release = s.LatestRelease.TagName
	}
	version := s.CurrentVersion
	if version == "" {
		version = "—"
	}
	unreleased := "—"
	if s.LatestRelease != nil && s.Err == nil {
		unreleased = strconv.Itoa(s.AheadBy)
	}

	note := strings.Join(outdatedDeps(s), ", ")
	if s.Err != nil {
		note = s.Error
	}
	return []string{stateIcon(s.State), s.Key(), version, release, unreleased, note}
}

// statusTable renders statuses as a bordered table.
func statusTable(statuses []*status.ProjectStatus) string {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, statusRow(s))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Project", "Version", "Release", "Unreleased", "Outdated dependencies").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if col == 1 && row >= 0 && row < len(statuses) {
				return styleCell.Inherit(stateStyle(statuses[row].State))
			}
			return styleCell
		})
	return t.Render()
}

// summary counts statuses per state.
func summary(statuses []*status.ProjectStatus) (upToDate, updates, failed int) {
	for _, s := range statuses {
		switch s.State {
		case status.StateUpToDate:
			upToDate++
		case status.StateUpdateRequired:
			updates++
		case status.StateError:
			failed++
		}
	}
	return upToDate, updates, failed
}
