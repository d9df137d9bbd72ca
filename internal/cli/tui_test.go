package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rokucommunity/release-dashboard/pkg/status"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m DashboardModel, msg tea.Msg) (DashboardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	dm, ok := next.(DashboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return dm, cmd
}

func loadedModel(t *testing.T, n int) DashboardModel {
	t.Helper()
	statuses := make([]*status.ProjectStatus, n)
	for i := range statuses {
		state := status.StateUpToDate
		if i%2 == 1 {
			state = status.StateUpdateRequired
		}
		statuses[i] = testStatus(fmt.Sprintf("project-%02d", i), state)
	}
	m := NewDashboardModel(context.Background(), nil)
	m, _ = update(t, m, statusesMsg{statuses: statuses})
	return m
}

func TestDashboardInit(t *testing.T) {
	calls := 0
	m := NewDashboardModel(context.Background(), func(ctx context.Context) ([]*status.ProjectStatus, error) {
		calls++
		return []*status.ProjectStatus{testStatus("roku-deploy", status.StateUpToDate)}, nil
	})
	if !m.Loading {
		t.Error("new model should be loading")
	}

	msg := m.Init()()
	m, _ = update(t, m, msg)
	if calls != 1 {
		t.Errorf("collect called %d times, want 1", calls)
	}
	if m.Loading || len(m.Statuses) != 1 {
		t.Errorf("Loading = %v, Statuses = %d", m.Loading, len(m.Statuses))
	}
}

func TestDashboardNavigation(t *testing.T) {
	m := loadedModel(t, 4)
	m.Height = 2

	m, _ = update(t, m, key("up"))
	if m.Cursor != 0 {
		t.Errorf("cursor moved above first row: %d", m.Cursor)
	}

	for range 5 {
		m, _ = update(t, m, key("down"))
	}
	if m.Cursor != 3 {
		t.Errorf("Cursor = %d, want 3", m.Cursor)
	}
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}

	m, _ = update(t, m, key("k"))
	m, _ = update(t, m, key("k"))
	if m.Cursor != 1 || m.Offset != 1 {
		t.Errorf("Cursor, Offset = %d, %d, want 1, 1", m.Cursor, m.Offset)
	}
	if got := m.Selected().Key(); got != "project-01@master" {
		t.Errorf("Selected() = %q", got)
	}
}

func TestDashboardFilter(t *testing.T) {
	m := loadedModel(t, 5)
	for range 4 {
		m, _ = update(t, m, key("down"))
	}

	m, _ = update(t, m, key("o"))
	if !m.OnlyOutdated {
		t.Fatal("filter not enabled")
	}
	if len(m.Statuses) != 2 {
		t.Fatalf("filtered to %d statuses, want 2", len(m.Statuses))
	}
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want clamped to 1", m.Cursor)
	}

	m, _ = update(t, m, key("o"))
	if len(m.Statuses) != 5 {
		t.Errorf("unfiltered to %d statuses, want 5", len(m.Statuses))
	}
}

func TestDashboardDetail(t *testing.T) {
	m := loadedModel(t, 2)
	m, _ = update(t, m, key("enter"))
	if !m.ShowDetail {
		t.Fatal("detail not shown")
	}
	if !strings.Contains(m.View(), "https://github.com/rokucommunity/project-00") {
		t.Error("detail view missing repository link")
	}
	m, _ = update(t, m, key(" "))
	if m.ShowDetail {
		t.Error("detail not toggled off")
	}
}

func TestDashboardRefresh(t *testing.T) {
	m := loadedModel(t, 1)
	m.collect = func(ctx context.Context) ([]*status.ProjectStatus, error) {
		return nil, errors.New("rate limited")
	}

	m, cmd := update(t, m, key("r"))
	if !m.Loading || cmd == nil {
		t.Fatal("refresh did not start loading")
	}
	if _, again := update(t, m, key("r")); again != nil {
		t.Error("refresh while loading should be ignored")
	}

	m, _ = update(t, m, cmd())
	if m.Err == nil || !strings.Contains(m.View(), "rate limited") {
		t.Errorf("error not shown: %v", m.Err)
	}
}

func TestDashboardQuit(t *testing.T) {
	m := loadedModel(t, 1)
	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestDashboardWindowSize(t *testing.T) {
	m := loadedModel(t, 1)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})
	if m.Height != 5 {
		t.Errorf("Height = %d, want minimum 5", m.Height)
	}
}

func TestDetailViewTruncatesChanges(t *testing.T) {
	s := testStatus("brighterscript", status.StateUpdateRequired)
	s.AheadBy = 12
	for i := range 12 {
		s.Changes = append(s.Changes, status.Change{SHA: fmt.Sprintf("abcdef%04d", i), Summary: fmt.Sprintf("change %d", i)})
	}

	out := detailView(s)
	if !strings.Contains(out, "change 9") || strings.Contains(out, "change 10") {
		t.Error("expected exactly the first 10 changes")
	}
	if !strings.Contains(out, "2 more") {
		t.Error("missing overflow line")
	}
	if !strings.Contains(out, "never released") {
		t.Error("missing unreleased marker")
	}
}
