package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDashboardModel_Init(t *testing.T) {
	m := newDashboardModel()

	if m.activePanel != panelTriage {
		t.Errorf("activePanel = %d, want %d", m.activePanel, panelTriage)
	}
	if !m.loading {
		t.Error("expected loading = true on init")
	}
	if m.sentiments == nil || m.priorities == nil {
		t.Error("expected maps to be initialized")
	}
	if cmd := m.Init(); cmd == nil {
		t.Error("expected Init to return a non-nil command")
	}
}

func TestDashboardModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEscape},
		{Type: tea.KeyCtrlC},
	} {
		m := newDashboardModel()
		m.loading = false

		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("expected tea.Quit command from %v", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected tea.QuitMsg from %v, got %T", key, cmd())
		}
	}
}

func TestDashboardModel_TabCyclesPanels(t *testing.T) {
	m := newDashboardModel()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if cmd != nil {
		t.Error("expected no command from tab key")
	}
	dm := updated.(dashboardModel)
	if dm.activePanel != panelVolume {
		t.Errorf("panel after first tab = %d, want %d", dm.activePanel, panelVolume)
	}

	updated, _ = dm.Update(tea.KeyMsg{Type: tea.KeyTab})
	dm = updated.(dashboardModel)
	if dm.activePanel != panelAlerts {
		t.Errorf("panel after second tab = %d, want %d", dm.activePanel, panelAlerts)
	}

	updated, _ = dm.Update(tea.KeyMsg{Type: tea.KeyTab})
	dm = updated.(dashboardModel)
	if dm.activePanel != panelTriage {
		t.Errorf("panel after wrap = %d, want %d", dm.activePanel, panelTriage)
	}
}

func TestDashboardModel_ShiftTabWrapsBackward(t *testing.T) {
	m := newDashboardModel()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	dm := updated.(dashboardModel)
	if dm.activePanel != panelAlerts {
		t.Errorf("panel after shift+tab from 0 = %d, want %d", dm.activePanel, panelAlerts)
	}
}

func TestDashboardModel_RefreshKey(t *testing.T) {
	m := newDashboardModel()
	m.loading = false

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	dm := updated.(dashboardModel)
	if !dm.loading {
		t.Error("expected loading = true after pressing r")
	}
	if cmd == nil {
		t.Error("expected a reload command from r key")
	}
}

func TestDashboardModel_DataLoaded(t *testing.T) {
	m := newDashboardModel()

	msg := dataLoadedMsg{
		sentiments: map[string]int{"neutral": 4, "negative": 2},
		priorities: map[string]int{"high": 3, "low": 3},
		volume: &volumeSnapshot{
			emailsAnalyzed: 6,
			draftsComposed: 2,
			tasksExtracted: 9,
			eventCount:     8,
		},
		alerts: []alertSnapshot{
			{severity: "high", message: "inbox running hot"},
		},
	}

	updated, cmd := m.Update(msg)
	if cmd != nil {
		t.Error("expected no command after dataLoadedMsg")
	}
	dm := updated.(dashboardModel)
	if dm.loading {
		t.Error("expected loading = false after data load")
	}
	if dm.sentiments["neutral"] != 4 {
		t.Errorf("sentiments = %v", dm.sentiments)
	}
	if dm.volume == nil || dm.volume.emailsAnalyzed != 6 {
		t.Errorf("volume = %+v", dm.volume)
	}
	if len(dm.alerts) != 1 {
		t.Errorf("alerts = %+v", dm.alerts)
	}
}

func TestDashboardModel_DataLoadError(t *testing.T) {
	m := newDashboardModel()

	updated, _ := m.Update(dataLoadedMsg{err: errors.New("boom")})
	dm := updated.(dashboardModel)
	if dm.err == nil {
		t.Error("expected error to be recorded")
	}
	if dm.loading {
		t.Error("expected loading = false after error")
	}

	dm.width = 80
	dm.height = 24
	if view := dm.View(); !strings.Contains(view, "boom") {
		t.Errorf("view missing error message:\n%s", view)
	}
}

func TestDashboardModel_ViewRendersPanels(t *testing.T) {
	m := newDashboardModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	dm := updated.(dashboardModel)

	updated, _ = dm.Update(dataLoadedMsg{
		sentiments: map[string]int{"positive": 1},
		priorities: map[string]int{"medium": 1},
		volume:     &volumeSnapshot{emailsAnalyzed: 1, eventCount: 1},
	})
	dm = updated.(dashboardModel)

	view := dm.View()
	for _, want := range []string{"Triage (7d)", "Volume (7d)", "Alerts", "No active alerts."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
