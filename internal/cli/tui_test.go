package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPageModel_TracksProgress(t *testing.T) {
	var m tea.Model = newPageModel(3)

	m, _ = m.Update(pageResultMsg{name: "a.json"})
	m, _ = m.Update(pageResultMsg{name: "b.json", err: errors.New("boom")})

	pm := m.(pageModel)
	if pm.done != 2 {
		t.Errorf("done = %d, want 2", pm.done)
	}
	if pm.failed != 1 {
		t.Errorf("failed = %d, want 1", pm.failed)
	}
	if len(pm.errs) != 1 || !strings.Contains(pm.errs[0], "b.json") {
		t.Errorf("errs = %v, want one entry for b.json", pm.errs)
	}
}

func TestPageModel_QuitsWhenDone(t *testing.T) {
	var m tea.Model = newPageModel(1)

	m, cmd := m.Update(pageDoneMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !m.(pageModel).finished {
		t.Error("model should be finished")
	}
}

func TestPageModel_Abort(t *testing.T) {
	var m tea.Model = newPageModel(5)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !m.(pageModel).aborted {
		t.Error("model should be aborted")
	}
}

func TestPageModel_View(t *testing.T) {
	m := newPageModel(4)
	m.done = 2
	m.current = "dunes.json"

	view := m.View()
	if !strings.Contains(view, "2/4") {
		t.Errorf("view should show progress, got %q", view)
	}
	if !strings.Contains(view, "dunes.json") {
		t.Errorf("view should show current document, got %q", view)
	}
}
