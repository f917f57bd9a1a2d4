package console

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vocalq/dialctl/internal/engine"
)

func newTestModel() DashboardModel {
	return NewDashboardModel(engine.NewClient("http://localhost:8000"), 0)
}

func asDashboard(t *testing.T, m tea.Model) DashboardModel {
	t.Helper()
	dm, ok := m.(DashboardModel)
	if !ok {
		t.Fatalf("Update returned %T, want DashboardModel", m)
	}
	return dm
}

func TestNewDashboardModel_Defaults(t *testing.T) {
	m := newTestModel()

	if !m.polling {
		t.Error("polling should start enabled")
	}
	if m.pollSeq != 1 {
		t.Errorf("pollSeq = %d, want 1", m.pollSeq)
	}
	if m.pollInterval != DefaultPollInterval {
		t.Errorf("pollInterval = %v, want %v", m.pollInterval, DefaultPollInterval)
	}
	if m.Status != nil {
		t.Error("Status should be nil before the first poll")
	}
	if m.Submitting {
		t.Error("Submitting should start false")
	}
	if !m.Input.Focused() {
		t.Error("number input should start focused")
	}
	if !m.Input.PromptStyle.GetBold() {
		t.Error("number input should carry the focused prompt style")
	}
}

func TestInit_IssuesCommands(t *testing.T) {
	m := newTestModel()

	if m.Init() == nil {
		t.Error("Init() should return the initial fetch and timer commands")
	}
}

func TestPollTick_AdvancesSeqAndReschedules(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.Update(pollTickMsg{})
	next := asDashboard(t, updated)

	if next.pollSeq != 2 {
		t.Errorf("pollSeq = %d after tick, want 2", next.pollSeq)
	}
	if cmd == nil {
		t.Error("tick should issue a fetch and reschedule the timer")
	}
}

func TestStatusFetched_AppliesCurrentSeq(t *testing.T) {
	m := newTestModel()
	status := &engine.Status{IsRunning: true, QueueSize: 5, CurrentCallSID: "CA123"}

	updated, _ := m.Update(statusFetchedMsg{seq: m.pollSeq, status: status})
	next := asDashboard(t, updated)

	if next.Status != status {
		t.Error("current-seq response should be applied")
	}
}

func TestStatusFetched_DiscardsStaleSeq(t *testing.T) {
	m := newTestModel()
	current := &engine.Status{IsRunning: true, QueueSize: 5}

	updated, _ := m.Update(statusFetchedMsg{seq: m.pollSeq, status: current})
	m = asDashboard(t, updated)

	// Two more ticks supersede the original poll
	updated, _ = m.Update(pollTickMsg{})
	m = asDashboard(t, updated)
	updated, _ = m.Update(pollTickMsg{})
	m = asDashboard(t, updated)

	stale := &engine.Status{IsRunning: false, QueueSize: 0}
	updated, _ = m.Update(statusFetchedMsg{seq: 1, status: stale})
	m = asDashboard(t, updated)

	if m.Status != current {
		t.Error("stale response should not replace the current snapshot")
	}
}

func TestStatusFetched_DiscardedAfterQuit(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = asDashboard(t, updated)

	if cmd == nil {
		t.Fatal("quit key should return tea.Quit")
	}
	if m.polling {
		t.Error("polling should be stopped on quit")
	}

	late := &engine.Status{IsRunning: true, QueueSize: 9}
	updated, _ = m.Update(statusFetchedMsg{seq: m.pollSeq, status: late})
	m = asDashboard(t, updated)

	if m.Status != nil {
		t.Error("response arriving after teardown should be discarded")
	}
}

func TestStatusFetched_FailureKeepsSnapshotSilently(t *testing.T) {
	m := newTestModel()
	snapshot := &engine.Status{IsRunning: true, QueueSize: 3, CurrentCallSID: "CA777"}

	updated, _ := m.Update(statusFetchedMsg{seq: m.pollSeq, status: snapshot})
	m = asDashboard(t, updated)
	viewBefore := m.View()

	updated, _ = m.Update(pollTickMsg{})
	m = asDashboard(t, updated)

	updated, _ = m.Update(statusFetchedMsg{seq: m.pollSeq, err: errors.New("connection refused")})
	m = asDashboard(t, updated)

	if m.Status != snapshot {
		t.Error("failed poll should keep the previous snapshot")
	}
	if view := m.View(); view != viewBefore {
		t.Errorf("failed poll must not change what the operator sees:\n%s", view)
	}

	// A later successful poll replaces the snapshot as usual
	updated, _ = m.Update(pollTickMsg{})
	m = asDashboard(t, updated)
	fresh := &engine.Status{IsRunning: true, QueueSize: 2}
	updated, _ = m.Update(statusFetchedMsg{seq: m.pollSeq, status: fresh})
	m = asDashboard(t, updated)

	if m.Status != fresh {
		t.Error("successful poll should replace the snapshot")
	}
}

func TestView_PollFailureBeforeFirstSnapshot(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(statusFetchedMsg{seq: m.pollSeq, err: errors.New("connection refused")})
	m = asDashboard(t, updated)

	view := m.View()

	if !strings.Contains(view, "Connecting to engine") {
		t.Error("View() should keep the waiting placeholder when no poll has succeeded")
	}
	if strings.Contains(view, "connection refused") {
		t.Errorf("View() must not surface the poll error:\n%s", view)
	}
}

func TestSubmit_EmptyInputSendsNothing(t *testing.T) {
	for _, input := range []string{"", "   ", ",, ,  ,"} {
		m := newTestModel()
		m.Input.SetValue(input)

		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		next := asDashboard(t, updated)

		if cmd != nil {
			t.Errorf("input %q should not issue a request", input)
		}
		if next.Submitting {
			t.Errorf("input %q should not enter in-flight state", input)
		}
	}
}

func TestSubmit_SetsInFlightAndClearsMessage(t *testing.T) {
	m := newTestModel()
	m.Input.SetValue("+1234567890, +1987654321")
	m.Message = "stale result"

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := asDashboard(t, updated)

	if !next.Submitting {
		t.Error("submit should set the in-flight flag")
	}
	if cmd == nil {
		t.Error("submit should issue the start request")
	}
	if next.Message != "" {
		t.Error("submit should clear the previous result line")
	}
}

func TestSubmit_IgnoredWhileInFlight(t *testing.T) {
	m := newTestModel()
	m.Submitting = true
	m.Input.SetValue("+15550100")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("enter during an in-flight submission should be ignored")
	}
}

func TestSubmitFinished_SuccessClearsInput(t *testing.T) {
	m := newTestModel()
	m.Submitting = true
	m.Input.SetValue("+1234567890, +1987654321")

	updated, _ := m.Update(submitFinishedMsg{
		started: time.Now(),
		count:   2,
		result:  &engine.StartResult{Message: "Queued 2 calls"},
	})
	next := asDashboard(t, updated)

	if next.Submitting {
		t.Error("in-flight flag should be cleared")
	}
	if next.Message != "Queued 2 calls" {
		t.Errorf("Message = %q, want server message", next.Message)
	}
	if next.MessageErr {
		t.Error("success should not be flagged as an error")
	}
	if next.Input.Value() != "" {
		t.Errorf("input = %q, want cleared after success", next.Input.Value())
	}
}

func TestSubmitFinished_FailureKeepsInput(t *testing.T) {
	m := newTestModel()
	m.Submitting = true
	m.Input.SetValue("+1234567890")

	updated, _ := m.Update(submitFinishedMsg{
		started: time.Now(),
		count:   1,
		err:     errors.New("engine down"),
	})
	next := asDashboard(t, updated)

	if next.Submitting {
		t.Error("in-flight flag should be cleared on failure too")
	}
	if next.Message != SubmitErrorMessage {
		t.Errorf("Message = %q, want %q", next.Message, SubmitErrorMessage)
	}
	if !next.MessageErr {
		t.Error("failure should be flagged as an error")
	}
	if next.Input.Value() != "+1234567890" {
		t.Errorf("input = %q, want preserved for retry", next.Input.Value())
	}
}

func TestView_RendersStatusSnapshot(t *testing.T) {
	m := newTestModel()
	m.Status = &engine.Status{IsRunning: true, QueueSize: 5, CurrentCallSID: "CA123"}

	view := m.View()

	for _, want := range []string{"Running", "5 numbers remaining", "CA123"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestView_RendersPlaceholderWithoutActiveCall(t *testing.T) {
	m := newTestModel()
	m.Status = &engine.Status{IsRunning: false, QueueSize: 0}

	view := m.View()

	if !strings.Contains(view, "Idle") {
		t.Error("View() should show the idle indicator")
	}
	if !strings.Contains(view, "None") {
		t.Error("View() should show the SID placeholder")
	}
}

func TestView_ShowsSubmissionResult(t *testing.T) {
	m := newTestModel()
	m.Status = &engine.Status{}
	m.Message = "Queued 2 calls"

	if !strings.Contains(m.View(), "Queued 2 calls") {
		t.Error("View() should show the last submission result")
	}
}
