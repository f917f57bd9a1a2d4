package engine

import (
	"fmt"
	"strings"
)

// Status is a snapshot of engine state as reported by the status endpoint.
// A snapshot is a value: each successful poll fully replaces the previous one,
// never merges into it.
type Status struct {
	// IsRunning reports whether the engine's queue processor is active
	IsRunning bool `json:"is_running"`

	// QueueSize is the number of phone numbers still waiting to be dialed
	QueueSize int `json:"queue_size"`

	// CurrentCallSID identifies the call currently in progress.
	// Empty when no call is active (the engine reports null).
	CurrentCallSID string `json:"current_call_sid"`
}

// HasActiveCall reports whether the snapshot carries a call SID.
func (s *Status) HasActiveCall() bool {
	return s.CurrentCallSID != ""
}

// CallSIDOrPlaceholder returns the active call SID, or "None" when absent.
func (s *Status) CallSIDOrPlaceholder() string {
	if s.CurrentCallSID == "" {
		return "None"
	}
	return s.CurrentCallSID
}

// RunState returns "Running" or "Idle" for display.
func (s *Status) RunState() string {
	if s.IsRunning {
		return "Running"
	}
	return "Idle"
}

// FormatCompact returns a single-line summary of the snapshot.
func (s *Status) FormatCompact() string {
	return fmt.Sprintf("%s • %d remaining • call: %s",
		s.RunState(), s.QueueSize, s.CallSIDOrPlaceholder())
}

// FormatDetailed returns a multi-line, human-readable view of the snapshot.
func (s *Status) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("Engine Status\n")
	b.WriteString(fmt.Sprintf("  State:             %s\n", s.RunState()))
	b.WriteString(fmt.Sprintf("  Numbers remaining: %d\n", s.QueueSize))
	b.WriteString(fmt.Sprintf("  Active call SID:   %s", s.CallSIDOrPlaceholder()))

	return b.String()
}

// StartRequest is the payload of the start endpoint.
type StartRequest struct {
	PhoneNumbers []string `json:"phone_numbers"`
}

// StartResult is the engine's response to a start request. The message text
// is owned by the engine and passed through to the operator verbatim.
type StartResult struct {
	Message string `json:"message"`
}
