// Package console implements the interactive dashboard for the outbound
// call engine, built on Bubble Tea.
//
// The dashboard shows a live status snapshot (run state, queue depth,
// active call SID) refreshed on a fixed timer, and a text input for
// submitting a comma-separated batch of phone numbers. All state lives in
// DashboardModel and is mutated only inside Update, so the screen logic is
// testable by feeding messages directly without a running program.
package console
