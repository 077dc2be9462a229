// Package ui contains the Bubble Tea program that powers the monitor view.
// The package is structured so the Model type focuses on message
// orchestration, while dedicated helpers own input, rendering, and poll
// event handling.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each message through a typed handler registry so every
//     tea.Msg is handled by a focused function (key presses, resizes,
//     spinner ticks, poll events).
//   - Poll events arrive via waitForPollEvent, which blocks on the poller's
//     channel and re-arms itself after each delivery.
//
// State ownership:
//   - Snapshot data and freshness flags live in internal/state.SnapshotStore;
//     the model never mutates snapshots it receives.
//   - Frame construction and mode switching live in internal/render; the
//     model only decides what portion of the screen the frame may occupy.
//
// This separation keeps Model.Update compact and makes it easier to test
// independent concerns (input, staleness handling, rendering) without
// reasoning about the entire TUI at once.
package ui
