// Package ui contains the Bubble Tea program that renders the pie launcher in
// a terminal. Model focuses on message orchestration; the gesture package
// owns every interaction decision.
//
// Message flow:
//   - Mouse presses, motion and releases are converted from terminal cells
//     to pixels and fed to gesture.Step as Start, Move, End or Fail events
//     (internal/ui/gesture.go). A release that never left its cell is a
//     failed gesture, which is how taps reach the listing and the border
//     band opens the layer editor.
//   - Effects returned by Step become tea.Cmd values: long-hold timers are
//     scheduled ticks carrying the machine's token, haptics flash the ring
//     centre, launches run through the command bus and report back with
//     launchResultMsg.
//   - Other messages are routed through a typed handler registry so each
//     tea.Msg is handled by a focused function.
//
// State ownership:
//   - The gesture.State value is the only session state; View re-derives the
//     frame from it with gesture.Render on every call.
//   - Installed apps and layer configuration live in internal/state stores
//     and are kept current by the dispatcher.
//   - The all-apps filter and highlight live in internal/ui/state.Listing.
//
// Backend interactions:
//   - A backend.Watcher streams directory and configuration polls. Each event
//     updates the stores, refreshes the listing and, when the app list
//     changed, writes the app-list cache.
package ui
