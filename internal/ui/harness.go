package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// cmdTimeout bounds how long the harness waits for a command. Commands that
// block longer (backend waits, cursor blinks) are dropped.
const cmdTimeout = 50 * time.Millisecond

// Harness drives the UI model programmatically for integration tests.
// Scheduled messages (long-hold timers, flash resets) are queued instead of
// waiting on the clock and delivered by Advance.
type Harness struct {
	model   *Model
	pending []tea.Msg
	quit    bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	h := &Harness{model: model}
	if model != nil {
		model.after = func(_ time.Duration, msg tea.Msg) tea.Cmd {
			h.pending = append(h.pending, msg)
			return nil
		}
	}
	return h
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.deliver(msg)
}

// Advance delivers every scheduled message in the order it was queued.
func (h *Harness) Advance() {
	queued := h.pending
	h.pending = nil
	for _, msg := range queued {
		h.deliver(msg)
	}
}

// Pending returns the scheduled messages not yet delivered.
func (h *Harness) Pending() []tea.Msg {
	return append([]tea.Msg(nil), h.pending...)
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

func (h *Harness) deliver(msg tea.Msg) {
	switch msg := msg.(type) {
	case nil:
		return
	case tea.QuitMsg:
		h.quit = true
		return
	case tea.BatchMsg:
		for _, cmd := range msg {
			h.processCmd(cmd)
		}
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		h.deliver(msg)
	case <-time.After(cmdTimeout):
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
