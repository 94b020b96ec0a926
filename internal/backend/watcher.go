package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/pie-launcher/internal/directory"
	"github.com/atomicstack/pie-launcher/internal/menu"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindDirectory Kind = iota
	KindConfig
)

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Config is the persisted launcher configuration.
type Config struct {
	Layers         []menu.Layer
	BrowserActions []menu.BrowserAction
}

// ConfigReader reads the persisted configuration.
type ConfigReader interface {
	Layers(ctx context.Context) ([]menu.Layer, error)
	BrowserActions(ctx context.Context) ([]menu.BrowserAction, error)
}

// Source lists what the watcher polls. A nil Store disables config polling.
type Source struct {
	DesktopDirs []string
	Store       ConfigReader
}

var loadDirectory = directory.Load

// Watcher polls the application directory and the configuration store at a
// fixed interval and publishes events.
type Watcher struct {
	src      Source
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher that polls every interval.
func NewWatcher(src Source, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		src:      src,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startDirectoryPoller()
	if src.Store != nil {
		w.startConfigPoller()
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startDirectoryPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindDirectory, func(ctx context.Context) (interface{}, error) {
		if !throttle.wait(ctx) {
			return nil, ctx.Err()
		}
		return loadDirectory(ctx, w.src.DesktopDirs)
	})
}

func (w *Watcher) startConfigPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindConfig, func(ctx context.Context) (interface{}, error) {
		if !throttle.wait(ctx) {
			return nil, ctx.Err()
		}
		layers, err := w.src.Store.Layers(ctx)
		if err != nil {
			return nil, err
		}
		actions, err := w.src.Store.BrowserActions(ctx)
		if err != nil {
			return nil, err
		}
		return Config{Layers: layers, BrowserActions: actions}, nil
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
