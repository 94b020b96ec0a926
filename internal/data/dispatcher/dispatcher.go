package dispatcher

import (
	"github.com/atomicstack/pie-launcher/internal/backend"
	"github.com/atomicstack/pie-launcher/internal/directory"
	"github.com/atomicstack/pie-launcher/internal/logging/events"
	"github.com/atomicstack/pie-launcher/internal/menu"
	"github.com/atomicstack/pie-launcher/internal/state"
)

type Result struct {
	DirectoryUpdated bool
	ConfigUpdated    bool
}

type Dispatcher struct {
	directory state.DirectoryStore
	config    state.ConfigStore
}

func New(d state.DirectoryStore, c state.ConfigStore) *Dispatcher {
	return &Dispatcher{directory: d, config: c}
}

// Handle applies a backend event to the stores. A directory scan that failed
// part way still carries the apps it could read, and those replace the
// snapshot; a poll that produced no data keeps the last good data in place.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		events.Backend.Error(evt.Err)
	}
	switch evt.Kind {
	case backend.KindDirectory:
		if snapshot, ok := evt.Data.(directory.Snapshot); ok {
			events.Backend.Poll(len(snapshot.Apps), snapshot.DefaultBrowser)
			d.directory.SetSnapshot(snapshot)
			res.DirectoryUpdated = true
		}
	case backend.KindConfig:
		if evt.Err != nil {
			return res
		}
		if cfg, ok := evt.Data.(backend.Config); ok {
			if err := menu.Validate(cfg.Layers); err != nil {
				events.Config.Reject("layers", err)
				return res
			}
			d.config.SetLayers(cfg.Layers)
			d.config.SetBrowserActions(cfg.BrowserActions)
			res.ConfigUpdated = true
		}
	}
	return res
}
