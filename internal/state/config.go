package state

import "github.com/atomicstack/pie-launcher/internal/menu"

// ConfigStore holds the active layer registry and browser actions.
type ConfigStore interface {
	Registry() *menu.Registry
	SetLayers([]menu.Layer)
	BrowserActions() []menu.BrowserAction
	SetBrowserActions([]menu.BrowserAction)
}

type configStore struct {
	registry *menu.Registry
	actions  []menu.BrowserAction
}

func NewConfigStore(layers []menu.Layer, actions []menu.BrowserAction) ConfigStore {
	return &configStore{
		registry: menu.NewRegistry(layers),
		actions:  menu.CloneBrowserActions(actions),
	}
}

func (c *configStore) Registry() *menu.Registry {
	return c.registry
}

func (c *configStore) SetLayers(layers []menu.Layer) {
	c.registry = menu.NewRegistry(layers)
}

func (c *configStore) BrowserActions() []menu.BrowserAction {
	return menu.CloneBrowserActions(c.actions)
}

func (c *configStore) SetBrowserActions(actions []menu.BrowserAction) {
	c.actions = menu.CloneBrowserActions(actions)
}
