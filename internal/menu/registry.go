package menu

// Registry indexes a validated layer configuration by id.
type Registry struct {
	layers []Layer
	nodes  map[int]int
	base   int
}

// NewRegistry copies layers into a lookup structure. Later duplicates of an
// id are ignored.
func NewRegistry(layers []Layer) *Registry {
	r := &Registry{
		layers: CloneLayers(layers),
		nodes:  make(map[int]int, len(layers)),
		base:   BaseLayerID(layers),
	}
	for i, layer := range r.layers {
		if _, ok := r.nodes[layer.ID]; ok {
			continue
		}
		r.nodes[layer.ID] = i
	}
	return r
}

// Find returns the layer with the given id.
func (r *Registry) Find(id int) (Layer, bool) {
	if r == nil {
		return Layer{}, false
	}
	idx, ok := r.nodes[id]
	if !ok {
		return Layer{}, false
	}
	return r.layers[idx].Clone(), true
}

// Base returns the id of the layer shown when no navigation has happened.
func (r *Registry) Base() int {
	if r == nil {
		return 1
	}
	return r.base
}

// Layers returns a copy of the configuration in declaration order.
func (r *Registry) Layers() []Layer {
	if r == nil {
		return nil
	}
	return CloneLayers(r.layers)
}
