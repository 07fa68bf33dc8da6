package gamedef

import (
	"sort"
	"sync"

	"github.com/partybox-games/roomserver/internal/model"
)

// Registry holds the game modules available in this process, keyed by
// game ID. New modules plug in by registering; nothing in the dispatch
// path switches on game identity.
type Registry struct {
	mu   sync.RWMutex
	defs map[model.GameID]Definition
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[model.GameID]Definition),
	}
}

// Register adds a game module. Registering the same ID twice replaces
// the earlier entry.
func (r *Registry) Register(def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.Info().ID] = def
}

// Lookup returns the module with the given ID
func (r *Registry) Lookup(id model.GameID) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return def, nil
}

// List returns the descriptors of all registered modules, ordered by ID
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]Info, 0, len(r.defs))
	for _, def := range r.defs {
		infos = append(infos, def.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}
