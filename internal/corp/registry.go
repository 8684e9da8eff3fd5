package corp

import "slices"

// Registry indexes a colony's corps by id, preserving insertion order.
type Registry struct {
	corps map[string]Corp
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{corps: make(map[string]Corp)}
}

// Add registers c, replacing any corp with the same id.
func (r *Registry) Add(c Corp) {
	if _, ok := r.corps[c.ID()]; !ok {
		r.order = append(r.order, c.ID())
	}
	r.corps[c.ID()] = c
}

// Get looks a corp up by id.
func (r *Registry) Get(id string) (Corp, bool) {
	c, ok := r.corps[id]
	return c, ok
}

// Remove drops a corp. Unknown ids are ignored.
func (r *Registry) Remove(id string) {
	if _, ok := r.corps[id]; !ok {
		return
	}
	delete(r.corps, id)
	r.order = slices.DeleteFunc(r.order, func(o string) bool { return o == id })
}

// All returns corps in insertion order.
func (r *Registry) All() []Corp {
	out := make([]Corp, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.corps[id])
	}
	return out
}

// States snapshots every corp in insertion order.
func (r *Registry) States() []State {
	out := make([]State, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.corps[id].State())
	}
	return out
}

// TotalCorps returns the number of registered corps.
func (r *Registry) TotalCorps() int {
	return len(r.order)
}

// ActiveCorps counts corps that either have workers attached or were
// touched within window ticks of tick.
func (r *Registry) ActiveCorps(tick, window uint64) int {
	n := 0
	for _, c := range r.corps {
		if c.WorkerCount() > 0 || c.State().LastActive+window >= tick {
			n++
		}
	}
	return n
}

// Touch marks a corp active at tick if it supports it.
func (r *Registry) Touch(id string, tick uint64) {
	c, ok := r.corps[id]
	if !ok {
		return
	}
	if t, ok := c.(interface{ Touch(uint64) }); ok {
		t.Touch(tick)
	}
}

// ClearContracts empties every corp's contract list.
func (r *Registry) ClearContracts() {
	for _, c := range r.corps {
		if cc, ok := c.(interface{ ClearContracts() }); ok {
			cc.ClearContracts()
		}
	}
}
