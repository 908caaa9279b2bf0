// Package registry assigns stable numeric ids to sender names.
package registry

import "github.com/mlvnd/chatstat/internal/model"

// Registry maps sender display names to dense ids assigned in
// first-seen order. One instance spans a whole run, so the same name
// across multiple transcripts resolves to the same id.
type Registry struct {
	byName map[string]int
	byID   []model.Sender
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byName: map[string]int{}}
}

// Resolve returns the id for name, allocating the next id on first use.
func (r *Registry) Resolve(name string) int {
	if id, ok := r.byName[name]; ok {
		return id
	}
	id := len(r.byID)
	r.byName[name] = id
	r.byID = append(r.byID, model.Sender{ID: id, Name: name})
	return id
}

// Name returns the display name registered for id.
func (r *Registry) Name(id int) string {
	if id < 0 || id >= len(r.byID) {
		return ""
	}
	return r.byID[id].Name
}

// Len returns the number of distinct senders seen so far.
func (r *Registry) Len() int {
	return len(r.byID)
}
