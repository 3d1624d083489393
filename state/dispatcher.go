// ABOUTME: Effect layer applying reducer transitions with write-through persistence
// ABOUTME: Serializes action application and persists affected store slots
package state

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/harperreed/cardscan/models"
	"github.com/harperreed/cardscan/store"
)

// Store is the slot-level persistence surface the dispatcher writes
// through. *store.Client satisfies it; tests inject their own.
type Store interface {
	GetSlot(slot string) ([]byte, bool, error)
	SetSlot(slot string, data []byte) error
}

// Dispatcher owns the application state and the store reference. Every
// mutation goes through Dispatch, which applies the pure reducer and then
// synchronously persists whichever collection the action touched. Actions
// are applied atomically and in dispatch order.
type Dispatcher struct {
	mu    sync.Mutex
	store Store
	state models.AppState
}

// NewDispatcher wraps an initial state (normally from Bootstrap) and a store.
func NewDispatcher(initial models.AppState, st Store) *Dispatcher {
	return &Dispatcher{store: st, state: initial}
}

// State returns the current snapshot.
func (d *Dispatcher) State() models.AppState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Dispatch applies one action and performs its persistence side effect.
// History, category, and template mutations write through immediately.
// Signatures are persisted by observation after any signature action, but
// only while the collection is non-empty, so an empty set is never stored
// and the seed-on-load invariant survives.
func (d *Dispatcher) Dispatch(a Action) models.AppState {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = Reduce(d.state, a)

	switch a.(type) {
	case SaveContact, DeleteContact:
		d.persist(store.SlotHistory, d.state.History)
	case AddCategory, DeleteCategory:
		d.persist(store.SlotCategories, d.state.Categories)
	case AddTemplate, DeleteTemplate:
		d.persist(store.SlotTemplates, d.state.Templates)
	case AddSignature, UpdateSignature, DeleteSignature:
		if len(d.state.Signatures) > 0 {
			d.persist(store.SlotSignatures, d.state.Signatures)
		}
	}

	return d.state
}

// persist serializes a collection into its slot. Failures are logged and
// swallowed: a write error must not break the in-memory workflow.
func (d *Dispatcher) persist(slot string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("failed to serialize %s slot: %v", slot, err)
		return
	}
	if err := d.store.SetSlot(slot, data); err != nil {
		log.Printf("failed to persist %s slot: %v", slot, err)
	}
}
