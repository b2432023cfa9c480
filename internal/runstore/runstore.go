// Package runstore tracks what each driftmon run created, in a local or
// shared database.
package runstore

import (
	"sync"

	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/schema"
)

// RunStoreManager manages the run store instance.
type RunStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	runs         contract.RunStore
}

var _ contract.RunManager = &RunStoreManager{} // Compile-time check

// Manager is the process-wide run store manager, initialized by InitStores.
var Manager = &RunStoreManager{}

// GetRunStore returns the run store, or nil before initialization.
func (mgr *RunStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}

// InitStores initializes the run store with the configured backend.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	store, err := NewRunStore(backend, connStr)
	if err != nil {
		return err
	}

	Manager.Lock()
	defer Manager.Unlock()
	Manager.runs = store
	return nil
}

// CloseStores closes the run store and clears the manager.
func CloseStores() error {
	Manager.Lock()
	defer Manager.Unlock()
	if Manager.runs == nil {
		return nil
	}
	err := Manager.runs.Close()
	Manager.runs = nil
	return err
}
