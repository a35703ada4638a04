package core

import (
	"fmt"
	"sync"
)

// Handles hand out small integers that stand in for Go values on the C side
// of the binding. Handle 0 is never issued so it can be used as "no handle".
var (
	handleMutex sync.RWMutex
	owners      []interface{}
)

func HandleAcquire(owner interface{}) uintptr {
	handleMutex.Lock()
	defer handleMutex.Unlock()

	if len(owners) == 0 {
		owners = make([]interface{}, 16)
	}
	for i := range owners {
		// Existing free spot. Take it.
		if owners[i] == nil {
			owners[i] = owner
			return uintptr(i + 1)
		}
	}

	// No free slots, grow.
	owners = append(owners, owner)
	return uintptr(len(owners))
}

func HandleLookup(handle uintptr) (interface{}, error) {
	handleMutex.RLock()
	defer handleMutex.RUnlock()

	if handle == 0 || handle > uintptr(len(owners)) || owners[handle-1] == nil {
		return nil, fmt.Errorf("handle %d: %w", handle, ErrHandleNotFound)
	}
	return owners[handle-1], nil
}

func HandleRelease(handle uintptr) error {
	handleMutex.Lock()
	defer handleMutex.Unlock()

	if handle == 0 || handle > uintptr(len(owners)) || owners[handle-1] == nil {
		return fmt.Errorf("handle %d: %w", handle, ErrHandleNotFound)
	}
	// Just zero out the entry, making it available for use.
	owners[handle-1] = nil
	return nil
}
