package utils

import (
	"sync"
	"time"
)

var (
	clearLocks = make(map[string]time.Time)
	clearMutex = &sync.Mutex{}
)

const clearLockDuration = 1 * time.Minute

// CheckAndSetClearLock guards record clearing for a user against double
// fires. If the user is not locked it sets a new lock and returns true;
// if a clear ran within the lock window it returns false.
func CheckAndSetClearLock(userID string) bool {
	clearMutex.Lock()
	defer clearMutex.Unlock()

	if lastClearTime, ok := clearLocks[userID]; ok {
		if time.Since(lastClearTime) < clearLockDuration {
			return false
		}
	}

	clearLocks[userID] = time.Now()
	return true
}
