package store

import (
	"strconv"
	"sync"
	"time"
)

// Ids are millisecond timestamps, matching the persisted data the original
// clients wrote. The bump keeps them unique and monotonic within a process
// when two mutations land on the same millisecond.
var (
	idMu   sync.Mutex
	lastID int64
)

func nextID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}

func nextStringID() string {
	return strconv.FormatInt(nextID(), 10)
}
