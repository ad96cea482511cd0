package draft

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/sitelog/sitelog/pkg/sheettime"
)

// Store keeps at most one draft snapshot per date. Drafts live for the
// process lifetime only; there is no durability guarantee.
type Store interface {
	Save(key sheettime.Date, snapshot Snapshot)
	Load(key sheettime.Date) (Snapshot, bool)
	ClearAll()
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Snapshot)}
}

// Save stores a deep copy of snapshot under key, overwriting any prior
// entry. A snapshot with no data deletes the entry instead, keeping the
// store free of empty placeholders.
func (s *MemoryStore) Save(key sheettime.Date, snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !snapshot.HasData() {
		delete(s.data, key.String())
		return
	}
	s.data[key.String()] = snapshot.clone()
}

// Load returns a copy of the snapshot for key. Absence is a normal result
// on first visit to a date, not an error.
func (s *MemoryStore) Load(key sheettime.Date) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.data[key.String()]
	if !ok {
		return Snapshot{}, false
	}
	return snapshot.clone(), true
}

// ClearAll empties the store. Called when reference data is refreshed so
// stale drafts referencing an old roster are not resurrected.
func (s *MemoryStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Debugf("clearing %d stored timesheet drafts", len(s.data))
	s.data = make(map[string]Snapshot)
}
