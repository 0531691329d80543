package services

import (
	"sort"
	"sync"
	"time"

	"scadaval/domain/core"
	"scadaval/internal"
	"scadaval/ports"
)

// DatasetEntry is an uploaded table held in memory
type DatasetEntry struct {
	ID       core.DatasetID
	Table    ports.TableReaderPort
	LoadedAt time.Time
}

// DataService caches uploaded datasets in memory until they expire.
// Nothing is persisted.
type DataService struct {
	ttl    time.Duration
	now    func() time.Time
	logger *internal.Logger

	mu       sync.RWMutex
	datasets map[core.DatasetID]*DatasetEntry
}

// NewDataService creates a dataset cache; ttl <= 0 keeps datasets forever
func NewDataService(ttl time.Duration, logger *internal.Logger) *DataService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataService{
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
		datasets: make(map[core.DatasetID]*DatasetEntry),
	}
}

// Put caches a table under a fresh ID
func (s *DataService) Put(table ports.TableReaderPort) core.DatasetID {
	entry := &DatasetEntry{
		ID:       core.NewDatasetID(),
		Table:    table,
		LoadedAt: s.now(),
	}

	s.mu.Lock()
	s.datasets[entry.ID] = entry
	s.mu.Unlock()

	s.logger.Info("[DataService] Cached dataset %s from %s (%d rows, %d columns)",
		entry.ID, table.Source(), table.RowCount(), len(table.Columns()))
	return entry.ID
}

// Get returns a cached dataset; expired entries are dropped
func (s *DataService) Get(id core.DatasetID) (*DatasetEntry, error) {
	s.mu.RLock()
	entry, ok := s.datasets[id]
	s.mu.RUnlock()

	if !ok {
		return nil, core.ErrDatasetNotFound
	}
	if s.expired(entry) {
		s.mu.Lock()
		delete(s.datasets, id)
		s.mu.Unlock()
		s.logger.Debug("[DataService] Dataset %s expired", id)
		return nil, core.ErrDatasetNotFound
	}
	return entry, nil
}

// List returns live datasets, newest first
func (s *DataService) List() []*DatasetEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*DatasetEntry, 0, len(s.datasets))
	for _, entry := range s.datasets {
		if !s.expired(entry) {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LoadedAt.After(out[j].LoadedAt)
	})
	return out
}

// Purge removes expired datasets and returns how many were dropped
func (s *DataService) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, entry := range s.datasets {
		if s.expired(entry) {
			delete(s.datasets, id)
			n++
		}
	}
	if n > 0 {
		s.logger.Debug("[DataService] Purged %d expired datasets", n)
	}
	return n
}

func (s *DataService) expired(entry *DatasetEntry) bool {
	return s.ttl > 0 && s.now().Sub(entry.LoadedAt) >= s.ttl
}
