package jsonstore

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"station-chat-be/internal/entity"
)

// StationStore is a flat-file JSON station store with an in-memory index.
// All lookups are served from memory; SaveSnapshot persists the current set
// with an atomic replace.
type StationStore struct {
	mu       sync.RWMutex
	path     string
	stations []*entity.Station
	index    map[string]*entity.Station
}

type stationFile struct {
	Stations []*entity.Station `json:"stations"`
}

func NewStationStore(path string) (*StationStore, error) {
	s := &StationStore{
		path:  path,
		index: make(map[string]*entity.Station),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *StationStore) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// Accept both {"stations":[...]} and a bare list.
	var wrapped stationFile
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Stations != nil {
		s.stations = wrapped.Stations
	} else {
		var list []*entity.Station
		if err := json.Unmarshal(raw, &list); err != nil {
			return err
		}
		s.stations = list
	}
	s.rebuildIndex()
	return nil
}

func (s *StationStore) rebuildIndex() {
	s.index = make(map[string]*entity.Station, len(s.stations))
	for _, st := range s.stations {
		s.index[st.ID] = st
	}
}

// InitIfMissing seeds the store only when the backing file does not exist,
// so a restart never re-randomizes persisted data.
func (s *StationStore) InitIfMissing(seed []*entity.Station) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	s.stations = append([]*entity.Station(nil), seed...)
	s.rebuildIndex()
	return writeAtomic(s.path, stationFile{Stations: s.stations})
}

func (s *StationStore) Get(id string) (*entity.Station, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.index[id]
	return st, ok
}

// noLimit is large enough to never truncate a search.
const noLimit = 1 << 20

// All returns the full station set, newest first.
func (s *StationStore) All() []*entity.Station {
	return s.Search(StationFilter{Limit: noLimit})
}

// ByCity returns a city's stations, newest first.
func (s *StationStore) ByCity(city string) []*entity.Station {
	return s.Search(StationFilter{City: city, Limit: noLimit})
}

// StationFilter narrows Search. Exact-match fields are ANDed;
// IDLike/NameLike are case-insensitive substring matches.
type StationFilter struct {
	City     string
	Vendor   string
	Band     string
	Status   string
	IDLike   string
	NameLike string
	Limit    int
	Offset   int
}

// Search filters in memory and orders by updated_at desc, then id, so result
// order is stable across runs for identical data.
func (s *StationStore) Search(f StationFilter) []*entity.Station {
	s.mu.RLock()
	defer s.mu.RUnlock()

	like := func(val, pat string) bool {
		if pat == "" {
			return true
		}
		return strings.Contains(strings.ToLower(val), strings.ToLower(pat))
	}

	var results []*entity.Station
	for _, st := range s.stations {
		if f.City != "" && st.City != f.City {
			continue
		}
		if f.Vendor != "" && st.Vendor != f.Vendor {
			continue
		}
		if f.Band != "" && st.Band != f.Band {
			continue
		}
		if f.Status != "" && st.Status != f.Status {
			continue
		}
		if !like(st.ID, f.IDLike) || !like(st.Name, f.NameLike) {
			continue
		}
		results = append(results, st)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].UpdatedAt != results[j].UpdatedAt {
			return results[i].UpdatedAt > results[j].UpdatedAt
		}
		return results[i].ID < results[j].ID
	})

	if f.Offset > 0 {
		if f.Offset >= len(results) {
			return nil
		}
		results = results[f.Offset:]
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// UpdateStatus sets a station's status and bumps updated_at. The change is
// in-memory only; persistence happens via SaveSnapshot (event consumer).
func (s *StationStore) UpdateStatus(id, status string) (*entity.Station, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.index[id]
	if !ok {
		return nil, false
	}
	st.Status = status
	st.UpdatedAt = time.Now().Unix()
	return st, true
}

// UpsertAll replaces the full station set and persists it. Used by seed
// tooling; runtime mutation goes through UpdateStatus + SaveSnapshot.
func (s *StationStore) UpsertAll(stations []*entity.Station) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stations = append([]*entity.Station(nil), stations...)
	s.rebuildIndex()
	return writeAtomic(s.path, stationFile{Stations: s.stations})
}

func (s *StationStore) SaveSnapshot() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return writeAtomic(s.path, stationFile{Stations: s.stations})
}
