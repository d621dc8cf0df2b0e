package jsonstore

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"

	"station-chat-be/internal/entity"
)

// POIStore is the flat-file JSON POI store. Names are not unique; several
// POIs may share a name across cities, which is what feeds disambiguation.
type POIStore struct {
	mu    sync.RWMutex
	path  string
	pois  []*entity.POI
	index map[string]*entity.POI
}

type poiFile struct {
	Pois []*entity.POI `json:"pois"`
}

func NewPOIStore(path string) (*POIStore, error) {
	s := &POIStore{
		path:  path,
		index: make(map[string]*entity.POI),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *POIStore) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var wrapped poiFile
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Pois != nil {
		s.pois = wrapped.Pois
	} else {
		var list []*entity.POI
		if err := json.Unmarshal(raw, &list); err != nil {
			return err
		}
		s.pois = list
	}
	s.rebuildIndex()
	return nil
}

func (s *POIStore) rebuildIndex() {
	s.index = make(map[string]*entity.POI, len(s.pois))
	for _, p := range s.pois {
		s.index[p.ID] = p
	}
}

func (s *POIStore) InitIfMissing(seed []*entity.POI) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	s.pois = append([]*entity.POI(nil), seed...)
	s.rebuildIndex()
	return writeAtomic(s.path, poiFile{Pois: s.pois})
}

func (s *POIStore) Get(id string) (*entity.POI, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.index[id]
	return p, ok
}

// Search filters by exact city/category and case-insensitive name substring
// (main name or any alias). Results rank by popularity desc, then shorter
// name first, a stable order the fuzzy matcher's tie-break relies on.
func (s *POIStore) Search(city, nameLike, category string, limit int) []*entity.POI {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nameHit := func(p *entity.POI) bool {
		if nameLike == "" {
			return true
		}
		pat := strings.ToLower(nameLike)
		if strings.Contains(strings.ToLower(p.Name), pat) {
			return true
		}
		for _, a := range p.Aliases {
			if strings.Contains(strings.ToLower(a), pat) {
				return true
			}
		}
		return false
	}

	var out []*entity.POI
	for _, p := range s.pois {
		if city != "" && p.City != city {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if !nameHit(p) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Popularity != out[j].Popularity {
			return out[i].Popularity > out[j].Popularity
		}
		return len(out[i].Name) < len(out[j].Name)
	})

	if limit <= 0 {
		limit = 20
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// All returns every POI in store order.
func (s *POIStore) All() []*entity.POI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*entity.POI(nil), s.pois...)
}

// UpsertAll replaces the full POI set and persists it.
func (s *POIStore) UpsertAll(pois []*entity.POI) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pois = append([]*entity.POI(nil), pois...)
	s.rebuildIndex()
	return writeAtomic(s.path, poiFile{Pois: s.pois})
}

func (s *POIStore) SaveSnapshot() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return writeAtomic(s.path, poiFile{Pois: s.pois})
}
