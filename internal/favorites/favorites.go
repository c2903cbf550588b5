package favorites

import (
	"sync"

	"github.com/SchoolScout/SS-Backend/internal/directory"
	"github.com/SchoolScout/SS-Backend/internal/storage"
)

// FavoritesStore holds a profile's saved districts and schools. Records are
// snapshotted at the moment of saving, independent of later query results.
//
// Add does not deduplicate: callers gate via IsDistrictSaved / IsSchoolSaved
// before adding. Every mutation persists the full collection.
type FavoritesStore struct {
	mu        sync.Mutex
	kv        storage.KV
	districts []directory.DistrictRecord
	schools   []directory.SchoolRecord
}

// NewFavoritesStore loads the profile's saved records; unreadable or missing
// state starts empty.
func NewFavoritesStore(kv storage.KV) *FavoritesStore {
	s := &FavoritesStore{
		kv:        kv,
		districts: []directory.DistrictRecord{},
		schools:   []directory.SchoolRecord{},
	}
	_ = kv.Load(keySavedDistricts, &s.districts)
	_ = kv.Load(keySavedSchools, &s.schools)
	return s
}

func (s *FavoritesStore) AddDistrict(d directory.DistrictRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.districts = append(s.districts, d)
	return s.kv.Save(keySavedDistricts, s.districts)
}

// RemoveDistrict drops every saved entry with the given LEAID. Removing an
// unknown ID is a no-op, not an error.
func (s *FavoritesStore) RemoveDistrict(leaid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.districts[:0]
	for _, d := range s.districts {
		if d.LEAID != leaid {
			kept = append(kept, d)
		}
	}
	s.districts = kept
	return s.kv.Save(keySavedDistricts, s.districts)
}

func (s *FavoritesStore) IsDistrictSaved(leaid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.districts {
		if d.LEAID == leaid {
			return true
		}
	}
	return false
}

// Districts returns the saved districts in insertion order.
func (s *FavoritesStore) Districts() []directory.DistrictRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]directory.DistrictRecord, len(s.districts))
	copy(out, s.districts)
	return out
}

func (s *FavoritesStore) AddSchool(school directory.SchoolRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schools = append(s.schools, school)
	return s.kv.Save(keySavedSchools, s.schools)
}

func (s *FavoritesStore) RemoveSchool(ncessch string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.schools[:0]
	for _, sc := range s.schools {
		if sc.NCESSCH != ncessch {
			kept = append(kept, sc)
		}
	}
	s.schools = kept
	return s.kv.Save(keySavedSchools, s.schools)
}

func (s *FavoritesStore) IsSchoolSaved(ncessch string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sc := range s.schools {
		if sc.NCESSCH == ncessch {
			return true
		}
	}
	return false
}

// Schools returns the saved schools in insertion order.
func (s *FavoritesStore) Schools() []directory.SchoolRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]directory.SchoolRecord, len(s.schools))
	copy(out, s.schools)
	return out
}

// OrphanSchools returns saved schools whose owning district is not itself
// saved.
func (s *FavoritesStore) OrphanSchools() []directory.SchoolRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	savedDistricts := make(map[string]struct{}, len(s.districts))
	for _, d := range s.districts {
		savedDistricts[d.LEAID] = struct{}{}
	}
	orphans := []directory.SchoolRecord{}
	for _, sc := range s.schools {
		if _, ok := savedDistricts[sc.LEAID]; !ok {
			orphans = append(orphans, sc)
		}
	}
	return orphans
}
