package favorites

import (
	"sync"

	"github.com/SchoolScout/SS-Backend/internal/storage"
)

// ReviewedStore holds two sets of bare IDs marking districts and schools the
// user has looked at. Membership only, no payload, no ordering guarantees.
type ReviewedStore struct {
	mu        sync.Mutex
	kv        storage.KV
	districts []string
	schools   []string
}

func NewReviewedStore(kv storage.KV) *ReviewedStore {
	s := &ReviewedStore{
		kv:        kv,
		districts: []string{},
		schools:   []string{},
	}
	_ = kv.Load(keyReviewedDistricts, &s.districts)
	_ = kv.Load(keyReviewedSchools, &s.schools)
	return s
}

// ToggleDistrict flips the reviewed flag and reports the new state.
func (s *ReviewedStore) ToggleDistrict(leaid string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.districts, _ = toggle(s.districts, leaid)
	reviewed := contains(s.districts, leaid)
	return reviewed, s.kv.Save(keyReviewedDistricts, s.districts)
}

// ToggleSchool flips the reviewed flag and reports the new state.
func (s *ReviewedStore) ToggleSchool(ncessch string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schools, _ = toggle(s.schools, ncessch)
	reviewed := contains(s.schools, ncessch)
	return reviewed, s.kv.Save(keyReviewedSchools, s.schools)
}

func (s *ReviewedStore) IsDistrictReviewed(leaid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.districts, leaid)
}

func (s *ReviewedStore) IsSchoolReviewed(ncessch string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.schools, ncessch)
}

func (s *ReviewedStore) DistrictIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.districts))
	copy(out, s.districts)
	return out
}

func (s *ReviewedStore) SchoolIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.schools))
	copy(out, s.schools)
	return out
}

func toggle(ids []string, id string) ([]string, bool) {
	if contains(ids, id) {
		kept := ids[:0]
		for _, v := range ids {
			if v != id {
				kept = append(kept, v)
			}
		}
		return kept, false
	}
	return append(ids, id), true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
