package favorites

import (
	"encoding/json"
	"net/http"

	"github.com/SchoolScout/SS-Backend/internal/db"
	"github.com/SchoolScout/SS-Backend/internal/directory"
	"github.com/SchoolScout/SS-Backend/internal/storage"
	"github.com/SchoolScout/SS-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// profileKV builds the profile-scoped KV for a request. Tests can swap this
// out to run without a database.
var profileKV = func(profileID string) storage.KV {
	return storage.NewGormKV(db.DB, profileID)
}

func requestKV(w http.ResponseWriter, r *http.Request) (storage.KV, bool) {
	profileID, ok := utils.GetProfileIDFromContext(r.Context())
	if !ok || profileID == "" {
		http.Error(w, "Missing profile", http.StatusBadRequest)
		return nil, false
	}
	return profileKV(profileID), true
}

type favoritesResponse struct {
	Districts []directory.DistrictRecord `json:"districts"`
	Schools   []directory.SchoolRecord   `json:"schools"`
}

// ListFavorites returns the profile's saved districts and schools.
func ListFavorites(w http.ResponseWriter, r *http.Request) {
	kv, ok := requestKV(w, r)
	if !ok {
		return
	}
	store := NewFavoritesStore(kv)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(favoritesResponse{
		Districts: store.Districts(),
		Schools:   store.Schools(),
	})
}

// AddDistrict saves a district record. The handler gates on membership so a
// double-save cannot create a duplicate entry.
func AddDistrict(w http.ResponseWriter, r *http.Request) {
	kv, ok := requestKV(w, r)
	if !ok {
		return
	}

	var district directory.DistrictRecord
	if err := json.NewDecoder(r.Body).Decode(&district); err != nil {
		http.Error(w, "Invalid district payload", http.StatusBadRequest)
		return
	}
	if district.LEAID == "" {
		http.Error(w, "Missing LEAID", http.StatusBadRequest)
		return
	}

	store := NewFavoritesStore(kv)
	if store.IsDistrictSaved(district.LEAID) {
		http.Error(w, "District already saved", http.StatusConflict)
		return
	}
	if err := store.AddDistrict(district); err != nil {
		http.Error(w, "Failed to save district: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(district)
}

// RemoveDistrict unsaves a district. Unknown IDs are a no-op.
func RemoveDistrict(w http.ResponseWriter, r *http.Request) {
	kv, ok := requestKV(w, r)
	if !ok {
		return
	}

	store := NewFavoritesStore(kv)
	if err := store.RemoveDistrict(chi.URLParam(r, "leaid")); err != nil {
		http.Error(w, "Failed to remove district: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddSchool saves a school record, gated on membership like AddDistrict.
func AddSchool(w http.ResponseWriter, r *http.Request) {
	kv, ok := requestKV(w, r)
	if !ok {
		return
	}

	var school directory.SchoolRecord
	if err := json.NewDecoder(r.Body).Decode(&school); err != nil {
		http.Error(w, "Invalid school payload", http.StatusBadRequest)
		return
	}
	if school.NCESSCH == "" {
		http.Error(w, "Missing NCESSCH", http.StatusBadRequest)
		return
	}

	store := NewFavoritesStore(kv)
	if store.IsSchoolSaved(school.NCESSCH) {
		http.Error(w, "School already saved", http.StatusConflict)
		return
	}
	if err := store.AddSchool(school); err != nil {
		http.Error(w, "Failed to save school: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(school)
}

// RemoveSchool unsaves a school. Unknown IDs are a no-op.
func RemoveSchool(w http.ResponseWriter, r *http.Request) {
	kv, ok := requestKV(w, r)
	if !ok {
		return
	}

	store := NewFavoritesStore(kv)
	if err := store.RemoveSchool(chi.URLParam(r, "ncessch")); err != nil {
		http.Error(w, "Failed to remove school: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OrphanSchools lists saved schools whose district is not saved.
func OrphanSchools(w http.ResponseWriter, r *http.Request) {
	kv, ok := requestKV(w, r)
	if !ok {
		return
	}
	store := NewFavoritesStore(kv)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(store.OrphanSchools())
}

type reviewedResponse struct {
	DistrictIDs []string `json:"district_ids"`
	SchoolIDs   []string `json:"school_ids"`
}

// ListReviewed returns both reviewed ID sets.
func ListReviewed(w http.ResponseWriter, r *http.Request) {
	kv, ok := requestKV(w, r)
	if !ok {
		return
	}
	store := NewReviewedStore(kv)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviewedResponse{
		DistrictIDs: store.DistrictIDs(),
		SchoolIDs:   store.SchoolIDs(),
	})
}

type toggleResponse struct {
	ID       string `json:"id"`
	Reviewed bool   `json:"reviewed"`
}

// ToggleDistrictReviewed flips a district's reviewed flag.
func ToggleDistrictReviewed(w http.ResponseWriter, r *http.Request) {
	kv, ok := requestKV(w, r)
	if !ok {
		return
	}

	leaid := chi.URLParam(r, "leaid")
	store := NewReviewedStore(kv)
	reviewed, err := store.ToggleDistrict(leaid)
	if err != nil {
		http.Error(w, "Failed to toggle reviewed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toggleResponse{ID: leaid, Reviewed: reviewed})
}

// ToggleSchoolReviewed flips a school's reviewed flag.
func ToggleSchoolReviewed(w http.ResponseWriter, r *http.Request) {
	kv, ok := requestKV(w, r)
	if !ok {
		return
	}

	ncessch := chi.URLParam(r, "ncessch")
	store := NewReviewedStore(kv)
	reviewed, err := store.ToggleSchool(ncessch)
	if err != nil {
		http.Error(w, "Failed to toggle reviewed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toggleResponse{ID: ncessch, Reviewed: reviewed})
}
