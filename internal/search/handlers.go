package search

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SchoolScout/SS-Backend/internal/db"
	"github.com/SchoolScout/SS-Backend/internal/directory"
	"github.com/SchoolScout/SS-Backend/internal/favorites"
	"github.com/SchoolScout/SS-Backend/internal/storage"
	"github.com/SchoolScout/SS-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
)

// historyStoreFor builds the profile-scoped history store for a request.
// Tests can swap this out to run without a database.
var historyStoreFor = func(profileID string) *favorites.SearchHistoryStore {
	return favorites.NewSearchHistoryStore(storage.NewGormKV(db.DB, profileID))
}

// DistrictSearch proxies the district query. An all-empty filter triple
// short-circuits to an empty list without touching the upstream.
func DistrictSearch(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilterState(r.URL.Query())
	if err != nil {
		http.Error(w, "Invalid query parameters", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if filter.Empty() {
		json.NewEncoder(w).Encode([]directory.DistrictRecord{})
		return
	}

	start := time.Now()
	results, err := client.SearchDistricts(r.Context(), filter.Name, filter.State, filter.City)
	if err != nil {
		http.Error(w, "Failed to fetch districts: "+err.Error(), http.StatusBadGateway)
		return
	}

	profileID, _ := utils.GetProfileIDFromContext(r.Context())
	if filter.Name != "" && profileID != "" {
		if err := historyStoreFor(profileID).AddTerm(filter.Name); err != nil {
			directory.LogError("history", "add term", err)
		}
	}
	recordSearchLog(profileID, "districts", filter.Name, filterList(filter), len(results), time.Since(start))

	json.NewEncoder(w).Encode(results)
}

type schoolQuery struct {
	Name     string `schema:"name"`
	District string `schema:"district"`
	City     string `schema:"city"`
}

// SchoolSearch proxies the two-source school query.
func SchoolSearch(w http.ResponseWriter, r *http.Request) {
	var q schoolQuery
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		http.Error(w, "Invalid query parameters", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if q.Name == "" && q.District == "" && q.City == "" {
		json.NewEncoder(w).Encode([]directory.SchoolRecord{})
		return
	}

	start := time.Now()
	results, err := client.SearchSchools(r.Context(), q.Name, q.District, q.City)
	if err != nil {
		http.Error(w, "Failed to fetch schools: "+err.Error(), http.StatusBadGateway)
		return
	}

	profileID, _ := utils.GetProfileIDFromContext(r.Context())
	recordSearchLog(profileID, "schools", q.Name, nil, len(results), time.Since(start))

	json.NewEncoder(w).Encode(results)
}

// DistrictSchools fetches every school of a district, then narrows the list
// in memory with the secondary name/city predicates. An unknown LEAID just
// yields an empty list.
func DistrictSchools(w http.ResponseWriter, r *http.Request) {
	leaid := chi.URLParam(r, "leaid")

	schools, err := client.SearchSchools(r.Context(), "", leaid, "")
	if err != nil {
		http.Error(w, "Failed to fetch schools: "+err.Error(), http.StatusBadGateway)
		return
	}

	name := r.URL.Query().Get("name")
	city := r.URL.Query().Get("city")
	filtered := directory.FilterSchools(schools, name, city)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(filtered)
}

// States returns the state filter options.
func States(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stateOptions)
}

// History returns the profile's recent search terms, newest first.
func History(w http.ResponseWriter, r *http.Request) {
	profileID, ok := utils.GetProfileIDFromContext(r.Context())
	if !ok || profileID == "" {
		http.Error(w, "Missing profile", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(historyStoreFor(profileID).Terms())
}

func filterList(f FilterState) []string {
	filters := []string{}
	if f.State != "" {
		filters = append(filters, "state="+f.State)
	}
	if f.City != "" {
		filters = append(filters, "city="+f.City)
	}
	return filters
}
