package favorites

import (
	"net/http"

	"github.com/SchoolScout/SS-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.ProfileMiddleware)

	r.Get("/", ListFavorites)
	r.Get("/orphan-schools", OrphanSchools)
	r.Post("/districts", AddDistrict)
	r.Delete("/districts/{leaid}", RemoveDistrict)
	r.Post("/schools", AddSchool)
	r.Delete("/schools/{ncessch}", RemoveSchool)

	return r
}

func SetupReviewedRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.ProfileMiddleware)

	r.Get("/", ListReviewed)
	r.Post("/districts/{leaid}", ToggleDistrictReviewed)
	r.Post("/schools/{ncessch}", ToggleSchoolReviewed)

	return r
}
