package search

import (
	"net/http"

	"github.com/SchoolScout/SS-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupDirectoryRoutes serves the proxied upstream queries. These are rate
// limited per profile since every hit can fan out to the NCES servers.
func SetupDirectoryRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.ProfileMiddleware)
	r.Use(middleware.RateLimitMiddleware(rateLimitPerSecond, rateLimitBurst))

	r.Get("/districts", DistrictSearch)
	r.Get("/districts/{leaid}/schools", DistrictSchools)
	r.Get("/schools", SchoolSearch)
	r.Get("/states", States)

	return r
}

// SetupSearchRoutes serves the profile's search metadata.
func SetupSearchRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.ProfileMiddleware)

	r.Get("/history", History)

	return r
}
