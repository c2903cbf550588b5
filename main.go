package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/SchoolScout/SS-Backend/internal/config"
	"github.com/SchoolScout/SS-Backend/internal/db"
	"github.com/SchoolScout/SS-Backend/internal/favorites"
	"github.com/SchoolScout/SS-Backend/internal/middleware"
	"github.com/SchoolScout/SS-Backend/internal/search"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	cfg := config.Load()
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	favorites.Init()
	search.Init(cfg)
	middleware.SetAllowedOrigins(cfg.AllowedOrigins)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/directory", search.SetupDirectoryRoutes())
	r.Mount("/search", search.SetupSearchRoutes())
	r.Mount("/favorites", favorites.SetupRoutes())
	r.Mount("/reviewed", favorites.SetupReviewedRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
