package search

import (
	"log"
	"time"

	"github.com/SchoolScout/SS-Backend/internal/config"
	"github.com/SchoolScout/SS-Backend/internal/db"
	"github.com/SchoolScout/SS-Backend/internal/directory"
)

// client is the active directory client, initialized in Init() from config.
var client *directory.Client

var (
	rateLimitPerSecond float64 = 5
	rateLimitBurst             = 10
)

func Init(cfg config.Config) {
	// Ensure the directory schema exists first
	if err := db.EnsureSchema(db.DB, "directory"); err != nil {
		log.Fatal("Failed to create directory schema: ", err)
	}

	if err := db.DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("Failed to enable uuid-ossp extension:", err)
	}

	if err := db.DB.AutoMigrate(&SearchLog{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	client = newClientFromConfig(cfg.Directory)

	if cfg.Search.RateLimitPerSecond > 0 {
		rateLimitPerSecond = cfg.Search.RateLimitPerSecond
	}
	if cfg.Search.RateLimitBurst > 0 {
		rateLimitBurst = cfg.Search.RateLimitBurst
	}

	log.Println("Search module initialized")
}

func newClientFromConfig(cfg config.DirectoryConfig) *directory.Client {
	district := cfg.DistrictEndpoint
	if district == "" {
		district = directory.DistrictEndpoint
	}
	private := cfg.PrivateSchoolEndpoint
	if private == "" {
		private = directory.PrivateSchoolEndpoint
	}
	public := cfg.PublicSchoolEndpoint
	if public == "" {
		public = directory.PublicSchoolEndpoint
	}
	timeout := 30 * time.Second
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return directory.NewClientWithEndpoints(district, private, public, timeout)
}
