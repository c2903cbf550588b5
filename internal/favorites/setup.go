package favorites

import (
	"log"

	"github.com/SchoolScout/SS-Backend/internal/db"
	"github.com/SchoolScout/SS-Backend/internal/storage"
)

func Init() {
	// Ensure the directory schema exists first
	if err := db.EnsureSchema(db.DB, "directory"); err != nil {
		log.Fatal("Failed to create directory schema: ", err)
	}

	if err := db.DB.AutoMigrate(&storage.Entry{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
