// nces-probe checks connectivity to the upstream NCES feature servers.
// Exits non-zero when any layer is unreachable.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/SchoolScout/SS-Backend/internal/directory"
)

func main() {
	client := directory.NewClient()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	districts, err := client.SearchDistricts(ctx, "lincoln", "NE", "")
	if err != nil {
		log.Fatalf("district layer probe failed: %v", err)
	}
	fmt.Printf("district layer OK: %d results for lincoln/NE\n", len(districts))

	if len(districts) == 0 {
		log.Fatal("district layer returned no rows for a known-good query")
	}

	schools, err := client.SearchSchools(ctx, "", districts[0].LEAID, "")
	if err != nil {
		log.Fatalf("school layers probe failed: %v", err)
	}
	fmt.Printf("school layers OK: %d results for LEAID %s\n", len(schools), districts[0].LEAID)
}
