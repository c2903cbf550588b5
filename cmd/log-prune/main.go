package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// CLI flags
var (
	dsn     = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	keep    = flag.Duration("keep", 90*24*time.Hour, "Retention window for search logs")
	dryRun  = flag.Bool("dry-run", false, "Count rows only; no deletes")
	confirm = flag.Bool("confirm", false, "Required to actually delete rows")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("open db: %v", err)
	}
	defer db.Close()

	cutoff := time.Now().Add(-*keep)

	var stale int64
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM directory.search_logs WHERE created_at < $1`, cutoff,
	).Scan(&stale)
	if err != nil {
		fatalf("count stale logs: %v", err)
	}

	fmt.Printf("search logs older than %s: %d\n", cutoff.Format(time.RFC3339), stale)
	if *dryRun || stale == 0 {
		return
	}
	if !*confirm {
		fatalf("refusing to delete without --confirm")
	}

	res, err := db.ExecContext(ctx,
		`DELETE FROM directory.search_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		fatalf("delete stale logs: %v", err)
	}
	n, _ := res.RowsAffected()
	fmt.Printf("deleted %d rows\n", n)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
