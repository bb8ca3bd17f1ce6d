package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"popis/database"
	"popis/executors"
	"popis/export"
	"popis/inventory"
	"popis/lists"
	"popis/masterdata"
	"popis/prefs"
	"popis/product"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("INFO: .env file loaded")
	}

	dbPath := envOr("POPIS_DB", "./popis.db")
	prefsPath := envOr("POPIS_PREFS", "./popis_prefs.json")
	addr := envOr("POPIS_ADDR", ":8080")

	log.Println("Connecting to database...")
	dbConn, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database initialization complete.")

	prefStore, err := prefs.NewStore(prefsPath)
	if err != nil {
		log.Fatalf("Failed to load preferences from %s: %v", prefsPath, err)
	}

	execs := executors.NewAppExecutors(executors.SyncDispatcher{})
	defer execs.DiskIO.Shutdown()

	app := &App{
		Prefs:      prefStore,
		MasterData: masterdata.NewService(dbConn, prefStore, execs),
		Products:   product.NewService(dbConn, execs),
		Inventory:  inventory.NewService(dbConn, prefStore, execs),
		Lists:      lists.NewService(dbConn, execs),
		Export:     export.NewService(dbConn, prefStore, execs),
	}

	mux := http.NewServeMux()
	SetupRoutes(mux, app)

	log.Printf("Starting server on http://localhost%s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}
