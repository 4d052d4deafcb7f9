package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"speciesnet-api/api/internal/classify"
	"speciesnet-api/api/internal/config"
	"speciesnet-api/api/internal/handle"
	"speciesnet-api/api/internal/store"
	"speciesnet-api/api/internal/upload"
)

func main() {
	cfg := config.Load()

	st, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload store: %v", err)
	}

	runner := classify.NewRunner(cfg.SpeciesNetDir, cfg.PythonBin, cfg.ClassifyTimeout)
	if err := runner.Check(); err != nil {
		// Serve anyway; classification requests will fail with a structured
		// 500 until the installation shows up.
		log.Printf("warning: %v", err)
	}

	var preds *store.PredictionRepo
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		repo := store.NewPredictionRepo(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("prepare database schema: %v", err)
		}
		cancel()
		preds = repo
		log.Printf("prediction persistence enabled")
	}

	h := handle.New(cfg, st, runner, preds)

	mux := http.NewServeMux()
	mux.HandleFunc("/classify", h.Classify)
	mux.HandleFunc("/classify/raw", h.ClassifyRaw)
	mux.HandleFunc("/health", h.Health)
	if preds != nil {
		mux.HandleFunc("/predictions", h.Predictions)
		mux.HandleFunc("/predictions/", h.Prediction)
	}
	mux.HandleFunc("/", h.Index)

	addr := ":" + cfg.Port
	log.Printf("%s listening on %s", handle.ServiceName, addr)
	log.Printf("upload folder: %s", st.Dir)
	log.Printf("speciesnet dir: %s", runner.Dir)
	log.Fatal(http.ListenAndServe(addr, mux))
}
