package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"medguide/api/internal/config"
	"medguide/api/internal/handle"
	"medguide/api/internal/llm/gemini"
	"medguide/api/internal/notify"
	"medguide/api/internal/store"
)

func main() {
	cfg := config.Load()

	// --- Postgres ---
	if cfg.DatabaseURL == "" {
		log.Fatal("database DSN is empty: set DATABASE_URL")
	}
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("sql.Open: %v", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(1 * time.Hour)

	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db.Ping: %v", err)
		}
		if err := store.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("store.EnsureSchema: %v", err)
		}
		log.Printf("db connected")
	}

	insightRepo := store.NewInsightRepo(db)
	scanRepo := store.NewScanRepo(db)

	// --- Engines ---
	engine := gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)

	// --- On-call alerts (optional) ---
	alerts, err := notify.New(cfg.TelegramBotToken, cfg.AlertChatID)
	if err != nil {
		log.Fatalf("notify.New: %v", err)
	}
	if alerts != nil {
		log.Printf("telegram alerts enabled for chat %d", cfg.AlertChatID)
	}

	h := handle.New(engine, engine, insightRepo, scanRepo, alerts, cfg.ModelTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db: not ok\n" + err.Error()))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/v1/analyze/prescription", h.AnalyzePrescription)
	mux.HandleFunc("/v1/analyze/record", h.AnalyzeRecord)
	mux.HandleFunc("/v1/analyze/scan", h.AnalyzeScan)
	mux.HandleFunc("/v1/analyses/insight", h.GetInsight)
	mux.HandleFunc("/v1/analyses/scan", h.GetScan)
	mux.HandleFunc("/v1/analyses/scan/list", h.ListScans)
	mux.HandleFunc("/v1/analyses/scan/access", h.UpdateDoctorAccess)

	addr := "0.0.0.0:" + cfg.Port
	log.Printf("medguide-api listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
