package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/speakeasy-learn/eslprep/internal/api/http"
	"github.com/speakeasy-learn/eslprep/internal/auth"
	authmw "github.com/speakeasy-learn/eslprep/internal/auth/middleware"
	"github.com/speakeasy-learn/eslprep/internal/bank"
	"github.com/speakeasy-learn/eslprep/internal/config"
	"github.com/speakeasy-learn/eslprep/internal/db"
	"github.com/speakeasy-learn/eslprep/internal/grading"
	"github.com/speakeasy-learn/eslprep/internal/mocktest"
	"github.com/speakeasy-learn/eslprep/internal/progress"
	"github.com/speakeasy-learn/eslprep/internal/rbac"
	"github.com/speakeasy-learn/eslprep/internal/speech"
	"github.com/speakeasy-learn/eslprep/internal/storage"
	syncx "github.com/speakeasy-learn/eslprep/internal/sync"

	// Built-in question-bank contexts register themselves.
	_ "github.com/speakeasy-learn/eslprep/internal/bank/general"
	_ "github.com/speakeasy-learn/eslprep/internal/bank/hospitality"
	_ "github.com/speakeasy-learn/eslprep/internal/bank/sales"
)

func main() {
	cfg := config.Load()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	// Banks: built-ins registered via imports, then file-configured ones,
	// then previously uploaded ones from the DB.
	for _, path := range cfg.BankFiles {
		b, err := bank.LoadFile(path)
		if err != nil {
			log.Fatalf("bank file %s: %v", path, err)
		}
		bank.Register(b.Context, b)
	}
	if err := api.RestoreBanks(dbh); err != nil {
		log.Fatalf("restore banks: %v", err)
	}

	// --- Mock-test engine ---
	var engineOpts []mocktest.EngineOption
	if cfg.MockTestTimeLimit > 0 {
		engineOpts = append(engineOpts, mocktest.WithTimeLimit(cfg.MockTestTimeLimit))
	}
	engine := mocktest.NewEngine(bank.ForContext, grading.NewDefaultGrader(), engineOpts...)
	sessions := mocktest.NewSessionStore()
	attempts := mocktest.NewSQLAttemptStore(dbh)
	events := syncx.NewEventRepo(dbh)
	progressStore := progress.NewSQLStore(dbh)

	// --- Speech ---
	audioCache, err := storage.NewFSStore(cfg.AudioCachePath)
	if err != nil {
		log.Fatalf("audio cache: %v", err)
	}
	catalog := speech.NewCatalog()
	var speaker *speech.Speaker
	if cfg.GoogleTTSAPIKey != "" {
		eng := speech.NewGoogleEngine(cfg.GoogleTTSAPIKey)
		speaker = speech.NewSpeaker(catalog, eng, audioCache)
		// The voice list arrives asynchronously; the speaker reports
		// unavailable until it does.
		go eng.PopulateCatalog(context.Background(), catalog)
	} else {
		speaker = speech.NewSpeaker(catalog, nil, audioCache)
	}

	// --- Auth ---
	authSvc := authmw.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", authmw.LoginHandler(authSvc, dbh, authmw.LoginOptions{
		AdminUser:     cfg.AdminUser,
		AdminPassHash: cfg.AdminPassHash,
	}))
	r.Post("/auth/guest", auth.GuestLoginHandler(authSvc, dbh, cfg.EnableGuestAuth))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))

		pr.Get("/api/contexts", api.ListContextsHandler())

		pr.With(rbac.Require("mocktest:start")).
			Post("/api/mocktest/start", api.StartMockTestHandler(engine, sessions))
		pr.With(rbac.Require("mocktest:answer")).
			Post("/api/mocktest/answer", api.AnswerMockTestHandler(engine, sessions, attempts, events))
		pr.With(rbac.Require("mocktest:reset")).
			Post("/api/mocktest/reset", api.ResetMockTestHandler(engine, sessions))
		pr.With(rbac.Require("mocktest:view-own")).
			Get("/api/mocktest/session", api.GetMockTestSessionHandler(sessions))

		pr.With(rbac.Require("attempts:view-own")).
			Get("/api/attempts", api.ListAttemptsHandler(attempts))

		pr.With(rbac.Require("progress:own")).
			Get("/api/progress", api.GetProgressHandler(progressStore))
		pr.With(rbac.Require("progress:own")).
			Put("/api/progress/{activity}", api.AwardProgressHandler(progressStore))
		pr.With(rbac.Require("progress:own")).
			Put("/api/settings", api.SetSettingsHandler(progressStore))

		pr.With(rbac.Require("progress:own")).
			Post("/api/placement/replay", api.ReplayPlacementsHandler())

		pr.With(rbac.Require("speech:use")).
			Post("/api/speech", api.SpeakHandler(speaker))
		pr.With(rbac.Require("speech:use")).
			Get("/api/speech/audio/{key}", api.SpeechAudioHandler(speaker))
		pr.With(rbac.Require("speech:use")).
			Post("/api/speech/{action}", api.SpeechControlHandler(speaker))
		pr.With(rbac.Require("speech:use")).
			Get("/api/speech/voices", api.ListVoicesHandler(catalog))

		pr.With(rbac.Require("bank:upload")).
			Post("/api/banks", api.UploadBankHandler(dbh, events))
	})

	log.Printf("eslprep gateway listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("server: %v", err)
	}
}
