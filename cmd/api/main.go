// cmd/api/main.go
// Main entry point for the matching backend
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loveos/loveos-backend/internal/auth"
	"github.com/loveos/loveos-backend/internal/common/database"
	"github.com/loveos/loveos-backend/internal/config"
	"github.com/loveos/loveos-backend/internal/matching"
	"github.com/loveos/loveos-backend/internal/profile"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting LoveOS Matching API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load and validate configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Configuration validation failed: ", err)
	}
	log.Println("✅ Configuration loaded and valid")

	// 3. Connect to PostgreSQL
	log.Println("\n🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL: ", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 4. Connect to Redis (optional: compat cache + match events)
	log.Println("\n📮 Step 4: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without cache and event publishing", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 5. Run database migrations
	log.Println("\n🔨 Step 5: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 6. Initialize auth
	log.Println("\n🔐 Step 6: Initializing auth...")
	authService := auth.NewService(&auth.Config{
		JWTSecret:         cfg.JWTSecret,
		AccessTokenExpiry: cfg.AccessTokenExpiry,
	})
	authMiddleware := auth.NewMiddleware(authService)
	log.Println("✅ Auth initialized")

	// 7. Initialize profile module
	log.Println("\n👤 Step 7: Initializing profile module...")
	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(profileRepo)
	profileHandler := profile.NewHandler(profileService)
	log.Println("✅ Profile module initialized")

	// 8. Initialize matching module
	log.Println("\n💘 Step 8: Initializing matching module...")
	matchRepo := matching.NewPostgresRepository(db)
	scorer := matching.NewScorer(matching.DefaultScorerConfig())

	var events matching.EventPublisher
	if redisClient != nil {
		events = matching.NewRedisEventPublisher(redisClient, cfg.EventChannel)
		log.Printf("   - Publishing mutual-match events on %q", cfg.EventChannel)
	} else {
		events = matching.NewLogEventPublisher()
		log.Println("   - Redis unavailable, mutual-match events will be logged only")
	}

	matchService := matching.NewService(matchRepo, profileService, scorer, events, &matching.ServiceConfig{
		Cache:    redisClient,
		CacheTTL: cfg.CompatCacheTTL,
	})
	matchHandler := matching.NewHandler(matchService)
	adminHandler := matching.NewAdminHandler(matchService)
	log.Println("✅ Matching module initialized")

	// 9. Set up routes
	log.Println("\n🛣️  Step 9: Setting up routes...")
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	profile.RegisterRoutes(router, profileHandler, authMiddleware)
	log.Println("   ✅ Profile routes registered")

	matching.RegisterRoutes(router, matchHandler, authMiddleware)
	log.Println("   ✅ Matching routes registered")

	matching.RegisterAdminRoutes(router, adminHandler, adminChain(authMiddleware))
	log.Println("   ✅ Admin routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 10. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown: ", err)
	}

	log.Println("✅ Server exited gracefully")
}

// adminChain composes Authenticate and RequireAdmin into a single
// mux.MiddlewareFunc for the moderation subrouter.
func adminChain(m *auth.Middleware) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return m.Authenticate(m.RequireAdmin(next))
	}
}

var startTime = time.Now()

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations executes database migrations
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		// Psychological profile vectors, one row per user. Category
		// vectors are JSONB so partial quiz results stay NULL per
		// category rather than zeroed.
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			personality JSONB,
			love_languages JSONB,
			communication_style JSONB,
			lifestyle JSONB,
			core_values TEXT[] NOT NULL DEFAULT '{}',
			interests TEXT[] NOT NULL DEFAULT '{}',
			quiz_completed BOOLEAN NOT NULL DEFAULT FALSE,
			is_visible BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_profiles_discoverable
			ON profiles (user_id) WHERE is_visible AND quiz_completed`,

		// One row per user pair. The unique pair_key makes concurrent
		// first-action creates collapse to a single row.
		`CREATE TABLE IF NOT EXISTS matches (
			id SERIAL PRIMARY KEY,
			pair_key TEXT NOT NULL UNIQUE,
			user1_id TEXT NOT NULL,
			user2_id TEXT NOT NULL,
			compatibility_score INTEGER NOT NULL,
			score_personality INTEGER NOT NULL DEFAULT 0,
			score_love_languages INTEGER NOT NULL DEFAULT 0,
			score_communication INTEGER NOT NULL DEFAULT 0,
			score_lifestyle INTEGER NOT NULL DEFAULT 0,
			score_values INTEGER NOT NULL DEFAULT 0,
			score_interests INTEGER NOT NULL DEFAULT 0,
			explanation TEXT NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'potential',
			user1_liked BOOLEAN NOT NULL DEFAULT FALSE,
			user2_liked BOOLEAN NOT NULL DEFAULT FALSE,
			user1_liked_at TIMESTAMPTZ,
			user2_liked_at TIMESTAMPTZ,
			chat_room_id TEXT,
			is_high_quality BOOLEAN NOT NULL DEFAULT FALSE,
			last_interaction TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_matches_user1 ON matches (user1_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_user2 ON matches (user2_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_status_interaction
			ON matches (status, last_interaction DESC)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
