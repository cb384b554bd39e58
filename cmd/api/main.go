package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/circleapp/circle-api/internal/config"
	"github.com/circleapp/circle-api/internal/domain/activity"
	"github.com/circleapp/circle-api/internal/domain/auth"
	"github.com/circleapp/circle-api/internal/domain/feed"
	"github.com/circleapp/circle-api/internal/domain/graph"
	"github.com/circleapp/circle-api/internal/domain/user"
	"github.com/circleapp/circle-api/internal/middleware"
	"github.com/circleapp/circle-api/internal/pkg/database"
	"github.com/circleapp/circle-api/internal/pkg/jwt"
	"github.com/circleapp/circle-api/internal/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Circle API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	graphRepo := graph.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, auth.NewRefreshStore(redis))
	graphService := graph.NewService(graphRepo, userRepo)
	feedService := feed.NewService(graphService, graphService, cfg.FeedDefaultPageSize, cfg.FeedMaxPageSize)
	activityService := activity.NewService(activity.NewRedisStore(redis, cfg.ActivityPerActorCap))

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	graphHandler := graph.NewHandler(graphService)
	feedHandler := feed.NewHandler(feedService, &feedContentAdapter{activities: activityService})
	activityHandler := activity.NewHandler(activityService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/", graphHandler.Routes(authMiddleware))
		r.Mount("/feed", feedHandler.Routes(authMiddleware))
		r.Mount("/activities", activityHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// feedContentAdapter bridges the activity service to the feed content boundary
type feedContentAdapter struct {
	activities *activity.Service
}

func (a *feedContentAdapter) ListByActors(ctx context.Context, actorIDs []uuid.UUID, before time.Time, limit int) ([]feed.Entry, error) {
	entries, err := a.activities.ListByActors(ctx, actorIDs, before, limit)
	if err != nil {
		return nil, err
	}
	out := make([]feed.Entry, len(entries))
	for i, e := range entries {
		out[i] = feed.Entry{
			ID:         e.ID,
			ActorID:    e.ActorID,
			Verb:       e.Verb,
			ObjectType: e.ObjectType,
			ObjectID:   e.ObjectID,
			CreatedAt:  e.CreatedAt,
		}
	}
	return out, nil
}
