package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"easybooking/internal/config"
	"easybooking/internal/database"
	"easybooking/internal/media"
	"easybooking/internal/middlewares"
	"easybooking/internal/repositories"
	"easybooking/internal/services"
)

type Server struct {
	cfg        *config.Config
	httpServer *http.Server

	db              database.Service
	authService     services.AuthService
	trendingService services.TrendingService
	limiter         *middlewares.RateLimiter
}

func NewServer() *Server {
	cfg := config.Load()

	db := database.New(cfg.MongoURI, cfg.DBName)

	uploader, err := media.NewCloudinaryUploader(cfg.CloudName, cfg.CloudinaryAPIKey, cfg.CloudinarySecret)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid Cloudinary configuration")
	}
	pipeline := media.NewPipeline(cfg.UploadDir, uploader)

	trendingRepo := repositories.NewTrendingRepository(db)

	s := &Server{
		cfg:             cfg,
		db:              db,
		authService:     services.NewAuthService(cfg),
		trendingService: services.NewTrendingService(trendingRepo, pipeline),
		limiter:         middlewares.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	log.Info().Int("port", s.cfg.Port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}
	if err := s.db.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("Database disconnect failed during shutdown")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
