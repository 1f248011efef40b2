package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"easybooking/internal/handlers"
	"easybooking/internal/middlewares"
)

// RegisterRoutes wires the request pipeline: security headers and logging,
// then origin policy, rate limiting and the timeout guard ahead of every
// route. Preflight requests are answered by the CORS middleware and never
// reach the handlers below.
func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.SecurityHeaders)
	r.Use(middlewares.RequestLogger)
	r.Use(middlewares.Instrument)
	r.Use(middlewares.Cors(s.cfg.AllowedOrigins))
	r.Use(s.limiter.Middleware)
	r.Use(middlewares.Timeout(s.cfg.RequestTimeout))

	dev := s.cfg.Dev()
	auth := middlewares.Auth(s.cfg.JWTSecret)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.Root).Methods("GET")
	r.HandleFunc("/health", ch.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	ah := handlers.NewAuthHandler(s.authService)
	r.Handle("/api/admin/login", handlers.Classified(dev, ah.Login)).Methods("POST", "OPTIONS")

	th := handlers.NewTrendingHandler(s.trendingService, s.cfg.MaxUploadBytes)
	r.Handle("/api/trending/trenddata", handlers.Classified(dev, th.GetTrendData)).Methods("GET", "OPTIONS")
	r.Handle("/api/trending/add", auth(handlers.Classified(dev, th.AddTrending))).Methods("POST", "OPTIONS")
	r.Handle("/api/trending/delete/{name}", auth(handlers.Classified(dev, th.DeleteTrending))).Methods("DELETE", "OPTIONS")

	r.NotFoundHandler = handlers.NotFound()

	return r
}
