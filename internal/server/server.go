package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/careerlens/backend/config"
	"github.com/careerlens/backend/internal/api"
	"github.com/careerlens/backend/internal/inference"
	"github.com/careerlens/backend/internal/middleware"
	"github.com/careerlens/backend/internal/service"
)

// Server owns the HTTP engine and its wired handlers.
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New wires services, middleware and routes. Every dependency is passed in
// explicitly; nothing package-global survives startup.
func New(cfg *config.Config, db *gorm.DB, predictor *inference.Predictor, redisClient *redis.Client) *Server {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Cache-Control"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))
	router.Use(noCache())

	tokens := service.NewTokenService(cfg.JWTSecret)
	auth := service.NewAuthService(db)
	profiles := service.NewProfileService(db)
	history := service.NewHistoryService(db)

	authHandler := api.NewAuthHandler(auth, tokens)
	profileHandler := api.NewProfileHandler(profiles)
	predictHandler := api.NewPredictHandler(predictor, history)
	historyHandler := api.NewHistoryHandler(history)
	adminHandler := api.NewAdminHandler(auth, history)
	metaHandler := api.NewMetaHandler(cfg.ModelDir)

	loginLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     10,
		KeyPrefix: "ratelimit:auth",
	})
	predictLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     30,
		KeyPrefix: "ratelimit:predict",
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "model_loaded": predictor.Available()})
	})

	public := router.Group("", loginLimiter.Middleware())
	authHandler.RegisterRoutes(public)
	metaHandler.RegisterRoutes(&router.RouterGroup)

	authed := router.Group("", middleware.Auth(tokens))
	profileHandler.RegisterRoutes(authed)
	historyHandler.RegisterRoutes(authed)

	predict := authed.Group("", predictLimiter.Middleware())
	predictHandler.RegisterRoutes(predict)

	admin := router.Group("", middleware.Auth(tokens), middleware.AdminOnly())
	adminHandler.RegisterRoutes(admin)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}
}

// Router exposes the engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server until Shutdown or a listener error.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// noCache stamps every response with no-store headers; prediction and
// profile responses are per-user and must never be cached by proxies.
func noCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
