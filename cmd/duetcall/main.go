package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/omar-p/duet-call/config"
	"github.com/omar-p/duet-call/internal/admission"
	"github.com/omar-p/duet-call/internal/deepl"
	"github.com/omar-p/duet-call/internal/handlers"
	rediscache "github.com/omar-p/duet-call/internal/redis"
	"github.com/omar-p/duet-call/internal/relay"
	"github.com/omar-p/duet-call/internal/translate"
)

func main() {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.Environment)
	slog.SetDefault(logger)

	// Optional translation cache.
	var cache translate.Cache
	if cfg.Redis.Addr != "" {
		c, err := rediscache.Connect(cfg.Redis, logger)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer c.Close()
		logger.Info("translation cache enabled", "addr", cfg.Redis.Addr)
		cache = c
	}

	terms := cfg.Protected.Terms
	if len(terms) == 0 {
		terms = translate.DefaultProtectedTerms
	}
	protector, err := translate.NewProtector(terms)
	if err != nil {
		log.Fatalf("Failed to build protected-term matcher: %v", err)
	}

	provider := deepl.NewClient(cfg.DeepL.APIURL, cfg.DeepL.AuthKey)
	pipeline := translate.NewPipeline(provider, protector, cache, logger)

	roomService := relay.NewRoomService(cfg.Relay.Endpoint(), cfg.Relay.APIKey, cfg.Relay.APISecret)
	controller := admission.NewController(cfg.Relay, cfg.Roles, roomService, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(handlers.OriginFilter(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/join", handlers.Join(controller, logger))
		apiGroup.POST("/translate", handlers.Translate(pipeline, roomService, cfg.DeepL, cfg.Relay, logger))
		apiGroup.GET("/rooms/:room/seats", handlers.Seats(roomService, cfg.Relay, logger))
	}

	logger.Info("starting duet-call server", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func newLogger(environment string) *slog.Logger {
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
