package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/contentforge/contentforge/handlers"
	"github.com/contentforge/contentforge/internal/config"
	"github.com/contentforge/contentforge/internal/content/repository"
	"github.com/contentforge/contentforge/internal/content/service"
	"github.com/contentforge/contentforge/internal/database"
	"github.com/contentforge/contentforge/internal/generator"
	"github.com/contentforge/contentforge/internal/oidc"
	"github.com/contentforge/contentforge/pkg/logger"
	"github.com/contentforge/contentforge/pkg/metrics"
	"github.com/contentforge/contentforge/pkg/middleware"
)

var startTime = time.Now()

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v generator=%s", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Generator.Mode)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Cors())
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.Metrics())

	repo, backend := selectRepository(cfg)
	svc := service.New(repo)

	var gen generator.Generator
	switch cfg.Generator.Mode {
	case config.GeneratorModeOpenAI:
		gen = generator.NewOpenAIGenerator(generator.CompletionConfig{
			BaseURL:     cfg.Generator.BaseURL,
			APIKey:      cfg.Generator.APIKey,
			Model:       cfg.Generator.Model,
			MaxTokens:   cfg.Generator.MaxTokens,
			Temperature: cfg.Generator.Temperature,
		})
	default:
		gen = generator.NewTemplateGenerator()
	}

	verifier := selectVerifier(cfg)

	h := handlers.NewContentHandler(svc, gen, cfg.Generator.Mode)
	h.Register(r, middleware.Identity(verifier))
	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness reports the selected backend and identity wiring
	r.GET("/ready", func(c *gin.Context) {
		deps := gin.H{
			"storage":   backend,
			"identity":  verifier != nil,
			"generator": cfg.Generator.Mode,
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting content service on %s (storage=%s)", addr, backend)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

// selectRepository picks the record-store backend: explicit STORE_BACKEND
// when set, otherwise Mongo when configured, then Redis, then memory.
func selectRepository(cfg *config.Config) (repository.Repository, string) {
	backend := cfg.Store.Backend
	if backend == "" {
		switch {
		case cfg.MongoDB.URI != "":
			backend = "mongo"
		case cfg.Redis.Host != "":
			backend = "redis"
		default:
			backend = "memory"
		}
	}

	switch backend {
	case "mongo":
		if col := connectMongoCollection(cfg); col != nil {
			return repository.NewMongoRepo(col), "mongo"
		}
		logger.Warnf("falling back to memory-backed store")
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err == nil {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
			return repository.NewRedisRepo(client), "redis"
		}
		logger.Warnf("failed to connect to Redis (%s:%s), falling back to memory-backed store", cfg.Redis.Host, cfg.Redis.Port)
	}
	return repository.NewMemoryRepo(), "memory"
}

// connectMongoCollection retries with backoff to tolerate startup races.
func connectMongoCollection(cfg *config.Config) *mongo.Collection {
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err = database.ConnectMongo(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err == nil {
			return client.Database(cfg.MongoDB.Database).Collection(cfg.Store.Table)
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, err)
	return nil
}

// selectVerifier wires identity: OIDC discovery when an issuer is
// configured, local HS256 when only a shared secret is, anonymous
// callers otherwise.
func selectVerifier(cfg *config.Config) middleware.Verifier {
	if cfg.Identity.IssuerURL != "" {
		ver, err := oidc.NewVerifier(context.Background(), cfg.Identity.IssuerURL, cfg.Identity.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
			return nil
		}
		return ver
	}
	if cfg.Identity.JWTSecret != "" {
		return oidc.NewLocalVerifier(cfg.Identity.JWTSecret)
	}
	logger.Warnf("no identity verifier configured; all callers are anonymous")
	return nil
}
