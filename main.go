package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"estate-api/config"
	"estate-api/consumers"
	"estate-api/controllers"
	"estate-api/domain"
	"estate-api/logger"
	"estate-api/middleware"
	"estate-api/publishers"
	"estate-api/repositories"
	"estate-api/services"
	"estate-api/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Setup("info", "json")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.Port).
		Str("store_backend", cfg.StoreBackend).
		Bool("cache_enabled", cfg.CacheEnabled).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// MongoDB: propiedades, agentes y consultas
	mongoHandle := repositories.NewMongoHandle(cfg.MongoURI, cfg.MongoDatabase)
	if err := mongoHandle.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to reach MongoDB")
	}
	if err := repositories.EnsurePropertyIndexes(ctx, mongoHandle); err != nil {
		log.Warn().Err(err).Msg("Failed to ensure property indexes")
	}
	propertyRepo := repositories.NewPropertyRepository(mongoHandle)
	agentRepo := repositories.NewAgentRepository(mongoHandle)
	leadRepo := repositories.NewLeadRepository(mongoHandle)

	// MySQL: cuentas del back-office
	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN()), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MySQL")
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate users table")
	}
	jwtManager := utils.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(repositories.NewUserRepository(db), jwtManager)
	if cfg.AdminUsername != "" {
		if err := userService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap admin")
		}
	}

	cache := repositories.NewNoopCache()
	if cfg.CacheEnabled {
		cache = repositories.NewCacheRepository(repositories.CacheOptions{
			MemcachedHost: cfg.MemcachedHost,
			LocalTTL:      cfg.CacheLocalTTL,
			SharedTTL:     cfg.CacheSharedTTL,
		})
	}

	var (
		searchStore repositories.PropertyStore = propertyRepo
		index       consumers.Indexer
	)
	if cfg.StoreBackend == config.BackendSolr {
		solr := repositories.NewSolrRepository(cfg.SolrURL)
		searchStore, index = solr, solr
		log.Info().Str("url", cfg.SolrURL).Msg("Serving property search from Solr")
	}

	// Las escrituras avisan por el broker si hay uno configurado; si no, el
	// handler corre en el mismo proceso.
	handler := consumers.NewPropertyEventHandler(cache, propertyRepo, index)
	var publisher publishers.Publisher = publishers.NewInProcessPublisher(handler)
	if cfg.RabbitMQURL != "" {
		rabbit, err := publishers.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.PropertyQueue)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create RabbitMQ publisher")
		}
		publisher = rabbit

		consumer, err := consumers.NewRabbitMQConsumer(cfg.RabbitMQURL, cfg.PropertyQueue, handler)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create RabbitMQ consumer")
		}
		defer consumer.Close()
		go func() {
			if err := consumer.Run(ctx); err != nil {
				log.Error().Err(err).Msg("RabbitMQ consumer stopped")
			}
		}()
	}
	defer publisher.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Janitor(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := controllers.NewRouter(controllers.Controllers{
		Search:   controllers.NewSearchController(services.NewSearchService(searchStore, cache)),
		Property: controllers.NewPropertyController(services.NewPropertyService(propertyRepo, publisher, cache)),
		Agent:    controllers.NewAgentController(services.NewAgentService(agentRepo, searchStore, cache)),
		Lead:     controllers.NewLeadController(services.NewLeadService(leadRepo)),
		User:     controllers.NewUserController(userService),
		Health:   controllers.NewHealthController(mongoHandle),
	}, jwtManager, limiter)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: middleware.CORS(cfg.CORSAllowedOrigins, router),
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := mongoHandle.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("MongoDB disconnect failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("Shutdown complete")
}
