package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/metrics"
	"shareit/internal/middleware"
	"shareit/internal/modules/booking"
	"shareit/internal/modules/item"
	"shareit/internal/modules/request"
	"shareit/internal/modules/user"
	jwtsvc "shareit/internal/pkg/jwt"
	"shareit/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var logger *zap.Logger
	if cfg.AppEnv == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	metrics.Register()

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	userService := user.NewService(userRepo, logger)
	userHandler := user.NewHandler(userService)

	itemService := item.NewService(itemRepo, userRepo, bookingRepo, commentRepo, requestRepo, logger)
	itemHandler := item.NewHandler(itemService)

	bookingService := booking.NewService(bookingRepo, userRepo, itemRepo, logger)
	bookingHandler := booking.NewHandler(bookingService)

	requestService := request.NewService(requestRepo, userRepo, itemRepo, logger)
	requestHandler := request.NewHandler(requestService)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(metrics.HTTPMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		// user management does not require an identity
		userHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Identity(j))
		{
			itemHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			requestHandler.RegisterRoutes(protected)
		}
	}

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
