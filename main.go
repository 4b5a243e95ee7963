package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"cityfix-be/config"
	"cityfix-be/controllers"
	"cityfix-be/gateway"
	"cityfix-be/middlewares"
	"cityfix-be/observability"
	"cityfix-be/repositories"
	"cityfix-be/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDB(cfg.Mongo)
	if err != nil {
		logger.Fatal("connecting to MongoDB", zap.Error(err))
	}
	logger.Info("MongoDB connection established")

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = config.ConnectRedis(cfg.Redis)
		if err != nil {
			logger.Fatal("connecting to Redis", zap.Error(err))
		}
		logger.Info("Redis connection established")
	}
	rateLimit := middlewares.IssueRateLimiter(redisClient, cfg.Redis.IssueRateLimit)

	userRepo := repositories.NewUserRepository(db)
	issueRepo := repositories.NewIssueRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	authCtrl := controllers.NewAuthController(cfg.Auth.AccessTokenSecret)
	userCtrl := controllers.NewUserController(userRepo, logger)
	issueCtrl := controllers.NewIssueController(issueRepo, logger)
	paymentCtrl := controllers.NewPaymentController(
		paymentRepo, userRepo, issueRepo,
		gateway.NewStripeGateway(cfg.Stripe.SecretKey), logger,
	)
	statsCtrl := controllers.NewStatsController(userRepo, issueRepo, paymentRepo, logger)

	auth := middlewares.AuthMiddleware(cfg.Auth.AccessTokenSecret)
	staff := middlewares.RequireStaff(userRepo)
	admin := middlewares.RequireAdmin(userRepo)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.UserRoutes(r, auth, admin, authCtrl, userCtrl)
	routes.IssueRoutes(r, auth, staff, admin, rateLimit, issueCtrl)
	routes.PaymentRoutes(r, auth, admin, paymentCtrl, statsCtrl)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "CityFix Server is Running")
	})

	logger.Info("starting server", zap.String("port", cfg.App.Port))
	if err := r.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("starting server", zap.Error(err))
	}
}
