package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"pawsitive-coach/internal/config"
	"pawsitive-coach/internal/db"
	"pawsitive-coach/internal/email"
	apihttp "pawsitive-coach/internal/http"
	"pawsitive-coach/internal/llm"
	"pawsitive-coach/internal/repository"
	"pawsitive-coach/internal/scheduler"
	"pawsitive-coach/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	animalRepo := repository.NewPgAnimalRepository(pool)
	prefsRepo := repository.NewPgPreferencesRepository(pool)
	exerciseRepo := repository.NewPgExerciseRepository(pool)
	breedRepo := repository.NewPgBreedRepository(pool)
	planRepo := repository.NewPgPlanRepository(pool)
	articleRepo := repository.NewPgArticleRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMFallbackModel, zap.NewStdLog(logger)).
		WithAttribution(cfg.LLMReferer, cfg.LLMAppTitle)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		otpLimiter  service.RateLimiter
		planLimiter service.RateLimiter
		tokenStore  service.RefreshTokenStore
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			otpLimiter = service.NewRedisRateLimiter(redisClient, "otp:rl:", 10*time.Minute, 3)
			planLimiter = service.NewRedisRateLimiter(redisClient, "plan:rl:", time.Hour, 10)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	userSvc := service.NewUserService(logger, userRepo, emailSender, otpLimiter)
	planSvc := service.NewPlanService(logger, animalRepo, prefsRepo, exerciseRepo, breedRepo, planRepo, userRepo, emailSender, planLimiter)
	messageSvc := service.NewMessageService(messageRepo)
	contextSvc := service.NewBasicContextService(messageRepo)
	extractionSvc := service.NewExtractionService(llmClient, animalRepo, logger)
	chatSvc := service.NewChatService(llmClient, llmClient, messageSvc, contextSvc, animalRepo, articleRepo, planSvc, extractionSvc, logger)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	animalHandler := apihttp.NewAnimalHandler(logger, animalRepo, prefsRepo)
	planHandler := apihttp.NewPlanHandler(logger, planSvc)
	chatHandler := apihttp.NewChatHandler(logger, sessionRepo, chatSvc)
	router := apihttp.NewRouter(logger, jwtSvc, userHandler, animalHandler, planHandler, chatHandler)

	reminders := scheduler.NewReminderScheduler(logger, planRepo, animalRepo, userRepo, emailSender)
	if err := reminders.Start(cfg.ReminderHour); err != nil {
		logger.Warn("reminder scheduler start failed", zap.Error(err))
	}
	defer reminders.Stop()

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
