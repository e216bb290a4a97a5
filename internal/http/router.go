package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pawsitive-coach/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	userH *UserHandler,
	animalH *AnimalHandler,
	planH *PlanHandler,
	chatH *ChatHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	users := r.Group("/users")
	users.POST("", userH.CreateUser)

	auth := r.Group("/auth")
	auth.POST("/otp/request", userH.RequestOTP)
	auth.POST("/otp/verify", userH.VerifyOTP)
	auth.POST("/login", userH.Login)
	auth.POST("/refresh", userH.RefreshToken)
	auth.POST("/logout", userH.Logout)

	protected := r.Group("")
	protected.Use(JWTAuthMiddleware(jwtSvc))

	protected.POST("/animals", animalH.CreateAnimal)
	protected.GET("/animals", animalH.ListAnimals)
	protected.GET("/animals/:id", animalH.GetAnimal)
	protected.PUT("/animals/:id", animalH.UpdateAnimal)

	protected.PUT("/preferences", animalH.UpsertPreferences)
	protected.GET("/preferences", animalH.GetPreferences)

	protected.POST("/animals/:id/plans", planH.GeneratePlan)
	protected.GET("/animals/:id/plans", planH.ListPlans)
	protected.GET("/plans/:id", planH.GetPlan)
	protected.POST("/plans/:id/progress", planH.AdvanceProgress)

	protected.POST("/session", chatH.CreateSession)
	protected.POST("/message", chatH.PostMessage)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
