package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"paywall-backend/grant"
	accessHandler "paywall-backend/handlers/access"
	contentHandler "paywall-backend/handlers/content"
	networksHandler "paywall-backend/handlers/networks"
	"paywall-backend/handlers/ping"
	"paywall-backend/middleware"
	"paywall-backend/utils"
)

// Handlers regroupe tout ce que le routeur monte
type Handlers struct {
	Access   *accessHandler.Handler
	Content  *contentHandler.Handler
	Networks *networksHandler.Handler
	Ping     *ping.Handler

	Cookies      grant.Cookies
	GrantLimiter *middleware.RateLimiter
	CORSOrigins  []string
}

func SetupRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithWriter(utils.LogWriter()), gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     h.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", accessHandler.HeaderPaymentAddress, accessHandler.HeaderPaymentAmount, accessHandler.HeaderPaymentCurrency},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Routes publiques
	HealthRoutes(r, h)
	AccessRoutes(r, h)
	ContentRoutes(r, h)

	return r
}
