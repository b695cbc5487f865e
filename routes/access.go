package routes

import (
	"github.com/gin-gonic/gin"

	"paywall-backend/middleware"
)

func AccessRoutes(r *gin.Engine, h Handlers) {
	accessRoutes := r.Group("/access/:id")
	accessRoutes.Use(middleware.GrantToken(h.Cookies))
	{
		accessRoutes.GET("", h.Access.GetAccess)
		// Routes de paiement limitées en débit
		accessRoutes.POST("/grant", middleware.RateLimit(h.GrantLimiter), h.Access.IssueGrant)
		accessRoutes.POST("/checkout", middleware.RateLimit(h.GrantLimiter), h.Access.Checkout)
	}

	r.GET("/networks", h.Networks.ListNetworks)
}
