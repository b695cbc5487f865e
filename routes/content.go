package routes

import (
	"github.com/gin-gonic/gin"
)

func ContentRoutes(r *gin.Engine, h Handlers) {
	r.GET("/content", h.Content.ListContent)
	r.GET("/content/:id", h.Content.GetContent)
	r.POST("/content", h.Content.CreateContent)

	// Contenus d'un créateur
	r.GET("/creators/:wallet/content", h.Content.ListCreatorContent)
}
