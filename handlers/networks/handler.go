package networks

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paywall-backend/models"
	"paywall-backend/payment"
	"paywall-backend/utils"
)

type Handler struct {
	networks  []models.Network
	projectID string
}

func New(merchants map[payment.Network]string, projectID string) *Handler {
	return &Handler{networks: payment.Networks(merchants), projectID: projectID}
}

// ListNetworks lists the payment networks buyers can pay on
// @Summary Payment networks
// @Description Supported networks with the merchant address configured for each
// @Tags payment
// @Produce json
// @Success 200 {object} utils.Response{data=[]models.Network}
// @Router /networks [get]
func (h *Handler) ListNetworks(c *gin.Context) {
	utils.SendSuccess(c, http.StatusOK, "Networks retrieved successfully", gin.H{
		"projectId": h.projectID,
		"default":   string(payment.DefaultNetwork),
		"networks":  h.networks,
	})
}
