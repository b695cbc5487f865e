package access

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	accesssvc "paywall-backend/access"
	"paywall-backend/grant"
	"paywall-backend/metrics"
	"paywall-backend/middleware"
	"paywall-backend/models"
	"paywall-backend/payment"
	"paywall-backend/store"
	"paywall-backend/utils"
)

const (
	HeaderPaymentAddress  = "X-Payment-Address"
	HeaderPaymentAmount   = "X-Payment-Amount"
	HeaderPaymentCurrency = "X-Payment-Currency"
)

// CheckoutCreator opens a card payment for an item.
type CheckoutCreator interface {
	Create(ctx context.Context, item models.ContentItem) (payment.Checkout, error)
}

// ContentGetter loads an item with its creator.
type ContentGetter interface {
	GetContent(ctx context.Context, id string) (models.ContentItem, error)
}

type Handler struct {
	service  *accesssvc.Service
	cookies  grant.Cookies
	content  ContentGetter
	checkout CheckoutCreator
}

// New wires the access endpoints. checkout may be nil when card payments are
// not configured.
func New(service *accesssvc.Service, cookies grant.Cookies, content ContentGetter, checkout CheckoutCreator) *Handler {
	return &Handler{service: service, cookies: cookies, content: content, checkout: checkout}
}

// GetAccess returns the gated payload or the payment instructions
// @Summary Access gated content
// @Description Returns the payload when the item is free or the access cookie holds a valid grant, 402 with payment instructions otherwise
// @Tags access
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} models.AccessPayload
// @Failure 402 {object} models.PaymentRequired
// @Failure 404 {object} map[string]string "error: Content not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /access/{id} [get]
func (h *Handler) GetAccess(c *gin.Context) {
	contentID := c.Param("id")

	result, err := h.service.GetAccess(c.Request.Context(), contentID, c.GetString(middleware.GrantTokenKey))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.RecordAccessCheck(metrics.ResultNotFound)
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		metrics.RecordAccessCheck(metrics.ResultError)
		utils.LogErrorWithContent(contentID, err, "Error checking access")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !result.Unlocked() {
		metrics.RecordAccessCheck(metrics.ResultPaymentRequired)
		pr := result.PaymentRequired
		c.Header(HeaderPaymentAddress, pr.PayToAddress)
		c.Header(HeaderPaymentAmount, pr.Amount)
		c.Header(HeaderPaymentCurrency, pr.Currency)
		c.JSON(http.StatusPaymentRequired, pr)
		return
	}

	metrics.RecordAccessCheck(metrics.ResultUnlocked)
	c.JSON(http.StatusOK, result.Payload)
}

// IssueGrant redeems a payment proof for an access cookie
// @Summary Grant access after payment
// @Description Verifies the payment proof and sets the access-{id} cookie for 7 days
// @Tags access
// @Accept json
// @Produce json
// @Param id path string true "Content ID"
// @Param request body models.GrantRequest true "Payment proof"
// @Success 200 {object} map[string]bool "success: true"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 403 {object} map[string]string "error: Payment not verified"
// @Failure 404 {object} map[string]string "error: Content not found"
// @Failure 429 {object} map[string]string "error: Too many requests"
// @Router /access/{id}/grant [post]
func (h *Handler) IssueGrant(c *gin.Context) {
	contentID := c.Param("id")

	var req models.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	g, err := h.service.IssueGrant(c.Request.Context(), contentID, req.Proof)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrUnverifiedProof):
			metrics.RecordGrant(false)
			utils.LogWarn("Rejected payment proof for content " + contentID + ": " + err.Error())
			c.JSON(http.StatusForbidden, gin.H{"error": "Payment not verified"})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		default:
			utils.LogErrorWithContent(contentID, err, "Error issuing grant")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	metrics.RecordGrant(true)
	http.SetCookie(c.Writer, h.cookies.Cookie(g))
	utils.LogSuccessWithContent(contentID, "Access granted")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Checkout opens a Stripe payment for the item
// @Summary Start a card payment
// @Description Creates a Stripe PaymentIntent whose id is redeemed as the proof on the grant endpoint
// @Tags access
// @Produce json
// @Param id path string true "Content ID"
// @Success 201 {object} payment.Checkout
// @Failure 400 {object} map[string]string "error: Content is free"
// @Failure 404 {object} map[string]string "error: Content not found"
// @Failure 501 {object} map[string]string "error: Card payments are not configured"
// @Failure 502 {object} map[string]string "error: Error message"
// @Router /access/{id}/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	if h.checkout == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Card payments are not configured"})
		return
	}
	contentID := c.Param("id")

	item, err := h.content.GetContent(c.Request.Context(), contentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		utils.LogErrorWithContent(contentID, err, "Error loading content for checkout")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if item.IsFree() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is free"})
		return
	}

	checkout, err := h.checkout.Create(c.Request.Context(), item)
	if err != nil {
		utils.LogErrorWithContent(contentID, err, "Error creating checkout")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error creating payment: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, checkout)
}
