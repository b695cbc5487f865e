package content

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"paywall-backend/catalog"
	"paywall-backend/metrics"
	"paywall-backend/models"
	"paywall-backend/store"
	"paywall-backend/utils"
)

const maxListLimit = 100

type Handler struct {
	catalog  *catalog.Service
	uploader utils.ThumbnailUploader
}

// New wires the catalogue endpoints. uploader may be nil, thumbnails are then
// only accepted as URLs.
func New(svc *catalog.Service, uploader utils.ThumbnailUploader) *Handler {
	return &Handler{catalog: svc, uploader: uploader}
}

// CreateContent publie un nouveau contenu
// @Summary Create content
// @Description Publishes a content item for the creator owning walletAddress, creating the creator on first use
// @Tags content
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param title formData string true "Title" default(Exclusive Video)
// @Param description formData string false "Description"
// @Param price formData number true "Price, as a number or a decimal string" default(5.00)
// @Param currency formData string false "Currency" default(USDC)
// @Param type formData string true "ARTICLE, VIDEO or AUDIO" default(VIDEO)
// @Param contentUrl formData string false "Media URL for VIDEO and AUDIO"
// @Param body formData string false "Text for ARTICLE"
// @Param thumbnailUrl formData string false "Thumbnail URL"
// @Param thumbnail formData file false "Thumbnail image"
// @Param walletAddress formData string true "Creator wallet" default(0x1234567890abcdef1234567890abcdef12345678)
// @Success 201 {object} utils.Response{data=models.ContentItem}
// @Failure 400 {object} utils.Response "error: Invalid input"
// @Failure 500 {object} utils.Response "error: Error message"
// @Router /content [post]
func (h *Handler) CreateContent(c *gin.Context) {
	var req models.ContentCreate
	if !utils.ValidateRequestBody(c, &req) {
		return
	}

	file, err := c.FormFile("thumbnail")
	if err == nil && file != nil {
		if h.uploader == nil {
			utils.SendError(c, http.StatusBadRequest, "Thumbnail upload is not configured, provide thumbnailUrl instead")
			return
		}
		url, err := h.uploader.UploadThumbnail(c.Request.Context(), file)
		if err != nil {
			utils.LogError(err, "Error uploading thumbnail")
			utils.SendError(c, http.StatusBadRequest, "Error uploading thumbnail: "+err.Error())
			return
		}
		req.ThumbnailURL = url
	}

	item, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrWalletRequired),
			errors.Is(err, catalog.ErrTitleRequired),
			errors.Is(err, catalog.ErrInvalidPrice),
			errors.Is(err, utils.ErrInvalidWallet),
			errors.Is(err, models.ErrUnknownContentType):
			utils.SendError(c, http.StatusBadRequest, err.Error())
		default:
			utils.LogError(err, "Error creating content")
			utils.SendError(c, http.StatusInternalServerError, "Error creating content")
		}
		return
	}

	metrics.RecordContentCreated(string(item.Type))
	utils.LogSuccessWithContent(item.ID, "Content created by "+item.Creator.WalletAddress)
	utils.SendSuccess(c, http.StatusCreated, "Content created successfully", item)
}

// ListContent liste le catalogue
// @Summary List content
// @Description Public metadata of content items, newest first
// @Tags content
// @Produce json
// @Param type query string false "ARTICLE, VIDEO or AUDIO"
// @Param creator query string false "Creator wallet"
// @Param free query bool false "Only free items"
// @Param limit query int false "Maximum number of items"
// @Success 200 {object} utils.Response{data=[]models.ContentItem}
// @Failure 400 {object} utils.Response "error: Invalid filter"
// @Router /content [get]
func (h *Handler) ListContent(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}
	filter.CreatorWallet = c.Query("creator")
	h.list(c, filter)
}

// ListCreatorContent lists one creator's catalogue
// @Summary List a creator's content
// @Tags content
// @Produce json
// @Param wallet path string true "Creator wallet"
// @Param type query string false "ARTICLE, VIDEO or AUDIO"
// @Param free query bool false "Only free items"
// @Success 200 {object} utils.Response{data=[]models.ContentItem}
// @Failure 400 {object} utils.Response "error: Invalid wallet address"
// @Router /creators/{wallet}/content [get]
func (h *Handler) ListCreatorContent(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}
	filter.CreatorWallet = c.Param("wallet")
	h.list(c, filter)
}

func (h *Handler) list(c *gin.Context, filter store.ListFilter) {
	items, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidWallet) {
			utils.SendError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.LogError(err, "Error listing content")
		utils.SendError(c, http.StatusInternalServerError, "Error listing content")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Content retrieved successfully", items)
}

func parseFilter(c *gin.Context) (store.ListFilter, error) {
	var filter store.ListFilter
	if t := c.Query("type"); t != "" {
		contentType, err := models.ParseContentType(t)
		if err != nil {
			return filter, err
		}
		filter.Type = contentType
	}
	if free := c.Query("free"); free != "" {
		b, err := strconv.ParseBool(free)
		if err != nil {
			return filter, errors.New("free must be a boolean")
		}
		filter.FreeOnly = b
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			return filter, errors.New("limit must be a positive integer")
		}
		filter.Limit = min(n, maxListLimit)
	}
	return filter, nil
}

// GetContent returns an item's public metadata
// @Summary Get content metadata
// @Description Title, price and creator of an item. The gated payload is served by /access/{id}
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} utils.Response{data=models.ContentItem}
// @Failure 404 {object} utils.Response "error: Content not found"
// @Router /content/{id} [get]
func (h *Handler) GetContent(c *gin.Context) {
	item, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.SendError(c, http.StatusNotFound, "Content not found")
			return
		}
		utils.LogError(err, "Error fetching content")
		utils.SendError(c, http.StatusInternalServerError, "Error fetching content")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Content retrieved successfully", item)
}
