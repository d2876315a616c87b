package handlers

import (
	"net/http"

	"url-shortener-api/internal/apperror"
	"url-shortener-api/internal/models"
	"url-shortener-api/internal/realtime"
	"url-shortener-api/internal/response"
	"url-shortener-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateLinkRequest represents the request payload for shortening a URL
type CreateLinkRequest struct {
	URL string `json:"url" binding:"required"`
}

// LinkResponse is the public JSON shape of a link
type LinkResponse = models.LinkView

// LinkHandler serves the link endpoints.
type LinkHandler struct {
	svc     *service.LinkService
	hub     *realtime.Hub
	baseURL string
	log     *logrus.Entry
}

func NewLinkHandler(svc *service.LinkService, hub *realtime.Hub, baseURL string, logger *logrus.Logger) *LinkHandler {
	return &LinkHandler{
		svc:     svc,
		hub:     hub,
		baseURL: baseURL,
		log:     logger.WithField("component", "link_handler"),
	}
}

func (h *LinkHandler) toResponse(link models.Link) LinkResponse {
	return link.View(h.baseURL)
}

// CreateLink handles POST /api/links
func (h *LinkHandler) CreateLink(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.InvalidInput("URL is required"))
		return
	}

	link, err := h.svc.Create(c.Request.Context(), req.URL)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.hub != nil {
		if err := h.hub.PublishLinkCreated(h.toResponse(link)); err != nil {
			h.log.WithError(err).Warn("Failed to publish link event")
		}
	}

	response.Success(c, http.StatusCreated, h.toResponse(link))
}

// ResolveLink handles GET /:shortCode by redirecting to the original URL
func (h *LinkHandler) ResolveLink(c *gin.Context) {
	link, err := h.svc.Resolve(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusMovedPermanently, link.OriginalURL)
}

// GetLink handles GET /api/links/:id
func (h *LinkHandler) GetLink(c *gin.Context) {
	link, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.toResponse(link))
}

// ListLinks handles GET /api/links
func (h *LinkHandler) ListLinks(c *gin.Context) {
	links, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]LinkResponse, 0, len(links))
	for _, l := range links {
		resp = append(resp, h.toResponse(l))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resp,
		"count":   len(resp),
	})
}

// Health handles GET /health
func (h *LinkHandler) Health(c *gin.Context) {
	byCode, byURL := h.svc.CacheStats()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "URL shortener API is running",
		"cache": gin.H{
			"byShortCode": byCode,
			"byUrl":       byURL,
		},
	})
}

// NotFound answers unknown routes with the standard error envelope
func NotFound(c *gin.Context) {
	response.Error(c, apperror.RouteNotFound())
}
