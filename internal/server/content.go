package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inventorydomain "github.com/fizzbo19/dealercommand/internal/inventory/domain"
)

type generateRequest struct {
	Email    string                        `json:"email"`
	Item     inventorydomain.InventoryItem `json:"item"`
	Platform string                        `json:"platform"`
	Style    string                        `json:"style"`
}

// GenerateListing consumes one unit of listing quota. The quota gate runs
// before the model call so a dealership over its limit never burns tokens.
func (s *Server) GenerateListing(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	allowed, err := s.entitlements.CheckListingLimit(c.Request.Context(), req.Email)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !allowed {
		AbortWithError(c, ErrForbidden)
		return
	}

	text, err := s.contentSvc.ListingDescription(c.Request.Context(), req.Item)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	usage, err := s.entitlements.IncrementUsage(c.Request.Context(), req.Email, 1)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"content":     text,
		"usage_count": usage,
	})
}

func (s *Server) GenerateCaption(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	text, err := s.contentSvc.SocialCaption(c.Request.Context(), req.Item, req.Platform)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"content": text,
	})
}

func (s *Server) GenerateScript(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	text, err := s.contentSvc.VideoScript(c.Request.Context(), req.Item, req.Style)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"content": text,
	})
}
