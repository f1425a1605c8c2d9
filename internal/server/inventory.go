package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inventorydomain "github.com/fizzbo19/dealercommand/internal/inventory/domain"
)

func (s *Server) ListInventory(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	items, err := s.inventorySvc.List(c.Request.Context(), email)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) UpsertInventory(c *gin.Context) {
	var req inventorydomain.InventoryItem
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, persisted, err := s.inventorySvc.Upsert(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   persisted,
		"persisted": persisted,
		"item":      item,
	})
}
