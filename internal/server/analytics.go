package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetPerformanceDashboard(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	summary := s.analyticsSvc.DealerDashboard(c.Request.Context(), email)
	c.JSON(http.StatusOK, summary)
}
