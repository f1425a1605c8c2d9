package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	profiledomain "github.com/fizzbo19/dealercommand/internal/profile/domain"
)

func (s *Server) GetDealershipProfile(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	profile, err := s.profileSvc.Get(c.Request.Context(), email)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (s *Server) SaveDealershipProfile(c *gin.Context) {
	var req profiledomain.DealershipProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	persisted, err := s.profileSvc.Save(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   persisted,
		"persisted": persisted,
	})
}

// requireEmail pulls the email query parameter, aborting with a validation
// error when it is missing.
func requireEmail(c *gin.Context) (string, bool) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		AbortWithError(c, newValidationError("email", "invalid_email", "email is required"))
		return "", false
	}
	return email, true
}
