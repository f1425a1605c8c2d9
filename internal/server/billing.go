package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	billingdomain "github.com/fizzbo19/dealercommand/internal/billing/domain"
	entitlementdomain "github.com/fizzbo19/dealercommand/internal/entitlement/domain"
)

type checkoutRequest struct {
	Email string `json:"email"`
	Plan  string `json:"plan"`
}

type applyCheckoutRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) CreateCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	newPlan, err := entitlementdomain.ParsePlan(req.Plan)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	session, err := s.billingSvc.CreateCheckout(c.Request.Context(), billingdomain.CreateCheckoutRequest{
		Email: req.Email,
		Plan:  newPlan,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"session_id":   session.ID,
		"checkout_url": session.URL,
	})
}

func (s *Server) GetCheckout(c *gin.Context) {
	session, err := s.billingSvc.GetCheckout(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (s *Server) ApplyCheckout(c *gin.Context) {
	var req applyCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	session, err := s.billingSvc.FinalizeCheckout(c.Request.Context(), req.SessionID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"email":   session.Email,
		"plan":    session.Plan,
	})
}
