package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type usageRequest struct {
	Email  string `json:"email"`
	Amount int    `json:"amount"`
}

type emailRequest struct {
	Email string `json:"email"`
}

func (s *Server) GetDealershipStatus(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	view, err := s.entitlements.GetDealershipStatus(c.Request.Context(), email)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// EnsureDealershipStatus is the login hook: it creates the activity record
// with the configured default plan when the email is new, and refreshes the
// trial state otherwise.
func (s *Server) EnsureDealershipStatus(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	activity, err := s.entitlements.EnsureStatus(c.Request.Context(), req.Email, s.defaultPlan)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"status":      activity.Status,
		"plan":        activity.Plan,
		"expiry_date": activity.ExpiryDate,
		"usage_count": activity.UsageCount,
	})
}

func (s *Server) IncrementTrialUsage(c *gin.Context) {
	var req usageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Amount == 0 {
		req.Amount = 1
	}

	usage, err := s.entitlements.IncrementUsage(c.Request.Context(), req.Email, req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"usage_count": usage,
	})
}

func (s *Server) DecrementTrialUsage(c *gin.Context) {
	var req usageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Amount == 0 {
		req.Amount = 1
	}

	usage, err := s.entitlements.DecrementUsage(c.Request.Context(), req.Email, req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"usage_count": usage,
	})
}

func (s *Server) ResetTrial(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	activity, err := s.entitlements.ResetTrial(c.Request.Context(), req.Email)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"status":      activity.Status,
		"start_date":  activity.StartDate,
		"expiry_date": activity.ExpiryDate,
	})
}

func (s *Server) GetListingLimit(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	allowed, err := s.entitlements.CheckListingLimit(c.Request.Context(), email)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"can_create": allowed,
	})
}

func (s *Server) GetRemainingDays(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	days, err := s.entitlements.RemainingDays(c.Request.Context(), email)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"remaining_days": days,
	})
}

func (s *Server) CanUserLogin(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}
	planName := c.Query("plan")

	allowed, err := s.entitlements.CanUserLogin(c.Request.Context(), email, planName)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"can_login": allowed,
	})
}
