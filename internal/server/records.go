package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	recordsdomain "github.com/fizzbo19/dealercommand/internal/records/domain"
)

type saveRecordRequest struct {
	Email   string            `json:"email"`
	Payload map[string]string `json:"payload"`
}

func (s *Server) saveRecord(recordType recordsdomain.RecordType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req saveRecordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}

		record, persisted, err := s.recordsSvc.Save(c.Request.Context(), req.Email, recordType, req.Payload)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   persisted,
			"persisted": persisted,
			"id":        record.ID,
		})
	}
}

func (s *Server) ListRecords(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	recordType, err := recordsdomain.ParseRecordType(c.Query("type"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	list, err := s.recordsSvc.List(c.Request.Context(), email, recordType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": list})
}
