package handlers

import (
	"context"
	"net/http"

	"legalease-backend/models"

	"github.com/gin-gonic/gin"
)

// analyzer runs one document analysis. Implemented by
// service.AnalysisService.
type analyzer interface {
	Analyze(ctx context.Context, documentID string, analysisType models.AnalysisType, userQuestion string) models.AnalysisResult
}

// AnalysisHandler handles HTTP requests for document analysis
type AnalysisHandler struct {
	analysis analyzer
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysis analyzer) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

// AnalyzeDocument returns a gin handler running one fixed analysis type
// against the document in the path. Used for every analysis route except
// chat.
func (h *AnalysisHandler) AnalyzeDocument(analysisType models.AnalysisType) gin.HandlerFunc {
	return func(c *gin.Context) {
		documentID := c.Param("id")
		if documentID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_DOCUMENT_ID",
					"message": "Document ID is required",
				},
			})
			return
		}

		result := h.analysis.Analyze(c.Request.Context(), documentID, analysisType, "")
		c.JSON(http.StatusOK, gin.H{
			"success": result.Error == "",
			"data":    result,
		})
	}
}

// ChatRequest is the body of POST /api/documents/chat
type ChatRequest struct {
	DocumentID string `json:"document_id" binding:"required"`
	Question   string `json:"question" binding:"required"`
}

// Chat handles POST /api/documents/chat
func (h *AnalysisHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "document_id and question are required",
			},
		})
		return
	}

	result := h.analysis.Analyze(c.Request.Context(), req.DocumentID, models.AnalysisChat, req.Question)
	c.JSON(http.StatusOK, gin.H{
		"success": result.Error == "",
		"data":    result,
	})
}
