package routes

import (
	"net/http"

	"lead-rag-platform/services"
	"lead-rag-platform/utils"

	"github.com/gin-gonic/gin"
)

type askRequest struct {
	Question string            `json:"question" binding:"required"`
	Company  string            `json:"company" binding:"required"`
	Filters  map[string]string `json:"filters,omitempty"`
}

// SetupAskRoutes wires the question-answering endpoints.
func SetupAskRoutes(router *gin.Engine, answerSvc *services.AnswerService, searchSvc *services.SearchService) {
	// Full RAG answer with sources.
	router.POST("/ask", func(c *gin.Context) {
		var req askRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "question and company are required", gin.H{"error": err.Error()})
			return
		}

		answer, err := answerSvc.Ask(c.Request.Context(), req.Company, req.Question, req.Filters)
		if err != nil {
			utils.RespondWithInternalError(c, "failed to answer question", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, answer)
	})

	// Same pipeline as /ask but the response carries only the answer text.
	router.POST("/chat", func(c *gin.Context) {
		var req askRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "question and company are required", gin.H{"error": err.Error()})
			return
		}

		answer, err := answerSvc.Ask(c.Request.Context(), req.Company, req.Question, req.Filters)
		if err != nil {
			utils.RespondWithInternalError(c, "failed to answer question", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"answer": answer.Answer})
	})

	// Retrieval only, no generation. Useful for debugging index quality.
	router.POST("/search", func(c *gin.Context) {
		var req askRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "question and company are required", gin.H{"error": err.Error()})
			return
		}

		hits, err := searchSvc.Search(c.Request.Context(), req.Company, req.Question, req.Filters)
		if err != nil {
			utils.RespondWithInternalError(c, "search failed", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"company": req.Company, "results": hits})
	})
}
