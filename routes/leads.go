package routes

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"lead-rag-platform/internal/config"
	"lead-rag-platform/middleware"
	"lead-rag-platform/services"
	"lead-rag-platform/utils"

	"github.com/gin-gonic/gin"
)

type updateDataRequest struct {
	Company string `json:"company" binding:"required"`
}

// SetupLeadRoutes wires the data-management endpoints. All of them mutate or
// expose a company's index, so they sit behind the admin secret.
func SetupLeadRoutes(router *gin.Engine, cfg *config.Config, leadSvc *services.LeadService) {
	group := router.Group("/leads")
	group.Use(middleware.AdminAuth(cfg.AdminSecret))

	// Full rebuild of a company's chunk index.
	group.POST("/update-data", func(c *gin.Context) {
		var req updateDataRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "company is required", gin.H{"error": err.Error()})
			return
		}

		result, err := leadSvc.Reindex(c.Request.Context(), req.Company)
		if err != nil {
			utils.RespondWithInternalError(c, "reindex failed", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, result)
	})

	// Dry run: flatten and group without embedding or writing.
	group.POST("/process", func(c *gin.Context) {
		var req updateDataRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "company is required", gin.H{"error": err.Error()})
			return
		}

		result, err := leadSvc.ProcessOnly(c.Request.Context(), req.Company)
		if err != nil {
			utils.RespondWithInternalError(c, "processing failed", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, result)
	})

	group.GET("/export/:company", func(c *gin.Context) {
		company := c.Param("company")

		workbook, err := leadSvc.ExportWorkbook(c.Request.Context(), company)
		if err != nil {
			utils.RespondWithInternalError(c, "export failed", gin.H{"error": err.Error()})
			return
		}

		var buf bytes.Buffer
		if err := workbook.Write(&buf); err != nil {
			utils.RespondWithInternalError(c, "failed to write workbook", gin.H{"error": err.Error()})
			return
		}

		filename := fmt.Sprintf("leads_%s_%s.xlsx", company, time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	})

	router.GET("/companies", middleware.AdminAuth(cfg.AdminSecret), func(c *gin.Context) {
		companies, err := leadSvc.Companies(c.Request.Context())
		if err != nil {
			utils.RespondWithInternalError(c, "failed to list companies", gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"companies": companies})
	})
}
