package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charting/services"
)

type AnalyticsController struct {
	svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{svc: svc}
}

// Recalculate rebuilds the snapshot for a (subject, template) pair. Options
// come in the request body; an empty body means defaults.
func (ac *AnalyticsController) Recalculate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var opts services.RecalculateOptions
		if c.Request.ContentLength > 0 {
			if err := c.BindJSON(&opts); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid options payload"})
				return
			}
		}

		snap, err := ac.svc.Recalculate(c.Request.Context(), c.Param("subjectId"), c.Param("templateId"), opts)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

func (ac *AnalyticsController) GetCached() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := ac.svc.GetCached(c.Request.Context(), c.Param("subjectId"), c.Param("templateId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}
