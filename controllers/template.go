package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charting/models"
	"charting/services"
)

type TemplateController struct {
	svc *services.TemplateService
}

func NewTemplateController(svc *services.TemplateService) *TemplateController {
	return &TemplateController{svc: svc}
}

func (tc *TemplateController) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var tpl models.FormTemplate
		if err := c.BindJSON(&tpl); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template payload"})
			return
		}
		tpl.CreatedBy = userID

		created, err := tc.svc.Create(c.Request.Context(), &tpl)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, created)
	}
}

func (tc *TemplateController) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		tpl, err := tc.svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tpl)
	}
}

func (tc *TemplateController) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		templates, err := tc.svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, templates)
	}
}

func (tc *TemplateController) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch models.TemplateUpdate
		if err := c.BindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch payload"})
			return
		}
		force := c.Query("force_new_version") == "true"

		updated, err := tc.svc.Update(c.Request.Context(), c.Param("id"), patch, force)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func (tc *TemplateController) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := tc.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
	}
}

func (tc *TemplateController) Archive() gin.HandlerFunc {
	return func(c *gin.Context) {
		tpl, err := tc.svc.Archive(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tpl)
	}
}

func (tc *TemplateController) Restore() gin.HandlerFunc {
	return func(c *gin.Context) {
		tpl, err := tc.svc.Restore(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tpl)
	}
}

func (tc *TemplateController) Clone() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		tpl, err := tc.svc.Clone(c.Request.Context(), c.Param("id"), body.Name, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tpl)
	}
}

func (tc *TemplateController) Activate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tpl, err := tc.svc.Activate(c.Request.Context(), c.Param("id"), c.Query("sport"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tpl)
	}
}

func (tc *TemplateController) GetActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		sport := c.Query("sport")
		if sport == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sport query parameter is required"})
			return
		}
		tpl, err := tc.svc.GetActive(c.Request.Context(), sport)
		if err != nil {
			respondError(c, err)
			return
		}
		if tpl == nil {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusOK, tpl)
	}
}

// Validate runs the structural checks without persisting anything; useful
// for pre-flight checks from the form builder UI.
func (tc *TemplateController) Validate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tpl models.FormTemplate
		if err := c.BindJSON(&tpl); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template payload"})
			return
		}
		c.JSON(http.StatusOK, tc.svc.Validate(&tpl))
	}
}

func (tc *TemplateController) Stats() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := tc.svc.GetStats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
