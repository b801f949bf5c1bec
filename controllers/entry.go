package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"charting/models"
	"charting/services"
)

type EntryController struct {
	svc *services.EntryService
}

func NewEntryController(svc *services.EntryService) *EntryController {
	return &EntryController{svc: svc}
}

func (ec *EntryController) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var entry models.ChartingEntry
		if err := c.BindJSON(&entry); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry payload"})
			return
		}
		if validationErr := validate.Struct(entry); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		created, err := ec.svc.Create(c.Request.Context(), &entry)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, created)
	}
}

func (ec *EntryController) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		entry, err := ec.svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

func (ec *EntryController) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch models.EntryUpdate
		if err := c.BindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch payload"})
			return
		}

		updated, err := ec.svc.Update(c.Request.Context(), c.Param("id"), patch)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func (ec *EntryController) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ec.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
	}
}

func (ec *EntryController) BySession() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := ec.svc.GetBySession(c.Request.Context(), c.Param("sessionId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

func (ec *EntryController) BySubject() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := ec.svc.GetBySubject(c.Request.Context(), c.Param("subjectId"), c.Query("template_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

func (ec *EntryController) GetAll() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if l := c.Query("limit"); l != "" {
			if n, err := strconv.Atoi(l); err == nil && n > 0 {
				limit = n
			}
		}
		entries, err := ec.svc.GetAll(c.Request.Context(), c.Query("template_id"), c.Query("subject_id"), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// ValidateResponses checks required-field presence without persisting;
// intended for pre-submission checks from the client.
func (ec *EntryController) ValidateResponses() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			FormTemplateID string               `json:"form_template_id" binding:"required"`
			Responses      models.FormResponses `json:"responses"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "form_template_id is required"})
			return
		}

		result, err := ec.svc.ValidateResponses(c.Request.Context(), body.FormTemplateID, body.Responses)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
