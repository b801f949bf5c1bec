package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charting/helpers"
	"charting/services"
)

func getClaims(c *gin.Context) *helpers.Claims {
	claimsVal, ok := c.Get("claims")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil
	}
	claims, ok := claimsVal.(*helpers.Claims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid claims"})
		return nil
	}
	return claims
}

func getUserID(c *gin.Context) string {
	claims := getClaims(c)
	if claims == nil {
		return ""
	}
	return claims.UserID
}

// respondError maps service errors to HTTP responses. Validation and domain
// errors carry their code and full detail; anything else is an
// infrastructure fault and is reported opaquely.
func respondError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{
			"code":     services.CodeValidation,
			"errors":   e.Result.Errors,
			"warnings": e.Result.Warnings,
		})
	case *services.DomainError:
		status := http.StatusBadRequest
		switch e.Code {
		case services.CodeNotFound:
			status = http.StatusNotFound
		case services.CodeTemplateInUse, services.CodeTemplateArchived:
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"code": e.Code, "error": e.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":  services.CodePersistence,
			"error": "internal error",
		})
	}
}
