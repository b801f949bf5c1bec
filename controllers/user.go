package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"charting/helpers"
	"charting/models"
	"charting/repositories"
)

var validate = validator.New()

// UserController is the identity collaborator: it issues the verified
// creator/subject ids the charting core consumes but never authenticates.
type UserController struct {
	users repositories.UserRepository
}

func NewUserController(users repositories.UserRepository) *UserController {
	return &UserController{users: users}
}

func (uc *UserController) Signup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User

		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if validationErr := validate.Struct(user); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		count, err := uc.users.CountByEmail(c.Request.Context(), *user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}

		// Force default role; admins are promoted out of band.
		role := "COACH"
		user.Role = &role

		user.Password = helpers.HashPassword(user.Password)
		user.CreatedAt = time.Now()
		user.UpdatedAt = time.Now()
		user.ID = primitive.NewObjectID()
		user.UserID = uuid.NewString()

		accessToken, refreshToken := helpers.GenerateTokens(*user.Email, user.UserID, *user.Role)
		user.Token = &accessToken
		user.RefreshToken = &refreshToken

		if err := uc.users.Insert(c.Request.Context(), &user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		user.Password = nil
		user.Token = nil
		user.RefreshToken = nil
		c.JSON(http.StatusOK, gin.H{
			"message":       "User created successfully",
			"token":         accessToken,
			"refresh_token": refreshToken,
			"user":          user,
		})
	}
}

func (uc *UserController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginInput models.User

		if err := c.BindJSON(&loginInput); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if loginInput.Email == nil || loginInput.Password == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		foundUser, err := uc.users.FindByEmail(c.Request.Context(), *loginInput.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		passwordIsValid, _ := helpers.VerifyPassword(*foundUser.Password, *loginInput.Password)
		if !passwordIsValid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		token, refreshToken := helpers.GenerateTokens(*foundUser.Email, foundUser.UserID, *foundUser.Role)

		if err := uc.users.UpdateTokens(c.Request.Context(), foundUser.UserID, token, refreshToken); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		foundUser.Password = nil
		foundUser.Token = nil
		foundUser.RefreshToken = nil

		c.JSON(http.StatusOK, gin.H{
			"user":          foundUser,
			"token":         token,
			"refresh_token": refreshToken,
		})
	}
}

func (uc *UserController) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		if claims == nil {
			return
		}
		user, err := uc.users.FindByUserID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		user.Password = nil
		user.Token = nil
		user.RefreshToken = nil
		c.JSON(http.StatusOK, user)
	}
}
