package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/podhost/podhost-backend/middleware"
	"github.com/podhost/podhost-backend/models"
	"github.com/podhost/podhost-backend/services"
	"github.com/podhost/podhost-backend/utils"
)

// ====== INPUT STRUCTS ======
type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ====== HANDLERS ======

// RegisterForm returns the fields the registration endpoint accepts. The
// original served an HTML form here.
func RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"fields": []string{"username", "email", "password", "role"},
		"roles":  []models.UserRole{models.RolePodcaster, models.RoleListener, models.RoleAdmin},
	})
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	var existing models.User
	if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ErrEmailAlreadyExists.Error()})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	newUser := models.User{
		ID:       uuid.New(),
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
		// Unknown or missing roles fall back to Listener.
		Role: models.RoleFromString(input.Role),
	}
	if err := db.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful, please log in",
		"user":    newUser,
	})
}

// LoginForm reports whether the caller already has a live session.
func LoginForm(c *gin.Context) {
	if username := c.GetString(middleware.CtxUsername); username != "" {
		c.JSON(http.StatusOK, gin.H{"message": "already logged in as " + username})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fields": []string{"email", "password"}})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	var user models.User
	if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": utils.ErrInvalidCredentials.Error()})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": utils.ErrInvalidCredentials.Error()})
		return
	}

	sessions := c.MustGet(middleware.CtxSessions).(*services.SessionStore)
	token, err := sessions.New(c.Request.Context(), services.Session{
		UserID:   user.ID.String(),
		Username: user.Username,
		Role:     string(user.Role),
		Email:    user.Email,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": utils.ErrExternalService.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "welcome back, " + user.Username,
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// Logout invalidates the whole session immediately.
func Logout(c *gin.Context) {
	sessions := c.MustGet(middleware.CtxSessions).(*services.SessionStore)
	token := c.GetString(middleware.CtxSessionToken)
	if err := sessions.Delete(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": utils.ErrExternalService.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "you have been logged out"})
}

// Me returns the identity attached to the current session.
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id":  c.GetString(middleware.CtxUserID),
		"username": c.GetString(middleware.CtxUsername),
		"role":     c.GetString(middleware.CtxRole),
		"email":    c.GetString(middleware.CtxEmail),
	})
}
