package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "session"

	// Gin context keys set by the session middleware.
	ContextAdminID    = "admin_id"
	ContextAdminEmail = "admin_email"
)

type Handler struct {
	service      Service
	secureCookie bool
}

func NewHandler(s Service, secureCookie bool) *Handler {
	return &Handler{service: s, secureCookie: secureCookie}
}

// ===============================
// Login
// ===============================

type loginReq struct {
	Email    string `json:"email" binding:"required,email" example:"admin@campus.example"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// Login godoc
// @Summary Admin login
// @Description Verifies credentials and sets the httpOnly session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginReq true "Credentials"
// @Success 200 {object} LoginResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Login(c.Request.Context(), LoginInput(req), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInactive):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			log.Printf("❌ login failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}

	h.setCookie(c, res.Token, int(h.service.SessionTTL().Seconds()))
	c.JSON(http.StatusOK, res)
}

// ===============================
// Logout
// ===============================

// Logout godoc
// @Summary Admin logout
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ===============================
// Me
// ===============================

// Me godoc
// @Summary Current admin
// @Tags Auth
// @Produce json
// @Success 200 {object} Admin
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	id := c.GetUint(ContextAdminID)
	if id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	admin, err := h.service.GetAdmin(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load admin"})
		return
	}
	if !admin.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInactive.Error()})
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, value, maxAge, "/", "", h.secureCookie, true)
}
