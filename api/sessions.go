package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/carbooking/config"
	"github.com/Domenick1991/carbooking/internal/auth"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	manager *auth.Manager
	cfg     config.AuthConfig
}

type createSessionRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func NewSessionHandler(manager *auth.Manager, cfg config.AuthConfig) *SessionHandler {
	return &SessionHandler{manager: manager, cfg: cfg}
}

func (h *SessionHandler) Register(router *gin.RouterGroup) {
	router.POST("/jwt", h.create)
	router.GET("/logout", h.destroy)
}

func (h *SessionHandler) create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.manager.Issue(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int((time.Duration(h.cfg.TokenTTLDays) * 24 * time.Hour).Seconds())
	h.setSameSite(c)
	c.SetCookie(auth.CookieName, token, maxAge, "/", "", h.cfg.Production(), true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *SessionHandler) destroy(c *gin.Context) {
	h.setSameSite(c)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.cfg.Production(), true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Cross-site cookies need SameSite=None with the secure flag; outside
// production the cookie stays strictly same-site.
func (h *SessionHandler) setSameSite(c *gin.Context) {
	if h.cfg.Production() {
		c.SetSameSite(http.SameSiteNoneMode)
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
}
