package api

import (
	"net/http"

	"github.com/Domenick1991/pingo/internal/logging"
	"github.com/Domenick1991/pingo/internal/session"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	cookieName string
}

func NewSessionHandler(cookieName string) *SessionHandler {
	return &SessionHandler{cookieName: cookieName}
}

func (h *SessionHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.get)
	router.POST("/sign-out", h.signOut)
}

func (h *SessionHandler) get(c *gin.Context) {
	user := session.FromContext(c.Request.Context()).CurrentUser()
	c.JSON(http.StatusOK, gin.H{
		"signed_in": user != nil,
		"user":      user,
	})
}

func (h *SessionHandler) signOut(c *gin.Context) {
	ctx := c.Request.Context()
	if err := session.FromContext(ctx).SignOut(ctx); err != nil {
		logging.FromContext(ctx).WithError(err).Error("error signing out")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out. Please try again."})
		return
	}
	if h.cookieName != "" {
		c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	}
	c.Status(http.StatusNoContent)
}
