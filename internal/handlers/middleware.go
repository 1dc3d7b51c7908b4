package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	tokenCookie = "token"
	userIDKey   = "userId"

	methodOverrideField = "_method"
)

// userIdMiddleware rejects requests without a valid session cookie and
// stores the caller's user id in the context.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	token, err := c.Cookie(tokenCookie)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message": msgUnauthorized,
		})
		return
	}

	userId, err := h.services.ParseToken(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidToken) {
			h.log.Errorw("auth_token_check_failed", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message": msgUnauthorized,
		})
		return
	}

	// store in Gin context
	c.Set(userIDKey, userId)
	c.Next()
}

func (h *Handler) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
	)
}

// methodOverride lets HTML forms reach PUT and DELETE routes by posting
// _method in the query string or form body. Gin matches on the request
// method before any middleware runs, so this wraps the engine.
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.URL.Query().Get(methodOverrideField)
			if m == "" {
				m = r.PostFormValue(methodOverrideField)
			}
			switch m = strings.ToUpper(m); m {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
