package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	msgUnauthorized       = "unauthorized"
	msgInvalidCredentials = "invalid credentials"
	msgUserExists         = "user already in use"
	msgUserCreated        = "user created"
	msgInternal           = "internal server error"
)

// pageLocals is what every layout reads for <title> and <meta description>.
type pageLocals struct {
	Title       string
	Description string
}

// view builds template data with the keys every layout expects.
func (h *Handler) view(title, route string, extra gin.H) gin.H {
	data := gin.H{
		"site":         h.opts.SiteTitle,
		"locals":       pageLocals{Title: title, Description: h.opts.SiteDescription},
		"currentRoute": route,
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (h *Handler) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, tmplNotFound, h.view("Not found", c.Request.URL.Path, nil))
}

// Centralized error logging and error page.
func (h *Handler) logAndErrorPage(c *gin.Context, logKey string, err error, kv ...interface{}) {
	fields := append([]interface{}{"err", err}, kv...)
	h.log.Errorw(logKey, fields...)
	c.HTML(http.StatusInternalServerError, tmplError, h.view("Error", c.Request.URL.Path, nil))
}

// Centralized error logging and JSON response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"message": userMsg})
}
