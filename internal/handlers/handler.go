package handlers

import (
	"net/http"

	"inkpost/internal/logger"
	"inkpost/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options are the request-facing settings taken from the process config.
type Options struct {
	SiteTitle       string
	SiteDescription string
	// CookieSecure marks the session cookie Secure (HTTPS only).
	CookieSecure bool
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	if opts.SiteTitle == "" {
		opts.SiteTitle = "Go Blog"
	}
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.accessLog)
	router.HTMLRender = mustLoadTemplates()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerPublicRoutes(router)
	h.registerAuthRoutes(router)
	h.registerAdminRoutes(router)

	router.NoRoute(h.notFound)

	return router
}

// Routes returns the router wrapped with HTML form method override.
func (h *Handler) Routes() http.Handler {
	return methodOverride(h.InitRoutes())
}

func (h *Handler) registerPublicRoutes(r *gin.Engine) {
	r.GET("/", h.home)
	r.GET("/about", h.about)
	r.GET("/contact", h.contact)
	r.GET("/post/:id", h.showPost)
	r.POST("/search", h.search)
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.GET("/admin", h.loginPage)
	r.POST("/admin", h.login)
	r.GET("/logout", h.logout)
}

func (h *Handler) registerAdminRoutes(r *gin.Engine) {
	admin := r.Group("/", h.userIdMiddleware)
	{
		admin.GET("/dashboard", h.dashboard)
		admin.GET("/add-post", h.addPostPage)
		admin.POST("/add-post", h.addPost)
		admin.GET("/edit-post/:id", h.editPostPage)
		admin.PUT("/edit-post/:id", h.updatePost)
		admin.DELETE("/delete-post/:id", h.deletePost)
		admin.POST("/register", h.register)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
