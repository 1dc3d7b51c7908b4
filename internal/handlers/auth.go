package handlers

import (
	"errors"
	"net/http"
	"time"

	"inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both login and registration.
type authCredentials struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RegisterRequest is an exported model for Swagger docs of the register payload.
type RegisterRequest struct {
	Username string `json:"username" example:"editor"`
	Password string `json:"password" example:"s3cret-pass"`
}

// RegisterResponse is the public view of a newly created account.
type RegisterResponse struct {
	Message string       `json:"message" example:"user created"`
	User    registeredAs `json:"user"`
}

type registeredAs struct {
	ID       int    `json:"id" example:"2"`
	Username string `json:"username" example:"editor"`
}

func (h *Handler) setSessionCookie(c *gin.Context, sess service.Session) {
	maxAge := 0 // browser session
	if !sess.ExpiresAt.IsZero() {
		maxAge = int(time.Until(sess.ExpiresAt).Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookie, sess.Token, maxAge, "/", "", h.opts.CookieSecure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookie, "", -1, "/", "", h.opts.CookieSecure, true)
}

func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, tmplLogin, h.view("Admin", "/admin", nil))
}

// @Summary      Admin login
// @Description  On success sets the HTTP-only "token" cookie and redirects to /dashboard
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if err := c.ShouldBind(&input); err != nil {
		h.log.Infow("auth_bad_request_body", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	sess, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.log.Infow("auth_sign_in_failed", "username", input.Username)
			c.JSON(http.StatusUnauthorized, gin.H{"message": msgInvalidCredentials})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, msgInternal, "auth_sign_in_error", err, "username", input.Username)
		return
	}

	h.setSessionCookie(c, sess)
	c.Redirect(http.StatusFound, "/dashboard")
}

// @Summary      Register admin account
// @Description  Only an authenticated admin can create further accounts
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Credentials"
// @Success      201   {object}  RegisterResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /register [post]
// @Security     CookieAuth
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if err := c.ShouldBind(&input); err != nil {
		h.log.Infow("auth_bad_request_body", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	user, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"message": msgUserExists})
		return
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, msgInternal, "auth_sign_up_failed", err, "username", input.Username)
		return
	}

	h.log.Infow("auth_user_registered", "id", user.ID, "username", user.Username, "by", c.GetInt(userIDKey))
	c.JSON(http.StatusCreated, RegisterResponse{
		Message: msgUserCreated,
		User:    registeredAs{ID: user.ID, Username: user.Username},
	})
}

func (h *Handler) logout(c *gin.Context) {
	if token, err := c.Cookie(tokenCookie); err == nil && token != "" {
		if err := h.services.Revoke(c.Request.Context(), token); err != nil {
			h.log.Warnw("auth_revoke_failed", "err", err)
		}
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}
