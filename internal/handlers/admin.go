package handlers

import (
	"errors"
	"net/http"

	"inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

// postForm is the add/edit form body.
type postForm struct {
	Title string `form:"title"`
	Body  string `form:"body"`
}

func (f postForm) input() service.PostInput {
	return service.PostInput{Title: f.Title, Body: f.Body}
}

func (h *Handler) dashboard(c *gin.Context) {
	posts, err := h.services.Posts.All(c.Request.Context())
	if err != nil {
		h.logAndErrorPage(c, "dashboard_list_failed", err)
		return
	}
	c.HTML(http.StatusOK, tmplDashboard, h.view("Dashboard", "/dashboard", gin.H{
		"data": posts,
	}))
}

func (h *Handler) addPostPage(c *gin.Context) {
	c.HTML(http.StatusOK, tmplAddPost, h.view("Add Post", "/add-post", gin.H{
		"form": service.PostInput{},
	}))
}

func (h *Handler) addPost(c *gin.Context) {
	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderAddPostError(c, form.input(), "invalid form submission")
		return
	}

	post, err := h.services.Posts.Create(c.Request.Context(), form.input())
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.renderAddPostError(c, form.input(), err.Error())
			return
		}
		h.logAndErrorPage(c, "post_create_failed", err)
		return
	}

	h.log.Infow("post_created", "id", post.ID, "by", c.GetInt(userIDKey))
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) renderAddPostError(c *gin.Context, in service.PostInput, msg string) {
	c.HTML(http.StatusBadRequest, tmplAddPost, h.view("Add Post", "/add-post", gin.H{
		"form":  in,
		"error": msg,
	}))
}

func (h *Handler) editPostPage(c *gin.Context) {
	id := c.Param("id")
	post, err := h.services.Posts.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.logAndErrorPage(c, "post_get_failed", err, "id", id)
		return
	}
	c.HTML(http.StatusOK, tmplEditPost, h.view("Edit Post", "/edit-post/"+id, gin.H{
		"data": post,
	}))
}

func (h *Handler) updatePost(c *gin.Context) {
	id := c.Param("id")
	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderEditPostError(c, id, form, "invalid form submission")
		return
	}

	_, err := h.services.Posts.Update(c.Request.Context(), id, form.input())
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNotFound):
		h.notFound(c)
		return
	case errors.Is(err, service.ErrValidation):
		h.renderEditPostError(c, id, form, err.Error())
		return
	default:
		h.logAndErrorPage(c, "post_update_failed", err, "id", id)
		return
	}

	h.log.Infow("post_updated", "id", id, "by", c.GetInt(userIDKey))
	c.Redirect(http.StatusFound, "/edit-post/"+id)
}

func (h *Handler) renderEditPostError(c *gin.Context, id string, form postForm, msg string) {
	c.HTML(http.StatusBadRequest, tmplEditPost, h.view("Edit Post", "/edit-post/"+id, gin.H{
		"data":  gin.H{"ID": id, "Title": form.Title, "Body": form.Body},
		"error": msg,
	}))
}

func (h *Handler) deletePost(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Posts.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.logAndErrorPage(c, "post_delete_failed", err, "id", id)
		return
	}

	h.log.Infow("post_deleted", "id", id, "by", c.GetInt(userIDKey))
	c.Redirect(http.StatusFound, "/dashboard")
}
