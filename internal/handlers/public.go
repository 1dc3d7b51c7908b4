package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

// parsePage reads ?page; anything that is not a positive integer means page 1.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *Handler) home(c *gin.Context) {
	page, err := h.services.Posts.Page(c.Request.Context(), parsePage(c.Query("page")))
	if err != nil {
		h.logAndErrorPage(c, "post_list_failed", err)
		return
	}

	c.HTML(http.StatusOK, tmplIndex, h.view(h.opts.SiteTitle, "/", gin.H{
		"data": page.Posts,
		"page": page,
	}))
}

func (h *Handler) about(c *gin.Context) {
	c.HTML(http.StatusOK, tmplAbout, h.view("About", "/about", nil))
}

func (h *Handler) contact(c *gin.Context) {
	c.HTML(http.StatusOK, tmplContact, h.view("Contact", "/contact", nil))
}

func (h *Handler) showPost(c *gin.Context) {
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

	body, err := h.services.Render(post.Body)
	if err != nil {
		h.logAndErrorPage(c, "post_render_failed", err, "id", id)
		return
	}

	c.HTML(http.StatusOK, tmplPost, h.view(post.Title, "/post/"+id, gin.H{
		"data": post,
		"body": body,
	}))
}

func (h *Handler) search(c *gin.Context) {
	term := c.PostForm("searchTerm")
	posts, err := h.services.Posts.Search(c.Request.Context(), term)
	if err != nil {
		h.logAndErrorPage(c, "post_search_failed", err)
		return
	}

	c.HTML(http.StatusOK, tmplSearch, h.view("Search", "/search", gin.H{
		"data":       posts,
		"searchTerm": term,
	}))
}
