package handlers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"inkpost/internal/models"
	"inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

func TestLoadTemplates_AllPagesParse(t *testing.T) {
	tmpls, err := loadTemplates()
	if err != nil {
		t.Fatalf("loadTemplates: %v", err)
	}
	for _, name := range append(append([]string{}, mainPages...), adminPages...) {
		if tmpls[name] == nil {
			t.Fatalf("template %q missing", name)
		}
	}
}

func TestLoadTemplates_EscapesPostContent(t *testing.T) {
	tmpls := mustLoadTemplates()

	var buf bytes.Buffer
	data := gin.H{
		"site":         "Blog",
		"locals":       pageLocals{Title: "<b>t</b>", Description: "d"},
		"currentRoute": "/",
		"data":         []models.Post{{ID: "p1", Title: "<script>x</script>", CreatedAt: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)}},
		"page":         service.PostPage{Current: 1, NextPage: 2, TotalPages: 2},
	}
	if err := tmpls[tmplIndex].ExecuteTemplate(&buf, layoutName, data); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>x</script>") {
		t.Fatalf("title was not escaped: %s", out)
	}
	if !strings.Contains(out, "Feb 3, 2025") || !strings.Contains(out, `href="/?page=2"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestLoadTemplates_AddPostKeepsInput(t *testing.T) {
	tmpls := mustLoadTemplates()

	var buf bytes.Buffer
	data := gin.H{
		"site":         "Blog",
		"locals":       pageLocals{Title: "Add Post"},
		"currentRoute": "/add-post",
		"form":         service.PostInput{Title: "draft", Body: "kept body"},
		"error":        "title is required",
	}
	if err := tmpls[tmplAddPost].ExecuteTemplate(&buf, layoutName, data); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "kept body") || !strings.Contains(buf.String(), "title is required") {
		t.Fatalf("form state lost: %s", buf.String())
	}
}
